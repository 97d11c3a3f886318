package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kainos.com/bid-assist/internal/config"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	previous := config.AppConfig
	t.Cleanup(func() { config.AppConfig = previous })
	config.AppConfig.JWTSecret = secret
}

func TestUserIDFromRequestWithValidToken(t *testing.T) {
	withSecret(t, "test-secret")

	token, err := GenerateJWT("user-123")
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/api/elaborate", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, "user-123", UserIDFromRequest(r))
}

func TestUserIDFromRequestWithoutToken(t *testing.T) {
	withSecret(t, "test-secret")

	r := httptest.NewRequest("POST", "/api/elaborate", nil)
	assert.Equal(t, AnonymousUser, UserIDFromRequest(r))
}

func TestUserIDFromRequestWithInvalidToken(t *testing.T) {
	withSecret(t, "test-secret")

	r := httptest.NewRequest("POST", "/api/elaborate", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")

	assert.Equal(t, AnonymousUser, UserIDFromRequest(r))
}

func TestUserIDFromRequestWithoutConfiguredSecret(t *testing.T) {
	withSecret(t, "")

	r := httptest.NewRequest("POST", "/api/elaborate", nil)
	r.Header.Set("Authorization", "Bearer anything")

	assert.Equal(t, AnonymousUser, UserIDFromRequest(r))
}
