package auth

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kainos.com/bid-assist/internal/config"
)

// AnonymousUser is the identity assigned when no usable credential is
// present. Endpoints accept anonymous callers; a bearer token only
// refines the identity used for session scoping.
const AnonymousUser = "anonymous"

func GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return "", fmt.Errorf("token has no subject")
		}
		return sub, nil
	}

	return "", fmt.Errorf("invalid token")
}

// UserIDFromRequest extracts the caller identity from an optional
// Bearer token. Missing or invalid tokens yield the anonymous user,
// never an error.
func UserIDFromRequest(r *http.Request) string {
	if config.AppConfig.JWTSecret == "" {
		return AnonymousUser
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return AnonymousUser
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	userID, err := ValidateJWT(tokenString)
	if err != nil {
		log.Printf("Ignoring invalid bearer token: %v", err)
		return AnonymousUser
	}
	return userID
}
