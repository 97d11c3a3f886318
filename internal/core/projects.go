package core

// Project is one candidate project identified by the model.
// Justification is optional; its absence is tolerated, not an error.
type Project struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Justification string `json:"justification,omitempty"`
}

// ProjectsAnswer is the structured answer of the identify-projects flow.
type ProjectsAnswer struct {
	Projects []Project `json:"projects"`
}

// ProjectsSchema declares the output schema the model must conform to
// when identifying projects.
func ProjectsSchema() *Schema {
	return &Schema{
		Name:        "projectsInfo",
		Description: "Information about one or more corporate projects",
		Root: &SchemaNode{
			Type: "object",
			Properties: map[string]*SchemaNode{
				"projects": {
					Type: "array",
					Items: &SchemaNode{
						Type: "object",
						Properties: map[string]*SchemaNode{
							"name":          {Type: "string", Description: "The name of the project"},
							"description":   {Type: "string", Description: "A brief description of the project"},
							"justification": {Type: "string", Description: "Justification of why the project is a good example"},
						},
						Required: []string{"name", "description"},
					},
				},
			},
			Required: []string{"projects"},
		},
	}
}
