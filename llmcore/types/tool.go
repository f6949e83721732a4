package types

// Tool is a function the model may call, described by a JSON schema.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}
