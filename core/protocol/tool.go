// Package protocol defines the transcript and tool-calling types shared by
// the orchestrator, the reasoning-engine client, and the tool registry.
package protocol

// Tool defines a function the reasoning engine may invoke.
// Parameters uses JSON Schema format to describe the function's input.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}
