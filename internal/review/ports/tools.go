// Package ports defines the contracts between the evaluation pipeline and its
// external capabilities: tools that fetch platform context, and the language
// model that consumes it.
package ports

import "context"

// ToolExecutor executes a single tool call.
type ToolExecutor interface {
	// Execute runs the tool with the given arguments.
	Execute(ctx context.Context, call ToolCall) (*ToolResult, error)

	// Definition returns the tool's schema for the LLM.
	Definition() ToolDefinition
}

// ToolCall represents a request to execute a tool.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult is the execution result. Content is what the LLM sees; tool
// failures are folded into Content so a broken fetch degrades one axis, not
// the run.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// ToolDefinition describes a tool for the LLM.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParameterSchema `json:"parameters"`
}

// ParameterSchema defines tool parameters (JSON Schema format).
type ParameterSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property is one parameter in a tool's schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Minimum     *int   `json:"minimum,omitempty"`
	Maximum     *int   `json:"maximum,omitempty"`
}
