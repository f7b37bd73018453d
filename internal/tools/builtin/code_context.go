package builtin

import (
	"context"
	"encoding/json"

	reviewcontext "inspector/internal/review/context"
	"inspector/internal/review/ports"
)

type codeContext struct {
	session *Session
	source  *reviewcontext.SourceAdapter
}

// NewCodeContext returns the tool fetching an actor's file tree and source
// file contents.
func NewCodeContext(session *Session, source *reviewcontext.SourceAdapter) ports.ToolExecutor {
	return &codeContext{session: session, source: source}
}

func (t *codeContext) Definition() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name: "get_code_context",
		Description: "Get code context for the specified Apify Actor, including the file tree and file contents. " +
			"When the code is not available, states so explicitly; grade the code as N/A in that case.",
		Parameters: ports.ParameterSchema{
			Type: "object",
			Properties: map[string]ports.Property{
				"actor_name": {Type: "string", Description: "The name of the Apify Actor, as user-name/actor-name."},
			},
			Required: []string{"actor_name"},
		},
	}
}

func (t *codeContext) Execute(ctx context.Context, call ports.ToolCall) (*ports.ToolResult, error) {
	actorName, err := stringArg(call.Arguments, "actor_name")
	if err != nil {
		return nil, err
	}
	identity, build, err := t.session.resolve(ctx, actorName)
	if err != nil {
		return nil, err
	}
	result, err := t.source.CodeContext(ctx, identity, build)
	if err != nil {
		return nil, err
	}
	if result.Unavailable {
		return &ports.ToolResult{CallID: call.ID, Content: reviewcontext.UnavailableMessage(actorName)}, nil
	}
	content, err := json.MarshalIndent(result.Context, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ports.ToolResult{CallID: call.ID, Content: string(content)}, nil
}
