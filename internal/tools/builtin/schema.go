package builtin

import (
	"context"
	"encoding/json"

	reviewcontext "inspector/internal/review/context"
	"inspector/internal/review/ports"
)

type actorInputSchema struct {
	session *Session
}

// NewActorInputSchema returns the tool fetching an actor's declared input
// schema with effective defaults resolved.
func NewActorInputSchema(session *Session) ports.ToolExecutor {
	return &actorInputSchema{session: session}
}

func (t *actorInputSchema) Definition() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name:        "get_actor_input_schema",
		Description: "Fetch the input schema of the specified Apify Actor, with effective defaults resolved.",
		Parameters: ports.ParameterSchema{
			Type: "object",
			Properties: map[string]ports.Property{
				"actor_name": {Type: "string", Description: "The name of the Apify Actor, as user-name/actor-name."},
			},
			Required: []string{"actor_name"},
		},
	}
}

func (t *actorInputSchema) Execute(ctx context.Context, call ports.ToolCall) (*ports.ToolResult, error) {
	actorName, err := stringArg(call.Arguments, "actor_name")
	if err != nil {
		return nil, err
	}
	_, build, err := t.session.resolve(ctx, actorName)
	if err != nil {
		return nil, err
	}
	result, err := reviewcontext.SchemaFromBuild(actorName, build)
	if err != nil {
		return nil, err
	}
	if result.Unavailable {
		return &ports.ToolResult{CallID: call.ID, Content: reviewcontext.SchemaUnavailableMessage}, nil
	}
	content, err := json.MarshalIndent(result.Definition, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ports.ToolResult{CallID: call.ID, Content: string(content)}, nil
}
