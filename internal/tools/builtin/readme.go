package builtin

import (
	"context"

	reviewcontext "inspector/internal/review/context"
	"inspector/internal/review/ports"
)

type actorReadme struct {
	session *Session
}

// NewActorReadme returns the tool fetching an actor's README.
func NewActorReadme(session *Session) ports.ToolExecutor {
	return &actorReadme{session: session}
}

func (t *actorReadme) Definition() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name:        "get_actor_readme",
		Description: "Fetch the README content of the specified Apify Actor.",
		Parameters: ports.ParameterSchema{
			Type: "object",
			Properties: map[string]ports.Property{
				"actor_name": {Type: "string", Description: "The name of the Apify Actor, as user-name/actor-name."},
			},
			Required: []string{"actor_name"},
		},
	}
}

func (t *actorReadme) Execute(ctx context.Context, call ports.ToolCall) (*ports.ToolResult, error) {
	actorName, err := stringArg(call.Arguments, "actor_name")
	if err != nil {
		return nil, err
	}
	_, build, err := t.session.resolve(ctx, actorName)
	if err != nil {
		return nil, err
	}
	readme, err := reviewcontext.ReadmeFromBuild(actorName, build)
	if err != nil {
		return nil, err
	}
	return &ports.ToolResult{CallID: call.ID, Content: readme}, nil
}
