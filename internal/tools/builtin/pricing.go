package builtin

import (
	"context"
	"encoding/json"

	reviewcontext "inspector/internal/review/context"
	"inspector/internal/review/ports"
)

type actorPricing struct {
	pricing *reviewcontext.PricingAdapter
}

// NewActorPricing returns the tool fetching an actor's current pricing
// snapshot.
func NewActorPricing(pricing *reviewcontext.PricingAdapter) ports.ToolExecutor {
	return &actorPricing{pricing: pricing}
}

func (t *actorPricing) Definition() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name:        "get_actor_pricing_information",
		Description: "Fetch and return the current pricing information of an Apify Actor.",
		Parameters: ports.ParameterSchema{
			Type: "object",
			Properties: map[string]ports.Property{
				"actor_name": {Type: "string", Description: "The name of the Apify Actor, as user-name/actor-name."},
			},
			Required: []string{"actor_name"},
		},
	}
}

func (t *actorPricing) Execute(ctx context.Context, call ports.ToolCall) (*ports.ToolResult, error) {
	actorName, err := stringArg(call.Arguments, "actor_name")
	if err != nil {
		return nil, err
	}
	snapshot, err := t.pricing.Snapshot(ctx, actorName)
	if err != nil {
		return nil, err
	}
	content, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ports.ToolResult{CallID: call.ID, Content: string(content)}, nil
}
