package builtin

import (
	"context"
	"encoding/json"
	"fmt"

	reviewcontext "inspector/internal/review/context"
	"inspector/internal/review/ports"
)

type searchRelatedActors struct {
	search *reviewcontext.SearchAdapter
}

// NewSearchRelatedActors returns the full-text store search tool.
func NewSearchRelatedActors(search *reviewcontext.SearchAdapter) ports.ToolExecutor {
	return &searchRelatedActors{search: search}
}

func (t *searchRelatedActors) Definition() ports.ToolDefinition {
	minLimit, maxLimit, minOffset := 1, reviewcontext.MaxSearchLimit, 0
	return ports.ToolDefinition{
		Name: "search_related_actors",
		Description: "Discover available Actors using a full-text search with specified keywords. " +
			"Returns a list of Actors including name, description, run statistics, pricing information, " +
			"number of stars, and URL. Search with only a few keywords, otherwise it will return empty results. " +
			"Repeat the search with varied keyword sets until at least two comparison points are gathered.",
		Parameters: ports.ParameterSchema{
			Type: "object",
			Properties: map[string]ports.Property{
				"search": {Type: "string", Description: "Keywords to search by, across title, name, description, username and README."},
				"limit":  {Type: "integer", Description: "Maximum number of Actors to return.", Default: reviewcontext.DefaultSearchLimit, Minimum: &minLimit, Maximum: &maxLimit},
				"offset": {Type: "integer", Description: "Number of items to skip from the start of the results.", Default: 0, Minimum: &minOffset},
			},
			Required: []string{"search"},
		},
	}
}

func (t *searchRelatedActors) Execute(ctx context.Context, call ports.ToolCall) (*ports.ToolResult, error) {
	// Required, but an empty keyword set is a legal (if futile) search.
	raw, ok := call.Arguments["search"]
	if !ok {
		return nil, fmt.Errorf("missing required argument %q", "search")
	}
	search, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a string", "search")
	}
	limit := intArg(call.Arguments, "limit", reviewcontext.DefaultSearchLimit)
	offset := intArg(call.Arguments, "offset", 0)

	summaries, err := t.search.Search(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return &ports.ToolResult{
			CallID:  call.ID,
			Content: "No related Actors found. Retry with fewer or different keywords.",
		}, nil
	}
	content, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ports.ToolResult{CallID: call.ID, Content: string(content)}, nil
}
