package builtin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectorerrors "inspector/internal/errors"
	"inspector/internal/logging"
	"inspector/internal/platform"
	reviewcontext "inspector/internal/review/context"
	"inspector/internal/review/ports"
)

type fakeBuildSource struct {
	resolves int
	build    *platform.Build
	err      error
}

func (f *fakeBuildSource) ResolveIdentity(ctx context.Context, name string) (*platform.Identity, error) {
	f.resolves++
	if f.err != nil {
		return nil, f.err
	}
	return &platform.Identity{Name: name, ID: "id-" + name}, nil
}

func (f *fakeBuildSource) LatestBuild(ctx context.Context, identity *platform.Identity) (*platform.Build, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.build, nil
}

func call(name string, args map[string]any) ports.ToolCall {
	return ports.ToolCall{ID: "call-1", Name: name, Arguments: args}
}

func TestSessionReusesPreloadedBuild(t *testing.T) {
	api := &fakeBuildSource{}
	session := &Session{
		API:      api,
		Identity: &platform.Identity{Name: "acme/foo", ID: "abc"},
		Build:    &platform.Build{ActorDefinition: &platform.ActorDefinition{Readme: "# preloaded"}},
	}
	tool := NewActorReadme(session)

	result, err := tool.Execute(context.Background(), call("get_actor_readme", map[string]any{"actor_name": "acme/foo"}))
	require.NoError(t, err)
	assert.Equal(t, "# preloaded", result.Content)
	assert.Zero(t, api.resolves)
}

func TestSessionFetchesOtherActorsFresh(t *testing.T) {
	api := &fakeBuildSource{build: &platform.Build{ActorDefinition: &platform.ActorDefinition{Readme: "# other"}}}
	session := &Session{
		API:      api,
		Identity: &platform.Identity{Name: "acme/foo", ID: "abc"},
		Build:    &platform.Build{ActorDefinition: &platform.ActorDefinition{Readme: "# preloaded"}},
	}
	tool := NewActorReadme(session)

	result, err := tool.Execute(context.Background(), call("get_actor_readme", map[string]any{"actor_name": "beta/bar"}))
	require.NoError(t, err)
	assert.Equal(t, "# other", result.Content)
	assert.Equal(t, 1, api.resolves)
}

func TestActorReadmeMissingArgument(t *testing.T) {
	tool := NewActorReadme(&Session{API: &fakeBuildSource{}})
	_, err := tool.Execute(context.Background(), call("get_actor_readme", map[string]any{}))
	require.Error(t, err)
}

func TestActorReadmeMissingReadmeIsAnError(t *testing.T) {
	session := &Session{
		API:      &fakeBuildSource{},
		Identity: &platform.Identity{Name: "acme/foo", ID: "abc"},
		Build:    &platform.Build{ActorDefinition: &platform.ActorDefinition{}},
	}
	tool := NewActorReadme(session)
	_, err := tool.Execute(context.Background(), call("get_actor_readme", map[string]any{"actor_name": "acme/foo"}))
	require.Error(t, err)
	assert.True(t, inspectorerrors.IsMissingField(err))
}

func TestInputSchemaSentinel(t *testing.T) {
	session := &Session{
		API:      &fakeBuildSource{},
		Identity: &platform.Identity{Name: "acme/foo", ID: "abc"},
		Build:    &platform.Build{ActorDefinition: &platform.ActorDefinition{Readme: "# doc"}},
	}
	tool := NewActorInputSchema(session)

	result, err := tool.Execute(context.Background(), call("get_actor_input_schema", map[string]any{"actor_name": "acme/foo"}))
	require.NoError(t, err)
	assert.Equal(t, reviewcontext.SchemaUnavailableMessage, result.Content)
}

func TestCodeContextSentinel(t *testing.T) {
	session := &Session{
		API:      &fakeBuildSource{},
		Identity: &platform.Identity{Name: "acme/foo", ID: "abc"},
		Build:    &platform.Build{},
	}
	source := reviewcontext.NewSourceAdapter(versionless{}, nil, nil, 0, logging.Nop())
	tool := NewCodeContext(session, source)

	result, err := tool.Execute(context.Background(), call("get_code_context", map[string]any{"actor_name": "acme/foo"}))
	require.NoError(t, err)
	assert.Contains(t, result.Content, "N/A")
	assert.Contains(t, result.Content, "acme/foo")
}

type versionless struct{}

func (versionless) Versions(ctx context.Context, identity *platform.Identity) ([]platform.Version, error) {
	return nil, nil
}

type emptyStore struct{}

func (emptyStore) SearchStore(ctx context.Context, search string, limit, offset int) ([]platform.StoreActor, error) {
	return nil, nil
}

func TestSearchToolEmptyResultContent(t *testing.T) {
	adapter := reviewcontext.NewSearchAdapter(emptyStore{}, func() time.Time { return time.Unix(0, 0) }, logging.Nop())
	tool := NewSearchRelatedActors(adapter)

	result, err := tool.Execute(context.Background(), call("search_related_actors", map[string]any{"search": ""}))
	require.NoError(t, err)
	assert.Contains(t, result.Content, "No related Actors found")
}

func TestSearchToolRejectsBadSearchArgument(t *testing.T) {
	adapter := reviewcontext.NewSearchAdapter(emptyStore{}, func() time.Time { return time.Unix(0, 0) }, logging.Nop())
	tool := NewSearchRelatedActors(adapter)

	_, err := tool.Execute(context.Background(), call("search_related_actors", map[string]any{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search")

	_, err = tool.Execute(context.Background(), call("search_related_actors", map[string]any{"search": 7}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a string")
}

func TestPlatformPricingPlans(t *testing.T) {
	tool := NewPlatformPricing()
	result, err := tool.Execute(context.Background(), call("get_platform_pricing_plans", nil))
	require.NoError(t, err)
	assert.Contains(t, result.Content, "Free")
	assert.Contains(t, result.Content, "Enterprise")
	assert.Contains(t, result.Content, "$0.4 per CU")
}
