package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector/internal/review/ports"
)

type stubTool struct{ name string }

func (s stubTool) Definition() ports.ToolDefinition {
	return ports.ToolDefinition{Name: s.name}
}

func (s stubTool) Execute(ctx context.Context, call ports.ToolCall) (*ports.ToolResult, error) {
	return &ports.ToolResult{CallID: call.ID, Content: s.name}, nil
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(stubTool{name: "a"}, stubTool{name: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRegistryClosedSet(t *testing.T) {
	registry, err := NewRegistry(stubTool{name: "get_actor_readme"})
	require.NoError(t, err)

	_, err = registry.Get("get_actor_readme")
	require.NoError(t, err)

	_, err = registry.Get("get_code_context")
	require.Error(t, err)
}

func TestRegistryDefinitionsStableOrder(t *testing.T) {
	registry, err := NewRegistry(stubTool{name: "b"}, stubTool{name: "a"}, stubTool{name: "c"})
	require.NoError(t, err)

	defs := registry.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "a", defs[0].Name)
	assert.Equal(t, "b", defs[1].Name)
	assert.Equal(t, "c", defs[2].Name)
}
