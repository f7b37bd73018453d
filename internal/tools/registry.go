// Package tools assembles the bounded tool sets handed to each evaluator
// role. A role can only call tools present in its own registry; the closed
// set is enforced by construction, not by prompt text.
package tools

import (
	"fmt"
	"sort"
	"sync"

	"inspector/internal/review/ports"
)

// Registry holds one role's tool set.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ports.ToolExecutor
}

// NewRegistry builds a registry from the given executors. Duplicate names
// are rejected.
func NewRegistry(executors ...ports.ToolExecutor) (*Registry, error) {
	r := &Registry{tools: make(map[string]ports.ToolExecutor, len(executors))}
	for _, tool := range executors {
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool ports.ToolExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := tool.Definition().Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already exists: %s", name)
	}
	r.tools[name] = tool
	return nil
}

// Get returns the named tool.
func (r *Registry) Get(name string) (ports.ToolExecutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool, nil
}

// Definitions lists the tool schemas for the LLM, in stable name order.
func (r *Registry) Definitions() []ports.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]ports.ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
