// Package builtin implements the tool executors backing the evaluator roles.
// Each tool turns one adapter call into LLM-consumable text; modeled absence
// (no code, no schema) comes back as explicit content, never as an error.
package builtin

import (
	"context"
	"fmt"

	"inspector/internal/platform"
)

// BuildSource resolves actors and fetches their latest builds.
type BuildSource interface {
	ResolveIdentity(ctx context.Context, name string) (*platform.Identity, error)
	LatestBuild(ctx context.Context, identity *platform.Identity) (*platform.Build, error)
}

// Session carries the identity and build already resolved by the pipeline
// driver. Reusing them for the actor under review avoids duplicate lookups;
// any other actor name is a fresh fetch. This reuse is an optimization, not
// a correctness requirement.
type Session struct {
	API      BuildSource
	Identity *platform.Identity
	Build    *platform.Build
}

func (s *Session) resolve(ctx context.Context, actorName string) (*platform.Identity, *platform.Build, error) {
	if s.Identity != nil && s.Build != nil && actorName == s.Identity.Name {
		return s.Identity, s.Build, nil
	}
	identity, err := s.API.ResolveIdentity(ctx, actorName)
	if err != nil {
		return nil, nil, err
	}
	build, err := s.API.LatestBuild(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	return identity, build, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return value, nil
}

func intArg(args map[string]any, key string, fallback int) int {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
