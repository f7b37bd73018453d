package reviewcontext

import (
	"encoding/json"

	inspectorerrors "inspector/internal/errors"
	"inspector/internal/platform"
)

// SchemaUnavailableMessage is the explicit state for schema-less actors.
const SchemaUnavailableMessage = "Actor input schema is not available."

// InputProperty is one declared input property with its effective default
// already resolved.
type InputProperty struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     any    `json:"default,omitempty"`
}

// InputSchemaDefinition is the normalized input schema of an actor build.
type InputSchemaDefinition struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Properties  map[string]InputProperty `json:"properties"`
}

// SchemaResult is either a schema definition or the explicit unavailable
// state. A schema-less actor is expected, not a defect.
type SchemaResult struct {
	Definition  *InputSchemaDefinition
	Unavailable bool
}

// SchemaFromBuild normalizes the declared input schema of a build. A missing
// actor definition block is a structural defect; a missing input schema is
// the unavailable state. An input block that declares no properties carries
// nothing to document and is treated the same as an absent one.
func SchemaFromBuild(actorName string, build *platform.Build) (*SchemaResult, error) {
	if build == nil || build.ActorDefinition == nil {
		return nil, &inspectorerrors.MissingFieldError{Field: "actorDefinition", Actor: actorName}
	}
	definition := build.ActorDefinition
	input := definition.Input
	if input == nil || len(input.Properties) == 0 {
		return &SchemaResult{Unavailable: true}, nil
	}

	properties := make(map[string]InputProperty, len(input.Properties))
	for name, prop := range input.Properties {
		properties[name] = InputProperty{
			Title:       prop.Title,
			Description: prop.Description,
			Type:        prop.Type,
			Default:     effectiveDefault(prop),
		}
	}
	return &SchemaResult{Definition: &InputSchemaDefinition{
		Title:       definition.Title,
		Description: definition.Description,
		Properties:  properties,
	}}, nil
}

// effectiveDefault prefers the prefill value over the plain default when
// both are set.
func effectiveDefault(prop platform.InputProperty) any {
	raw := prop.Prefill
	if len(raw) == 0 {
		raw = prop.Default
	}
	if len(raw) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	return value
}
