package reviewcontext

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectorerrors "inspector/internal/errors"
	"inspector/internal/platform"
)

func TestReadmeFromBuild(t *testing.T) {
	build := &platform.Build{ActorDefinition: &platform.ActorDefinition{Readme: "# Foo"}}
	readme, err := ReadmeFromBuild("acme/foo", build)
	require.NoError(t, err)
	assert.Equal(t, "# Foo", readme)
}

func TestReadmeMissingIsADefect(t *testing.T) {
	cases := map[string]*platform.Build{
		"nil build":      nil,
		"nil definition": {},
		"empty readme":   {ActorDefinition: &platform.ActorDefinition{}},
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadmeFromBuild("acme/foo", build)
			require.Error(t, err)
			assert.True(t, inspectorerrors.IsMissingField(err))
		})
	}
}

func TestSchemaFromBuildPrefersPrefill(t *testing.T) {
	build := &platform.Build{ActorDefinition: &platform.ActorDefinition{
		Title:       "Foo Scraper",
		Description: "Scrapes foos",
		Input: &platform.InputSchema{
			Properties: map[string]platform.InputProperty{
				"both":    {Title: "Both", Type: "string", Default: json.RawMessage(`"d"`), Prefill: json.RawMessage(`"p"`)},
				"default": {Title: "Default", Type: "string", Default: json.RawMessage(`"d"`)},
				"prefill": {Title: "Prefill", Type: "integer", Prefill: json.RawMessage(`42`)},
				"neither": {Title: "Neither", Type: "string"},
			},
		},
	}}

	result, err := SchemaFromBuild("acme/foo", build)
	require.NoError(t, err)
	require.False(t, result.Unavailable)

	assert.Equal(t, "Foo Scraper", result.Definition.Title)
	assert.Equal(t, "Scrapes foos", result.Definition.Description)

	props := result.Definition.Properties
	assert.Equal(t, "p", props["both"].Default)
	assert.Equal(t, "d", props["default"].Default)
	assert.Equal(t, float64(42), props["prefill"].Default)
	assert.Nil(t, props["neither"].Default)
}

func TestSchemaMissingDefinitionIsADefect(t *testing.T) {
	_, err := SchemaFromBuild("acme/foo", &platform.Build{})
	require.Error(t, err)
	assert.True(t, inspectorerrors.IsMissingField(err))
}

func TestSchemaAbsentInputIsUnavailableNotAnError(t *testing.T) {
	build := &platform.Build{ActorDefinition: &platform.ActorDefinition{Readme: "# Foo"}}
	result, err := SchemaFromBuild("acme/foo", build)
	require.NoError(t, err)
	assert.True(t, result.Unavailable)
	assert.Nil(t, result.Definition)
}

func TestSchemaEmptyInputIsUnavailableNotAnError(t *testing.T) {
	cases := map[string]*platform.InputSchema{
		"empty block":   {},
		"no properties": {Properties: map[string]platform.InputProperty{}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			build := &platform.Build{ActorDefinition: &platform.ActorDefinition{Readme: "# Foo", Input: input}}
			result, err := SchemaFromBuild("acme/foo", build)
			require.NoError(t, err)
			assert.True(t, result.Unavailable)
			assert.Nil(t, result.Definition)
		})
	}
}
