package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectorerrors "inspector/internal/errors"
)

// chdir changes the working directory for the duration of the test,
// matching t.Chdir from newer Go releases.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv(EnvAPIToken, "")
	_, err := Load()
	require.Error(t, err)
	assert.True(t, inspectorerrors.IsConfig(err))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvAPIToken, "apify_api_test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPlatformBaseURL, cfg.PlatformBaseURL)
	assert.Equal(t, DefaultRendererBaseURL, cfg.RendererBaseURL)
	assert.Equal(t, RequestTimeout, cfg.Timeout)
	assert.Equal(t, 1024, cfg.MemoryMbytes)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAPIToken, "apify_api_test")
	t.Setenv("APIFY_API_BASE_URL", "http://localhost:9999/v2")
	t.Setenv(EnvMemoryMbytes, "4096")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v2", cfg.PlatformBaseURL)
	assert.Equal(t, 4096, cfg.MemoryMbytes)
}

func TestDotEnvFillsMissingValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("APIFY_TOKEN=apify_api_dotenv\nLLM_BASE_URL=http://dotenv:1234/v1\n"), 0o600))
	chdir(t, dir)
	t.Setenv(EnvAPIToken, "")
	os.Unsetenv(EnvAPIToken)
	t.Setenv("LLM_BASE_URL", "")
	os.Unsetenv("LLM_BASE_URL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "apify_api_dotenv", cfg.APIToken)
	assert.Equal(t, "http://dotenv:1234/v1", cfg.LLMBaseURL)
}

func TestEnvWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("APIFY_TOKEN=apify_api_dotenv\nLLM_BASE_URL=http://dotenv:1234/v1\n"), 0o600))
	chdir(t, dir)
	t.Setenv(EnvAPIToken, "apify_api_real")
	t.Setenv("LLM_BASE_URL", "http://real:5678/v1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "apify_api_real", cfg.APIToken)
	assert.Equal(t, "http://real:5678/v1", cfg.LLMBaseURL)
}

func TestInputNormalize(t *testing.T) {
	in := &Input{}
	err := in.Normalize()
	require.Error(t, err)
	assert.True(t, inspectorerrors.IsConfig(err))

	in = &Input{ActorName: "acme/foo"}
	require.NoError(t, in.Normalize())
	assert.True(t, *in.Pedantic)
	assert.True(t, *in.Debug)
	assert.Equal(t, DefaultModel, in.ModelName)

	f := false
	in = &Input{ActorName: "acme/foo", Pedantic: &f, ModelName: "gpt-4o"}
	require.NoError(t, in.Normalize())
	assert.False(t, *in.Pedantic)
	assert.Equal(t, "gpt-4o", in.ModelName)
}
