package uithub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector/internal/config"
	"inspector/internal/logging"
)

func TestRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/foo", r.URL.Path)
		assert.Equal(t, "120000", r.URL.Query().Get("maxTokens"))
		_, _ = w.Write([]byte(`{
			"tree": {"src": {"main.py": null}},
			"files": {
				"src/main.py": {"content": "print('hi')", "type": "content"},
				"logo.png": {"content": "", "type": "binary"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(&config.Config{RendererBaseURL: srv.URL, Timeout: 5 * time.Second}, logging.Nop())
	doc, err := client.Render(context.Background(), "acme/foo", 120000)
	require.NoError(t, err)
	assert.Equal(t, "content", doc.Files["src/main.py"].Type)
	assert.Equal(t, "binary", doc.Files["logo.png"].Type)
	assert.NotEmpty(t, doc.Tree)
}

func TestRenderUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(&config.Config{RendererBaseURL: srv.URL, Timeout: 5 * time.Second}, logging.Nop())
	_, err := client.Render(context.Background(), "acme/foo", 1000)
	require.Error(t, err)
}

func TestRepoPath(t *testing.T) {
	cases := map[string]string{
		"https://github.com/acme/foo":     "acme/foo",
		"https://github.com/acme/foo.git": "acme/foo",
		"git@github.com:acme/foo.git":     "git@github.com:acme/foo",
		"acme/foo":                        "acme/foo",
	}
	for in, want := range cases {
		assert.Equal(t, want, RepoPath(in), in)
	}
}
