package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inspectorerrors "inspector/internal/errors"
	"inspector/internal/logging"
	"inspector/internal/review/ports"
)

func newTestClient(url string) ports.LLMClient {
	return NewOpenAIClient("test-model", Config{
		BaseURL: url,
		APIKey:  "key",
		Timeout: 5 * time.Second,
	}, logging.Nop())
}

func TestCompleteParsesContentAndUsage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])
		assert.Equal(t, false, req["stream"])

		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "hello"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Complete(context.Background(), ports.CompletionRequest{
		Messages: []ports.Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, "stop", resp.StopReason)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestCompleteSendsToolsWithAutoChoice(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), ports.CompletionRequest{
		Messages: []ports.Message{{Role: "user", Content: "hi"}},
		Tools: []ports.ToolDefinition{{
			Name:        "get_actor_readme",
			Description: "fetch the readme",
			Parameters:  ports.ParameterSchema{Type: "object", Properties: map[string]ports.Property{}},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "auto", captured["tool_choice"])
	tools, ok := captured["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	fn := tools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "get_actor_readme", fn["name"])
}

func TestCompleteParsesToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {
					"content": "",
					"tool_calls": [{
						"id": "call-1",
						"function": {"name": "get_actor_readme", "arguments": "{\"actor_name\": \"acme/foo\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Complete(context.Background(), ports.CompletionRequest{
		Messages: []ports.Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call-1", resp.ToolCalls[0].ID)
	assert.Equal(t, "get_actor_readme", resp.ToolCalls[0].Name)
	assert.Equal(t, "acme/foo", resp.ToolCalls[0].Arguments["actor_name"])
}

func TestCompleteErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), ports.CompletionRequest{
		Messages: []ports.Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	var transportErr *inspectorerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
}

func TestParseToolArgumentsRepairsMalformedJSON(t *testing.T) {
	args, err := parseToolArguments(`{"actor_name": "acme/foo",}`)
	require.NoError(t, err)
	assert.Equal(t, "acme/foo", args["actor_name"])

	args, err = parseToolArguments(`{'actor_name': 'acme/foo'}`)
	require.NoError(t, err)
	assert.Equal(t, "acme/foo", args["actor_name"])

	args, err = parseToolArguments("")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestConvertMessagesRoundTripsToolTraffic(t *testing.T) {
	client := &openaiClient{}
	converted := client.convertMessages([]ports.Message{
		{Role: "assistant", ToolCalls: []ports.ToolCall{{
			ID: "call-1", Name: "get_actor_pricing_information",
			Arguments: map[string]any{"actor_name": "acme/foo"},
		}}},
		{Role: "tool", Content: "result", ToolCallID: "call-1"},
	})
	require.Len(t, converted, 2)

	calls := converted[0]["tool_calls"].([]map[string]any)
	require.Len(t, calls, 1)
	fn := calls[0]["function"].(map[string]any)
	assert.Equal(t, "get_actor_pricing_information", fn["name"])
	assert.JSONEq(t, `{"actor_name": "acme/foo"}`, fn["arguments"].(string))

	assert.Equal(t, "call-1", converted[1]["tool_call_id"])
}
