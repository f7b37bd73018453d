// Package llm implements the OpenAI-compatible chat completions client used
// for every role invocation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	inspectorerrors "inspector/internal/errors"
	"inspector/internal/httpclient"
	"inspector/internal/logging"
	"inspector/internal/review/ports"
)

const maxResponseBytes = 8 << 20

// Config holds the LLM endpoint configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type openaiClient struct {
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewOpenAIClient constructs an LLM client that speaks the OpenAI-compatible
// chat completions API.
func NewOpenAIClient(model string, config Config, logger logging.Logger) ports.LLMClient {
	logger = logging.OrNop(logger)
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &openaiClient{
		model:      model,
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpclient.New(timeout, logger),
		logger:     logger,
	}
}

func (c *openaiClient) Model() string { return c.model }

func (c *openaiClient) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	oaiReq := map[string]any{
		"model":    c.model,
		"messages": c.convertMessages(req.Messages),
		"stream":   false,
	}
	if req.Temperature > 0 {
		oaiReq["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		oaiReq["max_tokens"] = req.MaxTokens
	}
	if len(req.Tools) > 0 {
		oaiReq["tools"] = convertTools(req.Tools)
		oaiReq["tool_choice"] = "auto"
	}

	body, err := json.Marshal(oaiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	c.logger.Debug("POST %s model=%s messages=%d tools=%d", endpoint, c.model, len(req.Messages), len(req.Tools))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, inspectorerrors.NewTransport("llm completion", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, inspectorerrors.NewTransport("llm completion", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := httpclient.ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, inspectorerrors.NewTransport("llm completion", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, inspectorerrors.NewTransport("llm completion", resp.StatusCode,
			fmt.Errorf("%s", strings.TrimSpace(string(respBody))))
	}

	var oaiResp struct {
		Choices []struct {
			Message struct {
				Content   string `json:"content"`
				ToolCalls []struct {
					ID       string `json:"id"`
					Function struct {
						Name      string `json:"name"`
						Arguments string `json:"arguments"`
					} `json:"function"`
				} `json:"tool_calls"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respBody, &oaiResp); err != nil {
		return nil, inspectorerrors.NewTransport("llm completion", resp.StatusCode,
			fmt.Errorf("decode response: %w", err))
	}
	if len(oaiResp.Choices) == 0 {
		return nil, inspectorerrors.NewTransport("llm completion", resp.StatusCode,
			fmt.Errorf("no choices in response"))
	}

	choice := oaiResp.Choices[0]
	result := &ports.CompletionResponse{
		Content:    choice.Message.Content,
		StopReason: choice.FinishReason,
		Usage: ports.TokenUsage{
			PromptTokens:     oaiResp.Usage.PromptTokens,
			CompletionTokens: oaiResp.Usage.CompletionTokens,
			TotalTokens:      oaiResp.Usage.TotalTokens,
		},
	}

	for _, tc := range choice.Message.ToolCalls {
		args, err := parseToolArguments(tc.Function.Arguments)
		if err != nil {
			c.logger.Warn("dropping tool call %s with unparseable arguments: %v", tc.Function.Name, err)
			continue
		}
		result.ToolCalls = append(result.ToolCalls, ports.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	c.logger.Debug("completion: stop=%s content=%d chars toolCalls=%d usage=%d tokens",
		result.StopReason, len(result.Content), len(result.ToolCalls), result.Usage.TotalTokens)
	return result, nil
}

// parseToolArguments decodes tool-call argument JSON, repairing malformed
// payloads the model occasionally emits.
func parseToolArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		return args, nil
	}
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, fmt.Errorf("repair arguments: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &args); err != nil {
		return nil, fmt.Errorf("parse repaired arguments: %w", err)
	}
	return args, nil
}

func (c *openaiClient) convertMessages(messages []ports.Message) []map[string]any {
	converted := make([]map[string]any, 0, len(messages))
	for _, msg := range messages {
		entry := map[string]any{"role": msg.Role, "content": msg.Content}
		if msg.ToolCallID != "" {
			entry["tool_call_id"] = msg.ToolCallID
		}
		if len(msg.ToolCalls) > 0 {
			calls := make([]map[string]any, 0, len(msg.ToolCalls))
			for _, tc := range msg.ToolCalls {
				argJSON, err := json.Marshal(tc.Arguments)
				if err != nil {
					argJSON = []byte("{}")
				}
				calls = append(calls, map[string]any{
					"id":   tc.ID,
					"type": "function",
					"function": map[string]any{
						"name":      tc.Name,
						"arguments": string(argJSON),
					},
				})
			}
			entry["tool_calls"] = calls
		}
		converted = append(converted, entry)
	}
	return converted
}

func convertTools(tools []ports.ToolDefinition) []map[string]any {
	converted := make([]map[string]any, 0, len(tools))
	for _, tool := range tools {
		converted = append(converted, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        tool.Name,
				"description": tool.Description,
				"parameters":  tool.Parameters,
			},
		})
	}
	return converted
}
