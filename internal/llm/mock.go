package llm

import (
	"context"
	"fmt"
	"sync"

	"inspector/internal/review/ports"
)

// MockClient replays scripted responses in order. Used by engine and pipeline
// tests.
type MockClient struct {
	mu        sync.Mutex
	responses []*ports.CompletionResponse
	requests  []ports.CompletionRequest
	modelName string
}

// NewMockClient builds a client that returns the given responses one per
// Complete call.
func NewMockClient(responses ...*ports.CompletionResponse) *MockClient {
	return &MockClient{responses: responses, modelName: "mock-model"}
}

func (m *MockClient) Model() string { return m.modelName }

func (m *MockClient) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock client: no scripted response for call %d", len(m.requests))
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

// Requests returns the completion requests seen so far.
func (m *MockClient) Requests() []ports.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
