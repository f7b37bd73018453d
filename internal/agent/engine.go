package agent

import (
	"context"
	"fmt"

	"inspector/internal/logging"
	"inspector/internal/review/ports"
	"inspector/internal/tools"
)

// maxTurns bounds the completion/tool-call loop of a single task.
const maxTurns = 12

// TaskResult is the outcome of one task run.
type TaskResult struct {
	Report string
	Usage  ports.TokenUsage
}

// Engine drives a single role through its task: complete, execute any tool
// calls against the role's registry, feed results back, repeat until the
// model stops calling tools.
type Engine struct {
	llm    ports.LLMClient
	logger logging.Logger
}

// NewEngine builds an engine over the given LLM client.
func NewEngine(llm ports.LLMClient, logger logging.Logger) *Engine {
	return &Engine{llm: llm, logger: logging.OrNop(logger)}
}

// Run executes the task with the role's bounded tool set. Tool execution
// failures are folded into the conversation as error content so the model
// can recover or degrade; only transport-level completion failures abort.
func (e *Engine) Run(ctx context.Context, task Task, registry *tools.Registry) (*TaskResult, error) {
	messages := []ports.Message{
		{Role: "system", Content: systemPrompt(task.Role)},
		{Role: "user", Content: task.Description + "\n\nExpected output:\n" + task.ExpectedOutput},
	}

	var definitions []ports.ToolDefinition
	if registry != nil {
		definitions = registry.Definitions()
	}

	result := &TaskResult{}
	for turn := 0; turn < maxTurns; turn++ {
		resp, err := e.llm.Complete(ctx, ports.CompletionRequest{
			Messages: messages,
			Tools:    definitions,
		})
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Role.Key, err)
		}
		result.Usage.Add(resp.Usage)

		if len(resp.ToolCalls) == 0 {
			result.Report = resp.Content
			e.logger.Debug("task %s finished after %d turns, %d tokens",
				task.Role.Key, turn+1, result.Usage.TotalTokens)
			return result, nil
		}

		messages = append(messages, ports.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			messages = append(messages, e.executeCall(ctx, task, registry, call))
		}
	}
	return nil, fmt.Errorf("task %s: no final answer after %d turns", task.Role.Key, maxTurns)
}

func (e *Engine) executeCall(ctx context.Context, task Task, registry *tools.Registry, call ports.ToolCall) ports.Message {
	toolMsg := func(content string) ports.Message {
		return ports.Message{Role: "tool", Content: content, ToolCallID: call.ID}
	}

	if registry == nil {
		return toolMsg(fmt.Sprintf("Tool %q is not available for this task.", call.Name))
	}
	tool, err := registry.Get(call.Name)
	if err != nil {
		e.logger.Warn("task %s requested unknown tool %s", task.Role.Key, call.Name)
		return toolMsg(fmt.Sprintf("Tool %q is not available for this task.", call.Name))
	}

	e.logger.Debug("task %s calling tool %s", task.Role.Key, call.Name)
	result, err := tool.Execute(ctx, call)
	if err != nil {
		e.logger.Warn("task %s tool %s failed: %v", task.Role.Key, call.Name, err)
		return toolMsg(fmt.Sprintf("Tool %q failed: %v", call.Name, err))
	}
	return toolMsg(result.Content)
}

func systemPrompt(role Role) string {
	return fmt.Sprintf("You are a %s.\n\nGoal: %s\n\nBackground: %s", role.Title, role.Goal, role.Backstory)
}
