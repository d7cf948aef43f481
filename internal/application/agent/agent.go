// Package agent answers free-text requests by letting a tool-calling model
// drive the fixed tool catalogue. Every answer is one envelope.
package agent

import (
	"context"
	"encoding/json"
	"strings"

	"hotelops/internal/application/envelope"
	"hotelops/internal/infrastructure/llm"
	"hotelops/internal/shared/config"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils/logutil"
)

const (
	defaultMaxIterations = 8
	toolChoiceAuto       = "auto"
)

// Completer sends one chat completion request.
type Completer interface {
	Complete(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error)
}

// ToolRunner executes a catalogue tool.
type ToolRunner interface {
	Dispatch(ctx context.Context, name ToolName, args json.RawMessage) *envelope.Envelope
}

type Agent struct {
	llm           Completer
	tools         ToolRunner
	catalogue     *Catalogue
	maxIterations int
	logger        logger.Interface
}

func New(completer Completer, tools ToolRunner, cfg *config.AgentConfig, log logger.Interface) (*Agent, error) {
	catalogue, err := LoadCatalogue()
	if err != nil {
		return nil, err
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	return &Agent{
		llm:           completer,
		tools:         tools,
		catalogue:     catalogue,
		maxIterations: maxIterations,
		logger:        log.Named("agent"),
	}, nil
}

// Run answers q. Model or transport failures become an error envelope.
func (a *Agent) Run(ctx context.Context, q string) *envelope.Envelope {
	q = strings.TrimSpace(q)
	if q == "" {
		return envelope.Error("Query must not be empty.")
	}

	session := NewSession(a.catalogue.System)
	session.AddUser(q)
	log := a.logger.With("session_id", session.ID)

	var last *envelope.Envelope
	for i := 0; i < a.maxIterations; i++ {
		resp, err := a.llm.Complete(ctx, llm.ChatRequest{
			Messages:   session.Messages(),
			Tools:      a.catalogue.Tools,
			ToolChoice: toolChoiceAuto,
		})
		if err != nil {
			log.Errorw("chat completion failed", "iteration", i, "error", err)
			return envelope.Error("An unexpected error occurred: %v", err)
		}
		if len(resp.Choices) == 0 {
			log.Errorw("chat completion returned no choices", "iteration", i)
			return envelope.Error("An unexpected error occurred: the model returned no answer.")
		}

		msg := resp.Choices[0].Message
		session.AddAssistant(msg)
		if len(msg.ToolCalls) == 0 {
			log.Infow("agent answered",
				"iterations", i+1,
				"tool_result", last != nil,
				"answer", logutil.TruncateForLog(msg.Content, logutil.DefaultMaxLen))
			return finalize(msg.Content, last)
		}

		for _, call := range msg.ToolCalls {
			name := ToolName(call.Function.Name)
			log.Debugw("running tool", "tool", name, "arguments", logutil.TruncateForLog(call.Function.Arguments, logutil.DefaultMaxLen))
			last = a.tools.Dispatch(ctx, name, json.RawMessage(call.Function.Arguments))
			session.AddToolResult(call, last)
		}
	}

	log.Warnw("agent hit iteration limit", "max_iterations", a.maxIterations)
	if last != nil {
		return last
	}
	return envelope.Error("The assistant could not complete the request within %d steps.", a.maxIterations)
}

// finalize picks the envelope returned for the model's closing answer.
// Terminal tool results pass through verbatim. When the model echoes the
// last tool result, or answers in prose after a data result, the tool's own
// envelope is kept and only its message is taken from the answer.
func finalize(answer string, last *envelope.Envelope) *envelope.Envelope {
	out := envelope.Normalize(answer)
	if last == nil {
		return out
	}
	if last.IsTerminal() {
		return last
	}
	if out.Type == last.Type || out.Type == envelope.TypeMessage {
		kept := *last
		if msg := strings.TrimSpace(out.Message); msg != "" {
			kept.Message = msg
		}
		return &kept
	}
	return out
}
