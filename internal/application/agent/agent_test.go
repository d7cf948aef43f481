package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/application/envelope"
	"hotelops/internal/infrastructure/llm"
	"hotelops/internal/shared/config"
	"hotelops/internal/shared/logger"
)

type mockCompleter struct {
	CompleteFunc func(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error)
	requests     []llm.ChatRequest
}

func (m *mockCompleter) Complete(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.requests = append(m.requests, req)
	return m.CompleteFunc(ctx, req)
}

type mockToolRunner struct {
	DispatchFunc func(ctx context.Context, name ToolName, args json.RawMessage) *envelope.Envelope
	calls        []ToolName
}

func (m *mockToolRunner) Dispatch(ctx context.Context, name ToolName, args json.RawMessage) *envelope.Envelope {
	m.calls = append(m.calls, name)
	return m.DispatchFunc(ctx, name, args)
}

// scripted replays one assistant message per completion request.
func scripted(turns ...llm.Message) *mockCompleter {
	i := 0
	return &mockCompleter{CompleteFunc: func(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
		if i >= len(turns) {
			return nil, fmt.Errorf("unexpected completion request %d", i+1)
		}
		msg := turns[i]
		i++
		return &llm.ChatResponse{Choices: []llm.Choice{{Message: msg}}}, nil
	}}
}

func toolTurn(name ToolName, args string) llm.Message {
	return llm.Message{
		Role: llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{{
			ID:       "call_" + string(name),
			Type:     "function",
			Function: llm.FunctionCall{Name: string(name), Arguments: args},
		}},
	}
}

func answer(content string) llm.Message {
	return llm.Message{Role: llm.RoleAssistant, Content: content}
}

func newAgent(t *testing.T, c Completer, r ToolRunner, maxIterations int) *Agent {
	t.Helper()
	a, err := New(c, r, &config.AgentConfig{MaxIterations: maxIterations}, logger.Nop())
	require.NoError(t, err)
	return a
}

func roomsResult() *envelope.Envelope {
	return envelope.Read("room", []map[string]any{{"room_number": "101"}}, "Found 1 rooms matching criteria.")
}

func TestAgentRun_KeepsToolDataAndTakesModelMessage(t *testing.T) {
	completer := scripted(
		toolTurn(ToolReadRooms, `{"conditions":{"floor":1}}`),
		answer("```json\n{\"type\":\"read_results\",\"entity_type\":\"room\",\"data\":[],\"message\":\"Here is room 101.\\nAnything else?\"}\n```"),
	)
	runner := &mockToolRunner{DispatchFunc: func(ctx context.Context, name ToolName, args json.RawMessage) *envelope.Envelope {
		assert.JSONEq(t, `{"conditions":{"floor":1}}`, string(args))
		return roomsResult()
	}}

	got := newAgent(t, completer, runner, 0).Run(context.Background(), "rooms on floor 1")

	require.Equal(t, envelope.TypeReadResults, got.Type)
	assert.Equal(t, "Here is room 101.\nAnything else?", got.Message)
	assert.Equal(t, roomsResult().Data, got.Data)
	assert.Equal(t, []ToolName{ToolReadRooms}, runner.calls)

	require.Len(t, completer.requests, 2)
	first := completer.requests[0]
	assert.Len(t, first.Tools, len(Tools()))
	assert.Equal(t, llm.RoleSystem, first.Messages[0].Role)
	assert.Equal(t, "rooms on floor 1", first.Messages[1].Content)

	second := completer.requests[1].Messages
	require.Len(t, second, 4)
	assert.Equal(t, llm.RoleTool, second[3].Role)
	assert.Equal(t, "call_read_rooms", second[3].ToolCallID)
	assert.Contains(t, second[3].Content, `"type":"read_results"`)
}

func TestAgentRun_TerminalToolResultPassesThrough(t *testing.T) {
	completer := scripted(
		toolTurn(ToolListTicketsForUser, `{"user_name":"john"}`),
		answer("I found several Johns, which one do you mean?"),
	)
	clarify := envelope.Clarify("Multiple users found for 'john': 'John Smith' (ID: 2), 'John Doe' (ID: 3). Please specify.")
	runner := &mockToolRunner{DispatchFunc: func(ctx context.Context, name ToolName, args json.RawMessage) *envelope.Envelope {
		return clarify
	}}

	got := newAgent(t, completer, runner, 0).Run(context.Background(), "tickets for john")
	assert.Equal(t, clarify, got)
}

func TestAgentRun_PlainAnswerWithoutTools(t *testing.T) {
	completer := scripted(answer("Which room number are you referring to?"))
	runner := &mockToolRunner{}

	got := newAgent(t, completer, runner, 0).Run(context.Background(), "check the room")
	assert.Equal(t, envelope.TypeMessage, got.Type)
	assert.Equal(t, "Which room number are you referring to?", got.Message)
	assert.Empty(t, runner.calls)
}

func TestAgentRun_CompletionFailure(t *testing.T) {
	completer := &mockCompleter{CompleteFunc: func(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
		return nil, &llm.Error{Status: 503, Message: "overloaded"}
	}}

	got := newAgent(t, completer, &mockToolRunner{}, 0).Run(context.Background(), "rooms")
	assert.Equal(t, envelope.TypeError, got.Type)
	assert.Contains(t, got.Message, "An unexpected error occurred")
}

func TestAgentRun_IterationLimit(t *testing.T) {
	loop := &mockCompleter{CompleteFunc: func(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
		return &llm.ChatResponse{Choices: []llm.Choice{{Message: toolTurn(ToolSearchTicketsByDescription, `{"description":"ac"}`)}}}, nil
	}}
	stop := envelope.Stop("No tickets found matching description 'ac'. Please try a different search term.")
	runner := &mockToolRunner{DispatchFunc: func(ctx context.Context, name ToolName, args json.RawMessage) *envelope.Envelope {
		return stop
	}}

	got := newAgent(t, loop, runner, 3).Run(context.Background(), "any AC issues?")
	assert.Equal(t, stop, got)
	assert.Len(t, loop.requests, 3)
	assert.Len(t, runner.calls, 3)
}

func TestAgentRun_EmptyQuery(t *testing.T) {
	got := newAgent(t, &mockCompleter{}, &mockToolRunner{}, 0).Run(context.Background(), "   ")
	assert.Equal(t, envelope.TypeError, got.Type)
}

func TestFinalize(t *testing.T) {
	confirm := &envelope.Envelope{
		Type:       envelope.TypeConfirmationRequired,
		Action:     envelope.ActionDelete,
		EntityType: "room",
		EntityID:   4,
		Message:    "Confirm DELETE Room 101?",
	}
	tests := []struct {
		name   string
		answer string
		last   *envelope.Envelope
		want   *envelope.Envelope
	}{
		{
			name:   "no tool result normalizes the answer",
			answer: `[{"room":{"room_number":"101"}}]`,
			want: &envelope.Envelope{
				Type:       envelope.TypeBatchReadResults,
				EntityType: "room",
				Data:       []map[string]any{{"room": map[string]any{"room_number": "101"}}},
				Message:    "Found details for 1 items.",
			},
		},
		{
			name:   "confirmation keeps staged fields",
			answer: `{"type":"confirmation_required","action":"delete","entity_id":99,"message":"Delete room 101 for good?"}`,
			last:   confirm,
			want: &envelope.Envelope{
				Type:       envelope.TypeConfirmationRequired,
				Action:     envelope.ActionDelete,
				EntityType: "room",
				EntityID:   4,
				Message:    "Delete room 101 for good?",
			},
		},
		{
			name:   "different envelope type wins",
			answer: `{"type":"error","message":"Nope."}`,
			last:   confirm,
			want:   envelope.Error("Nope."),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, finalize(tt.answer, tt.last))
		})
	}
}

func TestSession(t *testing.T) {
	a := NewSession("system prompt")
	b := NewSession("system prompt")
	assert.NotEqual(t, a.ID, b.ID)

	a.AddUser("hello")
	a.AddToolResult(llm.ToolCall{ID: "c1", Function: llm.FunctionCall{Name: "read_user_names"}}, envelope.Stop("No users found in the system."))
	msgs := a.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "read_user_names", msgs[2].Name)
	assert.JSONEq(t, `{"type":"message","message":"STOP: No users found in the system."}`, msgs[2].Content)

	msgs[0].Content = "mutated"
	assert.Equal(t, "system prompt", a.Messages()[0].Content)
	assert.Equal(t, 1, b.Len())
}

func TestLoadCatalogue(t *testing.T) {
	c, err := LoadCatalogue()
	require.NoError(t, err)
	assert.NotEmpty(t, c.System)
	require.Len(t, c.Tools, len(Tools()))

	for _, tool := range c.Tools {
		assert.Equal(t, "function", tool.Type)
		assert.True(t, ToolName(tool.Function.Name).IsValid())
		var schema map[string]any
		require.NoError(t, json.Unmarshal(tool.Function.Parameters, &schema), tool.Function.Name)
		assert.Equal(t, "object", schema["type"])
	}
}

func TestParseCatalogue_RejectsIncompleteFiles(t *testing.T) {
	_, err := parseCatalogue([]byte("system: hi\ntools:\n  - name: read_rooms\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing tool")

	_, err = parseCatalogue([]byte("system: hi\ntools:\n  - name: drop_tables\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}
