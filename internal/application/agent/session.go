package agent

import (
	"encoding/json"

	"github.com/google/uuid"

	"hotelops/internal/application/envelope"
	"hotelops/internal/infrastructure/llm"
)

// Session is the conversation buffer of one query. It lives for a single
// Run and is never shared.
type Session struct {
	ID       string
	messages []llm.Message
}

func NewSession(system string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		messages: []llm.Message{{Role: llm.RoleSystem, Content: system}},
	}
}

func (s *Session) AddUser(content string) {
	s.messages = append(s.messages, llm.Message{Role: llm.RoleUser, Content: content})
}

// AddAssistant records a model turn, including any tool calls it requested.
func (s *Session) AddAssistant(msg llm.Message) {
	msg.Role = llm.RoleAssistant
	s.messages = append(s.messages, msg)
}

// AddToolResult answers call with the JSON form of env.
func (s *Session) AddToolResult(call llm.ToolCall, env *envelope.Envelope) {
	content, err := json.Marshal(env)
	if err != nil {
		content, _ = json.Marshal(envelope.Error("Failed to encode tool result: %v", err))
	}
	s.messages = append(s.messages, llm.Message{
		Role:       llm.RoleTool,
		Content:    string(content),
		ToolCallID: call.ID,
		Name:       call.Function.Name,
	})
}

// Messages returns a copy of the buffer.
func (s *Session) Messages() []llm.Message {
	return append([]llm.Message(nil), s.messages...)
}

func (s *Session) Len() int {
	return len(s.messages)
}
