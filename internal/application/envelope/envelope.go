// Package envelope defines the closed set of response shapes every
// agent-facing operation returns. Callers branch on Type alone.
package envelope

import (
	"encoding/json"
	"fmt"
	"strings"

	"hotelops/internal/shared/errors"
)

type Type string

const (
	TypeReadResults          Type = "read_results"
	TypeSearchResults        Type = "search_results"
	TypeSummaryResults       Type = "summary_results"
	TypeBatchReadResults     Type = "batch_read_results"
	TypeConfirmationRequired Type = "confirmation_required"
	TypeMessage              Type = "message"
	TypeClarificationNeeded  Type = "clarification_needed"
	TypeError                Type = "error"
)

var allTypes = []Type{
	TypeReadResults, TypeSearchResults, TypeSummaryResults, TypeBatchReadResults,
	TypeConfirmationRequired, TypeMessage, TypeClarificationNeeded, TypeError,
}

func (t Type) IsValid() bool {
	for _, v := range allTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Actions staged by confirmation_required envelopes.
const (
	ActionCreate      = "create"
	ActionUpdate      = "update"
	ActionDelete      = "delete"
	ActionBatchUpdate = "batch_update"
)

// Entity types that are not one of the three collections.
const (
	EntityRoomWithTickets = "room_with_tickets"
	EntityRoomIssues      = "room_issues"
	EntityUserWorkload    = "user_workload"
	EntityUserSummary     = "user_summary"
	EntityUnknown         = "unknown"
)

// StopPrefix marks a terminal message the caller should not retry.
const StopPrefix = "STOP:"

// Envelope is the tagged response. Only Type is always present.
type Envelope struct {
	Type          Type           `json:"type"`
	Action        string         `json:"action,omitempty"`
	EntityType    string         `json:"entity_type,omitempty"`
	EntityID      uint           `json:"entity_id,omitempty"`
	EntityIDs     []uint         `json:"entity_ids,omitempty"`
	OriginalData  any            `json:"original_data,omitempty"`
	ProposedData  any            `json:"proposed_data,omitempty"`
	UpdatePayload map[string]any `json:"update_payload,omitempty"`
	Data          any            `json:"data,omitempty"`
	Message       string         `json:"message,omitempty"`
}

// IsStop reports whether e is a terminal no-result message.
func (e *Envelope) IsStop() bool {
	return e.Type == TypeMessage && strings.HasPrefix(e.Message, StopPrefix)
}

// IsTerminal reports whether the envelope must reach the caller verbatim:
// errors, clarifications and STOP messages.
func (e *Envelope) IsTerminal() bool {
	return e.Type == TypeError || e.Type == TypeClarificationNeeded || e.IsStop()
}

func Read(entityType string, data any, message string) *Envelope {
	return &Envelope{Type: TypeReadResults, EntityType: entityType, Data: data, Message: message}
}

func Search(entityType string, data any, message string) *Envelope {
	return &Envelope{Type: TypeSearchResults, EntityType: entityType, Data: data, Message: message}
}

func Summary(entityType string, data any, message string) *Envelope {
	return &Envelope{Type: TypeSummaryResults, EntityType: entityType, Data: data, Message: message}
}

func BatchRead(entityType string, data any, message string) *Envelope {
	return &Envelope{Type: TypeBatchReadResults, EntityType: entityType, Data: data, Message: message}
}

func Message(format string, args ...any) *Envelope {
	return &Envelope{Type: TypeMessage, Message: fmt.Sprintf(format, args...)}
}

// Stop is a message prefixed with StopPrefix.
func Stop(format string, args ...any) *Envelope {
	return &Envelope{Type: TypeMessage, Message: StopPrefix + " " + fmt.Sprintf(format, args...)}
}

func Clarify(format string, args ...any) *Envelope {
	return &Envelope{Type: TypeClarificationNeeded, Message: fmt.Sprintf(format, args...)}
}

func Error(format string, args ...any) *Envelope {
	return &Envelope{Type: TypeError, Message: fmt.Sprintf(format, args...)}
}

// FromError renders err. Ambiguous input asks for clarification; any other
// AppError keeps its message. Unknown errors are reported with prefix.
func FromError(err error, prefix string) *Envelope {
	if appErr := errors.GetAppError(err); appErr != nil {
		if appErr.Type == errors.ErrorTypeAmbiguous {
			return &Envelope{Type: TypeClarificationNeeded, Message: appErr.Message}
		}
		return &Envelope{Type: TypeError, Message: appErr.Message}
	}
	if prefix == "" {
		return &Envelope{Type: TypeError, Message: err.Error()}
	}
	return &Envelope{Type: TypeError, Message: fmt.Sprintf("%s: %s", prefix, err)}
}

// Normalize turns free agent output into an envelope. A JSON object whose
// type is in the closed set is kept as is, a JSON list is wrapped as
// batch_read_results, and anything else becomes a message.
func Normalize(output string) *Envelope {
	text := strings.TrimSpace(stripFence(output))

	var list []map[string]any
	if strings.HasPrefix(text, "[") && json.Unmarshal([]byte(text), &list) == nil {
		return &Envelope{
			Type:       TypeBatchReadResults,
			EntityType: guessEntityType(list),
			Data:       list,
			Message:    fmt.Sprintf("Found details for %d items.", len(list)),
		}
	}

	var env Envelope
	if strings.HasPrefix(text, "{") && json.Unmarshal([]byte(text), &env) == nil && env.Type.IsValid() {
		return &env
	}
	return &Envelope{Type: TypeMessage, Message: strings.TrimSpace(output)}
}

func guessEntityType(list []map[string]any) string {
	if len(list) == 0 {
		return EntityUnknown
	}
	first := list[0]
	if et, _ := first["entity_type"].(string); et == EntityRoomWithTickets {
		return et
	}
	for _, key := range []string{"room", "ticket", "user"} {
		if _, ok := first[key]; ok {
			return key
		}
	}
	if et, _ := first["entity_type"].(string); et != "" {
		return et
	}
	return EntityUnknown
}

// stripFence removes a surrounding ``` or ```json code fence.
func stripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return s
	}
	t = strings.TrimSuffix(strings.TrimPrefix(t, "```"), "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 && !strings.ContainsAny(t[:nl], "{[") {
		t = t[nl+1:]
	}
	return t
}
