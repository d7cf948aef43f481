package agent

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToolName identifies one entry of the tool catalogue.
type ToolName string

const (
	ToolVerifyRoomAndTickets          ToolName = "verify_room_and_tickets"
	ToolVerifyMultipleRoomsAndTickets ToolName = "verify_multiple_rooms_and_tickets"
	ToolReadRooms                     ToolName = "read_rooms"
	ToolReadTickets                   ToolName = "read_tickets"
	ToolReadUsers                     ToolName = "read_users"
	ToolSearchTicketsByDescription    ToolName = "search_tickets_by_description"
	ToolListRoomsByStatus             ToolName = "list_rooms_by_status"
	ToolFindUsersByWorkload           ToolName = "find_users_by_workload"
	ToolSummarizeRoomsWithActive      ToolName = "summarize_rooms_with_active_tickets"
	ToolSummarizeUserWorkloads        ToolName = "summarize_all_user_workloads"
	ToolListTicketsByStatus           ToolName = "list_tickets_by_status"
	ToolListTicketsForUser            ToolName = "list_tickets_for_user"
	ToolReadUserNames                 ToolName = "read_user_names"
	ToolGetTicketByID                 ToolName = "get_ticket_by_id"

	ToolPrepareCreateRoom   ToolName = "prepare_create_room"
	ToolPrepareCreateTicket ToolName = "prepare_create_ticket"
	ToolPrepareCreateUser   ToolName = "prepare_create_user"
	ToolPrepareUpdateRoom   ToolName = "prepare_update_room"
	ToolPrepareUpdateTicket ToolName = "prepare_update_ticket"
	ToolPrepareUpdateUser   ToolName = "prepare_update_user"
	ToolPrepareDeleteRoom   ToolName = "prepare_delete_room"
	ToolPrepareDeleteTicket ToolName = "prepare_delete_ticket"
	ToolPrepareDeleteUser   ToolName = "prepare_delete_user"

	ToolPrepareBatchUpdateRooms   ToolName = "prepare_batch_update_rooms"
	ToolPrepareBatchUpdateTickets ToolName = "prepare_batch_update_tickets"
	ToolPrepareBatchUpdateUsers   ToolName = "prepare_batch_update_users"
)

var allTools = []ToolName{
	ToolVerifyRoomAndTickets, ToolVerifyMultipleRoomsAndTickets,
	ToolReadRooms, ToolReadTickets, ToolReadUsers,
	ToolSearchTicketsByDescription, ToolListRoomsByStatus, ToolFindUsersByWorkload,
	ToolSummarizeRoomsWithActive, ToolSummarizeUserWorkloads,
	ToolListTicketsByStatus, ToolListTicketsForUser,
	ToolReadUserNames, ToolGetTicketByID,
	ToolPrepareCreateRoom, ToolPrepareCreateTicket, ToolPrepareCreateUser,
	ToolPrepareUpdateRoom, ToolPrepareUpdateTicket, ToolPrepareUpdateUser,
	ToolPrepareDeleteRoom, ToolPrepareDeleteTicket, ToolPrepareDeleteUser,
	ToolPrepareBatchUpdateRooms, ToolPrepareBatchUpdateTickets, ToolPrepareBatchUpdateUsers,
}

func (n ToolName) IsValid() bool {
	for _, t := range allTools {
		if t == n {
			return true
		}
	}
	return false
}

// Tools lists the full catalogue in declaration order.
func Tools() []ToolName {
	return append([]ToolName(nil), allTools...)
}

// ReadArgs drives read_rooms, read_tickets and read_users.
// TicketCountConstraint is only honoured by read_rooms.
type ReadArgs struct {
	Conditions            map[string]any `json:"conditions"`
	TimeConstraint        string         `json:"time_constraint"`
	CreditConstraint      string         `json:"credit_constraint"`
	TicketCountConstraint string         `json:"ticket_count_constraint"`
}

type VerifyRoomArgs struct {
	RoomNumber     string `json:"room_number"`
	TimeConstraint string `json:"time_constraint"`
}

type VerifyRoomsArgs struct {
	RoomNumbers TargetList `json:"room_numbers"`
}

type SearchArgs struct {
	Description string `json:"description"`
}

type StatusArgs struct {
	Status string `json:"status"`
}

type WorkloadArgs struct {
	HasActiveTickets bool `json:"has_active_tickets"`
}

type UserNameArgs struct {
	UserName string `json:"user_name"`
}

type TicketIDArgs struct {
	TicketID FlexInt `json:"ticket_id"`
}

// CreateArgs carries the proposed entity. A {"data": {...}} wrapper is
// unwrapped before staging.
type CreateArgs struct {
	Data json.RawMessage `json:"data"`
}

// UpdateArgs locates the target through Conditions ("id", or the natural key
// room_number / email) and carries the partial update in Data.
type UpdateArgs struct {
	Conditions map[string]any  `json:"conditions"`
	Data       json.RawMessage `json:"data"`
}

type DeleteArgs struct {
	Conditions map[string]any `json:"conditions"`
}

type BatchRoomsArgs struct {
	RoomNumbers TargetList      `json:"room_numbers"`
	Data        json.RawMessage `json:"data"`
}

type BatchTicketsArgs struct {
	TicketIDs TargetList      `json:"ticket_ids"`
	Data      json.RawMessage `json:"data"`
}

type BatchUsersArgs struct {
	UserIDs TargetList      `json:"user_ids"`
	Data    json.RawMessage `json:"data"`
}

// TargetList accepts a JSON list mixing strings and numbers, which models
// emit interchangeably for room numbers and ids.
type TargetList []string

func (l *TargetList) UnmarshalJSON(b []byte) error {
	var values []any
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	out := make(TargetList, 0, len(values))
	for _, v := range values {
		switch x := v.(type) {
		case string:
			out = append(out, strings.TrimSpace(x))
		case float64:
			out = append(out, strconv.FormatFloat(x, 'f', -1, 64))
		default:
			return fmt.Errorf("unsupported list element %v", v)
		}
	}
	*l = out
	return nil
}

// FlexInt decodes an integer given either as a JSON number or a numeric string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) {
			return fmt.Errorf("not an integer: %v", x)
		}
		*n = FlexInt(x)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(x, "#")))
		if err != nil {
			return fmt.Errorf("not an integer: %q", x)
		}
		*n = FlexInt(i)
	case nil:
		*n = 0
	default:
		return fmt.Errorf("not an integer: %v", v)
	}
	return nil
}

// decodeArgs unmarshals tool arguments. An empty argument string is an
// empty object.
func decodeArgs(raw json.RawMessage, dst any) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// unwrapData strips a {"data": {...}} envelope some models add around
// create payloads.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var outer map[string]json.RawMessage
	if json.Unmarshal(raw, &outer) != nil || len(outer) != 1 {
		return raw
	}
	inner, ok := outer["data"]
	if !ok || !strings.HasPrefix(strings.TrimSpace(string(inner)), "{") {
		return raw
	}
	return inner
}

// asUint reads a positive integer condition value.
func asUint(v any) (uint, bool) {
	switch x := v.(type) {
	case float64:
		if x > 0 && x == math.Trunc(x) {
			return uint(x), true
		}
	case int:
		if x > 0 {
			return uint(x), true
		}
	case string:
		if n, err := strconv.ParseUint(strings.TrimSpace(x), 10, 64); err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}
