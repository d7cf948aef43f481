package agent

import (
	"context"
	"encoding/json"
	"time"

	"hotelops/internal/application/envelope"
	"hotelops/internal/application/mutation"
	"hotelops/internal/domain/room"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/logger"
)

// Dispatcher executes catalogue tools. Every call yields exactly one
// envelope; failures are rendered, never returned.
type Dispatcher struct {
	rooms     room.Repository
	tickets   ticket.Repository
	users     user.Repository
	mutations *mutation.Service
	logger    logger.Interface
	now       func() time.Time
}

func NewDispatcher(
	rooms room.Repository,
	tickets ticket.Repository,
	users user.Repository,
	mutations *mutation.Service,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		rooms:     rooms,
		tickets:   tickets,
		users:     users,
		mutations: mutations,
		logger:    logger,
		now:       time.Now,
	}
}

// Dispatch runs tool name with its JSON arguments.
func (d *Dispatcher) Dispatch(ctx context.Context, name ToolName, raw json.RawMessage) *envelope.Envelope {
	switch name {
	case ToolReadRooms, ToolReadTickets, ToolReadUsers:
		var args ReadArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		switch name {
		case ToolReadRooms:
			return d.readRooms(ctx, args)
		case ToolReadTickets:
			return d.readTickets(ctx, args)
		default:
			return d.readUsers(ctx, args)
		}

	case ToolVerifyRoomAndTickets:
		var args VerifyRoomArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.verifyRoom(ctx, args.RoomNumber, args.TimeConstraint)

	case ToolVerifyMultipleRoomsAndTickets:
		var args VerifyRoomsArgs
		if err := decodeArgs(raw, &args); err != nil {
			return envelope.Error("Invalid input: A list of room numbers is required.")
		}
		return d.verifyRooms(ctx, args.RoomNumbers)

	case ToolSearchTicketsByDescription:
		var args SearchArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.searchTickets(ctx, args.Description)

	case ToolListRoomsByStatus:
		var args StatusArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.listRoomsByStatus(ctx, args.Status)

	case ToolFindUsersByWorkload:
		var args WorkloadArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.findUsersByWorkload(ctx, args.HasActiveTickets)

	case ToolSummarizeRoomsWithActive:
		return d.summarizeRoomIssues(ctx)

	case ToolSummarizeUserWorkloads:
		return d.summarizeUserWorkloads(ctx)

	case ToolListTicketsByStatus:
		var args StatusArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.listTicketsByStatus(ctx, args.Status)

	case ToolListTicketsForUser:
		var args UserNameArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.listTicketsForUser(ctx, args.UserName)

	case ToolReadUserNames:
		return d.readUserNames(ctx)

	case ToolGetTicketByID:
		var args TicketIDArgs
		if err := decodeArgs(raw, &args); err != nil {
			return envelope.Error("Invalid Ticket ID: %s. Must be positive integer.", raw)
		}
		return d.getTicketByID(ctx, int(args.TicketID))

	case ToolPrepareCreateRoom, ToolPrepareCreateTicket, ToolPrepareCreateUser:
		var args CreateArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		data := args.Data
		if len(data) == 0 {
			data = raw
		}
		return d.mutations.PrepareCreate(ctx, kindOf(name), unwrapData(data))

	case ToolPrepareUpdateRoom, ToolPrepareUpdateTicket, ToolPrepareUpdateUser:
		var args UpdateArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		kind := kindOf(name)
		return d.mutations.PrepareUpdate(ctx, kind, refFrom(kind, args.Conditions), unwrapData(args.Data))

	case ToolPrepareDeleteRoom, ToolPrepareDeleteTicket, ToolPrepareDeleteUser:
		var args DeleteArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		kind := kindOf(name)
		return d.mutations.PrepareDelete(ctx, kind, refFrom(kind, args.Conditions))

	case ToolPrepareBatchUpdateRooms:
		var args BatchRoomsArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.mutations.PrepareBatchUpdate(ctx, vo.EntityRoom, args.RoomNumbers, args.Data)

	case ToolPrepareBatchUpdateTickets:
		var args BatchTicketsArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.mutations.PrepareBatchUpdate(ctx, vo.EntityTicket, args.TicketIDs, args.Data)

	case ToolPrepareBatchUpdateUsers:
		var args BatchUsersArgs
		if err := decodeArgs(raw, &args); err != nil {
			return badArgs(name, err)
		}
		return d.mutations.PrepareBatchUpdate(ctx, vo.EntityUser, args.UserIDs, args.Data)
	}

	return envelope.Error("Unknown tool '%s'.", name)
}

func badArgs(name ToolName, err error) *envelope.Envelope {
	return envelope.Error("Invalid arguments for %s: %v", name, err)
}

// kindOf maps a mutation tool to the entity it stages.
func kindOf(name ToolName) vo.EntityKind {
	switch name {
	case ToolPrepareCreateTicket, ToolPrepareUpdateTicket, ToolPrepareDeleteTicket:
		return vo.EntityTicket
	case ToolPrepareCreateUser, ToolPrepareUpdateUser, ToolPrepareDeleteUser:
		return vo.EntityUser
	default:
		return vo.EntityRoom
	}
}

// refFrom reads the target of an update or delete from its conditions.
func refFrom(kind vo.EntityKind, conds map[string]any) mutation.Ref {
	for _, key := range []string{"id", kind.String() + "_id"} {
		if id, ok := asUint(conds[key]); ok {
			return mutation.ByID(id)
		}
	}
	var natural string
	switch kind {
	case vo.EntityRoom:
		natural = "room_number"
	case vo.EntityUser:
		natural = "email"
	}
	if natural != "" {
		if v, ok := conds[natural]; ok && v != nil {
			return mutation.ByKey(stringify(v))
		}
	}
	return mutation.Ref{}
}
