package mutation

import (
	"context"
	"encoding/json"
	"fmt"

	"hotelops/internal/application/envelope"
	"hotelops/internal/domain/room"
	"hotelops/internal/domain/shared/events"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/errors"
)

// PrepareCreate validates raw as a create input for kind, applies defaults
// and checks uniqueness and references. The normalized input is returned as
// proposed_data and is what ConfirmCreate expects back.
func (s *Service) PrepareCreate(ctx context.Context, kind vo.EntityKind, raw json.RawMessage) *envelope.Envelope {
	var (
		proposal any
		message  string
		err      error
	)
	switch kind {
	case vo.EntityRoom:
		var in *room.CreateInput
		if in, err = s.stageRoomCreate(ctx, raw); err == nil {
			proposal = in
			message = fmt.Sprintf("Please review the details for the new room '%s' and confirm creation.", in.RoomNumber)
		}
	case vo.EntityTicket:
		if proposal, err = s.stageTicketCreate(ctx, raw); err == nil {
			message = "Please review the details for the new ticket and confirm creation."
		}
	case vo.EntityUser:
		var in *user.CreateInput
		if in, err = s.stageUserCreate(ctx, raw); err == nil {
			proposal = in
			message = fmt.Sprintf("Please review the details for the new user '%s' and confirm creation.", in.FullName)
		}
	default:
		err = invalidKind(kind)
	}
	if err != nil {
		s.logger.Infow("create rejected at prepare", "entity_type", kind, "error", err)
		return envelope.FromError(err, "Error preparing "+kind.String()+" creation")
	}

	env := confirmation(envelope.ActionCreate, kind, message)
	env.ProposedData = proposal
	return env
}

// ConfirmCreate re-runs every PrepareCreate check, then commits and returns
// the stored entity with its generated fields.
func (s *Service) ConfirmCreate(ctx context.Context, kind vo.EntityKind, raw json.RawMessage) (any, error) {
	switch kind {
	case vo.EntityRoom:
		in, err := s.stageRoomCreate(ctx, raw)
		if err != nil {
			return nil, err
		}
		created, err := s.rooms.Create(ctx, in.ToRoom())
		if err != nil {
			s.logger.Errorw("failed to create room", "room_number", in.RoomNumber, "error", err)
			return nil, err
		}
		s.logger.Infow("room created", "room_id", created.ID, "room_number", created.RoomNumber)
		s.publish(kind, events.ActionCreated, []uint{created.ID}, nil)
		return created, nil

	case vo.EntityTicket:
		in, err := s.stageTicketCreate(ctx, raw)
		if err != nil {
			return nil, err
		}
		created, err := s.tickets.Create(ctx, in.ToTicket())
		if err != nil {
			s.logger.Errorw("failed to create ticket", "room_id", in.RoomID, "error", err)
			return nil, err
		}
		s.logger.Infow("ticket created", "ticket_id", created.ID, "room_id", created.RoomID)
		s.publish(kind, events.ActionCreated, []uint{created.ID}, nil)
		return created, nil

	case vo.EntityUser:
		in, err := s.stageUserCreate(ctx, raw)
		if err != nil {
			return nil, err
		}
		created, err := s.users.Create(ctx, in.ToUser())
		if err != nil {
			s.logger.Errorw("failed to create user", "email", in.Email, "error", err)
			return nil, err
		}
		s.logger.Infow("user created", "user_id", created.ID)
		s.publish(kind, events.ActionCreated, []uint{created.ID}, nil)
		return created, nil
	}
	return nil, invalidKind(kind)
}

func (s *Service) stageRoomCreate(ctx context.Context, raw json.RawMessage) (*room.CreateInput, error) {
	in := new(room.CreateInput)
	if err := decodeCreate(raw, vo.EntityRoom, in); err != nil {
		return nil, err
	}
	existing, err := s.rooms.GetByRoomNumber(ctx, in.RoomNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf(
			"Cannot create room: Room number '%s' already exists (ID: %d).", in.RoomNumber, existing.ID))
	}
	return in, nil
}

// stageTicketCreate resolves room_number to room_id before validation, then
// checks that the room, the assignee and the creator exist.
func (s *Service) stageTicketCreate(ctx context.Context, raw json.RawMessage) (*ticket.CreateInput, error) {
	in := new(ticket.CreateInput)
	if err := decode(raw, in); err != nil {
		return nil, invalid(createPrefix(vo.EntityTicket), err)
	}

	if in.RoomID == nil || *in.RoomID == 0 {
		if in.RoomNumber == "" {
			return nil, errors.NewValidationError("Cannot create ticket: Room ID or Room Number is required.")
		}
		r, err := s.rooms.GetByRoomNumber(ctx, in.RoomNumber)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("Cannot create ticket: Room number '%s' not found.", in.RoomNumber))
		}
		id := r.ID
		in.RoomID = &id
	}

	if err := validateCreate(vo.EntityTicket, in); err != nil {
		return nil, err
	}

	r, err := s.rooms.GetByID(ctx, *in.RoomID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Cannot create ticket: Room with ID '%d' not found.", *in.RoomID))
	}
	in.RoomNumber = r.RoomNumber

	if id := in.AssignedTo.Ptr(); id != nil {
		assignee, err := s.users.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("Cannot create ticket: Assigned user ID '%d' not found.", *id))
		}
	}

	creator, err := s.users.GetByID(ctx, in.CreatedBy)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Cannot create ticket: Creating user ID '%d' not found.", in.CreatedBy))
	}
	return in, nil
}

func (s *Service) stageUserCreate(ctx context.Context, raw json.RawMessage) (*user.CreateInput, error) {
	in := new(user.CreateInput)
	if err := decodeCreate(raw, vo.EntityUser, in); err != nil {
		return nil, err
	}
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("Cannot create user: Email '%s' is already registered.", in.Email))
	}
	return in, nil
}
