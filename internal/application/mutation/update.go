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

// stagedUpdate is a validated update against one current entity.
type stagedUpdate struct {
	id       uint
	label    string
	original any
	proposed any
	payload  map[string]any
}

// PrepareUpdate resolves ref, validates the partial update in raw and
// returns the current entity next to a copy with the changes applied. Only
// fields present in raw end up in update_payload.
func (s *Service) PrepareUpdate(ctx context.Context, kind vo.EntityKind, ref Ref, raw json.RawMessage) *envelope.Envelope {
	st, err := s.stageUpdate(ctx, kind, ref, raw)
	if err != nil {
		s.logger.Infow("update rejected at prepare", "entity_type", kind, "error", err)
		return envelope.FromError(err, "Error preparing "+kind.String()+" update")
	}
	if len(st.payload) == 0 {
		return envelope.Message("No valid updates provided for %s.", st.label)
	}

	env := confirmation(envelope.ActionUpdate, kind, fmt.Sprintf("Confirm update for %s?", st.label))
	env.EntityID = st.id
	env.OriginalData = st.original
	env.ProposedData = st.proposed
	env.UpdatePayload = st.payload
	return env
}

// ConfirmUpdate re-validates raw against the current entity and commits it.
// A missing entity is NotFound; a user email taken by someone else is a
// Conflict.
func (s *Service) ConfirmUpdate(ctx context.Context, kind vo.EntityKind, id uint, raw json.RawMessage) (any, error) {
	if id == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("%s ID is required.", kind.Title()))
	}
	st, err := s.stageUpdate(ctx, kind, ByID(id), raw)
	if err != nil {
		return nil, err
	}
	if len(st.payload) == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("No valid updates provided for %s.", st.label))
	}

	var updated any
	switch kind {
	case vo.EntityRoom:
		r, err := s.rooms.Update(ctx, id, st.payload)
		if err != nil {
			return nil, err
		}
		if r != nil {
			updated = r
		}
	case vo.EntityTicket:
		t, err := s.tickets.Update(ctx, id, st.payload)
		if err != nil {
			return nil, err
		}
		if t != nil {
			updated = t
		}
	case vo.EntityUser:
		u, err := s.users.Update(ctx, id, st.payload)
		if err != nil {
			return nil, err
		}
		if u != nil {
			updated = u
		}
	}
	if updated == nil {
		// the row vanished between staging and the write
		return nil, errors.NewNotFoundError(fmt.Sprintf("%s not found (may have been deleted).", kind.Title()))
	}

	s.logger.Infow("entity updated", "entity_type", kind, "entity_id", id, "fields", len(st.payload))
	s.publish(kind, events.ActionUpdated, []uint{id}, st.payload)
	return updated, nil
}

func (s *Service) stageUpdate(ctx context.Context, kind vo.EntityKind, ref Ref, raw json.RawMessage) (*stagedUpdate, error) {
	switch kind {
	case vo.EntityRoom:
		current, err := s.loadRoom(ctx, ref)
		if err != nil {
			return nil, err
		}
		return s.stageRoomUpdate(ctx, current, raw)
	case vo.EntityTicket:
		current, err := s.loadTicket(ctx, ref)
		if err != nil {
			return nil, err
		}
		return s.stageTicketUpdate(ctx, current, raw)
	case vo.EntityUser:
		current, err := s.loadUser(ctx, ref)
		if err != nil {
			return nil, err
		}
		return s.stageUserUpdate(ctx, current, raw)
	}
	return nil, invalidKind(kind)
}

func (s *Service) stageRoomUpdate(ctx context.Context, current *room.Room, raw json.RawMessage) (*stagedUpdate, error) {
	var in room.UpdateInput
	if err := decodeUpdate(raw, "Invalid data for updating room", &in); err != nil {
		return nil, err
	}
	if number, ok := in.RoomNumber.Get(); ok && number != current.RoomNumber {
		other, err := s.rooms.GetByRoomNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != current.ID {
			return nil, errors.NewConflictError(fmt.Sprintf("Room number '%s' already exists (ID: %d).", number, other.ID))
		}
	}

	proposed := current.Clone()
	in.Apply(proposed)
	return &stagedUpdate{
		id:       current.ID,
		label:    current.Label(),
		original: current,
		proposed: proposed,
		payload:  in.Payload(),
	}, nil
}

// stageTicketUpdate checks the new room and assignee and recomputes the
// denormalized names on the proposed copy.
func (s *Service) stageTicketUpdate(ctx context.Context, current *ticket.Ticket, raw json.RawMessage) (*stagedUpdate, error) {
	var in ticket.UpdateInput
	if err := decodeUpdate(raw, "Invalid data for ticket update", &in); err != nil {
		return nil, err
	}

	proposed := current.Clone()
	in.Apply(proposed)

	if roomID, ok := in.NewRoom(); ok {
		r, err := s.rooms.GetByID(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("Cannot update ticket: Room with ID '%d' not found.", roomID))
		}
		number := r.RoomNumber
		proposed.RoomNumber = &number
	}

	if in.AssignedTo.IsSet() {
		proposed.AssignedToName = nil
		if assigneeID, ok := in.NewAssignee(); ok {
			u, err := s.users.GetByID(ctx, assigneeID)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, errors.NewNotFoundError(fmt.Sprintf("Cannot update ticket: Assigned user ID '%d' not found.", assigneeID))
			}
			name := u.FullName
			proposed.AssignedToName = &name
		}
	}

	return &stagedUpdate{
		id:       current.ID,
		label:    current.Label(),
		original: current,
		proposed: proposed,
		payload:  in.Payload(),
	}, nil
}

func (s *Service) stageUserUpdate(ctx context.Context, current *user.User, raw json.RawMessage) (*stagedUpdate, error) {
	var in user.UpdateInput
	if err := decodeUpdate(raw, "Invalid data for updating user", &in); err != nil {
		return nil, err
	}
	if email, ok := in.NewEmail(); ok && email != current.Email {
		other, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != current.ID {
			return nil, errors.NewConflictError(fmt.Sprintf("Email '%s' is already taken by another user.", email))
		}
	}

	proposed := current.Clone()
	in.Apply(proposed)
	return &stagedUpdate{
		id:       current.ID,
		label:    current.Label(),
		original: current,
		proposed: proposed,
		payload:  in.Payload(),
	}, nil
}
