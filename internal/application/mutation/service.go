// Package mutation implements the two-phase prepare/confirm protocol for
// creates, updates, deletes and batch updates.
//
// Nothing is persisted between the phases: a prepare call returns the staged
// change inside a confirmation_required envelope and the caller submits it
// back to the matching confirm call. Confirm therefore repeats every check
// made at prepare time against the current state of the store.
package mutation

import (
	"bytes"
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
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// Ref identifies the target of an update or delete either by id or by its
// natural key (room_number for rooms, email for users). ID wins when both
// are set.
type Ref struct {
	ID  uint
	Key string
}

func ByID(id uint) Ref { return Ref{ID: id} }

func ByKey(key string) Ref { return Ref{Key: key} }

type Service struct {
	rooms     room.Repository
	tickets   ticket.Repository
	users     user.Repository
	publisher events.EventPublisher
	logger    logger.Interface
}

// NewService wires the protocol. publisher may be nil, in which case
// committed mutations are not announced.
func NewService(
	rooms room.Repository,
	tickets ticket.Repository,
	users user.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *Service {
	return &Service{
		rooms:     rooms,
		tickets:   tickets,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

func invalidKind(kind vo.EntityKind) *errors.AppError {
	return errors.NewValidationError(
		fmt.Sprintf("Invalid entity type '%s'. Valid types are 'room', 'ticket', 'user'.", kind))
}

// decode unmarshals raw into dst. Unknown keys are ignored.
func decode(raw json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("no data provided")
	}
	return json.Unmarshal(raw, dst)
}

// invalid wraps a decode or validation failure with a caller-facing prefix.
func invalid(prefix string, err error) *errors.AppError {
	detail := err.Error()
	if appErr := errors.GetAppError(err); appErr != nil {
		detail = appErr.Message
		if appErr.Details != "" {
			detail += " (" + appErr.Details + ")"
		}
	}
	return errors.NewValidationError(fmt.Sprintf("%s: %s", prefix, detail))
}

// decodeCreate decodes, validates and normalizes a create input.
func decodeCreate(raw json.RawMessage, kind vo.EntityKind, in interface{ Normalize() error }) error {
	if err := decode(raw, in); err != nil {
		return invalid(createPrefix(kind), err)
	}
	return validateCreate(kind, in)
}

func validateCreate(kind vo.EntityKind, in interface{ Normalize() error }) error {
	if err := utils.ValidateStruct(in); err != nil {
		return invalid(createPrefix(kind), err)
	}
	if err := in.Normalize(); err != nil {
		return invalid(createPrefix(kind), err)
	}
	return nil
}

func createPrefix(kind vo.EntityKind) string {
	return "Invalid data for creating " + kind.String()
}

// decodeUpdate decodes and normalizes a partial update.
func decodeUpdate(raw json.RawMessage, prefix string, in interface{ Normalize() error }) error {
	if err := decode(raw, in); err != nil {
		return invalid(prefix, err)
	}
	if err := in.Normalize(); err != nil {
		return invalid(prefix, err)
	}
	return nil
}

// publish announces a committed mutation. Failures are logged and never
// reach the caller.
func (s *Service) publish(kind vo.EntityKind, action string, ids []uint, payload map[string]any) {
	if s.publisher == nil || len(ids) == 0 {
		return
	}
	event := events.NewMutationEvent(kind.String(), action, ids, payload)
	if err := s.publisher.Publish(event); err != nil {
		s.logger.Warnw("failed to publish mutation event",
			"event_type", event.EventType,
			"entity_ids", ids,
			"error", err,
		)
	}
}

func confirmation(action string, kind vo.EntityKind, message string) *envelope.Envelope {
	return &envelope.Envelope{
		Type:       envelope.TypeConfirmationRequired,
		Action:     action,
		EntityType: kind.String(),
		Message:    message,
	}
}

// loadRoom resolves ref to an existing room.
func (s *Service) loadRoom(ctx context.Context, ref Ref) (*room.Room, error) {
	var (
		r   *room.Room
		err error
	)
	switch {
	case ref.ID != 0:
		r, err = s.rooms.GetByID(ctx, ref.ID)
	case ref.Key != "":
		r, err = s.rooms.GetByRoomNumber(ctx, ref.Key)
	default:
		return nil, errors.NewValidationError("Room ID or Room Number condition required.")
	}
	if err != nil {
		return nil, err
	}
	if r == nil {
		if ref.ID != 0 {
			return nil, errors.NewNotFoundError(fmt.Sprintf("Room %d not found.", ref.ID))
		}
		return nil, errors.NewNotFoundError(fmt.Sprintf("Room number '%s' not found.", ref.Key))
	}
	return r, nil
}

func (s *Service) loadTicket(ctx context.Context, ref Ref) (*ticket.Ticket, error) {
	if ref.ID == 0 {
		return nil, errors.NewValidationError("Ticket ID condition required.")
	}
	t, err := s.tickets.GetByID(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Ticket %d not found.", ref.ID))
	}
	return t, nil
}

func (s *Service) loadUser(ctx context.Context, ref Ref) (*user.User, error) {
	var (
		u   *user.User
		err error
	)
	switch {
	case ref.ID != 0:
		u, err = s.users.GetByID(ctx, ref.ID)
	case ref.Key != "":
		u, err = s.users.GetByEmail(ctx, ref.Key)
	default:
		return nil, errors.NewValidationError("User ID condition required.")
	}
	if err != nil {
		return nil, err
	}
	if u == nil {
		if ref.ID != 0 {
			return nil, errors.NewNotFoundError(fmt.Sprintf("User %d not found.", ref.ID))
		}
		return nil, errors.NewNotFoundError(fmt.Sprintf("User with email '%s' not found.", ref.Key))
	}
	return u, nil
}
