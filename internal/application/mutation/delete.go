package mutation

import (
	"context"
	"fmt"

	"hotelops/internal/application/envelope"
	"hotelops/internal/domain/shared/events"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/shared/errors"
)

// PrepareDelete resolves ref and checks that no ticket depends on it. A
// blocked delete is an error envelope, never a confirmation.
func (s *Service) PrepareDelete(ctx context.Context, kind vo.EntityKind, ref Ref) *envelope.Envelope {
	id, label, err := s.stageDelete(ctx, kind, ref)
	if err != nil {
		s.logger.Infow("delete rejected at prepare", "entity_type", kind, "error", err)
		return envelope.FromError(err, "Error preparing "+kind.String()+" deletion")
	}
	env := confirmation(envelope.ActionDelete, kind, fmt.Sprintf("Confirm DELETE %s?", label))
	env.EntityID = id
	return env
}

// ConfirmDelete re-checks the dependent-ticket constraint and deletes. When
// the store refuses, the row is fetched again to tell a concurrent delete
// (NotFound) from a constraint the store enforced on its own.
func (s *Service) ConfirmDelete(ctx context.Context, kind vo.EntityKind, id uint) error {
	if id == 0 {
		return errors.NewValidationError(fmt.Sprintf("%s ID is required.", kind.Title()))
	}
	if _, _, err := s.stageDelete(ctx, kind, ByID(id)); err != nil {
		return err
	}

	var deleted bool
	switch kind {
	case vo.EntityRoom:
		deleted = s.rooms.Delete(ctx, id)
	case vo.EntityTicket:
		deleted = s.tickets.Delete(ctx, id)
	case vo.EntityUser:
		deleted = s.users.Delete(ctx, id)
	}
	if !deleted {
		return s.explainFailedDelete(ctx, kind, id)
	}

	s.logger.Infow("entity deleted", "entity_type", kind, "entity_id", id)
	s.publish(kind, events.ActionDeleted, []uint{id}, nil)
	return nil
}

func (s *Service) stageDelete(ctx context.Context, kind vo.EntityKind, ref Ref) (uint, string, error) {
	switch kind {
	case vo.EntityRoom:
		r, err := s.loadRoom(ctx, ref)
		if err != nil {
			return 0, "", err
		}
		blocked, err := s.tickets.ExistsForRoom(ctx, r.ID)
		if err != nil {
			return 0, "", err
		}
		if blocked {
			return 0, "", errors.NewConstraintError(fmt.Sprintf("Cannot delete %s: It has associated tickets.", r.Label()))
		}
		return r.ID, r.Label(), nil

	case vo.EntityTicket:
		t, err := s.loadTicket(ctx, ref)
		if err != nil {
			return 0, "", err
		}
		return t.ID, t.Label(), nil

	case vo.EntityUser:
		u, err := s.loadUser(ctx, ref)
		if err != nil {
			return 0, "", err
		}
		blocked, err := s.tickets.ExistsForUser(ctx, u.ID)
		if err != nil {
			return 0, "", err
		}
		if blocked {
			return 0, "", errors.NewConstraintError(fmt.Sprintf("Cannot delete %s: Associated with tickets.", u.Label()))
		}
		return u.ID, u.Label(), nil
	}
	return 0, "", invalidKind(kind)
}

func (s *Service) explainFailedDelete(ctx context.Context, kind vo.EntityKind, id uint) error {
	var (
		exists bool
		err    error
	)
	switch kind {
	case vo.EntityRoom:
		r, e := s.rooms.GetByID(ctx, id)
		exists, err = r != nil, e
	case vo.EntityTicket:
		t, e := s.tickets.GetByID(ctx, id)
		exists, err = t != nil, e
	case vo.EntityUser:
		u, e := s.users.GetByID(ctx, id)
		exists, err = u != nil, e
	}
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewNotFoundError(fmt.Sprintf("%s %d not found.", kind.Title(), id))
	}

	s.logger.Warnw("store refused delete", "entity_type", kind, "entity_id", id)
	if kind == vo.EntityTicket {
		return errors.NewInternalError("Failed to delete ticket.")
	}
	return errors.NewConstraintError(fmt.Sprintf("Cannot delete %s, possibly due to associated tickets.", kind))
}
