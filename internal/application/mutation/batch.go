package mutation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"hotelops/internal/application/envelope"
	"hotelops/internal/domain/room"
	"hotelops/internal/domain/shared/events"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/errors"
)

// failedIDsListLimit caps how many failed ids are spelled out in a batch
// result message.
const failedIDsListLimit = 10

// BatchResult reports a committed batch update. Ids missing from the store
// count as failures and are never a hard error. Counts are taken over the
// distinct requested ids, so a repeated id is counted once.
type BatchResult struct {
	Message      string `json:"message"`
	SuccessCount int    `json:"success_count"`
	FailCount    int    `json:"fail_count"`
	FailedIDs    []uint `json:"failed_ids"`
}

// batchPatch is a shared partial update validated once for all targets.
type batchPatch struct {
	payload    map[string]any
	roomNumber string
	email      string
	roomID     uint
	assignee   uint
}

func (p *batchPatch) describe() string {
	keys := make([]string, 0, len(p.payload))
	for k := range p.payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: '%s'", k, formatValue(p.payload[k])))
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// PrepareBatchUpdate stages one shared update for many targets. Rooms are
// addressed by room number, tickets and users by id. Targets that do not
// exist are named in the message and left out of entity_ids.
func (s *Service) PrepareBatchUpdate(ctx context.Context, kind vo.EntityKind, targets []string, raw json.RawMessage) *envelope.Envelope {
	env, err := s.prepareBatch(ctx, kind, targets, raw)
	if err != nil {
		s.logger.Infow("batch update rejected at prepare", "entity_type", kind, "targets", len(targets), "error", err)
		return envelope.FromError(err, "Error preparing batch "+kind.String()+" update")
	}
	return env
}

func (s *Service) prepareBatch(ctx context.Context, kind vo.EntityKind, targets []string, raw json.RawMessage) (*envelope.Envelope, error) {
	if !kind.IsValid() {
		return nil, invalidKind(kind)
	}
	if len(targets) == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("Invalid input: A list of %s is required.", targetNoun(kind)))
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return nil, errors.NewValidationError("Invalid input: Update data (key-value pairs) is required.")
	}

	patch, err := decodeBatch(kind, raw, "Invalid data for updating "+kind.Plural())
	if err != nil {
		return nil, err
	}
	if len(patch.payload) == 0 {
		return nil, errors.NewValidationError("No valid updates identified in the request.")
	}

	var (
		found   []uint
		names   []string
		missing []string
	)
	switch kind {
	case vo.EntityRoom:
		rooms, err := s.rooms.ListByRoomNumbers(ctx, dedupeStrings(targets))
		if err != nil {
			return nil, err
		}
		byNumber := make(map[string]*room.Room, len(rooms))
		for _, r := range rooms {
			byNumber[r.RoomNumber] = r
		}
		for _, number := range dedupeStrings(targets) {
			if r, ok := byNumber[number]; ok {
				found = append(found, r.ID)
				names = append(names, r.RoomNumber)
			} else {
				missing = append(missing, number)
			}
		}

	case vo.EntityTicket:
		ids, err := parseTargetIDs(kind, targets)
		if err != nil {
			return nil, err
		}
		tickets, err := s.tickets.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		existing := make(map[uint]bool, len(tickets))
		for _, t := range tickets {
			existing[t.ID] = true
		}
		for _, id := range ids {
			if existing[id] {
				found = append(found, id)
				names = append(names, fmt.Sprintf("#%d", id))
			} else {
				missing = append(missing, strconv.FormatUint(uint64(id), 10))
			}
		}

	case vo.EntityUser:
		ids, err := parseTargetIDs(kind, targets)
		if err != nil {
			return nil, err
		}
		users, err := s.users.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uint]*user.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		for _, id := range ids {
			if u, ok := byID[id]; ok {
				found = append(found, id)
				names = append(names, fmt.Sprintf("'%s' (ID:%d)", u.FullName, u.ID))
			} else {
				missing = append(missing, strconv.FormatUint(uint64(id), 10))
			}
		}
	}

	if len(found) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf(
			"Cannot prepare batch update: No target %s found. %s: %s.",
			kind.Plural(), missingNoun(kind), strings.Join(missing, ", ")))
	}
	if err := s.checkBatch(ctx, kind, patch, found, "Cannot prepare batch update: "); err != nil {
		return nil, err
	}

	env := confirmation(envelope.ActionBatchUpdate, kind, batchMessage(kind, patch, names, missing))
	env.EntityIDs = found
	env.UpdatePayload = patch.payload
	return env, nil
}

// ConfirmBatchUpdate applies the payload to every distinct id in one store
// call. Ids the store did not update are reported in FailedIDs.
func (s *Service) ConfirmBatchUpdate(ctx context.Context, kind vo.EntityKind, ids []uint, raw json.RawMessage) (*BatchResult, error) {
	if !kind.IsValid() {
		return nil, invalidKind(kind)
	}
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, errors.NewValidationError("No target IDs provided for batch update.")
	}

	patch, err := decodeBatch(kind, raw, "Invalid update payload")
	if err != nil {
		return nil, err
	}
	if len(patch.payload) == 0 {
		return nil, errors.NewValidationError("No valid update fields provided in payload.")
	}
	if err := s.checkBatch(ctx, kind, patch, ids, ""); err != nil {
		return nil, err
	}

	var updated []uint
	switch kind {
	case vo.EntityRoom:
		updated, err = s.rooms.UpdateMany(ctx, ids, patch.payload)
	case vo.EntityTicket:
		updated, err = s.tickets.UpdateMany(ctx, ids, patch.payload)
	case vo.EntityUser:
		updated, err = s.users.UpdateMany(ctx, ids, patch.payload)
	}
	if err != nil {
		s.logger.Errorw("batch update failed", "entity_type", kind, "ids", ids, "error", err)
		return nil, err
	}

	done := make(map[uint]bool, len(updated))
	for _, id := range updated {
		done[id] = true
	}
	result := &BatchResult{FailedIDs: []uint{}}
	var succeeded []uint
	for _, id := range ids {
		if done[id] {
			succeeded = append(succeeded, id)
		} else {
			result.FailedIDs = append(result.FailedIDs, id)
		}
	}
	result.SuccessCount = len(succeeded)
	result.FailCount = len(result.FailedIDs)
	result.Message = fmt.Sprintf("Batch update for %s(s) completed: %d succeeded", kind, result.SuccessCount)
	if result.FailCount > 0 {
		result.Message += fmt.Sprintf(", %d failed or not found.", result.FailCount)
		if result.FailCount <= failedIDsListLimit {
			result.Message += fmt.Sprintf(" (IDs: %s)", joinIDs(result.FailedIDs))
		}
	} else {
		result.Message += "."
	}

	s.logger.Infow("batch update committed",
		"entity_type", kind,
		"success_count", result.SuccessCount,
		"fail_count", result.FailCount,
	)
	s.publish(kind, events.ActionBatch, succeeded, patch.payload)
	return result, nil
}

func decodeBatch(kind vo.EntityKind, raw json.RawMessage, prefix string) (*batchPatch, error) {
	patch := &batchPatch{}
	switch kind {
	case vo.EntityRoom:
		var in room.UpdateInput
		if err := decodeUpdate(raw, prefix, &in); err != nil {
			return nil, err
		}
		patch.payload = in.Payload()
		patch.roomNumber, _ = in.RoomNumber.Get()
	case vo.EntityTicket:
		var in ticket.UpdateInput
		if err := decodeUpdate(raw, prefix, &in); err != nil {
			return nil, err
		}
		patch.payload = in.Payload()
		patch.roomID, _ = in.NewRoom()
		patch.assignee, _ = in.NewAssignee()
	case vo.EntityUser:
		var in user.UpdateInput
		if err := decodeUpdate(raw, prefix, &in); err != nil {
			return nil, err
		}
		patch.payload = in.Payload()
		patch.email, _ = in.NewEmail()
	}
	return patch, nil
}

// checkBatch enforces reference and identity rules for a batch. A unique
// field (room_number, email) may only change when the batch has a single
// target, and never to a value held by a row outside the batch.
func (s *Service) checkBatch(ctx context.Context, kind vo.EntityKind, patch *batchPatch, ids []uint, prefix string) error {
	inBatch := make(map[uint]bool, len(ids))
	for _, id := range ids {
		inBatch[id] = true
	}

	switch kind {
	case vo.EntityRoom:
		if patch.roomNumber == "" {
			return nil
		}
		if len(ids) > 1 {
			return errors.NewConstraintError(prefix + "Updating multiple rooms to the same room number is not allowed.")
		}
		other, err := s.rooms.GetByRoomNumber(ctx, patch.roomNumber)
		if err != nil {
			return err
		}
		if other != nil && !inBatch[other.ID] {
			return errors.NewConflictError(fmt.Sprintf("%sRoom number '%s' already exists (ID: %d).", prefix, patch.roomNumber, other.ID))
		}

	case vo.EntityTicket:
		if patch.roomID != 0 {
			r, err := s.rooms.GetByID(ctx, patch.roomID)
			if err != nil {
				return err
			}
			if r == nil {
				return errors.NewNotFoundError(fmt.Sprintf("Cannot set room: Room ID '%d' not found.", patch.roomID))
			}
		}
		if patch.assignee != 0 {
			u, err := s.users.GetByID(ctx, patch.assignee)
			if err != nil {
				return err
			}
			if u == nil {
				return errors.NewNotFoundError(fmt.Sprintf("Cannot set assignee: User ID '%d' not found.", patch.assignee))
			}
		}

	case vo.EntityUser:
		if patch.email == "" {
			return nil
		}
		if len(ids) > 1 {
			if prefix == "" {
				return errors.NewConstraintError("Batch updating email for multiple users simultaneously is not allowed.")
			}
			return errors.NewConstraintError(prefix + "Updating multiple users to the same new email address is not allowed.")
		}
		other, err := s.users.GetByEmail(ctx, patch.email)
		if err != nil {
			return err
		}
		if other != nil && !inBatch[other.ID] {
			return errors.NewConflictError(fmt.Sprintf(
				"%sProposed email '%s' is already used by another user '%s' (ID: %d) outside this batch.",
				prefix, patch.email, other.FullName, other.ID))
		}
	}
	return nil
}

func batchMessage(kind vo.EntityKind, patch *batchPatch, names, missing []string) string {
	desc := patch.describe()
	switch kind {
	case vo.EntityRoom:
		msg := fmt.Sprintf("Please confirm applying the following update(s) (%s) to %d room(s): %s.",
			desc, len(names), strings.Join(names, ", "))
		if len(missing) > 0 {
			msg += fmt.Sprintf(" (Note: Room(s) %s were not found and will be ignored).", strings.Join(missing, ", "))
		}
		return msg
	case vo.EntityTicket:
		msg := fmt.Sprintf("Confirm applying update(s) (%s) to %d ticket(s): %s.",
			desc, len(names), strings.Join(names, ", "))
		if len(missing) > 0 {
			msg += fmt.Sprintf(" (Note: Ticket ID(s) %s not found/ignored).", strings.Join(missing, ", "))
		}
		return msg
	default:
		msg := fmt.Sprintf("Confirm applying update(s) (%s) to %d user(s): %s.",
			desc, len(names), strings.Join(names, ", "))
		if len(missing) > 0 {
			msg += fmt.Sprintf(" (Note: User ID(s) %s not found/ignored).", strings.Join(missing, ", "))
		}
		return msg
	}
}

func targetNoun(kind vo.EntityKind) string {
	if kind == vo.EntityRoom {
		return "room numbers"
	}
	return kind.String() + " IDs"
}

func missingNoun(kind vo.EntityKind) string {
	if kind == vo.EntityRoom {
		return "Non-existent rooms"
	}
	return "Non-existent IDs"
}

func parseTargetIDs(kind vo.EntityKind, targets []string) ([]uint, error) {
	ids := make([]uint, 0, len(targets))
	for _, t := range targets {
		n, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(t, "#")), 10, 64)
		if err != nil || n == 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("Invalid %s ID '%s'.", kind, t))
		}
		ids = append(ids, uint(n))
	}
	return dedupeIDs(ids), nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
