package agent

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"hotelops/internal/application/envelope"
	"hotelops/internal/application/filter"
	"hotelops/internal/domain/room"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/query"
)

// verifyFanOut bounds concurrent lookups in verify_multiple_rooms_and_tickets.
const verifyFanOut = 8

// RoomDetails is the room_with_tickets payload.
type RoomDetails struct {
	Room    *room.Room       `json:"room"`
	Tickets []*ticket.Ticket `json:"tickets"`
}

// RoomIssues is one room_issues summary entry.
type RoomIssues struct {
	Room          *room.Room       `json:"room"`
	ActiveTickets []*ticket.Ticket `json:"active_tickets"`
}

// UserWorkload is one user_workload summary entry.
type UserWorkload struct {
	User          *user.User       `json:"user"`
	ActiveTickets []*ticket.Ticket `json:"active_tickets"`
}

// UserName is one user_summary entry.
type UserName struct {
	ID       uint      `json:"id"`
	FullName string    `json:"full_name"`
	Role     user.Role `json:"role"`
}

func (d *Dispatcher) readRooms(ctx context.Context, args ReadArgs) *envelope.Envelope {
	preds, err := filter.Build(vo.EntityRoom, args.Conditions, args.TimeConstraint, args.CreditConstraint, d.now())
	if err != nil {
		return envelope.FromError(err, "")
	}
	rooms, err := d.rooms.Find(ctx, query.New(query.Where(preds...), query.OrderBy(filter.DefaultOrder(vo.EntityRoom))))
	if err != nil {
		d.logger.Errorw("read_rooms failed", "error", err)
		return envelope.FromError(err, "Error reading rooms")
	}

	if phrase := strings.TrimSpace(args.TicketCountConstraint); phrase != "" {
		cmp := filter.CountFilter(phrase)
		if cmp.IsZero() {
			d.logger.Warnw("could not parse ticket count constraint", "constraint", phrase)
		} else if rooms, err = d.roomsByActiveCount(ctx, rooms, cmp); err != nil {
			d.logger.Errorw("read_rooms ticket count failed", "error", err)
			return envelope.FromError(err, "Error reading rooms")
		}
	}

	if len(rooms) == 0 {
		return envelope.Stop("No rooms found matching the specified criteria.")
	}
	return envelope.Read(vo.EntityRoom.String(), rooms, fmt.Sprintf("Found %d rooms matching criteria.", len(rooms)))
}

// roomsByActiveCount keeps the rooms whose number of active tickets
// satisfies cmp. Rooms without tickets count as zero.
func (d *Dispatcher) roomsByActiveCount(ctx context.Context, rooms []*room.Room, cmp filter.Comparison) ([]*room.Room, error) {
	if len(rooms) == 0 {
		return rooms, nil
	}
	ids := make([]uint, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	active, err := d.tickets.Find(ctx, query.New(query.Where(
		query.In("status", ticket.ActiveStatuses()),
		query.In("room_id", ids),
	)))
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rooms))
	for _, t := range active {
		counts[t.RoomID]++
	}
	kept := rooms[:0]
	for _, r := range rooms {
		if cmp.Match(counts[r.ID]) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

func (d *Dispatcher) readTickets(ctx context.Context, args ReadArgs) *envelope.Envelope {
	conds := args.Conditions
	if number, ok := conds["room_number"]; ok && number != nil {
		r, err := d.rooms.GetByRoomNumber(ctx, stringify(number))
		if err != nil {
			return envelope.FromError(err, "Error reading tickets")
		}
		if r == nil {
			return envelope.Stop("Room number '%s' not found.", stringify(number))
		}
		conds = make(map[string]any, len(args.Conditions))
		for k, v := range args.Conditions {
			if k != "room_number" {
				conds[k] = v
			}
		}
		conds["room_id"] = r.ID
	}

	preds, err := filter.Build(vo.EntityTicket, conds, args.TimeConstraint, args.CreditConstraint, d.now())
	if err != nil {
		return envelope.FromError(err, "")
	}
	if args.CreditConstraint != "" && len(filter.CreditFilter(args.CreditConstraint)) == 0 {
		d.logger.Warnw("could not parse credit constraint", "constraint", args.CreditConstraint)
	}
	tickets, err := d.tickets.Find(ctx, query.New(query.Where(preds...), query.OrderBy(filter.DefaultOrder(vo.EntityTicket))))
	if err != nil {
		d.logger.Errorw("read_tickets failed", "error", err)
		return envelope.FromError(err, "Error reading tickets")
	}
	if len(tickets) == 0 {
		return envelope.Stop("No tickets found matching the specified criteria.")
	}
	return envelope.Read(vo.EntityTicket.String(), tickets, fmt.Sprintf("Found %d tickets matching criteria.", len(tickets)))
}

func (d *Dispatcher) readUsers(ctx context.Context, args ReadArgs) *envelope.Envelope {
	preds, err := filter.Build(vo.EntityUser, args.Conditions, args.TimeConstraint, args.CreditConstraint, d.now())
	if err != nil {
		return envelope.FromError(err, "")
	}
	users, err := d.users.Find(ctx, query.New(query.Where(preds...), query.OrderBy(filter.DefaultOrder(vo.EntityUser))))
	if err != nil {
		d.logger.Errorw("read_users failed", "error", err)
		return envelope.FromError(err, "Error reading users")
	}
	if len(users) == 0 {
		return envelope.Stop("No users found matching the specified criteria.")
	}
	return envelope.Read(vo.EntityUser.String(), users, fmt.Sprintf("Found %d users matching criteria.", len(users)))
}

func (d *Dispatcher) verifyRoom(ctx context.Context, number, timePhrase string) *envelope.Envelope {
	number = strings.TrimSpace(number)
	if number == "" {
		return envelope.Error("Invalid input: A room number is required.")
	}
	r, err := d.rooms.GetByRoomNumber(ctx, number)
	if err != nil {
		return envelope.FromError(err, "Error retrieving room/ticket info")
	}
	if r == nil {
		return envelope.Error("Room %s not found.", number)
	}

	preds := append([]query.Predicate{query.Eq("room_id", r.ID)}, filter.ParseTimeConstraint(timePhrase, d.now())...)
	tickets, err := d.tickets.Find(ctx, query.New(query.Where(preds...), query.OrderBy(filter.DefaultOrder(vo.EntityTicket))))
	if err != nil {
		return envelope.FromError(err, "Error retrieving room/ticket info")
	}
	if tickets == nil {
		tickets = []*ticket.Ticket{}
	}
	return envelope.Read(envelope.EntityRoomWithTickets, &RoomDetails{Room: r, Tickets: tickets},
		fmt.Sprintf("Details for Room %s.", number))
}

// verifyRooms looks every room up concurrently. The result keeps the
// requested order; entries are either RoomDetails or error envelopes.
func (d *Dispatcher) verifyRooms(ctx context.Context, numbers []string) *envelope.Envelope {
	if len(numbers) == 0 {
		return envelope.Error("Invalid input: A list of room numbers is required.")
	}

	results := make([]*envelope.Envelope, len(numbers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyFanOut)
	for i, number := range numbers {
		if strings.TrimSpace(number) == "" {
			results[i] = envelope.Error("Invalid room number format provided: '%s'", number)
			continue
		}
		g.Go(func() error {
			results[i] = d.verifyRoom(gctx, number, "")
			return nil
		})
	}
	_ = g.Wait()

	var (
		data     = make([]any, 0, len(results))
		found    int
		notFound []string
	)
	for i, res := range results {
		switch res.Type {
		case envelope.TypeReadResults:
			data = append(data, res.Data)
			found++
		case envelope.TypeError:
			data = append(data, res)
			if strings.Contains(strings.ToLower(res.Message), "not found") {
				notFound = append(notFound, strings.TrimSpace(numbers[i]))
			}
		default:
			data = append(data, envelope.Error("Received unexpected result format for room %s.", numbers[i]))
		}
	}

	message := fmt.Sprintf("Fetched details for %d room(s).", found)
	if len(notFound) > 0 {
		message += fmt.Sprintf(" Could not find room(s): %s.", strings.Join(notFound, ", "))
	}
	return envelope.BatchRead(envelope.EntityRoomWithTickets, data, message)
}

func (d *Dispatcher) searchTickets(ctx context.Context, description string) *envelope.Envelope {
	term := strings.TrimSpace(description)
	if term == "" {
		return envelope.Error("Invalid input: A description to search for is required.")
	}
	tickets, err := d.tickets.Find(ctx, query.New(
		query.Where(query.ILike("description", term)),
		query.OrderBy(filter.DefaultOrder(vo.EntityTicket)),
	))
	if err != nil {
		return envelope.FromError(err, "Error searching tickets")
	}
	if len(tickets) == 0 {
		return envelope.Stop("No tickets found matching description '%s'. Please try a different search term.", term)
	}
	return envelope.Search(vo.EntityTicket.String(), tickets,
		fmt.Sprintf("Found %d tickets matching description '%s'.", len(tickets), term))
}

func (d *Dispatcher) listRoomsByStatus(ctx context.Context, status string) *envelope.Envelope {
	st, err := room.ParseStatus(status)
	if err != nil {
		return envelope.Error("Invalid room status '%s'. Valid: %s", status, quoteAll(room.Statuses()))
	}
	rooms, err := d.rooms.Find(ctx, query.New(
		query.Where(query.Eq("room_status", st)),
		query.OrderBy(filter.DefaultOrder(vo.EntityRoom)),
	))
	if err != nil {
		return envelope.FromError(err, "Error listing rooms by status")
	}
	if len(rooms) == 0 {
		return envelope.Stop("No rooms found with status '%s'.", st)
	}
	return envelope.Read(vo.EntityRoom.String(), rooms, fmt.Sprintf("Found %d rooms with status '%s'.", len(rooms), st))
}

func (d *Dispatcher) findUsersByWorkload(ctx context.Context, hasActive bool) *envelope.Envelope {
	users, err := d.users.Find(ctx, query.New(query.OrderBy(filter.DefaultOrder(vo.EntityUser))))
	if err != nil {
		return envelope.FromError(err, "Error finding users by workload")
	}
	busy, err := d.activeAssignees(ctx)
	if err != nil {
		return envelope.FromError(err, "Error finding users by workload")
	}

	verb := "do not have active tickets"
	if hasActive {
		verb = "have active tickets"
	}
	matched := make([]*user.User, 0, len(users))
	for _, u := range users {
		if busy[u.ID] == hasActive {
			matched = append(matched, u)
		}
	}
	if len(matched) == 0 {
		return envelope.Stop("No users found who %s.", verb)
	}
	return envelope.Read(vo.EntityUser.String(), matched, fmt.Sprintf("Found %d users who %s.", len(matched), verb))
}

func (d *Dispatcher) activeAssignees(ctx context.Context) (map[uint]bool, error) {
	tickets, err := d.activeTickets(ctx)
	if err != nil {
		return nil, err
	}
	busy := make(map[uint]bool)
	for _, t := range tickets {
		if t.AssignedTo != nil {
			busy[*t.AssignedTo] = true
		}
	}
	return busy, nil
}

func (d *Dispatcher) activeTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	return d.tickets.Find(ctx, query.New(
		query.Where(query.In("status", ticket.ActiveStatuses())),
		query.OrderBy(filter.DefaultOrder(vo.EntityTicket)),
	))
}

func (d *Dispatcher) summarizeRoomIssues(ctx context.Context) *envelope.Envelope {
	active, err := d.activeTickets(ctx)
	if err != nil {
		return envelope.FromError(err, "Error summarizing room issues")
	}
	byRoom := make(map[uint][]*ticket.Ticket)
	var ids []uint
	for _, t := range active {
		if _, seen := byRoom[t.RoomID]; !seen {
			ids = append(ids, t.RoomID)
		}
		byRoom[t.RoomID] = append(byRoom[t.RoomID], t)
	}
	if len(ids) == 0 {
		return envelope.Stop("No rooms currently have active (Open or In Progress) tickets.")
	}

	rooms, err := d.rooms.ListByIDs(ctx, ids)
	if err != nil {
		return envelope.FromError(err, "Error summarizing room issues")
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	summary := make([]RoomIssues, 0, len(rooms))
	for _, r := range rooms {
		summary = append(summary, RoomIssues{Room: r, ActiveTickets: byRoom[r.ID]})
	}
	if len(summary) == 0 {
		return envelope.Stop("No rooms currently have active (Open or In Progress) tickets.")
	}
	return envelope.Summary(envelope.EntityRoomIssues, summary,
		fmt.Sprintf("Summary of %d rooms with active tickets.", len(summary)))
}

func (d *Dispatcher) summarizeUserWorkloads(ctx context.Context) *envelope.Envelope {
	active, err := d.activeTickets(ctx)
	if err != nil {
		return envelope.FromError(err, "Error summarizing user workloads")
	}
	byUser := make(map[uint][]*ticket.Ticket)
	var ids []uint
	for _, t := range active {
		if t.AssignedTo == nil {
			continue
		}
		id := *t.AssignedTo
		if _, seen := byUser[id]; !seen {
			ids = append(ids, id)
		}
		byUser[id] = append(byUser[id], t)
	}
	if len(ids) == 0 {
		return envelope.Stop("No users currently have active (Open or In Progress) tickets assigned.")
	}

	users, err := d.users.ListByIDs(ctx, ids)
	if err != nil {
		return envelope.FromError(err, "Error summarizing user workloads")
	}
	sort.Slice(users, func(i, j int) bool { return users[i].FullName < users[j].FullName })
	summary := make([]UserWorkload, 0, len(users))
	for _, u := range users {
		summary = append(summary, UserWorkload{User: u, ActiveTickets: byUser[u.ID]})
	}
	if len(summary) == 0 {
		return envelope.Stop("No users currently have active (Open or In Progress) tickets assigned.")
	}
	return envelope.Summary(envelope.EntityUserWorkload, summary,
		fmt.Sprintf("Workload summary for %d users with active tickets.", len(summary)))
}

func (d *Dispatcher) listTicketsByStatus(ctx context.Context, status string) *envelope.Envelope {
	var (
		preds  []query.Predicate
		suffix = " (all statuses)"
	)
	if strings.TrimSpace(status) != "" {
		st, err := ticket.ParseStatus(status)
		if err != nil {
			return envelope.Error("Invalid ticket status '%s'. Valid: %s", status, quoteAll(ticket.Statuses()))
		}
		preds = append(preds, query.Eq("status", st))
		suffix = fmt.Sprintf(" with status '%s'", st)
	}
	tickets, err := d.tickets.Find(ctx, query.New(query.Where(preds...), query.OrderBy(filter.DefaultOrder(vo.EntityTicket))))
	if err != nil {
		return envelope.FromError(err, "Error listing tickets by status")
	}
	if len(tickets) == 0 {
		return envelope.Stop("No tickets found%s.", suffix)
	}
	return envelope.Read(vo.EntityTicket.String(), tickets, fmt.Sprintf("Found %d tickets%s.", len(tickets), suffix))
}

func (d *Dispatcher) listTicketsForUser(ctx context.Context, name string) *envelope.Envelope {
	name = strings.TrimSpace(name)
	if name == "" {
		return envelope.Error("Invalid input: A user name is required.")
	}
	matches, err := d.users.Find(ctx, query.New(
		query.Where(query.ILike("full_name", name)),
		query.OrderBy(filter.DefaultOrder(vo.EntityUser)),
	))
	if err != nil {
		return envelope.FromError(err, "Error listing tickets for user")
	}
	switch len(matches) {
	case 0:
		return envelope.Stop("No user found matching name '%s'.", name)
	case 1:
	default:
		options := make([]string, len(matches))
		for i, u := range matches {
			options[i] = fmt.Sprintf("'%s' (ID: %d)", u.FullName, u.ID)
		}
		return envelope.Clarify("Multiple users found for '%s': %s. Please specify.", name, strings.Join(options, ", "))
	}

	target := matches[0]
	tickets, err := d.tickets.ListForUser(ctx, target.ID)
	if err != nil {
		return envelope.FromError(err, "Error listing tickets for user")
	}
	if len(tickets) == 0 {
		return envelope.Stop("No tickets found associated with user '%s' (ID: %d).", target.FullName, target.ID)
	}
	return envelope.Read(vo.EntityTicket.String(), tickets,
		fmt.Sprintf("Found %d tickets associated with user '%s'.", len(tickets), target.FullName))
}

func (d *Dispatcher) readUserNames(ctx context.Context) *envelope.Envelope {
	users, err := d.users.Find(ctx, query.New(
		query.Columns("id", "full_name", "role"),
		query.OrderBy(filter.DefaultOrder(vo.EntityUser)),
	))
	if err != nil {
		return envelope.FromError(err, "Error reading user names")
	}
	if len(users) == 0 {
		return envelope.Stop("No users found in the system.")
	}
	names := make([]UserName, len(users))
	for i, u := range users {
		names[i] = UserName{ID: u.ID, FullName: u.FullName, Role: u.Role}
	}
	return envelope.Read(envelope.EntityUserSummary, names, fmt.Sprintf("Found %d users.", len(names)))
}

func (d *Dispatcher) getTicketByID(ctx context.Context, id int) *envelope.Envelope {
	if id <= 0 {
		return envelope.Error("Invalid Ticket ID: '%d'. Must be positive integer.", id)
	}
	t, err := d.tickets.GetByID(ctx, uint(id))
	if err != nil {
		return envelope.FromError(err, fmt.Sprintf("Error retrieving ticket %d", id))
	}
	if t == nil {
		return envelope.Stop("No ticket found with ID %d.", id)
	}
	return envelope.Read(vo.EntityTicket.String(), []*ticket.Ticket{t}, fmt.Sprintf("Details for Ticket ID %d.", id))
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func quoteAll[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + string(v) + "'"
	}
	return strings.Join(quoted, ", ")
}
