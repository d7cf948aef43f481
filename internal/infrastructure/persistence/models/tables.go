package models

const (
	TableRooms    = "rooms"
	TableUsers    = "users"
	TableTickets  = "tickets"
	TableComments = "ticket_comments"
)

// All returns one zero value per table, keyed by table name.
func All() map[string]any {
	return map[string]any{
		TableRooms:    &RoomModel{},
		TableUsers:    &UserModel{},
		TableTickets:  &TicketModel{},
		TableComments: &CommentModel{},
	}
}
