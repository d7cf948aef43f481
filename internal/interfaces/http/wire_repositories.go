package http

import (
	"time"

	"hotelops/internal/domain/room"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/infrastructure/persistence/models"
	"hotelops/internal/infrastructure/repository"
)

const (
	redisPingTimeout = 2 * time.Second
	eventBufferSize  = 256
)

// repositories holds the repository instances shared by the use cases, the
// mutation service and the agent tools.
type repositories struct {
	roomRepo    room.Repository
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
}

func modelsForStore() map[string]any {
	return models.All()
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		roomRepo:    repository.NewRoomRepository(c.store),
		ticketRepo:  repository.NewTicketRepository(c.store),
		commentRepo: repository.NewCommentRepository(c.store),
		userRepo:    repository.NewUserRepository(c.store),
	}
}
