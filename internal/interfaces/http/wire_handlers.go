package http

import (
	"context"

	"hotelops/internal/interfaces/http/handlers"
	roomHandlers "hotelops/internal/interfaces/http/handlers/room"
	ticketHandlers "hotelops/internal/interfaces/http/handlers/ticket"
	userHandlers "hotelops/internal/interfaces/http/handlers/user"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	roomHandler      *roomHandlers.RoomHandler
	ticketHandler    *ticketHandlers.TicketHandler
	userHandler      *userHandlers.UserHandler
	confirmHandler   *handlers.ConfirmHandler
	queryHandler     *handlers.QueryHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log.Named("http")

	c.hdlrs = &allHandlers{
		roomHandler:      roomHandlers.NewRoomHandler(u.listRoomsUC, u.getRoomUC, c.mutations, log),
		ticketHandler:    ticketHandlers.NewTicketHandler(u.listTicketsUC, u.getTicketUC, u.addCommentUC, u.listCommentsUC, c.mutations, log),
		userHandler:      userHandlers.NewUserHandler(u.listUsersUC, u.getUserUC, c.mutations, log),
		confirmHandler:   handlers.NewConfirmHandler(c.mutations, log),
		queryHandler:     handlers.NewQueryHandler(c.agent, log),
		dashboardHandler: handlers.NewDashboardHandler(u.getSummaryUC, log),
		healthHandler:    handlers.NewHealthHandler(c.healthChecks(), log),
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// healthChecks covers the connections this process owns. The PostgREST
// backend is remote and is not probed.
func (c *Container) healthChecks() map[string]handlers.Pinger {
	checks := make(map[string]handlers.Pinger)
	if c.db != nil {
		checks["database"] = pingFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}
	if c.redis != nil {
		checks["redis"] = pingFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}
	return checks
}
