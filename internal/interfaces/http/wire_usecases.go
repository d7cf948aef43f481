package http

import (
	"fmt"

	"hotelops/internal/application/agent"
	dashboardUsecases "hotelops/internal/application/dashboard/usecases"
	"hotelops/internal/application/mutation"
	roomUsecases "hotelops/internal/application/room/usecases"
	ticketUsecases "hotelops/internal/application/ticket/usecases"
	userUsecases "hotelops/internal/application/user/usecases"
	"hotelops/internal/infrastructure/llm"
	"hotelops/internal/shared/services/markdown"
)

// allUseCases holds the read use cases behind the CRUD routes.
type allUseCases struct {
	listRoomsUC    *roomUsecases.ListRoomsUseCase
	getRoomUC      *roomUsecases.GetRoomUseCase
	listTicketsUC  *ticketUsecases.ListTicketsUseCase
	getTicketUC    *ticketUsecases.GetTicketUseCase
	addCommentUC   *ticketUsecases.AddCommentUseCase
	listCommentsUC *ticketUsecases.ListCommentsUseCase
	listUsersUC    *userUsecases.ListUsersUseCase
	getUserUC      *userUsecases.GetUserUseCase
	getSummaryUC   *dashboardUsecases.GetSummaryUseCase
}

func (c *Container) initServices() error {
	r := c.repos
	c.mutations = mutation.NewService(r.roomRepo, r.ticketRepo, r.userRepo, c.dispatcher, c.log.Named("mutation"))

	tools := agent.NewDispatcher(r.roomRepo, r.ticketRepo, r.userRepo, c.mutations, c.log.Named("tools"))
	a, err := agent.New(llm.NewClient(&c.cfg.Agent, c.log), tools, &c.cfg.Agent, c.log)
	if err != nil {
		return fmt.Errorf("failed to build query agent: %w", err)
	}
	c.agent = a
	return nil
}

func (c *Container) initUseCases() {
	r := c.repos
	md := markdown.NewMarkdownService()

	c.ucs = &allUseCases{
		listRoomsUC:    roomUsecases.NewListRoomsUseCase(r.roomRepo, c.log),
		getRoomUC:      roomUsecases.NewGetRoomUseCase(r.roomRepo, c.log),
		listTicketsUC:  ticketUsecases.NewListTicketsUseCase(r.ticketRepo, c.log),
		getTicketUC:    ticketUsecases.NewGetTicketUseCase(r.ticketRepo, c.log),
		addCommentUC:   ticketUsecases.NewAddCommentUseCase(r.ticketRepo, r.commentRepo, r.userRepo, md, c.log),
		listCommentsUC: ticketUsecases.NewListCommentsUseCase(r.commentRepo, md, c.log),
		listUsersUC:    userUsecases.NewListUsersUseCase(r.userRepo, c.log),
		getUserUC:      userUsecases.NewGetUserUseCase(r.userRepo, c.log),
		getSummaryUC:   dashboardUsecases.NewGetSummaryUseCase(r.roomRepo, r.ticketRepo, r.userRepo, c.log),
	}
}
