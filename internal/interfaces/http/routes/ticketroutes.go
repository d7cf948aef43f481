package routes

import (
	"github.com/gin-gonic/gin"

	ticketHandlers "hotelops/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *ticketHandlers.TicketHandler
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	{
		tickets.GET("", config.TicketHandler.ListTickets)
		tickets.POST("", config.TicketHandler.CreateTicket)

		tickets.GET("/:id/comments", config.TicketHandler.ListComments)
		tickets.POST("/:id/comments", config.TicketHandler.AddComment)

		tickets.GET("/:id", config.TicketHandler.GetTicket)
		tickets.PUT("/:id", config.TicketHandler.UpdateTicket)
		tickets.PATCH("/:id", config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", config.TicketHandler.DeleteTicket)
	}
}
