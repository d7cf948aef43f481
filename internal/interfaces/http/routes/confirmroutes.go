package routes

import (
	"github.com/gin-gonic/gin"

	"hotelops/internal/interfaces/http/handlers"
)

type ConfirmRouteConfig struct {
	ConfirmHandler *handlers.ConfirmHandler
}

// SetupConfirmRoutes registers the commit half of the two-phase mutation
// protocol.
func SetupConfirmRoutes(engine *gin.Engine, config *ConfirmRouteConfig) {
	confirm := engine.Group("/confirm")
	{
		confirm.POST("/create/:entity", config.ConfirmHandler.ConfirmCreate)
		confirm.PUT("/update/:entity/:id", config.ConfirmHandler.ConfirmUpdate)
		confirm.DELETE("/delete/:entity/:id", config.ConfirmHandler.ConfirmDelete)
		confirm.PUT("/batch_update/:entity_type", config.ConfirmHandler.ConfirmBatchUpdate)
	}
}
