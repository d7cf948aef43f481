package routes

import (
	"github.com/gin-gonic/gin"

	"hotelops/internal/interfaces/http/handlers"
)

type DashboardRouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
}

func SetupDashboardRoutes(engine *gin.Engine, config *DashboardRouteConfig) {
	engine.GET("/dashboard/summary", config.DashboardHandler.GetSummary)
}
