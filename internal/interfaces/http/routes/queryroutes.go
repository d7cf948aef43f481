package routes

import (
	"github.com/gin-gonic/gin"

	"hotelops/internal/interfaces/http/handlers"
)

type QueryRouteConfig struct {
	QueryHandler *handlers.QueryHandler
	// RateLimit is optional.
	RateLimit gin.HandlerFunc
}

func SetupQueryRoutes(engine *gin.Engine, config *QueryRouteConfig) {
	chain := []gin.HandlerFunc{}
	if config.RateLimit != nil {
		chain = append(chain, config.RateLimit)
	}
	chain = append(chain, config.QueryHandler.Query)
	engine.POST("/query", chain...)
}
