package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelops/internal/infrastructure/config"
	"hotelops/internal/infrastructure/ratelimit"
	"hotelops/internal/interfaces/http/middleware"
	"hotelops/internal/interfaces/http/routes"
	"hotelops/internal/shared/logger"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	container *Container
}

// NewRouter wires all dependencies and registers every route.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	r := &Router{container: c}
	r.SetupRoutes()
	return r, nil
}

// SetupRoutes configures the middleware chain and all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container
	engine := c.engine
	h := c.hdlrs

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(c.log.Named("access")))
	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	engine.GET("/health", h.healthHandler.Health)

	routes.SetupRoomRoutes(engine, &routes.RoomRouteConfig{RoomHandler: h.roomHandler})
	routes.SetupTicketRoutes(engine, &routes.TicketRouteConfig{TicketHandler: h.ticketHandler})
	routes.SetupUserRoutes(engine, &routes.UserRouteConfig{UserHandler: h.userHandler})
	routes.SetupConfirmRoutes(engine, &routes.ConfirmRouteConfig{ConfirmHandler: h.confirmHandler})
	routes.SetupDashboardRoutes(engine, &routes.DashboardRouteConfig{DashboardHandler: h.dashboardHandler})

	queryCfg := &routes.QueryRouteConfig{QueryHandler: h.queryHandler}
	if c.rateLimiter != nil {
		queryCfg.RateLimit = middleware.RateLimit(c.rateLimiter, ratelimit.Policy{
			Limit:  c.cfg.RateLimit.Limit,
			Window: c.cfg.RateLimit.Window(),
		}, c.log.Named("ratelimit"))
	}
	routes.SetupQueryRoutes(engine, queryCfg)
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.container.engine
}

// Shutdown releases the container's connections and background workers.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.container.Shutdown(ctx)
}
