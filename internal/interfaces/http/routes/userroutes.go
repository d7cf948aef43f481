package routes

import (
	"github.com/gin-gonic/gin"

	userHandlers "hotelops/internal/interfaces/http/handlers/user"
)

type UserRouteConfig struct {
	UserHandler *userHandlers.UserHandler
}

func SetupUserRoutes(engine *gin.Engine, config *UserRouteConfig) {
	users := engine.Group("/users")
	{
		users.GET("", config.UserHandler.ListUsers)
		users.POST("", config.UserHandler.CreateUser)

		users.GET("/email/:email", config.UserHandler.GetUserByEmail)

		users.GET("/:id", config.UserHandler.GetUser)
		users.PUT("/:id", config.UserHandler.UpdateUser)
		users.PATCH("/:id", config.UserHandler.UpdateUser)
		users.DELETE("/:id", config.UserHandler.DeleteUser)
	}
}
