package routes

import (
	"github.com/gin-gonic/gin"

	roomHandlers "hotelops/internal/interfaces/http/handlers/room"
)

type RoomRouteConfig struct {
	RoomHandler *roomHandlers.RoomHandler
}

func SetupRoomRoutes(engine *gin.Engine, config *RoomRouteConfig) {
	rooms := engine.Group("/rooms")
	{
		rooms.GET("", config.RoomHandler.ListRooms)
		rooms.POST("", config.RoomHandler.CreateRoom)

		// natural-key lookup before /:id
		rooms.GET("/number/:room_number", config.RoomHandler.GetRoomByNumber)

		rooms.GET("/:id", config.RoomHandler.GetRoom)
		rooms.PUT("/:id", config.RoomHandler.UpdateRoom)
		rooms.PATCH("/:id", config.RoomHandler.UpdateRoom)
		rooms.DELETE("/:id", config.RoomHandler.DeleteRoom)
	}
}
