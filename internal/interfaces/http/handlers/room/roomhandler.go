package room

import (
	"net/http"

	"github.com/gin-gonic/gin"

	roomUsecases "hotelops/internal/application/room/usecases"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/interfaces/http/handlers/common"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// RoomHandler handles room HTTP requests
type RoomHandler struct {
	listRoomsUC listRoomsUseCase
	getRoomUC   getRoomUseCase
	writer      *common.EntityWriter
	logger      logger.Interface
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(
	listRoomsUC listRoomsUseCase,
	getRoomUC getRoomUseCase,
	committer common.Committer,
	logger logger.Interface,
) *RoomHandler {
	return &RoomHandler{
		listRoomsUC: listRoomsUC,
		getRoomUC:   getRoomUC,
		writer:      common.NewEntityWriter(vo.EntityRoom, committer, logger),
		logger:      logger,
	}
}

// ListRooms handles GET /rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	page, err := utils.ParseSkipLimit(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	rooms, err := h.listRoomsUC.Execute(c.Request.Context(), page)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", rooms)
}

// GetRoom handles GET /rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	r, err := h.getRoomUC.Execute(c.Request.Context(), roomUsecases.GetRoomQuery{ID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", r)
}

// GetRoomByNumber handles GET /rooms/number/:room_number
func (h *RoomHandler) GetRoomByNumber(c *gin.Context) {
	number := c.Param("room_number")

	r, err := h.getRoomUC.Execute(c.Request.Context(), roomUsecases.GetRoomQuery{RoomNumber: number})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", r)
}

// CreateRoom handles POST /rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	h.writer.Create(c)
}

// UpdateRoom handles PUT and PATCH /rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	h.writer.Update(c, "id")
}

// DeleteRoom handles DELETE /rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	h.writer.Delete(c, "id")
}
