package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUsecases "hotelops/internal/application/user/usecases"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/interfaces/http/handlers/common"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// UserHandler handles staff user HTTP requests
type UserHandler struct {
	listUsersUC listUsersUseCase
	getUserUC   getUserUseCase
	writer      *common.EntityWriter
	logger      logger.Interface
}

func NewUserHandler(
	listUsersUC listUsersUseCase,
	getUserUC getUserUseCase,
	committer common.Committer,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC: listUsersUC,
		getUserUC:   getUserUC,
		writer:      common.NewEntityWriter(vo.EntityUser, committer, logger),
		logger:      logger,
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := utils.ParseSkipLimit(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	users, err := h.listUsersUC.Execute(c.Request.Context(), page)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	u, err := h.getUserUC.Execute(c.Request.Context(), userUsecases.GetUserQuery{ID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", u)
}

// GetUserByEmail handles GET /users/email/:email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	u, err := h.getUserUC.Execute(c.Request.Context(), userUsecases.GetUserQuery{Email: c.Param("email")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", u)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	h.writer.Create(c)
}

// UpdateUser handles PUT and PATCH /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	h.writer.Update(c, "id")
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	h.writer.Delete(c, "id")
}
