package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/interfaces/http/handlers/common"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// BatchUpdateRequest is the body of PUT /confirm/batch_update/:entity_type.
type BatchUpdateRequest struct {
	IDs     []uint          `json:"ids" binding:"required,min=1"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// ConfirmHandler commits changes staged by a confirmation_required envelope.
type ConfirmHandler struct {
	committer common.Committer
	logger    logger.Interface
}

func NewConfirmHandler(committer common.Committer, logger logger.Interface) *ConfirmHandler {
	return &ConfirmHandler{committer: committer, logger: logger}
}

func parseKind(c *gin.Context, param string) (vo.EntityKind, error) {
	kind, err := vo.ParseEntityKind(c.Param(param))
	if err != nil {
		return "", errors.NewValidationError(
			"Invalid entity type '" + c.Param(param) + "'. Valid types are 'room', 'ticket', 'user'.")
	}
	return kind, nil
}

// ConfirmCreate handles POST /confirm/create/:entity
func (h *ConfirmHandler) ConfirmCreate(c *gin.Context) {
	kind, err := parseKind(c, "entity")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	common.NewEntityWriter(kind, h.committer, h.logger).Create(c)
}

// ConfirmUpdate handles PUT /confirm/update/:entity/:id
func (h *ConfirmHandler) ConfirmUpdate(c *gin.Context) {
	kind, err := parseKind(c, "entity")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	common.NewEntityWriter(kind, h.committer, h.logger).Update(c, "id")
}

// ConfirmDelete handles DELETE /confirm/delete/:entity/:id
func (h *ConfirmHandler) ConfirmDelete(c *gin.Context) {
	kind, err := parseKind(c, "entity")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	common.NewEntityWriter(kind, h.committer, h.logger).Delete(c, "id")
}

// ConfirmBatchUpdate handles PUT /confirm/batch_update/:entity_type
func (h *ConfirmHandler) ConfirmBatchUpdate(c *gin.Context) {
	kind, err := parseKind(c, "entity_type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req BatchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for batch update", "entity_type", kind, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.committer.ConfirmBatchUpdate(c.Request.Context(), kind, req.IDs, req.Payload)
	if err != nil {
		h.logger.Warnw("batch update failed", "entity_type", kind, "ids", len(req.IDs), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}
