// Package common holds helpers shared by the entity handlers.
package common

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops/internal/application/mutation"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// Committer is the confirm half of the mutation protocol.
type Committer interface {
	ConfirmCreate(ctx context.Context, kind vo.EntityKind, raw json.RawMessage) (any, error)
	ConfirmUpdate(ctx context.Context, kind vo.EntityKind, id uint, raw json.RawMessage) (any, error)
	ConfirmDelete(ctx context.Context, kind vo.EntityKind, id uint) error
	ConfirmBatchUpdate(ctx context.Context, kind vo.EntityKind, ids []uint, raw json.RawMessage) (*mutation.BatchResult, error)
}

// EntityWriter runs the create/update/delete routes of one collection
// straight through the confirm path.
type EntityWriter struct {
	kind      vo.EntityKind
	committer Committer
	logger    logger.Interface
}

func NewEntityWriter(kind vo.EntityKind, committer Committer, logger logger.Interface) *EntityWriter {
	return &EntityWriter{kind: kind, committer: committer, logger: logger}
}

// ReadBody returns the raw JSON body. Empty or malformed bodies are
// validation errors.
func ReadBody(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, errors.NewBadRequestError("failed to read request body")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.NewValidationError("request body is required")
	}
	if !json.Valid(raw) {
		return nil, errors.NewValidationError("request body must be valid JSON")
	}
	return raw, nil
}

// Create handles a create request and answers 201.
func (w *EntityWriter) Create(c *gin.Context) {
	raw, err := ReadBody(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	created, err := w.committer.ConfirmCreate(c.Request.Context(), w.kind, raw)
	if err != nil {
		w.logger.Warnw("failed to create entity", "entity_type", w.kind, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, created, w.kind.Title()+" created successfully")
}

// Update commits a partial update of the entity named by the param route
// parameter.
func (w *EntityWriter) Update(c *gin.Context, param string) {
	id, err := utils.ParseIDParam(c, param)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	raw, err := ReadBody(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	updated, err := w.committer.ConfirmUpdate(c.Request.Context(), w.kind, id, raw)
	if err != nil {
		w.logger.Warnw("failed to update entity", "entity_type", w.kind, "entity_id", id, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, w.kind.Title()+" updated successfully", updated)
}

// Delete answers 204 once the entity is gone.
func (w *EntityWriter) Delete(c *gin.Context, param string) {
	id, err := utils.ParseIDParam(c, param)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := w.committer.ConfirmDelete(c.Request.Context(), w.kind, id); err != nil {
		w.logger.Warnw("failed to delete entity", "entity_type", w.kind, "entity_id", id, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
