package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops/internal/application/envelope"
	"hotelops/internal/shared/logger"
)

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// QueryHandler answers free-text requests. The response body is always a
// bare envelope, never the APIResponse wrapper.
type QueryHandler struct {
	agent  queryRunner
	logger logger.Interface
}

func NewQueryHandler(agent queryRunner, logger logger.Interface) *QueryHandler {
	return &QueryHandler{agent: agent, logger: logger}
}

// Query handles POST /query
func (h *QueryHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for query", "error", err)
		c.JSON(http.StatusBadRequest, envelope.Error("Invalid request: a non-empty 'query' field is required."))
		return
	}

	env := h.agent.Run(c.Request.Context(), req.Query)
	h.logger.Infow("query answered", "type", env.Type, "entity_type", env.EntityType)
	c.JSON(http.StatusOK, env)
}
