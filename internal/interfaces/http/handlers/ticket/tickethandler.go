package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ticketUsecases "hotelops/internal/application/ticket/usecases"
	vo "hotelops/internal/domain/shared/valueobjects"
	ticketDomain "hotelops/internal/domain/ticket"
	"hotelops/internal/shared/errors"
	"hotelops/internal/interfaces/http/handlers/common"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/utils"
)

// TicketHandler handles ticket and ticket comment HTTP requests
type TicketHandler struct {
	listTicketsUC  listTicketsUseCase
	getTicketUC    getTicketUseCase
	addCommentUC   addCommentUseCase
	listCommentsUC listCommentsUseCase
	writer         *common.EntityWriter
	logger         logger.Interface
}

func NewTicketHandler(
	listTicketsUC listTicketsUseCase,
	getTicketUC getTicketUseCase,
	addCommentUC addCommentUseCase,
	listCommentsUC listCommentsUseCase,
	committer common.Committer,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		addCommentUC:   addCommentUC,
		listCommentsUC: listCommentsUC,
		writer:         common.NewEntityWriter(vo.EntityTicket, committer, logger),
		logger:         logger,
	}
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	page, err := utils.ParseSkipLimit(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tickets, err := h.listTicketsUC.Execute(c.Request.Context(), page)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tickets)
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	t, err := h.getTicketUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", t)
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	h.writer.Create(c)
}

// UpdateTicket handles PUT and PATCH /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	h.writer.Update(c, "id")
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	h.writer.Delete(c, "id")
}

// ListComments handles GET /tickets/:id/comments
func (h *TicketHandler) ListComments(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	comments, err := h.listCommentsUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", comments)
}

// AddComment handles POST /tickets/:id/comments
func (h *TicketHandler) AddComment(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ticketDomain.CommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "ticket_id", id, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	comment, err := h.addCommentUC.Execute(c.Request.Context(), ticketUsecases.AddCommentCommand{
		TicketID: id,
		UserID:   req.UserID,
		Content:  req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, comment, "Comment added successfully")
}
