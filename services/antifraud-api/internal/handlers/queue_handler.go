package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/messages"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/services"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/views"
	"go.uber.org/zap"
)

// QueueHandler accepts transactions for asynchronous screening. The verdict is published by the worker.
type QueueHandler struct {
	logger    *zap.Logger
	publisher services.CandidatePublisher
}

func NewQueueHandler(logger *zap.Logger, publisher services.CandidatePublisher) *QueueHandler {
	return &QueueHandler{logger: logger, publisher: publisher}
}

func (h *QueueHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/transaction/queue", h.QueueTransaction)
}

func (h *QueueHandler) QueueTransaction(c *gin.Context) {
	var req views.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, invalidBody(err))
		return
	}
	// reject what the worker would dead-letter anyway
	switch {
	case req.Amount <= 0, !screening.IsValidIPv4(req.IP), !screening.IsValidCardNumber(req.Number),
		!models.Region(req.Region).Valid(), req.Date.IsZero():
		respondError(c, h.logger, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid transaction", nil))
		return
	}
	actor := c.GetHeader(pkg.HeaderUsername)
	if actor == "" {
		respondError(c, h.logger, pkg.NewAppError(pkg.ErrRecordNotFoundCode, "user not found", nil))
		return
	}

	requestID := c.GetHeader(pkg.HeaderRequestId)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	err := h.publisher.Publish(c.Request.Context(), messages.Candidate{
		RequestID: requestID,
		Username:  actor,
		Amount:    req.Amount,
		IP:        req.IP,
		Number:    req.Number,
		Region:    req.Region,
		Date:      req.Date.UTC(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, views.QueuedResponse{RequestID: requestID})
}
