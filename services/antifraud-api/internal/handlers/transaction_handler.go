package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/screening"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/views"
	"go.uber.org/zap"
)

// TransactionService is the screening surface the handler needs. *screening.Engine implements it.
type TransactionService interface {
	Evaluate(ctx context.Context, c screening.Candidate, actor string) (screening.Evaluation, error)
	SubmitFeedback(ctx context.Context, id int64, feedback string) (models.Transaction, error)
	HistoryAll(ctx context.Context) ([]models.Transaction, error)
	HistoryByCard(ctx context.Context, number string) ([]models.Transaction, error)
	Limits(ctx context.Context) (models.FraudLimits, error)
}

type TransactionHandler struct {
	logger  *zap.Logger
	service TransactionService
}

func NewTransactionHandler(logger *zap.Logger, svc TransactionService) *TransactionHandler {
	return &TransactionHandler{logger: logger, service: svc}
}

func (h *TransactionHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/transaction", h.EvaluateTransaction)
	r.PUT("/transaction", h.SubmitFeedback)
	r.GET("/history", h.GetHistory)
	r.GET("/history/:number", h.GetHistoryByCard)
	r.GET("/limits", h.GetLimits)
}

func (h *TransactionHandler) EvaluateTransaction(c *gin.Context) {
	var req views.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, invalidBody(err))
		return
	}

	eval, err := h.service.Evaluate(c.Request.Context(), screening.Candidate{
		Amount: req.Amount,
		IP:     req.IP,
		Number: req.Number,
		Region: models.Region(req.Region),
		Date:   req.Date.Time,
	}, c.GetHeader(pkg.HeaderUsername))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.VerdictResponse{Result: string(eval.Result), Info: eval.Info()})
}

func (h *TransactionHandler) SubmitFeedback(c *gin.Context) {
	var req views.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, invalidBody(err))
		return
	}

	txn, err := h.service.SubmitFeedback(c.Request.Context(), req.TransactionID, req.Feedback)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.ToTransactionResponse(txn))
}

func (h *TransactionHandler) GetHistory(c *gin.Context) {
	txns, err := h.service.HistoryAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.ToTransactionResponses(txns))
}

func (h *TransactionHandler) GetHistoryByCard(c *gin.Context) {
	txns, err := h.service.HistoryByCard(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.ToTransactionResponses(txns))
}

func (h *TransactionHandler) GetLimits(c *gin.Context) {
	limits, err := h.service.Limits(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.LimitsResponse{MaxAllowed: limits.MaxAllowed, MaxManualProcessing: limits.MaxManualProcessing})
}
