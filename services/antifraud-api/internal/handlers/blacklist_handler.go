package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/nimeshabuddhika/resilient-antifraud/services/antifraud-api/internal/views"
	"go.uber.org/zap"
)

// BlacklistService is implemented by *screening.BlacklistService.
type BlacklistService interface {
	AddSuspiciousIP(ctx context.Context, ip string) (models.SuspiciousIP, error)
	RemoveSuspiciousIP(ctx context.Context, ip string) error
	ListSuspiciousIPs(ctx context.Context) ([]models.SuspiciousIP, error)
	AddStolenCard(ctx context.Context, number string) (models.StolenCard, error)
	RemoveStolenCard(ctx context.Context, number string) error
	ListStolenCards(ctx context.Context) ([]models.StolenCard, error)
}

type BlacklistHandler struct {
	logger  *zap.Logger
	service BlacklistService
}

func NewBlacklistHandler(logger *zap.Logger, svc BlacklistService) *BlacklistHandler {
	return &BlacklistHandler{logger: logger, service: svc}
}

func (h *BlacklistHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/suspicious-ip", h.AddSuspiciousIP)
	r.DELETE("/suspicious-ip/:ip", h.RemoveSuspiciousIP)
	r.GET("/suspicious-ip", h.ListSuspiciousIPs)
	r.POST("/stolencard", h.AddStolenCard)
	r.DELETE("/stolencard/:number", h.RemoveStolenCard)
	r.GET("/stolencard", h.ListStolenCards)
}

func (h *BlacklistHandler) AddSuspiciousIP(c *gin.Context) {
	var req views.SuspiciousIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, invalidBody(err))
		return
	}
	entry, err := h.service.AddSuspiciousIP(c.Request.Context(), req.IP)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.SuspiciousIPResponse{ID: entry.ID, IP: entry.IP})
}

func (h *BlacklistHandler) RemoveSuspiciousIP(c *gin.Context) {
	ip := c.Param("ip")
	if err := h.service.RemoveSuspiciousIP(c.Request.Context(), ip); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.StatusResponse{Status: fmt.Sprintf("IP %s successfully removed!", ip)})
}

func (h *BlacklistHandler) ListSuspiciousIPs(c *gin.Context) {
	entries, err := h.service.ListSuspiciousIPs(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	out := make([]views.SuspiciousIPResponse, len(entries))
	for i, e := range entries {
		out[i] = views.SuspiciousIPResponse{ID: e.ID, IP: e.IP}
	}
	c.JSON(http.StatusOK, out)
}

func (h *BlacklistHandler) AddStolenCard(c *gin.Context) {
	var req views.StolenCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, invalidBody(err))
		return
	}
	entry, err := h.service.AddStolenCard(c.Request.Context(), req.Number)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.StolenCardResponse{ID: entry.ID, Number: entry.Number})
}

func (h *BlacklistHandler) RemoveStolenCard(c *gin.Context) {
	number := c.Param("number")
	if err := h.service.RemoveStolenCard(c.Request.Context(), number); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views.StatusResponse{Status: fmt.Sprintf("Card %s successfully removed!", number)})
}

func (h *BlacklistHandler) ListStolenCards(c *gin.Context) {
	entries, err := h.service.ListStolenCards(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	out := make([]views.StolenCardResponse, len(entries))
	for i, e := range entries {
		out[i] = views.StolenCardResponse{ID: e.ID, Number: e.Number}
	}
	c.JSON(http.StatusOK, out)
}
