package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

func (b *BaseHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", b.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (b *BaseHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// respondError renders err in the standard error envelope.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	traceID, _ := utils.GetTraceID(c)
	resp := pkg.ToErrorResponse(logger, traceID, err)
	c.AbortWithStatusJSON(resp.Status, resp)
}

func invalidBody(err error) error {
	return pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err)
}
