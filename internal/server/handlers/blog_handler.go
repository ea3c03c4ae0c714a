package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

// PipelineRunner is the single operation the manual trigger needs.
type PipelineRunner interface {
	Run(ctx context.Context) (*models.RunReport, error)
}

// BlogHandler exposes the manual pipeline trigger. It invokes the same
// pipeline function the scheduler does.
type BlogHandler struct {
	pipeline PipelineRunner
	logger   *zap.Logger
}

// NewBlogHandler constructs the HTTP handler adapter.
func NewBlogHandler(pipeline PipelineRunner, logger *zap.Logger) *BlogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogHandler{pipeline: pipeline, logger: logger}
}

// Run triggers one pipeline invocation and returns its report.
func (h *BlogHandler) Run(c *gin.Context) {
	report, err := h.pipeline.Run(c.Request.Context())
	if err != nil {
		h.logger.Error("manual blog run failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
