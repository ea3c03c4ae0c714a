package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

type stubPipeline struct {
	report *models.RunReport
	err    error
}

func (s *stubPipeline) Run(context.Context) (*models.RunReport, error) {
	return s.report, s.err
}

func triggerRun(pipeline PipelineRunner) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	h := NewBlogHandler(pipeline, nil)

	r := gin.New()
	r.POST("/api/blog/run", h.Run)

	req := httptest.NewRequest(http.MethodPost, "/api/blog/run", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBlogRunSuccess(t *testing.T) {
	report := &models.RunReport{Status: models.RunStatusSuccess, ArticleCount: 5, PostTitle: "Daily Briefing"}

	w := triggerRun(&stubPipeline{report: report})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Contains(t, w.Body.String(), `"article_count":5`)
}

func TestBlogRunFailureReturnsReport(t *testing.T) {
	report := &models.RunReport{Status: models.RunStatusFailed, Error: "generate post: api overloaded"}

	w := triggerRun(&stubPipeline{report: report, err: errors.New("generate post: api overloaded")})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"failed"`)
	assert.Contains(t, w.Body.String(), "api overloaded")
}
