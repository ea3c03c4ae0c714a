package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

type stubFetcher struct {
	articles []models.Article
	err      error
}

func (s *stubFetcher) FetchArticles(context.Context) ([]models.Article, error) {
	return s.articles, s.err
}

type stubGenerator struct {
	post   *models.Post
	err    error
	called bool
}

func (s *stubGenerator) GeneratePost(_ context.Context, _ []models.Article) (*models.Post, error) {
	s.called = true
	return s.post, s.err
}

type stubPublisher struct {
	result *models.PublishResult
	err    error
	called bool
}

func (s *stubPublisher) Publish(_ context.Context, _ *models.Post) (*models.PublishResult, error) {
	s.called = true
	return s.result, s.err
}

func testArticles() []models.Article {
	return []models.Article{
		{Title: "Markets rally", Summary: "Stocks close higher.", Category: "economy"},
		{Title: "New chip unveiled", Summary: "Faster and cooler.", Category: "technology"},
	}
}

func TestPipelineRunSuccess(t *testing.T) {
	fetcher := &stubFetcher{articles: testArticles()}
	generator := &stubGenerator{post: &models.Post{Title: "Daily Briefing"}}
	publisher := &stubPublisher{result: &models.PublishResult{Path: "_posts/2026-08-24-daily-briefing.md", CommitSHA: "abc123"}}

	pipeline := NewPipeline(fetcher, generator, publisher, nil)
	report, err := pipeline.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.RunStatusSuccess, report.Status)
	assert.Equal(t, 2, report.ArticleCount)
	assert.Equal(t, "Daily Briefing", report.PostTitle)
	require.NotNil(t, report.Publish)
	assert.Equal(t, "abc123", report.Publish.CommitSHA)
	assert.Empty(t, report.Error)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestPipelineRunFetchFailureAbortsRun(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("all sources down")}
	generator := &stubGenerator{}
	publisher := &stubPublisher{}

	pipeline := NewPipeline(fetcher, generator, publisher, nil)
	report, err := pipeline.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, models.RunStatusFailed, report.Status)
	assert.Contains(t, report.Error, "fetch articles")
	assert.False(t, generator.called, "generator must not run after a fetch failure")
	assert.False(t, publisher.called, "publisher must not run after a fetch failure")
}

func TestPipelineRunGenerateFailureSkipsPublish(t *testing.T) {
	fetcher := &stubFetcher{articles: testArticles()}
	generator := &stubGenerator{err: errors.New("api overloaded")}
	publisher := &stubPublisher{}

	pipeline := NewPipeline(fetcher, generator, publisher, nil)
	report, err := pipeline.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, models.RunStatusFailed, report.Status)
	assert.Equal(t, 2, report.ArticleCount)
	assert.Contains(t, report.Error, "generate post")
	assert.False(t, publisher.called, "publisher must not run after a generation failure")
}

func TestPipelineRunPublishFailure(t *testing.T) {
	fetcher := &stubFetcher{articles: testArticles()}
	generator := &stubGenerator{post: &models.Post{Title: "Daily Briefing"}}
	publisher := &stubPublisher{err: errors.New("403 forbidden")}

	pipeline := NewPipeline(fetcher, generator, publisher, nil)
	report, err := pipeline.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, models.RunStatusFailed, report.Status)
	assert.Equal(t, "Daily Briefing", report.PostTitle)
	assert.Contains(t, report.Error, "publish post")
	assert.Nil(t, report.Publish)
}
