package blog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

// Pipeline is the linear fetch -> generate -> publish procedure. Any stage
// failure ends the run; there is no partial-completion recovery.
type Pipeline struct {
	fetcher   ArticleFetcher
	generator PostGenerator
	publisher Publisher
	logger    *zap.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(fetcher ArticleFetcher, generator PostGenerator, publisher Publisher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fetcher:   fetcher,
		generator: generator,
		publisher: publisher,
		logger:    logger,
	}
}

// Run executes one pipeline invocation and returns its report. The report is
// always populated; the error mirrors the report's failure status for
// callers that branch on it.
func (p *Pipeline) Run(ctx context.Context) (*models.RunReport, error) {
	report := &models.RunReport{StartedAt: time.Now().UTC()}

	fail := func(stage string, err error) (*models.RunReport, error) {
		wrapped := fmt.Errorf("%s: %w", stage, err)
		report.Status = models.RunStatusFailed
		report.Error = wrapped.Error()
		report.FinishedAt = time.Now().UTC()
		p.logger.Error("pipeline run failed", zap.String("stage", stage), zap.Error(err))
		return report, wrapped
	}

	p.logger.Info("starting blog pipeline run")

	articles, err := p.fetcher.FetchArticles(ctx)
	if err != nil {
		return fail("fetch articles", err)
	}
	report.ArticleCount = len(articles)

	post, err := p.generator.GeneratePost(ctx, articles)
	if err != nil {
		return fail("generate post", err)
	}
	report.PostTitle = post.Title

	result, err := p.publisher.Publish(ctx, post)
	if err != nil {
		return fail("publish post", err)
	}
	report.Publish = result

	report.Status = models.RunStatusSuccess
	report.FinishedAt = time.Now().UTC()

	p.logger.Info("blog pipeline run completed",
		zap.Int("articles", report.ArticleCount),
		zap.String("title", report.PostTitle),
		zap.String("path", result.Path),
		zap.Bool("mock", result.Mock),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))

	return report, nil
}
