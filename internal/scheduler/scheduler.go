package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/config"
	"github.com/akhilreddydanda/noobie/internal/domain/models"
	"github.com/akhilreddydanda/noobie/internal/service/blog"
	"github.com/akhilreddydanda/noobie/internal/service/reporting"
)

// Scheduler manages the timed invocations: the daily blog pipeline run and,
// when Sheets is configured, the weekly nutrition export.
type Scheduler struct {
	cron         *cron.Cron
	pipeline     *blog.Pipeline
	reportingSvc *reporting.Service // nil when sheets export is disabled
	cfg          *config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance in the configured timezone.
func NewScheduler(cfg *config.Config, pipeline *blog.Pipeline, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Blog.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Blog.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		pipeline:     pipeline,
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("blog_schedule", s.cfg.Blog.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Blog.CronSchedule, s.runBlogPipeline); err != nil {
		s.logger.Error("failed to schedule blog pipeline", zap.Error(err))
	}

	if s.reportingSvc != nil {
		if _, err := s.cron.AddFunc(s.cfg.Sheets.ExportCron, s.runWeeklyExport); err != nil {
			s.logger.Error("failed to schedule weekly export", zap.Error(err))
		} else {
			s.logger.Info("weekly nutrition export scheduled", zap.String("schedule", s.cfg.Sheets.ExportCron))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runBlogPipeline() {
	s.logger.Info("scheduled blog pipeline run triggered")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := s.pipeline.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled blog run failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("status", report.Status),
		zap.Int("articles", report.ArticleCount),
		zap.String("title", report.PostTitle),
	}
	if report.Publish != nil {
		fields = append(fields, zap.String("path", report.Publish.Path))
	}
	if report.Status == models.RunStatusSuccess {
		s.logger.Info("scheduled blog run completed", fields...)
	}
}

func (s *Scheduler) runWeeklyExport() {
	s.logger.Info("weekly nutrition export triggered")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := s.reportingSvc.ExportWeek(ctx, time.Now())
	if err != nil {
		s.logger.Error("weekly nutrition export failed", zap.Error(err))
		return
	}
	s.logger.Info("weekly nutrition export completed", zap.String("summary", summary))
}
