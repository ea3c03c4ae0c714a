package main

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/config"
	"github.com/akhilreddydanda/noobie/internal/repository/gormdb"
	"github.com/akhilreddydanda/noobie/internal/repository/sheets"
	"github.com/akhilreddydanda/noobie/internal/scheduler"
	"github.com/akhilreddydanda/noobie/internal/server/handlers"
	"github.com/akhilreddydanda/noobie/internal/server/router"
	blogsvc "github.com/akhilreddydanda/noobie/internal/service/blog"
	reportingsvc "github.com/akhilreddydanda/noobie/internal/service/reporting"
	trackersvc "github.com/akhilreddydanda/noobie/internal/service/tracker"
	"github.com/akhilreddydanda/noobie/pkg/clients/anthropic"
	"github.com/akhilreddydanda/noobie/pkg/clients/github"
	"github.com/akhilreddydanda/noobie/pkg/clients/gnews"
	"github.com/akhilreddydanda/noobie/pkg/clients/googlenews"
	"github.com/akhilreddydanda/noobie/pkg/logger"
)

//go:embed web/index.html
var indexHTML []byte

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	location, err := time.LoadLocation(cfg.Blog.Timezone)
	if err != nil {
		baseLogger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Blog.Timezone))
		location = time.UTC
	}

	repo, err := gormdb.New(cfg.Database)
	if err != nil {
		baseLogger.Fatal("failed to init database repository", zap.Error(err))
	}

	trackerService := trackersvc.NewService(repo, cfg.Tracker.DefaultProteinTarget, location, baseLogger.Named("svc.tracker"))

	// News clients: GNews when a key is configured, Google News RSS as the
	// keyless fallback.
	var primarySource *gnews.APIClient
	if cfg.News.APIKey != "" {
		primarySource = gnews.NewClient(cfg.News.APIKey)
	} else {
		baseLogger.Warn("news api key missing, relying on rss fallback")
	}

	fetcher := newFetcher(primarySource, cfg, baseLogger)

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, post generation runs in mock mode")
	}
	writer := blogsvc.NewWriter(aiClient, cfg.Blog, cfg.Blog.MockMode, baseLogger.Named("svc.blog.writer"))

	var publisher blogsvc.Publisher
	if cfg.Blog.MockMode {
		publisher = blogsvc.NewLocalPublisher(cfg.Blog.OutputDir, baseLogger.Named("svc.blog.publisher"))
		baseLogger.Info("mock mode enabled, posts are written locally", zap.String("dir", cfg.Blog.OutputDir))
	} else {
		ghClient := github.NewClient(cfg.GitHub.Token, cfg.GitHub.Repo, cfg.GitHub.Branch)
		publisher = blogsvc.NewGitHubPublisher(ghClient, cfg.GitHub, baseLogger.Named("svc.blog.publisher"))
	}

	pipeline := blogsvc.NewPipeline(fetcher, writer, publisher, baseLogger.Named("svc.blog"))

	var reportingService *reportingsvc.Service
	if cfg.SheetsEnabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingService = reportingsvc.NewService(repo, sheetsRepo, baseLogger.Named("svc.reporting"))
		baseLogger.Info("weekly nutrition export enabled")
	}

	trackerHandler := handlers.NewTrackerHandler(trackerService, baseLogger.Named("handlers.tracker"))
	blogHandler := handlers.NewBlogHandler(pipeline, baseLogger.Named("handlers.blog"))
	engine := router.New(trackerHandler, blogHandler, indexHTML, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg, pipeline, reportingService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newFetcher builds the article fetcher without handing a typed-nil interface
// to the pipeline when GNews is not configured.
func newFetcher(primary *gnews.APIClient, cfg *config.Config, baseLogger *zap.Logger) *blogsvc.Fetcher {
	fetcherLogger := baseLogger.Named("svc.blog.fetcher")
	rss := googlenews.NewClient()
	if primary == nil {
		return blogsvc.NewFetcher(nil, rss, cfg.News, cfg.Blog.MockMode, fetcherLogger)
	}
	return blogsvc.NewFetcher(primary, rss, cfg.News, cfg.Blog.MockMode, fetcherLogger)
}
