package blog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/config"
	"github.com/akhilreddydanda/noobie/internal/domain/models"
	"github.com/akhilreddydanda/noobie/pkg/clients/github"
)

// Publisher pushes a rendered post to its destination.
type Publisher interface {
	Publish(ctx context.Context, post *models.Post) (*models.PublishResult, error)
}

// GitHubPublisher writes posts into a hosted repository via the contents API:
// look up the existing blob SHA, then create or update the page.
type GitHubPublisher struct {
	client github.Client
	cfg    config.GitHubConfig
	logger *zap.Logger
}

// NewGitHubPublisher wires a publisher for the configured repository.
func NewGitHubPublisher(client github.Client, cfg config.GitHubConfig, logger *zap.Logger) *GitHubPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitHubPublisher{client: client, cfg: cfg, logger: logger}
}

func (p *GitHubPublisher) Publish(ctx context.Context, post *models.Post) (*models.PublishResult, error) {
	path := fmt.Sprintf("%s/%s", p.cfg.PostsDir, post.Filename())

	sha, err := p.client.GetFileSHA(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("check existing post: %w", err)
	}

	action := "Add"
	if sha != "" {
		action = "Update"
	}
	message := fmt.Sprintf("%s blog post: %s", action, post.Title)

	commitSHA, err := p.client.PutFile(ctx, path, post.ToMarkdown(), message, sha)
	if err != nil {
		return nil, fmt.Errorf("publish post: %w", err)
	}

	result := &models.PublishResult{
		Path:      path,
		URL:       fmt.Sprintf("https://github.com/%s/blob/%s/%s", p.cfg.Repo, p.cfg.Branch, path),
		CommitSHA: commitSHA,
	}

	p.logger.Info("post published",
		zap.String("path", path),
		zap.String("action", action),
		zap.String("commit_sha", commitSHA))
	return result, nil
}

// LocalPublisher records the intended page on disk without any network call.
// Used in mock mode.
type LocalPublisher struct {
	outputDir string
	logger    *zap.Logger
}

// NewLocalPublisher wires the mock-mode publisher.
func NewLocalPublisher(outputDir string, logger *zap.Logger) *LocalPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalPublisher{outputDir: outputDir, logger: logger}
}

func (p *LocalPublisher) Publish(_ context.Context, post *models.Post) (*models.PublishResult, error) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(p.outputDir, post.Filename())
	if err := os.WriteFile(path, []byte(post.ToMarkdown()), 0o644); err != nil {
		return nil, fmt.Errorf("write post: %w", err)
	}

	p.logger.Info("post written locally (mock mode)", zap.String("path", path))
	return &models.PublishResult{Path: path, Mock: true}, nil
}
