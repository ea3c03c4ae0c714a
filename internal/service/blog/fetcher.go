package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/config"
	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

// newsSource is the search operation both news clients share.
type newsSource interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Article, error)
}

// ArticleFetcher produces the bounded article list the pipeline starts from.
type ArticleFetcher interface {
	FetchArticles(ctx context.Context) ([]models.Article, error)
}

// Fetcher aggregates articles per configured category: GNews first, Google
// News RSS when GNews is unavailable or thin, mock articles as the last
// resort in mock mode. Results are deduplicated, capped and cached to disk
// so a later run with every source down can still proceed.
type Fetcher struct {
	primary  newsSource // nil when no API key is configured
	fallback newsSource
	cfg      config.NewsConfig
	mockMode bool
	logger   *zap.Logger

	now func() time.Time
}

// NewFetcher wires a new article fetcher.
func NewFetcher(primary, fallback newsSource, cfg config.NewsConfig, mockMode bool, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		primary:  primary,
		fallback: fallback,
		cfg:      cfg,
		mockMode: mockMode,
		logger:   logger,
		now:      time.Now,
	}
}

const perCategoryResults = 3

// FetchArticles gathers, deduplicates and caps the article list.
func (f *Fetcher) FetchArticles(ctx context.Context) ([]models.Article, error) {
	var all []models.Article

	for _, category := range f.cfg.Categories {
		categoryArticles := f.fetchCategory(ctx, category)
		all = append(all, categoryArticles...)
	}

	unique := models.DeduplicateArticles(all)
	if len(unique) > f.cfg.MaxArticles {
		unique = unique[:f.cfg.MaxArticles]
	}

	if len(unique) > 0 {
		if err := f.saveCache(unique); err != nil {
			f.logger.Warn("failed to cache articles", zap.Error(err))
		}
		f.logger.Info("articles fetched",
			zap.Int("total", len(all)),
			zap.Int("after_dedup", len(unique)),
			zap.Strings("categories", f.cfg.Categories))
		return unique, nil
	}

	cached, err := f.loadCache()
	if err == nil && len(cached) > 0 {
		f.logger.Warn("all news sources failed, using cached articles", zap.Int("count", len(cached)))
		return cached, nil
	}

	if f.mockMode {
		f.logger.Warn("all news sources failed, using mock articles")
		return f.mockArticles(), nil
	}

	return nil, fmt.Errorf("no articles available from any source")
}

func (f *Fetcher) fetchCategory(ctx context.Context, category string) []models.Article {
	var articles []models.Article

	if f.primary != nil {
		fetched, err := f.primary.Search(ctx, category, perCategoryResults)
		if err != nil {
			f.logger.Warn("gnews fetch failed", zap.String("category", category), zap.Error(err))
		} else {
			articles = append(articles, fetched...)
		}
	}

	if len(articles) < 2 && f.fallback != nil {
		fetched, err := f.fallback.Search(ctx, category, perCategoryResults)
		if err != nil {
			f.logger.Warn("rss fallback failed", zap.String("category", category), zap.Error(err))
		} else {
			articles = append(articles, fetched...)
		}
	}

	if len(articles) == 0 && f.mockMode {
		articles = mockCategoryArticles(category, 2)
	}

	return articles
}

// mockArticles builds a deterministic article list covering every configured
// category.
func (f *Fetcher) mockArticles() []models.Article {
	var articles []models.Article
	for _, category := range f.cfg.Categories {
		articles = append(articles, mockCategoryArticles(category, 2)...)
	}
	if len(articles) > f.cfg.MaxArticles {
		articles = articles[:f.cfg.MaxArticles]
	}
	return articles
}

func mockCategoryArticles(category string, count int) []models.Article {
	templates := []models.Article{
		{
			Title:   fmt.Sprintf("Breaking: Major Development in %s", category),
			Summary: fmt.Sprintf("Recent developments in %s show significant changes that could impact global markets and policy decisions.", category),
			Source:  "Mock News Network",
		},
		{
			Title:   fmt.Sprintf("%s Trends Show Positive Growth", category),
			Summary: fmt.Sprintf("Analysis of current %s trends indicates sustained growth and positive outlook for the coming months.", category),
			Source:  "Global Analysis Today",
		},
		{
			Title:   fmt.Sprintf("Expert Commentary on %s Developments", category),
			Summary: fmt.Sprintf("Leading experts weigh in on recent %s developments and their potential implications.", category),
			Source:  "Expert Insights",
		},
	}

	if count > len(templates) {
		count = len(templates)
	}

	articles := make([]models.Article, 0, count)
	for i := 0; i < count; i++ {
		article := templates[i]
		article.URL = fmt.Sprintf("https://mock-news.example/%s-%d", models.Slugify(category), i+1)
		article.Category = category
		articles = append(articles, article)
	}
	return articles
}

type articleCache struct {
	Timestamp string           `json:"timestamp"`
	Count     int              `json:"count"`
	Articles  []models.Article `json:"articles"`
}

func (f *Fetcher) cachePath() string {
	name := fmt.Sprintf("news_cache_%s.json", f.now().UTC().Format(models.DayLayout))
	return filepath.Join(f.cfg.CacheDir, name)
}

func (f *Fetcher) saveCache(articles []models.Article) error {
	if f.cfg.CacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(f.cfg.CacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	payload := articleCache{
		Timestamp: f.now().UTC().Format(time.RFC3339),
		Count:     len(articles),
		Articles:  articles,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal article cache: %w", err)
	}

	return os.WriteFile(f.cachePath(), data, 0o644)
}

func (f *Fetcher) loadCache() ([]models.Article, error) {
	if f.cfg.CacheDir == "" {
		return nil, fmt.Errorf("cache dir not configured")
	}

	data, err := os.ReadFile(f.cachePath())
	if err != nil {
		return nil, err
	}

	var payload articleCache
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal article cache: %w", err)
	}
	return payload.Articles, nil
}
