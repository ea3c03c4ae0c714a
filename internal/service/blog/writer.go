package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akhilreddydanda/noobie/internal/config"
	"github.com/akhilreddydanda/noobie/internal/domain/models"
	"github.com/akhilreddydanda/noobie/pkg/clients/anthropic"
)

// PostGenerator turns an article list into a publishable post.
type PostGenerator interface {
	GeneratePost(ctx context.Context, articles []models.Article) (*models.Post, error)
}

const systemPrompt = `You are NOOBIE AI, an intelligent blog writer that creates thoughtful, engaging daily blog posts about global news and trends.

Your writing style:
- Clear, analytical and accessible to a general audience
- Structured with markdown headings per theme
- Balanced: summarize developments, note implications, avoid sensationalism
- Close with a short forward-looking conclusion

Always produce a complete markdown article starting with a single H1 title.`

// Writer generates posts via the Anthropic messages API, falling back to a
// deterministic placeholder in mock mode. Any API failure aborts the run;
// there is no retry beyond what the HTTP client does.
type Writer struct {
	ai       anthropic.Client // nil in mock mode
	cfg      config.BlogConfig
	mockMode bool
	logger   *zap.Logger

	now func() time.Time
}

// NewWriter wires a new post generator.
func NewWriter(ai anthropic.Client, cfg config.BlogConfig, mockMode bool, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		ai:       ai,
		cfg:      cfg,
		mockMode: mockMode,
		logger:   logger,
		now:      time.Now,
	}
}

// GeneratePost produces the day's post from the fetched articles.
func (w *Writer) GeneratePost(ctx context.Context, articles []models.Article) (*models.Post, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles to generate from")
	}

	var content string
	if w.mockMode || w.ai == nil {
		content = w.mockContent(articles)
		w.logger.Info("generated mock blog content", zap.Int("articles", len(articles)))
	} else {
		generated, err := w.ai.Complete(ctx, systemPrompt, w.contentPrompt(articles))
		if err != nil {
			return nil, fmt.Errorf("generate post: %w", err)
		}
		content = strings.TrimSpace(generated)
		if content == "" {
			return nil, fmt.Errorf("generate post: empty content returned")
		}
	}

	post := w.parsePost(content, articles)
	w.logger.Info("blog post generated",
		zap.String("title", post.Title),
		zap.Int("word_count", post.WordCount))
	return post, nil
}

func (w *Writer) contentPrompt(articles []models.Article) string {
	currentDate := w.now().UTC().Format("January 2, 2006")

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the following news articles from %s, create a comprehensive blog post that analyzes the key themes and developments:\n\n", currentDate)
	for i, article := range articles {
		fmt.Fprintf(&b, "%d. [%s] %s\n   %s\n   Source: %s\n\n", i+1, article.Category, article.Title, article.Summary, article.Source)
	}
	b.WriteString("Write the post in markdown with an H1 title, themed H2 sections, and a closing conclusion.")
	return b.String()
}

// mockContent builds a deterministic placeholder post from the article list
// and date alone, so mock-mode runs are reproducible in tests.
func (w *Writer) mockContent(articles []models.Article) string {
	currentDate := w.now().UTC().Format("January 2, 2006")

	categories := make([]string, 0, len(articles))
	seen := make(map[string]struct{})
	for _, article := range articles {
		if _, ok := seen[article.Category]; ok {
			continue
		}
		seen[article.Category] = struct{}{}
		categories = append(categories, article.Category)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Today's Global Pulse - %s\n\n", currentDate)
	fmt.Fprintf(&b, "Welcome to another day of AI-powered news analysis. Our system analyzed %d articles across %d categories to bring you this overview.\n\n", len(articles), len(categories))
	for _, category := range categories {
		fmt.Fprintf(&b, "## %s\n\n", titleCase(category))
		for _, article := range articles {
			if article.Category != category {
				continue
			}
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", article.Title, article.Source, article.Summary)
		}
		b.WriteString("\n")
	}
	b.WriteString("## Conclusion\n\nToday's developments reinforce the value of staying informed while keeping perspective on long-term trends.\n")
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// parsePost extracts title/summary/tags from the generated markdown.
func (w *Writer) parsePost(content string, articles []models.Article) *models.Post {
	now := w.now().UTC()

	title := fmt.Sprintf("Today's Global Pulse - %s", now.Format("January 2, 2006"))
	var summary string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			continue
		}
		if summary == "" && !strings.HasPrefix(trimmed, "#") {
			summary = trimmed
		}
	}
	if len(summary) > 200 {
		summary = summary[:197] + "..."
	}

	tags := []string{"daily-update", "global-news", "noobie-ai"}
	category := "global-news"
	if len(articles) > 0 && articles[0].Category != "" {
		category = models.Slugify(articles[0].Category)
	}

	return &models.Post{
		Title:           title,
		Content:         content,
		Summary:         summary,
		Tags:            tags,
		Category:        category,
		PublicationDate: now,
		Author:          w.cfg.Author,
		WordCount:       len(strings.Fields(content)),
	}
}
