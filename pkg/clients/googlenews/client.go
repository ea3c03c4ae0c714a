package googlenews

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

const defaultBaseURL = "https://news.google.com/rss/search"

// Client fetches articles from the Google News RSS feed, which needs no API
// key and serves as the fallback news source.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Article, error)
}

// FeedClient is a gofeed-backed implementation of Client.
type FeedClient struct {
	parser  *gofeed.Parser
	baseURL string
}

// NewClient builds a Google News RSS client.
func NewClient() *FeedClient {
	parser := gofeed.NewParser()
	parser.UserAgent = "NOOBIE-AI/1.0 (News Aggregator)"
	return &FeedClient{parser: parser, baseURL: defaultBaseURL}
}

// SetBaseURL overrides the feed endpoint, mainly for tests.
func (c *FeedClient) SetBaseURL(baseURL string) *FeedClient {
	c.baseURL = baseURL
	return c
}

// Search parses the RSS feed for the query and maps entries to articles.
func (c *FeedClient) Search(ctx context.Context, query string, maxResults int) ([]models.Article, error) {
	feedURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", c.baseURL, url.QueryEscape(query))

	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("google news rss %q: %w", query, err)
	}

	source := "Google News"
	if feed.Title != "" {
		source = feed.Title
	}

	articles := make([]models.Article, 0, maxResults)
	for _, item := range feed.Items {
		if len(articles) >= maxResults {
			break
		}

		published := item.Published
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC3339)
		}

		article := models.Article{
			Title:         item.Title,
			Summary:       item.Description,
			URL:           item.Link,
			PublishedDate: published,
			Source:        source,
			Category:      query,
		}
		if item.Author != nil {
			article.Author = item.Author.Name
		}
		if article.Valid() {
			articles = append(articles, article)
		}
	}

	return articles, nil
}
