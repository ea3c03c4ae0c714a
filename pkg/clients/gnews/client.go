package gnews

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/akhilreddydanda/noobie/internal/domain/models"
)

const defaultBaseURL = "https://gnews.io/api/v4"

// GNews caps search results at 10 per request regardless of the max param.
const apiMaxResults = 10

// Client exposes the GNews search operation used by the article fetcher.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Article, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClient builds a GNews API client.
func NewClient(apiKey string) *APIClient {
	restyClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("User-Agent", "NOOBIE-AI/1.0 (News Aggregator)").
		SetTimeout(30 * time.Second)

	return &APIClient{httpClient: restyClient, apiKey: apiKey}
}

// SetBaseURL overrides the API endpoint, mainly for tests.
func (c *APIClient) SetBaseURL(baseURL string) *APIClient {
	c.httpClient.SetBaseURL(baseURL)
	return c
}

type searchResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Author      string `json:"author"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

type apiError struct {
	Errors []string `json:"errors"`
}

// Search queries GNews for articles matching the query, bounded by maxResults.
func (c *APIClient) Search(ctx context.Context, query string, maxResults int) ([]models.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gnews api key not configured")
	}
	if maxResults < 1 {
		maxResults = 1
	}
	requested := maxResults
	if requested > apiMaxResults {
		requested = apiMaxResults
	}

	result := new(searchResponse)
	errBody := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       query,
			"lang":    "en",
			"country": "us",
			"max":     fmt.Sprint(requested),
			"apikey":  c.apiKey,
		}).
		SetResult(result).
		SetError(errBody).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("gnews search %q: %w", query, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := resp.Status()
		if len(errBody.Errors) > 0 {
			message = errBody.Errors[0]
		}
		return nil, fmt.Errorf("gnews api error: status=%d, message=%s", resp.StatusCode(), message)
	}

	articles := make([]models.Article, 0, len(result.Articles))
	for _, raw := range result.Articles {
		if len(articles) >= maxResults {
			break
		}
		article := models.Article{
			Title:         raw.Title,
			Summary:       raw.Description,
			URL:           raw.URL,
			PublishedDate: raw.PublishedAt,
			Source:        raw.Source.Name,
			Category:      query,
			Author:        raw.Author,
		}
		if article.Valid() {
			articles = append(articles, article)
		}
	}

	return articles, nil
}
