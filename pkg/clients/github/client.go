package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.github.com"

// Client exposes the contents-API operations needed to publish a page into a
// hosted repository.
type Client interface {
	GetFileSHA(ctx context.Context, path string) (string, error)
	PutFile(ctx context.Context, path, content, message, sha string) (string, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	repo       string // "owner/name"
	branch     string
}

// NewClient builds a GitHub contents-API client for one repository/branch.
func NewClient(token, repo, branch string) *APIClient {
	restyClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("Authorization", fmt.Sprintf("token %s", token)).
		SetHeader("Accept", "application/vnd.github.v3+json").
		SetTimeout(30 * time.Second)

	return &APIClient{httpClient: restyClient, repo: repo, branch: branch}
}

// SetBaseURL overrides the API endpoint, mainly for tests.
func (c *APIClient) SetBaseURL(baseURL string) *APIClient {
	c.httpClient.SetBaseURL(baseURL)
	return c
}

type contentResponse struct {
	SHA string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type apiError struct {
	Message string `json:"message"`
}

// GetFileSHA returns the blob SHA of an existing file, or "" when the path
// does not exist on the branch.
func (c *APIClient) GetFileSHA(ctx context.Context, path string) (string, error) {
	result := new(contentResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("ref", c.branch).
		SetResult(result).
		Get(fmt.Sprintf("/repos/%s/contents/%s", c.repo, path))
	if err != nil {
		return "", fmt.Errorf("get contents %s: %w", path, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return "", fmt.Errorf("github api error: status=%d, path=%s", resp.StatusCode(), path)
	}

	return result.SHA, nil
}

// PutFile creates or updates a file. Pass the existing blob SHA to update;
// leave it empty to create. Returns the resulting commit SHA.
func (c *APIClient) PutFile(ctx context.Context, path, content, message, sha string) (string, error) {
	payload := putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		Branch:  c.branch,
		SHA:     sha,
	}

	result := new(putResponse)
	errBody := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(errBody).
		Put(fmt.Sprintf("/repos/%s/contents/%s", c.repo, path))
	if err != nil {
		return "", fmt.Errorf("put contents %s: %w", path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return "", fmt.Errorf("github api error: status=%d, message=%s", resp.StatusCode(), errBody.Message)
	}

	return result.Commit.SHA, nil
}
