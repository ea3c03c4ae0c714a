package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-sonnet-20240229"
	maxTokens  = 4000
)

// Client defines the generative-text operation the blog pipeline depends on.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic messages-API client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(60 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

// Message is a single turn in the messages API payload.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single-turn prompt and returns the generated text.
func (c *anthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []Message{{Role: "user", Content: userPrompt}},
	}

	respBody := new(messageResponse)
	errBody := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(respBody).
		SetError(errBody).
		Post(apiURL)
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := errBody.Error.Message
		if message == "" {
			message = resp.String()
		}
		return "", fmt.Errorf("anthropic api error: status=%d, message=%s", resp.StatusCode(), message)
	}

	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from anthropic")
	}

	return respBody.Content[0].Text, nil
}
