// Package llm provides the content-classification provider client, an
// HTTP adapter compatible with OpenAI-style chat completions.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	trust "github.com/ajudaki/trust"
)

const providerName = "llm"

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Config holds the configuration for the classification client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Model:   defaultModel,
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv reads the credential from OPENAI_API_KEY, with optional
// OPENAI_BASE_URL and OPENAI_MODEL overrides.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.Model = model
	}
	return cfg
}

// Client is the classification provider client.
type Client struct {
	config   Config
	endpoint string
	rest     *resty.Client
}

// New creates a new classification client. Missing credentials are not an
// error here; Configured() reports them and each call degrades per policy.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		config:   cfg,
		endpoint: buildChatCompletionsURL(base),
		rest: resty.New().
			SetBaseURL(base).
			SetTimeout(cfg.Timeout).
			SetAuthToken(cfg.APIKey).
			SetHeader("Content-Type", "application/json"),
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return providerName }

// Configured reports whether the API key is present.
func (c *Client) Configured() bool { return c.config.APIKey != "" }

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type requestPayload struct {
	Model          string           `json:"model"`
	Messages       []requestMessage `json:"messages"`
	Temperature    float64          `json:"temperature"`
	Stream         bool             `json:"stream"`
	ResponseFormat responseFormat   `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one instruction and returns the raw response text with
// markdown fences stripped. The content is not parsed here; the caller
// owns defensive parsing.
func (c *Client) Complete(ctx context.Context, instruction string) (string, error) {
	if !c.Configured() {
		return "", trust.ErrMissingCredentials
	}

	body := requestPayload{
		Model: c.config.Model,
		Messages: []requestMessage{
			{Role: "user", Content: instruction},
		},
		Temperature:    0,
		Stream:         false,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		return "", trust.WrapNetworkError(err)
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return "", trust.NewProviderError(providerName,
			fmt.Sprintf("http_%d", resp.StatusCode()),
			strings.TrimSpace(resp.String())).
			WithStatusCode(resp.StatusCode())
	}

	return extractContent(resp.Body())
}

// extractContent pulls the assistant message text out of the completion
// envelope and strips markdown code fences.
func extractContent(body []byte) (string, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", trust.NewProviderError(providerName, "bad_envelope", err.Error()).
			WithCategory(trust.ErrorCategoryParse)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: choices is empty")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("llm: response content is empty")
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content), nil
}

func buildChatCompletionsURL(base string) string {
	if base == "" {
		return defaultBaseURL + "/chat/completions"
	}
	u, err := url.Parse(base)
	if err != nil {
		return strings.TrimRight(base, "/") + "/chat/completions"
	}
	u.Path = strings.TrimRight(u.Path, "/")
	switch u.Path {
	case "":
		u.Path = "/chat/completions"
	case "/v1":
		u.Path = "/v1/chat/completions"
	case "/chat/completions", "/v1/chat/completions":
		// keep as is
	default:
		u.Path = u.Path + "/chat/completions"
	}
	return u.String()
}
