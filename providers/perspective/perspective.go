// Package perspective provides the text-toxicity provider client.
// One call requests summary scores for the six toxicity dimensions.
package perspective

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/providers"
)

const providerName = "perspective"

const defaultBaseURL = "https://commentanalyzer.googleapis.com/v1alpha1"

// MaxTextLength is the provider's per-request text limit in bytes.
const MaxTextLength = 20480

// attributeNames maps provider attribute identifiers to the engine's
// dimension names.
var attributeNames = map[string]string{
	"TOXICITY":        trust.TextCategoryToxicity,
	"SEVERE_TOXICITY": trust.TextCategorySevereToxicity,
	"INSULT":          trust.TextCategoryInsult,
	"THREAT":          trust.TextCategoryThreat,
	"IDENTITY_ATTACK": trust.TextCategoryIdentityAttack,
	"PROFANITY":       trust.TextCategoryProfanity,
}

// Config holds the configuration for the toxicity client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Timeout: 15 * time.Second,
	}
}

// ConfigFromEnv reads the credential from PERSPECTIVE_API_KEY.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv("PERSPECTIVE_API_KEY")
	if base := os.Getenv("PERSPECTIVE_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	return cfg
}

// Client is the text-toxicity provider client.
type Client struct {
	config Config
	rest   *resty.Client
}

// New creates a new toxicity client. Missing credentials are not an
// error here; Configured() reports them and each call degrades per policy.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		config: cfg,
		rest: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return providerName }

// Configured reports whether the API key is present.
func (c *Client) Configured() bool { return c.config.APIKey != "" }

type analyzeRequest struct {
	Comment             comment                  `json:"comment"`
	Languages           []string                 `json:"languages,omitempty"`
	RequestedAttributes map[string]attributeSpec `json:"requestedAttributes"`
	DoNotStore          bool                     `json:"doNotStore"`
}

type comment struct {
	Text string `json:"text"`
}

type attributeSpec struct{}

type analyzeResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ScoreText requests summary scores for the six toxicity dimensions.
func (c *Client) ScoreText(ctx context.Context, text, lang string) (providers.TextScores, error) {
	if !c.Configured() {
		return nil, trust.ErrMissingCredentials
	}

	req := analyzeRequest{
		Comment:             comment{Text: text},
		RequestedAttributes: make(map[string]attributeSpec, len(attributeNames)),
		DoNotStore:          true,
	}
	if lang != "" {
		req.Languages = []string{lang}
	}
	for attr := range attributeNames {
		req.RequestedAttributes[attr] = attributeSpec{}
	}

	var out analyzeResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("key", c.config.APIKey).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post("/comments:analyze")
	if err != nil {
		return nil, trust.WrapNetworkError(err)
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		pe := trust.NewProviderError(providerName,
			fmt.Sprintf("http_%d", resp.StatusCode()),
			strings.TrimSpace(resp.String()))
		if out.Error != nil {
			pe = trust.NewProviderError(providerName, out.Error.Status, out.Error.Message)
		}
		return nil, pe.WithStatusCode(resp.StatusCode())
	}
	if out.Error != nil {
		return nil, trust.NewProviderError(providerName, out.Error.Status, out.Error.Message)
	}

	scores := make(providers.TextScores, len(attributeNames))
	for attr, name := range attributeNames {
		if s, ok := out.AttributeScores[attr]; ok {
			scores[name] = s.SummaryScore.Value
		}
	}
	return scores, nil
}
