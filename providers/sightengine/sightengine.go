// Package sightengine provides the image-safety provider client.
// One call requests the fixed detector bundle (nudity, weapon, alcohol,
// drugs, gore, hate symbols) and returns the nested probability tree.
package sightengine

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

const providerName = "sightengine"

// Models is the fixed detector bundle requested on every call.
const Models = "nudity-2.1,weapon,alcohol,recreational_drug,gore-2.0,offensive-2.0"

const defaultBaseURL = "https://api.sightengine.com/1.0"

// Config holds the configuration for the image-safety client.
type Config struct {
	// APIUser and APISecret form the credential pair. Either empty marks
	// the client unconfigured.
	APIUser   string
	APISecret string

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

// ConfigFromEnv reads credentials from SIGHTENGINE_API_USER and
// SIGHTENGINE_API_SECRET. Absent variables leave the client unconfigured,
// which is an expected runtime state.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIUser = envOr("SIGHTENGINE_API_USER", "")
	cfg.APISecret = envOr("SIGHTENGINE_API_SECRET", "")
	if base := envOr("SIGHTENGINE_BASE_URL", ""); base != "" {
		cfg.BaseURL = base
	}
	return cfg
}

// Client is the image-safety provider client.
type Client struct {
	config Config
	rest   *resty.Client
}

// New creates a new image-safety client. Missing credentials are not an
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
			SetTimeout(cfg.Timeout),
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return providerName }

// Configured reports whether the credential pair is present.
func (c *Client) Configured() bool {
	return c.config.APIUser != "" && c.config.APISecret != ""
}

// checkResponse is the provider's nested per-detector probability tree.
type checkResponse struct {
	Status string    `json:"status"`
	Error  *apiError `json:"error,omitempty"`

	Nudity struct {
		SexualActivity float64 `json:"sexual_activity"`
		SexualDisplay  float64 `json:"sexual_display"`
		Erotica        float64 `json:"erotica"`
		VerySuggestive float64 `json:"very_suggestive"`
	} `json:"nudity"`

	Weapon struct {
		Classes map[string]float64 `json:"classes"`
	} `json:"weapon"`

	Alcohol struct {
		Prob float64 `json:"prob"`
	} `json:"alcohol"`

	RecreationalDrug struct {
		Prob float64 `json:"prob"`
	} `json:"recreational_drug"`

	Gore struct {
		Prob float64 `json:"prob"`
	} `json:"gore"`

	Offensive struct {
		Prob         float64 `json:"prob"` // General hate probability
		Nazi         float64 `json:"nazi"`
		Confederate  float64 `json:"confederate"`
		Supremacist  float64 `json:"supremacist"`
		Terrorist    float64 `json:"terrorist"`
		MiddleFinger float64 `json:"middle_finger"`
	} `json:"offensive"`
}

type apiError struct {
	Type    string `json:"type"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ScoreImage requests the detector bundle for one image reference.
func (c *Client) ScoreImage(ctx context.Context, ref string) (providers.ImageScores, error) {
	if !c.Configured() {
		return providers.ImageScores{}, trust.ErrMissingCredentials
	}

	var out checkResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"url":        ref,
			"models":     Models,
			"api_user":   c.config.APIUser,
			"api_secret": c.config.APISecret,
		}).
		SetResult(&out).
		Get("/check.json")
	if err != nil {
		return providers.ImageScores{}, trust.WrapNetworkError(err)
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return providers.ImageScores{}, trust.NewProviderError(providerName,
			fmt.Sprintf("http_%d", resp.StatusCode()),
			strings.TrimSpace(resp.String())).
			WithStatusCode(resp.StatusCode())
	}
	if out.Status != "success" {
		pe := trust.NewProviderError(providerName, "failure", "provider reported failure")
		if out.Error != nil {
			pe = trust.NewProviderError(providerName,
				fmt.Sprintf("%s_%d", out.Error.Type, out.Error.Code), out.Error.Message)
		}
		return providers.ImageScores{}, pe
	}

	return toScores(out), nil
}

// toScores flattens the provider tree into the shape the analyzer consumes.
func toScores(r checkResponse) providers.ImageScores {
	var weapon float64
	for _, p := range r.Weapon.Classes {
		if p > weapon {
			weapon = p
		}
	}

	return providers.ImageScores{
		Nudity: providers.NudityScores{
			SexualActivity: r.Nudity.SexualActivity,
			SexualDisplay:  r.Nudity.SexualDisplay,
			Erotica:        r.Nudity.Erotica,
			VerySuggestive: r.Nudity.VerySuggestive,
		},
		Weapon:  weapon,
		Alcohol: r.Alcohol.Prob,
		Drugs:   r.RecreationalDrug.Prob,
		Gore:    r.Gore.Prob,
		Offensive: providers.OffensiveScores{
			Hate:         r.Offensive.Prob,
			Nazi:         r.Offensive.Nazi,
			Confederate:  r.Offensive.Confederate,
			Supremacist:  r.Offensive.Supremacist,
			Terrorist:    r.Offensive.Terrorist,
			MiddleFinger: r.Offensive.MiddleFinger,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
