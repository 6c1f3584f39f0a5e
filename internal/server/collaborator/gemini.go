package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/logging"
	"golang.org/x/time/rate"
)

// DefaultGeminiBaseURL is the public Generative Language API root.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiConfig configures GeminiClient.
type GeminiConfig struct {
	APIKey  string
	Model   string // empty: first listed model supporting generateContent
	BaseURL string
	Timeout time.Duration
	// RatePerSecond limits outgoing calls; zero disables the limiter.
	RatePerSecond float64
	Burst         int
}

// GeminiClient is a Generator backed by the Gemini REST API.
type GeminiClient struct {
	cfg     GeminiConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger

	mu    sync.Mutex
	model string
}

func NewGeminiClient(cfg GeminiConfig, logger logging.Logger) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &GeminiClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logger.With("module", "gemini"),
		model:   strings.TrimPrefix(cfg.Model, "models/"),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type listModelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

// Generate sends prompt to the configured (or discovered) model and returns
// the concatenated text of the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini: rate limit: %w", err)
	}

	model, err := c.resolveModel(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out generateResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return sb.String(), nil
}

// resolveModel returns the configured model or discovers one and caches it.
func (c *GeminiClient) resolveModel(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != "" {
		return c.model, nil
	}

	endpoint := c.cfg.BaseURL + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}

	var list listModelsResponse
	if err := c.do(req, &list); err != nil {
		c.logger.Warn(ctx, "model listing failed", "error", err)
		return "", ErrNoModel
	}

	for _, m := range list.Models {
		if m.Name == "" {
			continue
		}
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				c.model = strings.TrimPrefix(m.Name, "models/")
				c.logger.Info(ctx, "model selected", "model", c.model)
				return c.model, nil
			}
		}
	}
	return "", ErrNoModel
}

func (c *GeminiClient) do(req *http.Request, out any) error {
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gemini: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gemini: decode response: %w", err)
	}
	return nil
}
