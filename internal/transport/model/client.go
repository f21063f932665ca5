// Package model talks to the per-domain recommendation and prediction model services.
package model

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/spotlight/internal/domain"
	"github.com/kailas-cloud/spotlight/internal/metrics"
)

// Call labels used in metrics and logs.
const (
	CallPrimary   = "primary"
	CallFiller    = "filler"
	CallPredict   = "predict"
	CallHeartbeat = "heartbeat"
)

const (
	recommendPath = "/recommend"
	predictPath   = "/predict"
	checkPath     = "/check"

	// maxErrorBody caps how much of a failed response is kept in a ModelError.
	maxErrorBody = 4 << 10
)

// TokenProvider issues bearer tokens for a model service audience.
type TokenProvider interface {
	Token(ctx context.Context, audience string) (string, error)
}

// Client is an authenticated client for one domain's model service.
type Client struct {
	domain  domain.Domain
	baseURL string
	apiKey  string
	tokens  TokenProvider
	http    *http.Client
	logger  *zap.Logger
}

// Config holds the model service settings for one domain.
type Config struct {
	Domain  domain.Domain
	BaseURL string
	APIKey  string
	// Timeout bounds every call, including reading the response body. Zero means no timeout.
	Timeout time.Duration
	Tokens  TokenProvider
	// Transport is the shared connection pool. Nil uses http.DefaultTransport.
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// NewClient creates a model service client.
func NewClient(cfg *Config) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		domain:  cfg.Domain,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		tokens:  cfg.Tokens,
		http:    &http.Client{Transport: transport, Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Domain returns the domain this client serves.
func (c *Client) Domain() domain.Domain { return c.domain }

// Recommend sends query to the recommendation endpoint and returns the items in model order.
// call labels the request as a primary or filler call.
func (c *Client) Recommend(ctx context.Context, query domain.PreferenceQuery, call string) ([]domain.RawItem, error) {
	body, err := c.post(ctx, recommendPath, query, call)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Recommendations []domain.RawItem `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.countError(call, "decode")
		return nil, fmt.Errorf("decode %s recommendations: %v: %w", c.domain, err, domain.ErrModel)
	}
	return resp.Recommendations, nil
}

// Predict sends query to the prediction endpoint and returns the predicted stress level.
func (c *Client) Predict(ctx context.Context, query domain.PreferenceQuery) (any, error) {
	body, err := c.post(ctx, predictPath, query, CallPredict)
	if err != nil {
		return nil, err
	}

	var resp struct {
		StressLevel any `json:"stress_level"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.countError(CallPredict, "decode")
		return nil, fmt.Errorf("decode %s prediction: %v: %w", c.domain, err, domain.ErrModel)
	}
	return resp.StressLevel, nil
}

// Heartbeat checks the service's authenticated /check endpoint.
func (c *Client) Heartbeat(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, checkPath, nil, CallHeartbeat)
	return err
}

func (c *Client) post(ctx context.Context, path string, query domain.PreferenceQuery, call string) ([]byte, error) {
	payload, err := query.Body()
	if err != nil {
		return nil, fmt.Errorf("encode %s query: %w", c.domain, err)
	}
	return c.do(ctx, http.MethodPost, path, payload, call)
}

// do acquires a fresh token for the endpoint and performs one request. No retries.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, call string) ([]byte, error) {
	endpoint := c.baseURL + path

	token, err := c.tokens.Token(ctx, endpoint)
	if err != nil {
		c.countError(call, "auth")
		return nil, fmt.Errorf("acquire %s token: %w: %w", c.domain, domain.ErrAuth, err)
	}

	target := endpoint
	if method == http.MethodPost {
		target += "?" + url.Values{"key": {c.apiKey}}.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.domain, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.countError(call, "transport")
		return nil, fmt.Errorf("%s %s: %w: %w", c.domain, call, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		c.countError(call, "transport")
		return nil, fmt.Errorf("read %s response: %w: %w", c.domain, domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.countError(call, "status")
		c.logger.Warn("model service returned non-success status",
			zap.String("domain", string(c.domain)),
			zap.String("call", call),
			zap.Int("status", resp.StatusCode),
		)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, domain.NewModelError(c.domain, resp.StatusCode, string(body))
	}

	metrics.ModelRequestsTotal.WithLabelValues(string(c.domain), call, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(string(c.domain), call).Observe(duration.Seconds())
	return body, nil
}

func (c *Client) countError(call, errType string) {
	metrics.ModelRequestsTotal.WithLabelValues(string(c.domain), call, "error").Inc()
	metrics.ModelErrorsTotal.WithLabelValues(string(c.domain), call, errType).Inc()
}

