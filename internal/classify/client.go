package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"scrub/internal/segment"
	"scrub/internal/services"
)

const defaultHTTPTimeout = 60 * time.Second

// DefaultBaseURL points at the Hugging Face hosted inference endpoint for
// the standard zero-shot NLI model.
const DefaultBaseURL = "https://api-inference.huggingface.co/models/facebook/bart-large-mnli"

// Config captures the runtime settings required to talk to the zero-shot
// classification endpoint.
type Config struct {
	BaseURL        string
	APIToken       string
	TimeoutSeconds int
}

// Client wraps a Hugging Face style zero-shot classification endpoint.
// These are single-shot batch tools: a failed request is reported to the
// caller rather than retried, so a failed run is re-invoked by the user.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (used by tests).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a classification client from the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			APIToken:       strings.TrimSpace(cfg.APIToken),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = DefaultBaseURL
	}
	return client
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
	Error  string    `json:"error"`
}

// Classify scores text against the candidate labels and returns all pairs
// sorted by score descending.
func (c *Client) Classify(ctx context.Context, text string, labels []string) ([]segment.Score, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("classify: text required")
	}
	if len(labels) == 0 {
		return nil, errors.New("classify: candidate labels required")
	}

	encoded, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, fmt.Errorf("classify: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("classify: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrAnalysis, "classify", "request", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrAnalysis, "classify", "read response", "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrAnalysis, "classify", "request",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var payload classifyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, services.Wrap(services.ErrAnalysis, "classify", "decode response", "", err)
	}
	if payload.Error != "" {
		return nil, services.Wrap(services.ErrAnalysis, "classify", "request", payload.Error, nil)
	}
	if len(payload.Labels) == 0 || len(payload.Labels) != len(payload.Scores) {
		return nil, services.Wrap(services.ErrAnalysis, "classify", "decode response",
			fmt.Sprintf("mismatched labels/scores: %d vs %d", len(payload.Labels), len(payload.Scores)), nil)
	}

	scores := make([]segment.Score, len(payload.Labels))
	for i := range payload.Labels {
		scores[i] = segment.Score{Label: payload.Labels[i], Value: payload.Scores[i]}
	}
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Value > scores[b].Value
	})
	return scores, nil
}
