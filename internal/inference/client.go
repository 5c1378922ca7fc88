package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/devfolio/portfolio-api/internal/config"
)

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("inference api key not configured")

// Client talks to the hosted Hugging Face inference API.
type Client struct {
	baseURL string
	apiKey  string
	models  config.InferenceConfig
	http    *http.Client
}

// NewClient builds a client from config. A nil httpClient gets one with the configured timeout.
func NewClient(cfg config.InferenceConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		models:  cfg,
		http:    httpClient,
	}
}

// Enabled reports whether calls can be made at all.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// EmbeddingModel is the model used by Embed, exposed for cache keys.
func (c *Client) EmbeddingModel() string {
	return c.models.EmbeddingModel
}

// Embed runs feature extraction. Token-level output is flattened one level.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	var raw json.RawMessage
	if err := c.call(ctx, c.models.EmbeddingModel, inferenceRequest{Inputs: text}, &raw); err != nil {
		return nil, err
	}

	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var nested [][]float64
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("failed to decode embedding: %w", err)
	}
	for _, row := range nested {
		flat = append(flat, row...)
	}
	return flat, nil
}

// Summarize returns the summary text for the input.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	req := inferenceRequest{
		Inputs:     text,
		Parameters: map[string]any{"max_length": 150, "min_length": 50},
	}
	var resp []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := c.call(ctx, c.models.SummarizationModel, req, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 {
		return "", errors.New("empty summarization response")
	}
	return resp[0].SummaryText, nil
}

// Classification is a zero-shot result. Labels arrive sorted by score, not in request order.
type Classification struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// Score returns the score assigned to label, or 0 when absent.
func (c Classification) Score(label string) float64 {
	for i, l := range c.Labels {
		if l == label && i < len(c.Scores) {
			return c.Scores[i]
		}
	}
	return 0
}

// ClassifyZeroShot scores text against the candidate labels.
func (c *Client) ClassifyZeroShot(ctx context.Context, text string, labels []string) (Classification, error) {
	req := inferenceRequest{
		Inputs:     text,
		Parameters: map[string]any{"candidate_labels": labels},
	}
	var resp Classification
	if err := c.call(ctx, c.models.ClassificationModel, req, &resp); err != nil {
		return Classification{}, err
	}
	return resp, nil
}

// SentimentScore is one sentiment label.
type SentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Sentiment classifies the text's sentiment.
func (c *Client) Sentiment(ctx context.Context, text string) ([]SentimentScore, error) {
	var raw json.RawMessage
	if err := c.call(ctx, c.models.SentimentModel, inferenceRequest{Inputs: text}, &raw); err != nil {
		return nil, err
	}

	var nested [][]SentimentScore
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	var flat []SentimentScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode sentiment: %w", err)
	}
	return flat, nil
}

type inferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

func (c *Client) call(ctx context.Context, model string, payload inferenceRequest, out any) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+model, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("inference model %s returned status %d: %s", model, resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
