// Package ai integrates the Gemini generateContent API for category
// matching, attribute matching and product content rewriting, with
// bounded retries and worker-pool parallelism.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
)

// Option is custom configuration of Client.
type Option func(c *Client)

// Client calls the generateContent endpoint. The API key travels as a
// query parameter on every request and rotates through the key ring.
type Client struct {
	client  *http.Client
	keys    *KeyRing
	baseURL string
	model   string
	retry   RetryPolicy
}

// NewClient returns a new generation Client.
func NewClient(client *http.Client, keys *KeyRing, ops ...Option) *Client {
	cl := &Client{
		client:  client,
		keys:    keys,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		retry:   NewRetryPolicy(),
	}

	for _, op := range ops {
		op(cl)
	}

	return cl
}

// WithBaseURL sets the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithRetryPolicy sets the retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.retry = policy
	}
}

// Generate sends a prompt and returns the model's text answer, with
// rate limits and transient failures retried under the retry policy.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var answer string

	err := c.retry.Do(ctx, func() error {
		text, err := c.generateOnce(ctx, prompt)
		if err != nil {
			return err
		}
		answer = text
		return nil
	})
	if err != nil {
		return "", err
	}

	return answer, nil
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("can't encode generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.keys.Next())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("can't build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("can't get generation response: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("can't read generation response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation status %d, body %q", resp.StatusCode, truncate(body))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("can't decode generation response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// StripCodeFences removes a surrounding markdown code fence, which the
// model adds around JSON answers despite instructions not to.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func truncate(body []byte) string {
	detail := strings.TrimSpace(string(body))
	if len(detail) > 512 {
		detail = detail[:512]
	}
	return detail
}
