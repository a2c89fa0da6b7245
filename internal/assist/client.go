// Package assist is a thin HTTP client for the generative text/image
// provider used by the composer. Failures surface to handlers, which keep
// the member's original input and answer with a gateway error.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client calls the generative provider's HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the provider at baseURL. An empty baseURL
// yields a disabled client whose calls fail fast.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Enabled reports whether a provider endpoint is configured.
func (c *Client) Enabled() bool { return c.baseURL != "" }

type polishRequest struct {
	Text string `json:"text"`
}

type polishResponse struct {
	Text string `json:"text"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// PolishText asks the provider to clean up a draft. The returned string
// replaces the draft only on success.
func (c *Client) PolishText(ctx context.Context, text string) (string, error) {
	var out polishResponse
	if err := c.post(ctx, "/v1/text/polish", polishRequest{Text: text}, &out); err != nil {
		return "", err
	}
	if out.Text == "" {
		return "", fmt.Errorf("assist: provider returned empty text")
	}
	return out.Text, nil
}

// GenerateImage asks the provider for an image and returns it as a data URL
// suitable for the post's image field.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var out imageResponse
	if err := c.post(ctx, "/v1/images", imageRequest{Prompt: prompt}, &out); err != nil {
		return "", err
	}
	if out.Data == "" {
		return "", fmt.Errorf("assist: provider returned no image data")
	}
	mime := out.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + out.Data, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("assist: no provider configured")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("assist: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("assist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("assist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("assist: provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("assist: decode response: %w", err)
	}
	return nil
}
