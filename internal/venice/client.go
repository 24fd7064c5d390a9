// Package venice implements a client for the Venice AI image generation API.
package venice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/haojie06/venice-image-cli/internal/model"
)

// DefaultBaseURL is the public Venice API endpoint.
const DefaultBaseURL = "https://api.venice.ai/api/v1"

// Client talks to the Venice API. It holds no mutable state after
// construction and is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Venice API client with the given bearer credential.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListModels fetches the image generation models. The raw response body is
// returned alongside the decoded listing for verbose rendering.
func (c *Client) ListModels(ctx context.Context) (*model.ModelList, []byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models?type=image", nil)
	if err != nil {
		return nil, nil, err
	}
	c.setHeaders(request)
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching models: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading models response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, newAPIError(resp.StatusCode, body)
	}
	var list model.ModelList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, nil, fmt.Errorf("decoding models response: %w", err)
	}
	return &list, body, nil
}

// GenerateImage submits a generation request and decodes the result. A 2xx
// response without images is an error: the caller always gets either a
// result with at least one image or an error, never both.
func (c *Client) GenerateImage(ctx context.Context, generation *model.GenerationRequest) (*model.GenerationResult, error) {
	payload, err := json.Marshal(generation)
	if err != nil {
		return nil, fmt.Errorf("encoding generation request: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image/generate", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(request)
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("generating image: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading generation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	var result model.GenerationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding generation response: %w", err)
	}
	if len(result.Images) == 0 {
		return nil, ErrNoImages
	}
	return &result, nil
}

func (c *Client) setHeaders(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Request-Id", uuid.NewString())
}
