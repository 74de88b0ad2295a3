package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// shared HTTP client for generation API calls
var generatorHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for generation API calls (10 requests/second, burst of 5)
var generatorRateLimiter = rate.NewLimiter(10, 5)

// HTTPClient implements Client against the generation API
type HTTPClient struct {
	config     Config
	httpClient *http.Client
}

// creates a new HTTP generator client
func NewHTTPClient(config Config) *HTTPClient {
	return &HTTPClient{
		config:     config,
		httpClient: generatorHTTPClient,
	}
}

// generates a roleplay scenario for the account's event track
func (c *HTTPClient) RoleplayScenario(ctx context.Context, eventTrack string) (string, error) {
	return c.generate(ctx, generateRequest{
		Kind:   "roleplay",
		Prompt: eventTrack,
	})
}

// generates practice exam questions for the account's event track
func (c *HTTPClient) ExamQuestions(ctx context.Context, eventTrack string, count int) (string, error) {
	return c.generate(ctx, generateRequest{
		Kind:   "exam",
		Prompt: eventTrack,
		Count:  count,
	})
}

// generates written-event feedback for a submitted draft
func (c *HTTPClient) WrittenFeedback(ctx context.Context, draft string) (string, error) {
	return c.generate(ctx, generateRequest{
		Kind:   "feedback",
		Prompt: draft,
	})
}

func (c *HTTPClient) generate(ctx context.Context, req generateRequest) (string, error) {
	if err := generatorRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck // best-effort close on read path

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generation API returned %d: %s", resp.StatusCode, string(payload))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if out.Content == "" {
		return "", fmt.Errorf("generation API returned empty content")
	}

	return out.Content, nil
}
