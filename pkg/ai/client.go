package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"
)

const (
	defaultModel   = "gemini-2.5-flash"
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	maxInputChars  = 100_000
	baseBackoff    = time.Second
	maxBackoff     = 8 * time.Second
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	Model      string
	APIKey     string
	baseURL    string       // overrides the Gemini URL in tests
	httpClient *http.Client // defaults to http.DefaultClient
	sleep      func(time.Duration)
}

// NewClient creates a client for the default model.
func NewClient(apiKey string) *Client {
	return &Client{Model: defaultModel, APIKey: apiKey, sleep: time.Sleep}
}

// NewClientWithHTTP creates a client with a custom HTTP client and base URL
// (for testing).
func NewClientWithHTTP(model, apiKey, baseURL string, client *http.Client) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{Model: model, APIKey: apiKey, baseURL: baseURL, httpClient: client, sleep: time.Sleep}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the model's text. Oversized prompts
// fail as input_too_large without a network call. rate_limit and transient
// failures are retried up to maxRetries times with exponential backoff; every
// other category fails immediately. Each attempt carries its own timeout.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if len(prompt) > maxInputChars {
		return "", &Error{
			Message:  fmt.Sprintf("input exceeds maximum size: %d chars (limit: %d)", len(prompt), maxInputChars),
			Category: CategoryInputTooLarge,
		}
	}

	t := timeout.New[string](timeout.Config{DefaultTimeout: requestTimeout})

	var lastErr *Error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Printf("[gemini] retry %d/%d after %s", attempt, maxRetries, backoff)
			c.sleep(backoff)
		}

		text, err := t.Execute(ctx, requestTimeout, func(ctx context.Context) (string, error) {
			return c.generateOnce(ctx, prompt)
		})
		if err == nil {
			return text, nil
		}

		classified := Classify(err)
		lastErr = classified
		if !classified.Retryable() || attempt == maxRetries {
			return "", classified
		}
	}

	return "", lastErr
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", err
	}

	url := c.baseURL
	if url == "" {
		url = fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", c.Model, c.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", classifyStatus(resp.StatusCode, string(detail))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", &Error{Message: fmt.Sprintf("decode Gemini response: %v", err), Category: CategoryInvalidResponse}
	}

	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 ||
		gResp.Candidates[0].Content.Parts[0].Text == "" {
		return "", &Error{Message: "empty response from Gemini", Category: CategoryInvalidResponse}
	}

	return gResp.Candidates[0].Content.Parts[0].Text, nil
}

func classifyStatus(code int, detail string) *Error {
	msg := fmt.Sprintf("Gemini API returned status %d: %s", code, detail)
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &Error{Message: msg, Category: CategoryAuthFailure, StatusCode: code}
	case code == http.StatusTooManyRequests:
		return &Error{Message: msg, Category: CategoryRateLimit, StatusCode: code}
	case code >= 500:
		return &Error{Message: msg, Category: CategoryTransient, StatusCode: code}
	default:
		return &Error{Message: msg, Category: CategoryUnknown, StatusCode: code}
	}
}
