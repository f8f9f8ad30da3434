// Package ai wraps the generative service: a thin JSON client plus one flow
// per feature, with schema validation on both sides of every call and no
// business logic beyond it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Client posts structured prompts to the generative endpoint and decodes the
// structured output. There is no retry policy; errors propagate to callers.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

type generateResponse struct {
	Output json.RawMessage `json:"output"`
}

// Generate sends {model, input} and unmarshals the response's output field
// into out.
func (c *Client) Generate(ctx context.Context, input any, out any) error {
	body, err := json.Marshal(generateRequest{Model: c.Model, Input: input})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("generate: service returned %d: %s", resp.StatusCode, bytes.TrimSpace(b))
	}

	var env generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("generate: decode response: %w", err)
	}
	if err := json.Unmarshal(env.Output, out); err != nil {
		return fmt.Errorf("generate: decode output: %w", err)
	}
	return nil
}
