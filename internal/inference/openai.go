package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint. A
// circuit breaker sits in front so a dead upstream fails fast instead of
// burning the request timeout on every recommendation.
type OpenAIClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
	log        zerolog.Logger
}

func NewOpenAIClient(endpoint, apiKey, model string, log zerolog.Logger) *OpenAIClient {
	c := &OpenAIClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("component", "inference.openai").Logger(),
	}
	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "openai",
		Timeout: 60 * time.Second,
	})
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		reqBody := chatRequest{
			Model:    c.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}
		reqBody.ResponseFormat.Type = "json_object"

		body, err := json.Marshal(reqBody)
		if err != nil {
			return "", fmt.Errorf("marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Warn().Err(err).Msg("chat request failed")
			return "", fmt.Errorf("chat request: %w", err)
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			c.log.Warn().Int("status", resp.StatusCode).Msg("chat endpoint returned non-200")
			return "", fmt.Errorf("chat endpoint status %d", resp.StatusCode)
		}

		var parsed chatResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", fmt.Errorf("parse chat response: %w", err)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("chat response has no choices")
		}
		return parsed.Choices[0].Message.Content, nil
	})
}
