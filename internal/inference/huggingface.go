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

// HuggingFaceClient calls a hosted text-generation model. The inference API
// answers with a list of generated sequences; only the first is used.
type HuggingFaceClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
	log        zerolog.Logger
}

func NewHuggingFaceClient(endpoint, apiKey string, log zerolog.Logger) *HuggingFaceClient {
	c := &HuggingFaceClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("component", "inference.huggingface").Logger(),
	}
	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "huggingface",
		Timeout: 60 * time.Second,
	})
	return c
}

type generateRequest struct {
	Inputs string `json:"inputs"`
}

type generatedSequence struct {
	GeneratedText string `json:"generated_text"`
}

func (c *HuggingFaceClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		body, err := json.Marshal(generateRequest{Inputs: prompt})
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
			c.log.Warn().Err(err).Msg("generation request failed")
			return "", fmt.Errorf("generation request: %w", err)
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			c.log.Warn().Int("status", resp.StatusCode).Msg("generation endpoint returned non-200")
			return "", fmt.Errorf("generation endpoint status %d", resp.StatusCode)
		}

		var sequences []generatedSequence
		if err := json.Unmarshal(raw, &sequences); err != nil {
			return "", fmt.Errorf("parse generation response: %w", err)
		}
		if len(sequences) == 0 || sequences[0].GeneratedText == "" {
			return "", fmt.Errorf("generation response is empty")
		}
		return sequences[0].GeneratedText, nil
	})
}
