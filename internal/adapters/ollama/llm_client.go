package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OllamaClient is an implementation of the TextCompleter interface backed
// by a local Ollama endpoint, the default provider for this service.
type OllamaClient struct {
	httpClient *http.Client
	host       string
	model      string
	logger     *zap.Logger
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict int `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(host, model string, timeout time.Duration, logger *zap.Logger) *OllamaClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaClient{
		httpClient: &http.Client{Timeout: timeout},
		host:       strings.TrimRight(host, "/"),
		model:      model,
		logger:     logger,
	}
}

// Generate sends a prompt to the model and returns the raw response text.
// A response with no text field yields an empty string, not an error.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: generateOptions{NumPredict: maxTokens},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("failed to decode Ollama response: %w", err)
	}

	text := strings.TrimSpace(generated.Response)
	if text == "" {
		c.logger.Debug("Ollama returned no response text", zap.String("model", c.model))
	}
	return text, nil
}
