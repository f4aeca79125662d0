package openai

import (
	"github.com/damlois/ai-credit-controller/internal/config"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIClient
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAIClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new OpenAIClient from configuration. A non-empty
// base URL points the client at an OpenAI-compatible endpoint.
func (f *Factory) CreateClient() (*OpenAIClient, error) {
	openaiCfg := f.cfg.GetOpenAI()

	clientCfg := openai.DefaultConfig(openaiCfg.APIKey)
	if openaiCfg.BaseURL != "" {
		clientCfg.BaseURL = openaiCfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	return NewOpenAIClient(
		client,
		openaiCfg.ModelName,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		f.logger,
	), nil
}
