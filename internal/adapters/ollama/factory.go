package ollama

import (
	"time"

	"github.com/damlois/ai-credit-controller/internal/config"
	"go.uber.org/zap"
)

// Factory creates new instances of OllamaClient
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for OllamaClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a new OllamaClient from configuration
func (f *Factory) CreateClient() (*OllamaClient, error) {
	ollamaCfg := f.cfg.GetOllama()

	timeout, err := time.ParseDuration(ollamaCfg.Timeout)
	if err != nil {
		timeout = 60 * time.Second
	}

	return NewOllamaClient(ollamaCfg.Host, ollamaCfg.Model, timeout, f.logger), nil
}
