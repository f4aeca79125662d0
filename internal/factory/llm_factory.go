package factory

import (
	"fmt"

	"github.com/damlois/ai-credit-controller/internal/adapters/bedrock"
	"github.com/damlois/ai-credit-controller/internal/adapters/gemini"
	"github.com/damlois/ai-credit-controller/internal/adapters/ollama"
	"github.com/damlois/ai-credit-controller/internal/adapters/openai"
	"github.com/damlois/ai-credit-controller/internal/config"
	"github.com/damlois/ai-credit-controller/internal/core"
	"go.uber.org/zap"
)

// LLMFactory creates text completion clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextCompleter creates a new completer based on the configuration
func (f *LLMFactory) CreateTextCompleter() (core.TextCompleter, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "ollama":
		return ollama.NewFactory(f.cfg, f.logger).CreateClient()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger).CreateClient()
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateClient()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
