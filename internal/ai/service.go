package ai

import (
	"context"
	"fmt"

	"hiresight/internal/config"
	"hiresight/internal/errors"
)

// Service owns the model provider used by the analysis pipeline.
type Service struct {
	Provider Provider // Exported for access from server package
	config   *config.Config
	logger   *errors.Logger
}

// NewService creates the AI service with per-stage configuration resolved
// from the loaded config.
func NewService(cfg *config.Config, logger *errors.Logger) (*Service, error) {
	var provider Provider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"stages", len(config.StageNames))

	switch cfg.AI.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.AI.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases the underlying provider.
func (s *Service) Close() error {
	return s.Provider.Close()
}
