package services

import (
	"context"
	"fmt"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// TranslationService proxies translation requests to the configured
// providers, primary first, then fallback. Provider failures never touch
// journey or ledger state.
type TranslationService struct {
	providers []ports.Translator
	logger    *logger.Logger
}

// NewTranslationService creates a new translation service. Providers are
// tried in order.
func NewTranslationService(logger *logger.Logger, providers ...ports.Translator) *TranslationService {
	return &TranslationService{
		providers: providers,
		logger:    logger,
	}
}

// Translate returns the first successful translation and the provider that
// produced it.
func (s *TranslationService) Translate(ctx context.Context, req ports.TranslateRequest) (*ports.TranslateResponse, error) {
	if len(s.providers) == 0 {
		return nil, entities.ErrTranslationFailed
	}

	var lastErr error
	for _, provider := range s.providers {
		translated, err := provider.Translate(ctx, req.Text, req.SourceLang, req.TargetLang)
		if err != nil {
			s.logger.Warnw("Translation provider failed",
				"provider", provider.Name(),
				"error", err,
			)
			lastErr = err
			continue
		}

		return &ports.TranslateResponse{
			TranslatedText: translated,
			Provider:       provider.Name(),
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", entities.ErrTranslationFailed, lastErr)
}
