package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/ports"
)

type stubTranslator struct {
	name   string
	result string
	err    error
	calls  int
}

func (s *stubTranslator) Name() string { return s.name }

func (s *stubTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	s.calls++
	return s.result, s.err
}

func translateRequest() ports.TranslateRequest {
	return ports.TranslateRequest{Text: "hola", SourceLang: "es", TargetLang: "en"}
}

func TestTranslationServicePrimaryWins(t *testing.T) {
	primary := &stubTranslator{name: "primary", result: "hello"}
	fallback := &stubTranslator{name: "fallback", result: "hi"}
	svc := NewTranslationService(testLogger(), primary, fallback)

	resp, err := svc.Translate(context.Background(), translateRequest())
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.TranslatedText)
	assert.Equal(t, "primary", resp.Provider)
	assert.Zero(t, fallback.calls)
}

func TestTranslationServiceFallsBack(t *testing.T) {
	primary := &stubTranslator{name: "primary", err: errors.New("quota exceeded")}
	fallback := &stubTranslator{name: "fallback", result: "hello"}
	svc := NewTranslationService(testLogger(), primary, fallback)

	resp, err := svc.Translate(context.Background(), translateRequest())
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.TranslatedText)
	assert.Equal(t, "fallback", resp.Provider)
	assert.Equal(t, 1, primary.calls)
}

func TestTranslationServiceAllProvidersFail(t *testing.T) {
	primary := &stubTranslator{name: "primary", err: errors.New("quota exceeded")}
	fallback := &stubTranslator{name: "fallback", err: errors.New("timeout")}
	svc := NewTranslationService(testLogger(), primary, fallback)

	_, err := svc.Translate(context.Background(), translateRequest())
	assert.ErrorIs(t, err, entities.ErrTranslationFailed)
}

func TestTranslationServiceNoProviders(t *testing.T) {
	svc := NewTranslationService(testLogger())

	_, err := svc.Translate(context.Background(), translateRequest())
	assert.ErrorIs(t, err, entities.ErrTranslationFailed)
}
