package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/ports"
)

func newTestCollectionService(clock *fakeClock) (*CollectionService, *fakeActivityRepo) {
	activityRepo := newFakeActivityRepo()
	svc := NewCollectionService(newFakeCollectionRepo(), activityRepo, testLogger())
	svc.now = clock.Now
	return svc, activityRepo
}

func TestCollectionServiceAddVocabularyCreditsLedger(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc, activityRepo := newTestCollectionService(clock)
	ctx := context.Background()

	for _, term := range []string{"naranja", "mercado", "comprar"} {
		item, err := svc.AddVocabulary(ctx, ports.CreateVocabularyRequest{
			Term:        term,
			Translation: term + " (en)",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.False(t, item.Learned)
	}

	day, err := activityRepo.GetByDate(ctx, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, day.WordsLearned)
}

func TestCollectionServiceUpdateVocabulary(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc, activityRepo := newTestCollectionService(clock)
	ctx := context.Background()

	item, err := svc.AddVocabulary(ctx, ports.CreateVocabularyRequest{
		Term:        "naranja",
		Translation: "orange",
	})
	require.NoError(t, err)

	learned := true
	updated, err := svc.UpdateVocabulary(ctx, item.ID, ports.UpdateVocabularyRequest{Learned: &learned})
	require.NoError(t, err)
	assert.True(t, updated.Learned)
	assert.Equal(t, "naranja", updated.Term)

	// Marking learned is an edit, not a new word.
	day, err := activityRepo.GetByDate(ctx, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, day.WordsLearned)
}

func TestCollectionServiceDeleteVocabulary(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestCollectionService(clock)
	ctx := context.Background()

	item, err := svc.AddVocabulary(ctx, ports.CreateVocabularyRequest{
		Term:        "naranja",
		Translation: "orange",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVocabulary(ctx, item.ID))

	items, err := svc.ListVocabulary(ctx, ports.CollectionFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, svc.DeleteVocabulary(ctx, item.ID), entities.ErrItemNotFound)
}

func TestCollectionServicePhrases(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc, activityRepo := newTestCollectionService(clock)
	ctx := context.Background()

	phrase, err := svc.AddPhrase(ctx, ports.CreatePhraseRequest{
		Text:        "¿Cuánto cuesta?",
		Translation: "How much does it cost?",
	})
	require.NoError(t, err)

	phrases, err := svc.ListPhrases(ctx, ports.CollectionFilter{})
	require.NoError(t, err)
	require.Len(t, phrases, 1)
	assert.Equal(t, phrase.ID, phrases[0].ID)

	// Phrases do not feed the vocabulary counter.
	_, err = activityRepo.GetByDate(ctx, clock.Now())
	assert.ErrorIs(t, err, entities.ErrNotFound)

	require.NoError(t, svc.DeletePhrase(ctx, phrase.ID))
	phrases, err = svc.ListPhrases(ctx, ports.CollectionFilter{})
	require.NoError(t, err)
	assert.Empty(t, phrases)
}

func TestCollectionServiceCategories(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestCollectionService(clock)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Food", Kind: "vocabulary"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Travel", Kind: "phrase"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Oops", Kind: "bogus"})
	assert.ErrorIs(t, err, entities.ErrValidation)

	all, err := svc.ListCategories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	kind := entities.CategoryKindVocabulary
	vocabOnly, err := svc.ListCategories(ctx, &kind)
	require.NoError(t, err)
	require.Len(t, vocabOnly, 1)
	assert.Equal(t, "Food", vocabOnly[0].Name)
}
