package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// CollectionService manages vocabulary, phrases and their categories. Adding
// a vocabulary item credits one learned word in today's ledger.
type CollectionService struct {
	collectionRepo ports.CollectionRepository
	activityRepo   ports.ActivityRepository
	logger         *logger.Logger
	now            func() time.Time
}

// NewCollectionService creates a new collection service
func NewCollectionService(collectionRepo ports.CollectionRepository, activityRepo ports.ActivityRepository, logger *logger.Logger) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		activityRepo:   activityRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// AddVocabulary saves a new vocabulary item and credits the ledger.
func (s *CollectionService) AddVocabulary(ctx context.Context, req ports.CreateVocabularyRequest) (*entities.VocabularyItem, error) {
	item := &entities.VocabularyItem{
		ID:          uuid.New(),
		Term:        req.Term,
		Translation: req.Translation,
		Notes:       req.Notes,
		CategoryID:  req.CategoryID,
	}

	if err := s.collectionRepo.CreateVocabulary(ctx, item); err != nil {
		return nil, fmt.Errorf("add vocabulary: %w", err)
	}

	if _, err := s.activityRepo.Upsert(ctx, s.now(), entities.ActivityDelta{Words: 1}); err != nil {
		return nil, fmt.Errorf("credit activity: %w", err)
	}

	s.logger.Infow("Vocabulary item added", "item_id", item.ID, "term", item.Term)

	return item, nil
}

// UpdateVocabulary edits an existing item.
func (s *CollectionService) UpdateVocabulary(ctx context.Context, id uuid.UUID, req ports.UpdateVocabularyRequest) (*entities.VocabularyItem, error) {
	item, err := s.collectionRepo.GetVocabulary(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Term != nil {
		item.Term = *req.Term
	}
	if req.Translation != nil {
		item.Translation = *req.Translation
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.CategoryID != nil {
		item.CategoryID = req.CategoryID
	}
	if req.Learned != nil {
		item.Learned = *req.Learned
	}

	if err := s.collectionRepo.UpdateVocabulary(ctx, item); err != nil {
		return nil, fmt.Errorf("update vocabulary: %w", err)
	}

	return item, nil
}

// DeleteVocabulary soft-deletes an item.
func (s *CollectionService) DeleteVocabulary(ctx context.Context, id uuid.UUID) error {
	return s.collectionRepo.DeleteVocabulary(ctx, id)
}

// ListVocabulary retrieves items with filtering.
func (s *CollectionService) ListVocabulary(ctx context.Context, filter ports.CollectionFilter) ([]*entities.VocabularyItem, error) {
	return s.collectionRepo.ListVocabulary(ctx, filter)
}

// AddPhrase saves a new phrase.
func (s *CollectionService) AddPhrase(ctx context.Context, req ports.CreatePhraseRequest) (*entities.Phrase, error) {
	phrase := &entities.Phrase{
		ID:          uuid.New(),
		Text:        req.Text,
		Translation: req.Translation,
		CategoryID:  req.CategoryID,
	}

	if err := s.collectionRepo.CreatePhrase(ctx, phrase); err != nil {
		return nil, fmt.Errorf("add phrase: %w", err)
	}

	s.logger.Infow("Phrase added", "phrase_id", phrase.ID)

	return phrase, nil
}

// DeletePhrase soft-deletes a phrase.
func (s *CollectionService) DeletePhrase(ctx context.Context, id uuid.UUID) error {
	return s.collectionRepo.DeletePhrase(ctx, id)
}

// ListPhrases retrieves phrases with filtering.
func (s *CollectionService) ListPhrases(ctx context.Context, filter ports.CollectionFilter) ([]*entities.Phrase, error) {
	return s.collectionRepo.ListPhrases(ctx, filter)
}

// CreateCategory adds a new collection folder.
func (s *CollectionService) CreateCategory(ctx context.Context, req ports.CreateCategoryRequest) (*entities.Category, error) {
	kind := entities.CategoryKind(req.Kind)
	if !kind.IsValid() {
		return nil, entities.ErrValidation
	}

	category := &entities.Category{
		Name: req.Name,
		Kind: kind,
	}

	if err := s.collectionRepo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

// ListCategories retrieves folders, optionally by kind.
func (s *CollectionService) ListCategories(ctx context.Context, kind *entities.CategoryKind) ([]*entities.Category, error) {
	return s.collectionRepo.ListCategories(ctx, kind)
}
