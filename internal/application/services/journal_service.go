package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// JournalService manages bilingual diary entries. Saving a new entry credits
// the activity ledger for the entry's date.
type JournalService struct {
	journalRepo  ports.JournalRepository
	activityRepo ports.ActivityRepository
	logger       *logger.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo ports.JournalRepository, activityRepo ports.ActivityRepository, logger *logger.Logger) *JournalService {
	return &JournalService{
		journalRepo:  journalRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// CreateEntry saves a new diary entry and records one written entry in the
// ledger for its date.
func (s *JournalService) CreateEntry(ctx context.Context, req ports.CreateJournalEntryRequest) (*entities.JournalEntry, error) {
	date, err := entities.ParseDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	entry := &entities.JournalEntry{
		ID:          uuid.New(),
		EntryDate:   date,
		Title:       req.Title,
		Content:     req.Content,
		Translation: req.Translation,
		SourceLang:  req.SourceLang,
		TargetLang:  req.TargetLang,
		Mood:        req.Mood,
	}

	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}

	// Ledger credit failures are surfaced; the entry itself is already
	// durable and a retried request would not double-create it.
	if _, err := s.activityRepo.Upsert(ctx, date, entities.ActivityDelta{Entries: 1}); err != nil {
		return nil, fmt.Errorf("credit activity: %w", err)
	}

	s.logger.Infow("Journal entry created", "entry_id", entry.ID, "date", req.EntryDate)

	return entry, nil
}

// GetEntry retrieves a diary entry by ID.
func (s *JournalService) GetEntry(ctx context.Context, id uuid.UUID) (*entities.JournalEntry, error) {
	return s.journalRepo.GetByID(ctx, id)
}

// UpdateEntry edits an existing entry. Edits do not re-credit the ledger.
func (s *JournalService) UpdateEntry(ctx context.Context, id uuid.UUID, req ports.UpdateJournalEntryRequest) (*entities.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		entry.Content = *req.Content
	}
	if req.Translation != nil {
		entry.Translation = req.Translation
	}
	if req.Mood != nil {
		entry.Mood = req.Mood
	}

	if err := s.journalRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}

	s.logger.Infow("Journal entry updated", "entry_id", entry.ID)

	return entry, nil
}

// DeleteEntry soft-deletes an entry. The ledger keeps its credit; history is
// not rewritten.
func (s *JournalService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.journalRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Journal entry deleted", "entry_id", id)

	return nil
}

// ListEntries retrieves entries with filtering and pagination.
func (s *JournalService) ListEntries(ctx context.Context, filter ports.JournalFilter) ([]*entities.JournalEntry, int64, error) {
	entries, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list journal entries: %w", err)
	}

	total, err := s.journalRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count journal entries: %w", err)
	}

	return entries, total, nil
}
