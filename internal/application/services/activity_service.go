package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// ActivityService maintains the per-date activity ledger and derives streaks
// from it.
type ActivityService struct {
	activityRepo ports.ActivityRepository
	logger       *logger.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo ports.ActivityRepository, logger *logger.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// RecordActivity adds the delta to the date's ledger row, creating it on
// first activity of the day. Deltas are additive; counters never go down.
// An all-zero delta is answered with the current row without touching
// storage: an empty row and an absent row are equivalent, so a no-op update
// must not mark the date as active.
func (s *ActivityService) RecordActivity(ctx context.Context, date time.Time, delta entities.ActivityDelta) (*entities.ActivityDay, error) {
	if err := delta.Validate(); err != nil {
		return nil, err
	}

	if delta.IsZero() {
		return s.GetActivity(ctx, date)
	}

	day, err := s.activityRepo.Upsert(ctx, date, delta)
	if err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	s.logger.Infow("Activity recorded",
		"date", entities.FormatDate(day.Date),
		"minutes", day.MinutesPracticed,
		"entries", day.EntriesWritten,
		"words", day.WordsLearned,
	)

	return day, nil
}

// GetActivity returns the ledger row for the date. An absent row reads as a
// zero-valued row, not an error.
func (s *ActivityService) GetActivity(ctx context.Context, date time.Time) (*entities.ActivityDay, error) {
	day, err := s.activityRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return &entities.ActivityDay{Date: entities.DateOf(date)}, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}

	return day, nil
}

// GetActivityRange returns the ledger rows between from and to inclusive.
// Dates with no activity have no row and are simply absent from the result.
func (s *ActivityService) GetActivityRange(ctx context.Context, from, to time.Time) ([]*entities.ActivityDay, error) {
	if entities.DateOf(to).Before(entities.DateOf(from)) {
		return nil, fmt.Errorf("%w: range end precedes start", entities.ErrValidation)
	}

	days, err := s.activityRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("get activity range: %w", err)
	}

	return days, nil
}

// GetStreak derives the current and longest streak from the full date set.
// This rescans history on every call; fine for a single user with a bounded
// 30-day program.
func (s *ActivityService) GetStreak(ctx context.Context, today time.Time) (entities.Streak, error) {
	dates, err := s.activityRepo.ListDates(ctx)
	if err != nil {
		return entities.Streak{}, fmt.Errorf("get streak: %w", err)
	}

	return entities.ComputeStreak(dates, today), nil
}
