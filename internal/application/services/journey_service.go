package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/config"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// JourneyService owns the 30-day progression. Day completion is accepted
// when every daily task is done, or when the day's ledger row (or the
// client's reported snapshot) meets the configured activity minimums.
type JourneyService struct {
	journeyRepo  ports.JourneyRepository
	activityRepo ports.ActivityRepository
	tasks        ports.TaskService
	thresholds   config.JourneyConfig
	logger       *logger.Logger
	now          func() time.Time

	mu sync.Mutex
}

// NewJourneyService creates a new journey service
func NewJourneyService(journeyRepo ports.JourneyRepository, activityRepo ports.ActivityRepository, tasks ports.TaskService, thresholds config.JourneyConfig, logger *logger.Logger) *JourneyService {
	return &JourneyService{
		journeyRepo:  journeyRepo,
		activityRepo: activityRepo,
		tasks:        tasks,
		thresholds:   thresholds,
		logger:       logger,
		now:          time.Now,
	}
}

// Status reports the journey position, today's ledger row and the streak.
func (s *JourneyService) Status(ctx context.Context) (*ports.JourneyStatusResponse, error) {
	now := s.now()

	state, err := s.loadOrCreateState(ctx)
	if err != nil {
		return nil, err
	}

	today, err := s.activityRepo.GetByDate(ctx, now)
	if err != nil {
		if !errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("get today's activity: %w", err)
		}
		today = &entities.ActivityDay{Date: entities.DateOf(now)}
	}

	dates, err := s.activityRepo.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activity dates: %w", err)
	}

	completed := make([]int, 0, len(state.CompletedDays))
	for _, d := range state.CompletedDays {
		completed = append(completed, int(d))
	}

	return &ports.JourneyStatusResponse{
		CurrentDay:      state.CurrentDay,
		StartDate:       entities.FormatDate(state.StartDate),
		CompletedDays:   completed,
		PercentComplete: state.PercentComplete(),
		Finished:        state.Finished(),
		TodayActivity:   today,
		Streak:          entities.ComputeStreak(dates, now),
	}, nil
}

// CompleteDay attempts to mark the current journey day complete for the
// given calendar date. Duplicate submissions for an already-finished day are
// a no-op with accepted=false, never an error, so client retries are safe.
func (s *JourneyService) CompleteDay(ctx context.Context, req ports.CompleteDayRequest) (*ports.CompleteDayResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, err := entities.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	state, err := s.loadOrCreateState(ctx)
	if err != nil {
		return nil, err
	}

	if state.Finished() {
		return &ports.CompleteDayResponse{
			Accepted: false,
			NextDay:  state.CurrentDay,
			Reason:   "journey already finished",
		}, nil
	}

	if state.CompletedOn(date) {
		// Retry of an already-accepted submission for this date.
		return &ports.CompleteDayResponse{
			Accepted: false,
			NextDay:  state.CurrentDay,
			Reason:   "day already completed",
		}, nil
	}

	day := state.CurrentDay

	met, reason, err := s.criteriaMet(ctx, date, req)
	if err != nil {
		return nil, err
	}
	if !met {
		return &ports.CompleteDayResponse{
			Accepted: false,
			NextDay:  state.CurrentDay,
			Reason:   reason,
		}, nil
	}

	if err := state.MarkCompleted(day); err != nil {
		if errors.Is(err, entities.ErrDayAlreadyCompleted) {
			return &ports.CompleteDayResponse{
				Accepted: false,
				NextDay:  state.CurrentDay,
				Reason:   "day already completed",
			}, nil
		}
		return nil, err
	}

	completedAt := entities.DateOf(date)
	state.LastCompletedDate = &completedAt

	if err := s.journeyRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save journey state: %w", err)
	}

	milestone := entities.MilestoneDays[day]
	resp := &ports.CompleteDayResponse{
		Accepted:         true,
		DayCompleted:     true,
		NextDay:          state.CurrentDay,
		MilestoneReached: milestone,
		Achievements:     []entities.Achievement{},
	}
	if milestone {
		resp.Achievements = entities.AchievementsForDay(day)
	}

	s.logger.Infow("Journey day completed",
		"day", day,
		"next_day", state.CurrentDay,
		"milestone", milestone,
	)

	return resp, nil
}

// Landmarks returns the static 30-slot journey map.
func (s *JourneyService) Landmarks(ctx context.Context) ([]entities.Landmark, error) {
	return entities.LandmarkCatalog, nil
}

// Achievements returns the catalog with unlock state derived from the
// journey's completed set. Unlock state is never persisted.
func (s *JourneyService) Achievements(ctx context.Context) ([]entities.AchievementWithStatus, error) {
	state, err := s.loadOrCreateState(ctx)
	if err != nil {
		return nil, err
	}

	return entities.UnlockedAchievements(state), nil
}

// criteriaMet checks the day-completion preconditions: all daily tasks done,
// or activity minimums met. The client's reported numbers are treated as a
// snapshot and merged with the ledger via max, never written back, so a
// duplicate complete-day request cannot inflate the ledger.
func (s *JourneyService) criteriaMet(ctx context.Context, date time.Time, req ports.CompleteDayRequest) (bool, string, error) {
	allDone, err := s.tasks.AllCompleted(ctx, date)
	if err != nil {
		return false, "", fmt.Errorf("check daily tasks: %w", err)
	}
	if allDone {
		return true, "", nil
	}

	ledger, err := s.activityRepo.GetByDate(ctx, date)
	if err != nil {
		if !errors.Is(err, entities.ErrNotFound) {
			return false, "", fmt.Errorf("get activity: %w", err)
		}
		ledger = &entities.ActivityDay{Date: entities.DateOf(date)}
	}

	minutes := max(ledger.MinutesPracticed, req.MinutesPracticed)
	words := max(ledger.WordsLearned, req.VocabularyAdded)

	if minutes >= s.thresholds.MinMinutesPracticed {
		return true, "", nil
	}
	if ledger.EntriesWritten >= s.thresholds.MinJournalEntries {
		return true, "", nil
	}
	if words >= s.thresholds.MinVocabularyAdded {
		return true, "", nil
	}

	reason := fmt.Sprintf(
		"keep going: %d/%d minutes practiced, %d/%d journal entries, %d/%d words added",
		minutes, s.thresholds.MinMinutesPracticed,
		ledger.EntriesWritten, s.thresholds.MinJournalEntries,
		words, s.thresholds.MinVocabularyAdded,
	)
	return false, reason, nil
}

// loadOrCreateState fetches the singleton state, initializing a fresh
// journey on first use.
func (s *JourneyService) loadOrCreateState(ctx context.Context) (*entities.JourneyState, error) {
	state, err := s.journeyRepo.Get(ctx)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, fmt.Errorf("get journey state: %w", err)
	}

	state = entities.NewJourneyState(entities.DateOf(s.now()))
	if err := s.journeyRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("initialize journey state: %w", err)
	}

	s.logger.Infow("Journey initialized", "start_date", entities.FormatDate(state.StartDate))

	return state, nil
}

