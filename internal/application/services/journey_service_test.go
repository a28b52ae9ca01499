package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/config"
	"github.com/lingualog/core/internal/ports"
)

func testThresholds() config.JourneyConfig {
	return config.JourneyConfig{
		MinMinutesPracticed: 10,
		MinJournalEntries:   1,
		MinVocabularyAdded:  5,
	}
}

type journeyFixture struct {
	svc          *JourneyService
	tasks        *TaskService
	journeyRepo  *fakeJourneyRepo
	activityRepo *fakeActivityRepo
	clock        *fakeClock
}

func newJourneyFixture(t *testing.T) *journeyFixture {
	t.Helper()

	clock := newFakeClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	journeyRepo := &fakeJourneyRepo{}
	activityRepo := newFakeActivityRepo()

	tasks := NewTaskService(newFakeTaskRepo(), activityRepo, testLogger())
	tasks.now = clock.Now

	svc := NewJourneyService(journeyRepo, activityRepo, tasks, testThresholds(), testLogger())
	svc.now = clock.Now

	return &journeyFixture{
		svc:          svc,
		tasks:        tasks,
		journeyRepo:  journeyRepo,
		activityRepo: activityRepo,
		clock:        clock,
	}
}

func (f *journeyFixture) completeDay(t *testing.T) *ports.CompleteDayResponse {
	t.Helper()
	resp, err := f.svc.CompleteDay(context.Background(), ports.CompleteDayRequest{
		Date: entities.FormatDate(f.clock.Now()),
	})
	require.NoError(t, err)
	return resp
}

func TestJourneyServiceInitializesOnFirstUse(t *testing.T) {
	f := newJourneyFixture(t)

	status, err := f.svc.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, status.CurrentDay)
	assert.Equal(t, "2026-03-10", status.StartDate)
	assert.Empty(t, status.CompletedDays)
	assert.Equal(t, 0, status.PercentComplete)
	assert.False(t, status.Finished)
	assert.NotNil(t, status.TodayActivity)
	assert.Zero(t, status.TodayActivity.MinutesPracticed)

	// The state was persisted, not just returned.
	state, err := f.journeyRepo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentDay)
}

func TestJourneyServiceCompleteDayByActivity(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	// Below the minute threshold: rejected with a reason, no error.
	_, err := f.activityRepo.Upsert(ctx, f.clock.Now(), entities.ActivityDelta{Minutes: 6})
	require.NoError(t, err)

	resp := f.completeDay(t)
	assert.False(t, resp.Accepted)
	assert.NotEmpty(t, resp.Reason)
	assert.Equal(t, 1, resp.NextDay)

	// Crossing the threshold flips the outcome.
	_, err = f.activityRepo.Upsert(ctx, f.clock.Now(), entities.ActivityDelta{Minutes: 4})
	require.NoError(t, err)

	resp = f.completeDay(t)
	assert.True(t, resp.Accepted)
	assert.True(t, resp.DayCompleted)
	assert.Equal(t, 2, resp.NextDay)
	assert.False(t, resp.MilestoneReached)
	assert.Empty(t, resp.Achievements)
}

func TestJourneyServiceCompleteDayByTasks(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	for _, task := range entities.TaskCatalog {
		_, err := f.tasks.Start(ctx, task.ID)
		require.NoError(t, err)
		f.clock.Advance(task.TargetDuration())
		_, err = f.tasks.Complete(ctx, task.ID)
		require.NoError(t, err)
	}

	resp := f.completeDay(t)
	assert.True(t, resp.Accepted)
	assert.Equal(t, 2, resp.NextDay)
}

func TestJourneyServiceCompleteDayUsesRequestSnapshot(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	// The client reports enough practice even though the ledger is empty.
	resp, err := f.svc.CompleteDay(ctx, ports.CompleteDayRequest{
		Date:             entities.FormatDate(f.clock.Now()),
		MinutesPracticed: 12,
	})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)

	// The snapshot is never written back to the ledger.
	_, err = f.activityRepo.GetByDate(ctx, f.clock.Now())
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestJourneyServiceCompleteDayIdempotent(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	_, err := f.activityRepo.Upsert(ctx, f.clock.Now(), entities.ActivityDelta{Minutes: 15})
	require.NoError(t, err)

	first := f.completeDay(t)
	assert.True(t, first.Accepted)
	assert.Equal(t, 2, first.NextDay)

	// A retried submission for the same date cannot advance the journey
	// again, even though the ledger still qualifies.
	for i := 0; i < 2; i++ {
		repeat := f.completeDay(t)
		assert.False(t, repeat.Accepted)
		assert.False(t, repeat.DayCompleted)
		assert.Equal(t, 2, repeat.NextDay)
	}

	// The next calendar day completes day 2 normally.
	f.clock.Advance(24 * time.Hour)
	_, err = f.activityRepo.Upsert(ctx, f.clock.Now(), entities.ActivityDelta{Minutes: 15})
	require.NoError(t, err)

	next := f.completeDay(t)
	assert.True(t, next.Accepted)
	assert.Equal(t, 3, next.NextDay)
}

func TestJourneyServiceMilestoneDay(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	// Pre-complete days 1-6.
	state := entities.NewJourneyState(entities.DateOf(f.clock.Now()))
	for day := 1; day <= 6; day++ {
		require.NoError(t, state.MarkCompleted(day))
	}
	require.NoError(t, f.journeyRepo.Save(ctx, state))

	_, err := f.activityRepo.Upsert(ctx, f.clock.Now(), entities.ActivityDelta{Minutes: 20})
	require.NoError(t, err)

	resp := f.completeDay(t)
	assert.True(t, resp.Accepted)
	assert.True(t, resp.MilestoneReached)
	assert.Len(t, resp.Achievements, 2)
	assert.Equal(t, 8, resp.NextDay)
}

func TestJourneyServiceNonMilestoneDay(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	state := entities.NewJourneyState(entities.DateOf(f.clock.Now()))
	for day := 1; day <= 7; day++ {
		require.NoError(t, state.MarkCompleted(day))
	}
	require.NoError(t, f.journeyRepo.Save(ctx, state))

	_, err := f.activityRepo.Upsert(ctx, f.clock.Now(), entities.ActivityDelta{Minutes: 20})
	require.NoError(t, err)

	resp := f.completeDay(t)
	assert.True(t, resp.Accepted)
	assert.False(t, resp.MilestoneReached)
	assert.Empty(t, resp.Achievements)
}

func TestJourneyServiceFinishedJourney(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	state := entities.NewJourneyState(entities.DateOf(f.clock.Now()))
	for day := 1; day <= entities.JourneyLength; day++ {
		require.NoError(t, state.MarkCompleted(day))
	}
	require.NoError(t, f.journeyRepo.Save(ctx, state))

	resp := f.completeDay(t)
	assert.False(t, resp.Accepted)
	assert.Equal(t, entities.JourneyLength+1, resp.NextDay)

	status, err := f.svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Finished)
	assert.Equal(t, 100, status.PercentComplete)
}

func TestJourneyServiceAchievementsDerived(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	state := entities.NewJourneyState(entities.DateOf(f.clock.Now()))
	for day := 1; day <= 14; day++ {
		require.NoError(t, state.MarkCompleted(day))
	}
	require.NoError(t, f.journeyRepo.Save(ctx, state))

	achievements, err := f.svc.Achievements(ctx)
	require.NoError(t, err)

	unlocked := map[string]bool{}
	for _, a := range achievements {
		unlocked[a.ID] = a.Unlocked
	}
	assert.True(t, unlocked["first-week"])
	assert.True(t, unlocked["habit-former"])
	assert.True(t, unlocked["halfway-there"])
	assert.False(t, unlocked["three-weeks"])
	assert.False(t, unlocked["journey-complete"])
}

func TestJourneyServiceLandmarks(t *testing.T) {
	f := newJourneyFixture(t)

	landmarks, err := f.svc.Landmarks(context.Background())
	require.NoError(t, err)
	assert.Len(t, landmarks, entities.JourneyLength)
}

func TestJourneyServiceStatusIncludesStreak(t *testing.T) {
	f := newJourneyFixture(t)
	ctx := context.Background()

	_, err := f.activityRepo.Upsert(ctx, f.clock.Now().Add(-24*time.Hour), entities.ActivityDelta{Minutes: 10})
	require.NoError(t, err)
	_, err = f.activityRepo.Upsert(ctx, f.clock.Now(), entities.ActivityDelta{Minutes: 10})
	require.NoError(t, err)

	status, err := f.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Streak.Current)
	assert.Equal(t, 2, status.Streak.Longest)
	assert.Equal(t, 10, status.TodayActivity.MinutesPracticed)
}
