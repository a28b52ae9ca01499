package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/ports"
)

func newTestJournalService() (*JournalService, *fakeActivityRepo) {
	activityRepo := newFakeActivityRepo()
	svc := NewJournalService(newFakeJournalRepo(), activityRepo, testLogger())
	return svc, activityRepo
}

func createEntryRequest() ports.CreateJournalEntryRequest {
	return ports.CreateJournalEntryRequest{
		EntryDate:  "2026-03-10",
		Title:      "Mercado day",
		Content:    "Hoy fui al mercado y compré naranjas.",
		SourceLang: "es",
		TargetLang: "en",
	}
}

func TestJournalServiceCreateEntryCreditsLedger(t *testing.T) {
	svc, activityRepo := newTestJournalService()
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, createEntryRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, "2026-03-10", entities.FormatDate(entry.EntryDate))

	day, err := activityRepo.GetByDate(ctx, entry.EntryDate)
	require.NoError(t, err)
	assert.Equal(t, 1, day.EntriesWritten)
}

func TestJournalServiceCreateEntryBadDate(t *testing.T) {
	svc, _ := newTestJournalService()

	req := createEntryRequest()
	req.EntryDate = "10.03.2026"
	_, err := svc.CreateEntry(context.Background(), req)
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestJournalServiceUpdateDoesNotRecredit(t *testing.T) {
	svc, activityRepo := newTestJournalService()
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, createEntryRequest())
	require.NoError(t, err)

	newTitle := "Market day"
	updated, err := svc.UpdateEntry(ctx, entry.ID, ports.UpdateJournalEntryRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Market day", updated.Title)
	assert.Equal(t, entry.Content, updated.Content)

	day, err := activityRepo.GetByDate(ctx, entry.EntryDate)
	require.NoError(t, err)
	assert.Equal(t, 1, day.EntriesWritten)
}

func TestJournalServiceDeleteKeepsLedgerCredit(t *testing.T) {
	svc, activityRepo := newTestJournalService()
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, createEntryRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(ctx, entry.ID))

	_, err = svc.GetEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, entities.ErrEntryNotFound)

	day, err := activityRepo.GetByDate(ctx, entry.EntryDate)
	require.NoError(t, err)
	assert.Equal(t, 1, day.EntriesWritten)
}

func TestJournalServiceListEntries(t *testing.T) {
	svc, _ := newTestJournalService()
	ctx := context.Background()

	for _, date := range []string{"2026-03-08", "2026-03-09", "2026-03-10"} {
		req := createEntryRequest()
		req.EntryDate = date
		_, err := svc.CreateEntry(ctx, req)
		require.NoError(t, err)
	}

	entries, total, err := svc.ListEntries(ctx, ports.JournalFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.EqualValues(t, 3, total)
}

func TestJournalServiceGetUnknownEntry(t *testing.T) {
	svc, _ := newTestJournalService()

	_, err := svc.GetEntry(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrEntryNotFound)
}
