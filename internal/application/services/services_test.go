package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/infrastructure/logger"
	"github.com/lingualog/core/internal/ports"
)

// In-memory repository fakes and a settable clock shared by the service
// tests.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeActivityRepo struct {
	mu   sync.Mutex
	days map[string]*entities.ActivityDay
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{days: make(map[string]*entities.ActivityDay)}
}

func (r *fakeActivityRepo) Upsert(ctx context.Context, date time.Time, delta entities.ActivityDelta) (*entities.ActivityDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entities.FormatDate(date)
	day, ok := r.days[key]
	if !ok {
		day = &entities.ActivityDay{Date: entities.DateOf(date)}
		r.days[key] = day
	}
	day.MinutesPracticed += delta.Minutes
	day.EntriesWritten += delta.Entries
	day.WordsLearned += delta.Words
	day.UpdatedAt = time.Now()

	copied := *day
	return &copied, nil
}

func (r *fakeActivityRepo) GetByDate(ctx context.Context, date time.Time) (*entities.ActivityDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day, ok := r.days[entities.FormatDate(date)]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *day
	return &copied, nil
}

func (r *fakeActivityRepo) ListDates(ctx context.Context) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.days))
	for k := range r.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dates := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, r.days[k].Date)
	}
	return dates, nil
}

func (r *fakeActivityRepo) ListRange(ctx context.Context, from, to time.Time) ([]*entities.ActivityDay, error) {
	dates, _ := r.ListDates(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.ActivityDay
	for _, d := range dates {
		if d.Before(entities.DateOf(from)) || d.After(entities.DateOf(to)) {
			continue
		}
		copied := *r.days[entities.FormatDate(d)]
		out = append(out, &copied)
	}
	return out, nil
}

type fakeJourneyRepo struct {
	mu    sync.Mutex
	state *entities.JourneyState
}

func (r *fakeJourneyRepo) Get(ctx context.Context) (*entities.JourneyState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == nil {
		return nil, entities.ErrNotFound
	}
	copied := *r.state
	copied.CompletedDays = append(copied.CompletedDays[:0:0], r.state.CompletedDays...)
	return &copied, nil
}

func (r *fakeJourneyRepo) Save(ctx context.Context, state *entities.JourneyState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *state
	copied.CompletedDays = append(copied.CompletedDays[:0:0], state.CompletedDays...)
	r.state = &copied
	return nil
}

type taskKey struct {
	taskID string
	day    string
}

type fakeTaskRepo struct {
	mu     sync.Mutex
	states map[taskKey]*entities.TaskState
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{states: make(map[taskKey]*entities.TaskState)}
}

func (r *fakeTaskRepo) key(taskID string, day time.Time) taskKey {
	return taskKey{taskID: taskID, day: entities.FormatDate(day)}
}

func (r *fakeTaskRepo) Get(ctx context.Context, taskID string, day time.Time) (*entities.TaskState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.states[r.key(taskID, day)]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *state
	return &copied, nil
}

func (r *fakeTaskRepo) ListForDay(ctx context.Context, day time.Time) ([]*entities.TaskState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.TaskState
	for k, state := range r.states {
		if k.day != entities.FormatDate(day) {
			continue
		}
		copied := *state
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (r *fakeTaskRepo) GetActive(ctx context.Context, day time.Time) (*entities.TaskState, error) {
	states, _ := r.ListForDay(ctx, day)
	for _, state := range states {
		if state.Status == entities.TaskStatusInProgress {
			return state, nil
		}
	}
	return nil, entities.ErrNotFound
}

func (r *fakeTaskRepo) Save(ctx context.Context, state *entities.TaskState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *state
	r.states[r.key(state.TaskID, state.Day)] = &copied
	return nil
}

type fakeJournalRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entities.JournalEntry
}

func newFakeJournalRepo() *fakeJournalRepo {
	return &fakeJournalRepo{entries: make(map[uuid.UUID]*entities.JournalEntry)}
}

func (r *fakeJournalRepo) Create(ctx context.Context, entry *entities.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeJournalRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || entry.DeletedAt != nil {
		return nil, entities.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *fakeJournalRepo) Update(ctx context.Context, entry *entities.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.ID]; !ok {
		return entities.ErrEntryNotFound
	}
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeJournalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || entry.DeletedAt != nil {
		return entities.ErrEntryNotFound
	}
	now := time.Now()
	entry.DeletedAt = &now
	return nil
}

func (r *fakeJournalRepo) List(ctx context.Context, filter ports.JournalFilter) ([]*entities.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.JournalEntry
	for _, entry := range r.entries {
		if entry.DeletedAt != nil {
			continue
		}
		copied := *entry
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out, nil
}

func (r *fakeJournalRepo) Count(ctx context.Context, filter ports.JournalFilter) (int64, error) {
	entries, _ := r.List(ctx, filter)
	return int64(len(entries)), nil
}

type fakeCollectionRepo struct {
	mu         sync.Mutex
	vocabulary map[uuid.UUID]*entities.VocabularyItem
	phrases    map[uuid.UUID]*entities.Phrase
	categories []*entities.Category
	nextCatID  int
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{
		vocabulary: make(map[uuid.UUID]*entities.VocabularyItem),
		phrases:    make(map[uuid.UUID]*entities.Phrase),
		nextCatID:  1,
	}
}

func (r *fakeCollectionRepo) CreateVocabulary(ctx context.Context, item *entities.VocabularyItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.vocabulary[item.ID] = &copied
	return nil
}

func (r *fakeCollectionRepo) GetVocabulary(ctx context.Context, id uuid.UUID) (*entities.VocabularyItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.vocabulary[id]
	if !ok || item.DeletedAt != nil {
		return nil, entities.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeCollectionRepo) UpdateVocabulary(ctx context.Context, item *entities.VocabularyItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vocabulary[item.ID]; !ok {
		return entities.ErrItemNotFound
	}
	copied := *item
	r.vocabulary[item.ID] = &copied
	return nil
}

func (r *fakeCollectionRepo) DeleteVocabulary(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.vocabulary[id]
	if !ok || item.DeletedAt != nil {
		return entities.ErrItemNotFound
	}
	now := time.Now()
	item.DeletedAt = &now
	return nil
}

func (r *fakeCollectionRepo) ListVocabulary(ctx context.Context, filter ports.CollectionFilter) ([]*entities.VocabularyItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.VocabularyItem
	for _, item := range r.vocabulary {
		if item.DeletedAt != nil {
			continue
		}
		copied := *item
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out, nil
}

func (r *fakeCollectionRepo) CreatePhrase(ctx context.Context, phrase *entities.Phrase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *phrase
	r.phrases[phrase.ID] = &copied
	return nil
}

func (r *fakeCollectionRepo) DeletePhrase(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	phrase, ok := r.phrases[id]
	if !ok || phrase.DeletedAt != nil {
		return entities.ErrItemNotFound
	}
	now := time.Now()
	phrase.DeletedAt = &now
	return nil
}

func (r *fakeCollectionRepo) ListPhrases(ctx context.Context, filter ports.CollectionFilter) ([]*entities.Phrase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Phrase
	for _, phrase := range r.phrases {
		if phrase.DeletedAt != nil {
			continue
		}
		copied := *phrase
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out, nil
}

func (r *fakeCollectionRepo) CreateCategory(ctx context.Context, category *entities.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category.ID = r.nextCatID
	r.nextCatID++
	copied := *category
	r.categories = append(r.categories, &copied)
	return nil
}

func (r *fakeCollectionRepo) ListCategories(ctx context.Context, kind *entities.CategoryKind) ([]*entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Category
	for _, category := range r.categories {
		if kind != nil && category.Kind != *kind {
			continue
		}
		copied := *category
		out = append(out, &copied)
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func testLogger() *logger.Logger {
	return logger.NewNop()
}
