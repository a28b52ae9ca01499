package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lingualog/core/internal/domain/entities"
)

// ActivityRepository defines storage for the per-date activity ledger.
type ActivityRepository interface {
	// Upsert adds the delta to the row for date, creating it when absent.
	// Deltas are additive; counters never decrease within a day.
	Upsert(ctx context.Context, date time.Time, delta entities.ActivityDelta) (*entities.ActivityDay, error)
	GetByDate(ctx context.Context, date time.Time) (*entities.ActivityDay, error)
	ListDates(ctx context.Context) ([]time.Time, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*entities.ActivityDay, error)
}

// JourneyRepository defines storage for the singleton journey state.
type JourneyRepository interface {
	Get(ctx context.Context) (*entities.JourneyState, error)
	Save(ctx context.Context, state *entities.JourneyState) error
}

// TaskStateRepository defines storage for per-task-per-day timer records.
type TaskStateRepository interface {
	Get(ctx context.Context, taskID string, day time.Time) (*entities.TaskState, error)
	ListForDay(ctx context.Context, day time.Time) ([]*entities.TaskState, error)
	// GetActive returns the in-progress record for the day, if any.
	GetActive(ctx context.Context, day time.Time) (*entities.TaskState, error)
	Save(ctx context.Context, state *entities.TaskState) error
}

// JournalRepository defines storage for bilingual diary entries.
type JournalRepository interface {
	Create(ctx context.Context, entry *entities.JournalEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.JournalEntry, error)
	Update(ctx context.Context, entry *entities.JournalEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter JournalFilter) ([]*entities.JournalEntry, error)
	Count(ctx context.Context, filter JournalFilter) (int64, error)
}

// CollectionRepository defines storage for vocabulary, phrases and
// categories.
type CollectionRepository interface {
	CreateVocabulary(ctx context.Context, item *entities.VocabularyItem) error
	GetVocabulary(ctx context.Context, id uuid.UUID) (*entities.VocabularyItem, error)
	UpdateVocabulary(ctx context.Context, item *entities.VocabularyItem) error
	DeleteVocabulary(ctx context.Context, id uuid.UUID) error
	ListVocabulary(ctx context.Context, filter CollectionFilter) ([]*entities.VocabularyItem, error)

	CreatePhrase(ctx context.Context, phrase *entities.Phrase) error
	DeletePhrase(ctx context.Context, id uuid.UUID) error
	ListPhrases(ctx context.Context, filter CollectionFilter) ([]*entities.Phrase, error)

	CreateCategory(ctx context.Context, category *entities.Category) error
	ListCategories(ctx context.Context, kind *entities.CategoryKind) ([]*entities.Category, error)
}

// UserRepository defines storage for the single configured account.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}

// JournalFilter narrows journal listings.
type JournalFilter struct {
	From   *time.Time
	To     *time.Time
	Search *string
	Limit  int
	Offset int
}

// CollectionFilter narrows vocabulary/phrase listings.
type CollectionFilter struct {
	CategoryID *int
	Learned    *bool
	Search     *string
	Limit      int
	Offset     int
}
