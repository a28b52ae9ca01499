package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/ports"
)

// ActivityRepositoryImpl implements the ActivityRepository interface
type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sqlx.DB) ports.ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

// Upsert adds the delta to the ledger row for the date. The whole
// read-modify-write happens in one statement, so concurrent writers cannot
// lose updates.
func (r *ActivityRepositoryImpl) Upsert(ctx context.Context, date time.Time, delta entities.ActivityDelta) (*entities.ActivityDay, error) {
	query := `
		INSERT INTO activity_days (activity_date, minutes_practiced, entries_written, words_learned)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (activity_date) DO UPDATE SET
			minutes_practiced = activity_days.minutes_practiced + EXCLUDED.minutes_practiced,
			entries_written   = activity_days.entries_written + EXCLUDED.entries_written,
			words_learned     = activity_days.words_learned + EXCLUDED.words_learned,
			updated_at        = CURRENT_TIMESTAMP
		RETURNING activity_date, minutes_practiced, entries_written, words_learned, updated_at`

	var day entities.ActivityDay
	err := r.db.GetContext(ctx, &day, query,
		entities.DateOf(date), delta.Minutes, delta.Entries, delta.Words)
	if err != nil {
		return nil, fmt.Errorf("upsert activity day: %w", err)
	}

	return &day, nil
}

func (r *ActivityRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*entities.ActivityDay, error) {
	query := `
		SELECT activity_date, minutes_practiced, entries_written, words_learned, updated_at
		FROM activity_days
		WHERE activity_date = $1`

	var day entities.ActivityDay
	err := r.db.GetContext(ctx, &day, query, entities.DateOf(date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("get activity day: %w", err)
	}

	return &day, nil
}

func (r *ActivityRepositoryImpl) ListDates(ctx context.Context) ([]time.Time, error) {
	query := `SELECT activity_date FROM activity_days ORDER BY activity_date`

	var dates []time.Time
	err := r.db.SelectContext(ctx, &dates, query)
	if err != nil {
		return nil, fmt.Errorf("list activity dates: %w", err)
	}

	return dates, nil
}

func (r *ActivityRepositoryImpl) ListRange(ctx context.Context, from, to time.Time) ([]*entities.ActivityDay, error) {
	query := `
		SELECT activity_date, minutes_practiced, entries_written, words_learned, updated_at
		FROM activity_days
		WHERE activity_date >= $1 AND activity_date <= $2
		ORDER BY activity_date`

	var days []*entities.ActivityDay
	err := r.db.SelectContext(ctx, &days, query, entities.DateOf(from), entities.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("list activity range: %w", err)
	}

	return days, nil
}
