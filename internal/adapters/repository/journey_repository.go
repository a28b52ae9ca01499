package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/ports"
)

// JourneyRepositoryImpl implements the JourneyRepository interface.
// The journey_state table holds exactly one row (id = 1).
type JourneyRepositoryImpl struct {
	db *sqlx.DB
}

// NewJourneyRepository creates a new journey repository
func NewJourneyRepository(db *sqlx.DB) ports.JourneyRepository {
	return &JourneyRepositoryImpl{db: db}
}

func (r *JourneyRepositoryImpl) Get(ctx context.Context) (*entities.JourneyState, error) {
	query := `
		SELECT id, start_date, current_day, completed_days, last_completed_date, updated_at
		FROM journey_state
		WHERE id = 1`

	var state entities.JourneyState
	err := r.db.GetContext(ctx, &state, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("get journey state: %w", err)
	}

	return &state, nil
}

func (r *JourneyRepositoryImpl) Save(ctx context.Context, state *entities.JourneyState) error {
	query := `
		INSERT INTO journey_state (id, start_date, current_day, completed_days, last_completed_date)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			start_date          = EXCLUDED.start_date,
			current_day         = EXCLUDED.current_day,
			completed_days      = EXCLUDED.completed_days,
			last_completed_date = EXCLUDED.last_completed_date,
			updated_at          = CURRENT_TIMESTAMP
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		state.StartDate, state.CurrentDay, state.CompletedDays, state.LastCompletedDate,
	).Scan(&state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save journey state: %w", err)
	}

	return nil
}
