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

// TaskStateRepositoryImpl implements the TaskStateRepository interface.
// Rows are keyed (task_id, day); yesterday's rows are simply never read
// again, which gives every task a fresh not_started state each calendar day.
type TaskStateRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskStateRepository creates a new task state repository
func NewTaskStateRepository(db *sqlx.DB) ports.TaskStateRepository {
	return &TaskStateRepositoryImpl{db: db}
}

func (r *TaskStateRepositoryImpl) Get(ctx context.Context, taskID string, day time.Time) (*entities.TaskState, error) {
	query := `
		SELECT task_id, day, status, started_at_ms, accumulated_seconds, updated_at
		FROM task_states
		WHERE task_id = $1 AND day = $2`

	var state entities.TaskState
	err := r.db.GetContext(ctx, &state, query, taskID, entities.DateOf(day))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("get task state: %w", err)
	}

	return &state, nil
}

func (r *TaskStateRepositoryImpl) ListForDay(ctx context.Context, day time.Time) ([]*entities.TaskState, error) {
	query := `
		SELECT task_id, day, status, started_at_ms, accumulated_seconds, updated_at
		FROM task_states
		WHERE day = $1
		ORDER BY task_id`

	var states []*entities.TaskState
	err := r.db.SelectContext(ctx, &states, query, entities.DateOf(day))
	if err != nil {
		return nil, fmt.Errorf("list task states: %w", err)
	}

	return states, nil
}

func (r *TaskStateRepositoryImpl) GetActive(ctx context.Context, day time.Time) (*entities.TaskState, error) {
	query := `
		SELECT task_id, day, status, started_at_ms, accumulated_seconds, updated_at
		FROM task_states
		WHERE day = $1 AND status = $2`

	var state entities.TaskState
	err := r.db.GetContext(ctx, &state, query, entities.DateOf(day), entities.TaskStatusInProgress)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("get active task state: %w", err)
	}

	return &state, nil
}

func (r *TaskStateRepositoryImpl) Save(ctx context.Context, state *entities.TaskState) error {
	query := `
		INSERT INTO task_states (task_id, day, status, started_at_ms, accumulated_seconds)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (task_id, day) DO UPDATE SET
			status              = EXCLUDED.status,
			started_at_ms       = EXCLUDED.started_at_ms,
			accumulated_seconds = EXCLUDED.accumulated_seconds,
			updated_at          = CURRENT_TIMESTAMP
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		state.TaskID, entities.DateOf(state.Day), state.Status,
		state.StartedAtMS, state.AccumulatedSeconds,
	).Scan(&state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save task state: %w", err)
	}

	return nil
}
