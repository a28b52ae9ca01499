package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lingualog/core/internal/domain/entities"
	"github.com/lingualog/core/internal/ports"
)

// JournalRepositoryImpl implements the JournalRepository interface
type JournalRepositoryImpl struct {
	db *sqlx.DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *sqlx.DB) ports.JournalRepository {
	return &JournalRepositoryImpl{db: db}
}

func (r *JournalRepositoryImpl) Create(ctx context.Context, entry *entities.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, entry_date, title, content, translation, source_lang, target_lang, mood)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entities.DateOf(entry.EntryDate), entry.Title, entry.Content,
		entry.Translation, entry.SourceLang, entry.TargetLang, entry.Mood,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}

	return nil
}

func (r *JournalRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.JournalEntry, error) {
	query := `
		SELECT id, entry_date, title, content, translation, source_lang, target_lang, mood,
			created_at, updated_at, deleted_at
		FROM journal_entries
		WHERE id = $1 AND deleted_at IS NULL`

	var entry entities.JournalEntry
	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrEntryNotFound
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}

	return &entry, nil
}

func (r *JournalRepositoryImpl) Update(ctx context.Context, entry *entities.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET title = $2, content = $3, translation = $4, mood = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.Title, entry.Content, entry.Translation, entry.Mood,
	).Scan(&entry.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrEntryNotFound
		}
		return fmt.Errorf("update journal entry: %w", err)
	}

	return nil
}

func (r *JournalRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE journal_entries SET deleted_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrEntryNotFound
	}

	return nil
}

func (r *JournalRepositoryImpl) List(ctx context.Context, filter ports.JournalFilter) ([]*entities.JournalEntry, error) {
	query, args := buildJournalQuery(
		`SELECT id, entry_date, title, content, translation, source_lang, target_lang, mood,
			created_at, updated_at, deleted_at
		FROM journal_entries`, filter, true)

	var entries []*entities.JournalEntry
	err := r.db.SelectContext(ctx, &entries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	return entries, nil
}

func (r *JournalRepositoryImpl) Count(ctx context.Context, filter ports.JournalFilter) (int64, error) {
	query, args := buildJournalQuery(`SELECT COUNT(*) FROM journal_entries`, filter, false)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}

	return count, nil
}

func buildJournalQuery(base string, filter ports.JournalFilter, paginate bool) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(` WHERE deleted_at IS NULL`)

	var args []interface{}
	if filter.From != nil {
		args = append(args, entities.DateOf(*filter.From))
		sb.WriteString(` AND entry_date >= $` + strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, entities.DateOf(*filter.To))
		sb.WriteString(` AND entry_date <= $` + strconv.Itoa(len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		idx := strconv.Itoa(len(args))
		sb.WriteString(` AND (title ILIKE $` + idx + ` OR content ILIKE $` + idx + `)`)
	}

	if paginate {
		sb.WriteString(` ORDER BY entry_date DESC, created_at DESC`)
		limit := filter.Limit
		if limit <= 0 {
			limit = 20
		}
		args = append(args, limit)
		sb.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			sb.WriteString(` OFFSET $` + strconv.Itoa(len(args)))
		}
	}

	return sb.String(), args
}
