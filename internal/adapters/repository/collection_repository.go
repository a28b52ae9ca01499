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

// CollectionRepositoryImpl implements the CollectionRepository interface
type CollectionRepositoryImpl struct {
	db *sqlx.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *sqlx.DB) ports.CollectionRepository {
	return &CollectionRepositoryImpl{db: db}
}

func (r *CollectionRepositoryImpl) CreateVocabulary(ctx context.Context, item *entities.VocabularyItem) error {
	query := `
		INSERT INTO vocabulary_items (id, term, translation, notes, category_id, learned)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.Term, item.Translation, item.Notes, item.CategoryID, item.Learned,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create vocabulary item: %w", err)
	}

	return nil
}

func (r *CollectionRepositoryImpl) GetVocabulary(ctx context.Context, id uuid.UUID) (*entities.VocabularyItem, error) {
	query := `
		SELECT id, term, translation, notes, category_id, learned, created_at, updated_at, deleted_at
		FROM vocabulary_items
		WHERE id = $1 AND deleted_at IS NULL`

	var item entities.VocabularyItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrItemNotFound
		}
		return nil, fmt.Errorf("get vocabulary item: %w", err)
	}

	return &item, nil
}

func (r *CollectionRepositoryImpl) UpdateVocabulary(ctx context.Context, item *entities.VocabularyItem) error {
	query := `
		UPDATE vocabulary_items
		SET term = $2, translation = $3, notes = $4, category_id = $5, learned = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.Term, item.Translation, item.Notes, item.CategoryID, item.Learned,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrItemNotFound
		}
		return fmt.Errorf("update vocabulary item: %w", err)
	}

	return nil
}

func (r *CollectionRepositoryImpl) DeleteVocabulary(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vocabulary_items SET deleted_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete vocabulary item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrItemNotFound
	}

	return nil
}

func (r *CollectionRepositoryImpl) ListVocabulary(ctx context.Context, filter ports.CollectionFilter) ([]*entities.VocabularyItem, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, term, translation, notes, category_id, learned, created_at, updated_at, deleted_at
		FROM vocabulary_items
		WHERE deleted_at IS NULL`)

	args := appendCollectionFilter(&sb, filter, "term", "translation")

	var items []*entities.VocabularyItem
	err := r.db.SelectContext(ctx, &items, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary items: %w", err)
	}

	return items, nil
}

func (r *CollectionRepositoryImpl) CreatePhrase(ctx context.Context, phrase *entities.Phrase) error {
	query := `
		INSERT INTO phrases (id, phrase_text, translation, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if phrase.ID == uuid.Nil {
		phrase.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		phrase.ID, phrase.Text, phrase.Translation, phrase.CategoryID,
	).Scan(&phrase.CreatedAt)
	if err != nil {
		return fmt.Errorf("create phrase: %w", err)
	}

	return nil
}

func (r *CollectionRepositoryImpl) DeletePhrase(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE phrases SET deleted_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete phrase: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrItemNotFound
	}

	return nil
}

func (r *CollectionRepositoryImpl) ListPhrases(ctx context.Context, filter ports.CollectionFilter) ([]*entities.Phrase, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, phrase_text, translation, category_id, created_at, deleted_at
		FROM phrases
		WHERE deleted_at IS NULL`)

	args := appendCollectionFilter(&sb, filter, "phrase_text", "translation")

	var phrases []*entities.Phrase
	err := r.db.SelectContext(ctx, &phrases, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}

	return phrases, nil
}

func (r *CollectionRepositoryImpl) CreateCategory(ctx context.Context, category *entities.Category) error {
	query := `
		INSERT INTO categories (name, kind)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, category.Name, category.Kind).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *CollectionRepositoryImpl) ListCategories(ctx context.Context, kind *entities.CategoryKind) ([]*entities.Category, error) {
	query := `SELECT id, name, kind, created_at FROM categories`
	var args []interface{}
	if kind != nil {
		query += ` WHERE kind = $1`
		args = append(args, *kind)
	}
	query += ` ORDER BY name`

	var categories []*entities.Category
	err := r.db.SelectContext(ctx, &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

// appendCollectionFilter appends shared WHERE/ORDER/LIMIT clauses and returns
// the positional args. searchCols are the columns matched by Search.
func appendCollectionFilter(sb *strings.Builder, filter ports.CollectionFilter, searchCols ...string) []interface{} {
	var args []interface{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		sb.WriteString(` AND category_id = $` + strconv.Itoa(len(args)))
	}
	if filter.Learned != nil {
		args = append(args, *filter.Learned)
		sb.WriteString(` AND learned = $` + strconv.Itoa(len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		idx := strconv.Itoa(len(args))
		clauses := make([]string, 0, len(searchCols))
		for _, col := range searchCols {
			clauses = append(clauses, col+` ILIKE $`+idx)
		}
		sb.WriteString(` AND (` + strings.Join(clauses, ` OR `) + `)`)
	}

	sb.WriteString(` ORDER BY created_at DESC`)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	sb.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sb.WriteString(` OFFSET $` + strconv.Itoa(len(args)))
	}

	return args
}
