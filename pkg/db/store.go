package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/japaniel/lexiquest/pkg/progress"
)

const progressTable = "progress_history"

// ErrDuplicateRecord is returned when a record ID is already stored.
var ErrDuplicateRecord = errors.New("progress record already stored")

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// Store persists quiz progress in sqlite. It implements progress.Persister.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open, migrated database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendProgress inserts one record.
func (s *Store) AppendProgress(ctx context.Context, rec progress.Record) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("progress record id must be non-empty")
	}
	query, args, err := sq.Insert(progressTable).
		Columns("id", "category", "score", "recorded_at").
		Values(rec.ID, rec.Category, rec.Score, rec.RecordedAt.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueConstraintErr(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
		}
		return fmt.Errorf("insert progress: %w", err)
	}
	return nil
}

// LoadProgress returns every stored record in insertion order.
func (s *Store) LoadProgress(ctx context.Context) ([]progress.Record, error) {
	return s.selectProgress(ctx, sq.Select("seq", "id", "category", "score", "recorded_at").
		From(progressTable).
		OrderBy("seq"))
}

// DeleteCategory removes the history of one category and reports how many rows went.
func (s *Store) DeleteCategory(ctx context.Context, category string) (int64, error) {
	query, args, err := sq.Delete(progressTable).Where(sq.Eq{"category": category}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete progress: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) selectProgress(ctx context.Context, b sq.SelectBuilder) ([]progress.Record, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var rows []progressRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select progress: %w", err)
	}

	out := make([]progress.Record, 0, len(rows))
	for _, r := range rows {
		at, err := time.Parse(time.RFC3339Nano, r.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("progress %s: bad timestamp %q: %w", r.ID, r.RecordedAt, err)
		}
		out = append(out, progress.Record{
			ID:         r.ID,
			Category:   r.Category,
			Score:      r.Score,
			RecordedAt: at,
		})
	}
	return out, nil
}
