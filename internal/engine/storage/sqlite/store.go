// Package sqlite provides a SQLite-backed roll history implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/dice-engine/internal/engine/storage"
	"github.com/louisbranch/dice-engine/internal/engine/storage/sqlite/migrations"
	apperrors "github.com/louisbranch/dice-engine/internal/errors"
	sqlitemigrate "github.com/louisbranch/dice-engine/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// defaultListLimit caps ListRolls when the caller does not provide a limit.
const defaultListLimit = 50

// Store persists roll history in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite roll history store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRoll inserts one history entry.
func (s *Store) SaveRoll(ctx context.Context, entry storage.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(entry.ID)
	expression := strings.TrimSpace(entry.Expression)
	if id == "" {
		return fmt.Errorf("roll id is required")
	}
	if expression == "" {
		return fmt.Errorf("expression is required")
	}

	rolls, err := json.Marshal(entry.Rolls)
	if err != nil {
		return fmt.Errorf("encode rolls: %w", err)
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO rolls (id, expression, value, seed, rolls, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		expression,
		entry.Value,
		entry.Seed,
		string(rolls),
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert roll: %w", err)
	}
	return nil
}

// GetRoll returns the entry with the given id.
func (s *Store) GetRoll(ctx context.Context, id string) (storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return storage.Entry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Entry{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, expression, value, seed, rolls, created_at
		 FROM rolls WHERE id = ?`,
		strings.TrimSpace(id),
	)
	entry, err := scanEntry(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.Entry{}, apperrors.WithMetadata(
				apperrors.CodeNotFound,
				fmt.Sprintf("roll %q not found", id),
				map[string]string{"ID": id},
			)
		}
		return storage.Entry{}, fmt.Errorf("query roll: %w", err)
	}
	return entry, nil
}

// ListRolls returns the most recent entries, newest first.
func (s *Store) ListRolls(ctx context.Context, limit int) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, expression, value, seed, rolls, created_at
		 FROM rolls ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query rolls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []storage.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rolls: %w", err)
	}
	return entries, nil
}

func scanEntry(scan func(dest ...any) error) (storage.Entry, error) {
	var entry storage.Entry
	var rolls string
	var createdAt int64
	if err := scan(&entry.ID, &entry.Expression, &entry.Value, &entry.Seed, &rolls, &createdAt); err != nil {
		return storage.Entry{}, err
	}
	if rolls != "" && rolls != "null" {
		if err := json.Unmarshal([]byte(rolls), &entry.Rolls); err != nil {
			return storage.Entry{}, fmt.Errorf("decode rolls: %w", err)
		}
	}
	entry.CreatedAt = fromMillis(createdAt)
	return entry, nil
}

var _ storage.Store = (*Store)(nil)
