// Package sqlite provides the site persistence adapter backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/thinkinrocks/thinkin.rocks/internal/platform/storage/sqlitemigrate"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Store implements storage.ApplicationStore.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.ApplicationStore = (*Store)(nil)

// Open opens and migrates the site database at path, creating its directory
// when needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", cleanPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateApplication inserts application. CreatedAt defaults to now.
func (s *Store) CreateApplication(ctx context.Context, application storage.Application) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	application.ID = strings.TrimSpace(application.ID)
	if application.ID == "" {
		return errors.New("application id is required")
	}
	if application.CreatedAt.IsZero() {
		application.CreatedAt = s.now()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO applications (id, full_name, email, phone, interest, experience, newsletter, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		application.ID,
		application.FullName,
		application.Email,
		nullableString(application.Phone),
		application.Interest,
		nullableString(application.Experience),
		boolToInt(application.Newsletter),
		application.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetApplication loads one application by id.
func (s *Store) GetApplication(ctx context.Context, id string) (storage.Application, error) {
	if s == nil || s.sqlDB == nil {
		return storage.Application{}, errors.New("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, full_name, email, phone, interest, experience, newsletter, created_at
		 FROM applications WHERE id = ?`,
		strings.TrimSpace(id),
	)
	application, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Application{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Application{}, fmt.Errorf("get application: %w", err)
	}
	return application, nil
}

// ListApplications returns the newest applications first. A non-positive
// limit returns every row.
func (s *Store) ListApplications(ctx context.Context, limit int) ([]storage.Application, error) {
	if s == nil || s.sqlDB == nil {
		return nil, errors.New("storage is not configured")
	}
	query := `SELECT id, full_name, email, phone, interest, experience, newsletter, created_at
		 FROM applications ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []storage.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (storage.Application, error) {
	var (
		application storage.Application
		phone       sql.NullString
		experience  sql.NullString
		newsletter  int64
		createdAt   int64
	)
	if err := row.Scan(
		&application.ID,
		&application.FullName,
		&application.Email,
		&phone,
		&application.Interest,
		&experience,
		&newsletter,
		&createdAt,
	); err != nil {
		return storage.Application{}, err
	}
	application.Phone = phone.String
	application.Experience = experience.String
	application.Newsletter = newsletter != 0
	application.CreatedAt = time.UnixMilli(createdAt).UTC()
	return application, nil
}

func nullableString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
