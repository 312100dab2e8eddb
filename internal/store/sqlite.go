package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/model"
)

// SQLiteStore implements the ChecklistStore interface using a local
// SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ListAll returns every saved checklist in insertion order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]model.Checklist, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, items, created_at, updated_at FROM checklists ORDER BY rowid",
	)
	if err != nil {
		return nil, storageErr("querying checklists", err)
	}
	defer rows.Close()

	var checklists []model.Checklist
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		checklists = append(checklists, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("reading checklist rows", err)
	}

	return checklists, nil
}

// Get returns a single checklist by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Checklist, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, name, items, created_at, updated_at FROM checklists WHERE id = ?", id,
	)

	c, err := scanChecklist(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeNotFound, "checklist %q not found", id)
		}
		return nil, err
	}

	return &c, nil
}

// Upsert inserts or replaces a checklist. An existing record keeps
// its created_at; updated_at is always rewritten to now.
func (s *SQLiteStore) Upsert(ctx context.Context, c model.Checklist) (model.Checklist, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return model.Checklist{}, storageErr("marshaling checklist items", err)
	}

	now := time.Now().UTC()
	c.UpdatedAt = now

	var existingCreatedAt time.Time
	err = s.db.GetContext(ctx, &existingCreatedAt,
		"SELECT created_at FROM checklists WHERE id = ?", c.ID,
	)
	switch {
	case err == nil:
		c.CreatedAt = existingCreatedAt.UTC()
		_, err = s.db.ExecContext(ctx,
			"UPDATE checklists SET name = ?, items = ?, updated_at = ? WHERE id = ?",
			c.Name, string(itemsJSON), c.UpdatedAt, c.ID,
		)
		if err != nil {
			return model.Checklist{}, storageErr(fmt.Sprintf("updating checklist %s", c.ID), err)
		}

	case errors.Is(err, sql.ErrNoRows):
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO checklists (id, name, items, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, string(itemsJSON), c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return model.Checklist{}, storageErr(fmt.Sprintf("inserting checklist %s", c.ID), err)
		}

	default:
		return model.Checklist{}, storageErr(fmt.Sprintf("looking up checklist %s", c.ID), err)
	}

	return c, nil
}

// Delete removes a checklist by id. Missing ids are ignored.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM checklists WHERE id = ?", id)
	if err != nil {
		return storageErr(fmt.Sprintf("deleting checklist %s", id), err)
	}
	return nil
}

// scanChecklist scans a checklist row, unmarshaling the items column.
func scanChecklist(row interface{ Scan(dest ...interface{}) error }) (model.Checklist, error) {
	var (
		c         model.Checklist
		itemsJSON string
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&c.ID, &c.Name, &itemsJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Checklist{}, err
		}
		return model.Checklist{}, storageErr("scanning checklist row", err)
	}

	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()

	if itemsJSON != "" {
		var raws []model.RawItem
		if err := json.Unmarshal([]byte(itemsJSON), &raws); err != nil {
			return model.Checklist{}, storageErr("unmarshaling checklist items", err)
		}
		c.Items = model.NormalizeAll(raws)
	}

	return c, nil
}

// storageErr classifies a low-level database error into the shared
// taxonomy, distinguishing a full storage medium from other failures.
func storageErr(message string, err error) error {
	if isQuotaErr(err) {
		return apperrors.Wrap(apperrors.CodeStorageQuota, message, err)
	}
	return apperrors.Wrap(apperrors.CodeStorage, message, err)
}

// isQuotaErr reports whether err is SQLite's out-of-space condition
// (SQLITE_FULL surfaces as "database or disk is full").
func isQuotaErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "database or disk is full")
}
