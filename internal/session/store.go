package session

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed cache of raw provider payloads, keyed by
// (season, event, kind). Payloads are stored gzip-compressed; a session is
// fetched from the provider once and reused for every subsequent selection.
type Store struct {
	*sql.DB
}

// NewStore opens (or creates) the cache database at path. Run MigrateUp
// before first use.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache: %w", err)
	}
	return &Store{db}, nil
}

// MigrateUp runs all pending migrations up to the latest version.
// Returns nil if no migrations were needed (already at latest version).
func (s *Store) MigrateUp(migrationsDir string) error {
	m, err := s.newMigrate(migrationsDir)
	if err != nil {
		return err
	}
	// Note: We don't close m here because it would close the underlying DB connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

func (s *Store) newMigrate(migrationsDir string) (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", absPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Load returns the cached payload for a session key. The second return is
// false on a cache miss.
func (s *Store) Load(key Key) ([]byte, bool, error) {
	var compressed []byte
	err := s.QueryRow(
		`SELECT payload FROM sessions WHERE season = ? AND event = ? AND kind = ?`,
		key.Season, key.Event, string(key.Kind),
	).Scan(&compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read session cache: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress cached session: %w", err)
	}
	defer zr.Close()
	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress cached session: %w", err)
	}
	return payload, true, nil
}

// Save stores a provider payload for a session key, replacing any previous
// entry.
func (s *Store) Save(key Key, payload []byte) error {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return fmt.Errorf("failed to compress session payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress session payload: %w", err)
	}

	_, err := s.Exec(
		`INSERT INTO sessions (season, event, kind, payload, fetched_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(season, event, kind) DO UPDATE SET
		 payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key.Season, key.Event, string(key.Kind), buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("failed to write session cache: %w", err)
	}
	return nil
}
