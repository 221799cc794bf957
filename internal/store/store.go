// Package store provides SQLite persistence for trips and everything they own.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/theirongolddev/wayfare/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound is returned when no record matches an id.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an id prefix matches more than one record.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// Store is the wayfare database.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens or creates the database at the given path and migrates it.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	raw, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	// One connection keeps the foreign_keys pragma in effect for every statement.
	raw.SetMaxOpenConns(1)

	if err := migrate(ctx, raw); err != nil {
		_ = raw.Close()
		return nil, err
	}

	return &Store{db: sqlx.NewDb(raw, "sqlite"), now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Table names a resolvable record kind.
type Table string

// Tables with uuid primary keys.
const (
	TableTrips        Table = "trips"
	TableDestinations Table = "destinations"
	TableItems        Table = "itinerary_items"
	TableExpenses     Table = "expenses"
	TableDocuments    Table = "documents"
)

func (t Table) valid() bool {
	switch t {
	case TableTrips, TableDestinations, TableItems, TableExpenses, TableDocuments:
		return true
	}
	return false
}

// Resolve expands an id or unique id prefix into a full id.
func (s *Store) Resolve(ctx context.Context, table Table, prefix string) (uuid.UUID, error) {
	if !table.valid() {
		return uuid.Nil, fmt.Errorf("unknown table %q", table)
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return uuid.Nil, fmt.Errorf("%s: empty id: %w", table, ErrNotFound)
	}
	if id, err := uuid.Parse(prefix); err == nil {
		prefix = id.String()
	}

	// LIKE wildcards cannot appear in a valid prefix; reject them outright.
	if strings.ContainsAny(prefix, "%_") {
		return uuid.Nil, fmt.Errorf("%s %q: %w", table, prefix, ErrNotFound)
	}

	var ids []uuid.UUID
	err := s.db.SelectContext(ctx, &ids,
		"SELECT id FROM "+string(table)+" WHERE id LIKE ? LIMIT 2", prefix+"%")
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolving %s id: %w", table, err)
	}

	switch len(ids) {
	case 0:
		return uuid.Nil, fmt.Errorf("%s %q: %w", table, prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%s %q: %w", table, prefix, ErrAmbiguous)
	}
}

// execOne runs a write that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, what string, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func fmtDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t *time.Time, layout func(time.Time) string) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: layout(*t), Valid: true}
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
