package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	// Drivers are selected by config at startup.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound indicates a missing record.
var ErrNotFound = errors.New("record not found")

// Recorder persists interactions and serves aggregate stats.
type Recorder interface {
	Record(ctx context.Context, in *Interaction) error
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// DB is the subset of *sql.DB the store needs.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Config selects and configures the storage driver.
type Config struct {
	Driver string // "sqlite3" or "postgres"
	DSN    string
}

// Store is the SQL-backed Recorder. The same statements run on SQLite and
// Postgres; $N placeholders are valid in both drivers.
type Store struct {
	db     *sql.DB
	closer func() error
}

// Open connects to the configured database and ensures the schema exists.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, closer: db.Close}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS interactions (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			rewritten_query TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			confidence TEXT NOT NULL,
			response_text TEXT NOT NULL,
			sources TEXT NOT NULL DEFAULT '',
			top_score REAL NOT NULL DEFAULT 0,
			document_count INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	idx := `CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions (created_at)`
	if _, err := s.db.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	return nil
}

// Record inserts one interaction.
func (s *Store) Record(ctx context.Context, in *Interaction) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO interactions (id, query, rewritten_query, category, confidence,
			response_text, sources, top_score, document_count, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		in.ID.String(), in.Query, in.RewrittenQuery, in.Category, in.Confidence,
		in.ResponseText, strings.Join(in.Sources, "\n"), in.TopScore,
		in.DocumentCount, in.DurationMs, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// GetByID retrieves one interaction.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*Interaction, error) {
	query := `
		SELECT id, query, rewritten_query, category, confidence, response_text,
			sources, top_score, document_count, duration_ms, created_at
		FROM interactions WHERE id = $1
	`
	var in Interaction
	var idStr, sources string
	err := s.db.QueryRowContext(ctx, query, id.String()).Scan(
		&idStr, &in.Query, &in.RewrittenQuery, &in.Category, &in.Confidence,
		&in.ResponseText, &sources, &in.TopScore, &in.DocumentCount,
		&in.DurationMs, &in.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select interaction: %w", err)
	}

	in.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse interaction id: %w", err)
	}
	if sources != "" {
		in.Sources = strings.Split(sources, "\n")
	}
	return &in, nil
}

// Stats aggregates recorded interactions.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByCategory:   make(map[string]int64),
		ByConfidence: make(map[string]int64),
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(duration_ms), 0) FROM interactions`)
	if err := row.Scan(&stats.TotalInteractions, &stats.AvgDurationMs); err != nil {
		return nil, fmt.Errorf("aggregate totals: %w", err)
	}

	if err := s.countBy(ctx, "category", stats.ByCategory); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, "confidence", stats.ByConfidence); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *Store) countBy(ctx context.Context, column string, into map[string]int64) error {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM interactions GROUP BY %s`, column, column))
	if err != nil {
		return fmt.Errorf("aggregate by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan %s row: %w", column, err)
		}
		into[key] = count
	}
	return rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// NopRecorder discards interactions. Used when persistence is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, in *Interaction) error { return nil }

func (NopRecorder) Stats(ctx context.Context) (*Stats, error) {
	return &Stats{
		ByCategory:   map[string]int64{},
		ByConfidence: map[string]int64{},
	}, nil
}

func (NopRecorder) Close() error { return nil }

var (
	_ Recorder = (*Store)(nil)
	_ Recorder = NopRecorder{}
)
