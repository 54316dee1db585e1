package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the session journal to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			price          TEXT NOT NULL,
			previous_close TEXT,
			currency       TEXT,
			market_state   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quote_symbol_ts ON quote_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS mutation_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			shares     TEXT,
			price      TEXT,
			outcome    TEXT NOT NULL,
			message    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mutation_ts ON mutation_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuote(snap *QuoteSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var prev sql.NullString
	if snap.PreviousClose != nil {
		prev = sql.NullString{String: snap.PreviousClose.String(), Valid: true}
	}
	_, err := r.db.Exec(`INSERT INTO quote_snapshots
		(timestamp, symbol, price, previous_close, currency, market_state)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Symbol, snap.Price.String(), prev,
		snap.Currency, snap.MarketState,
	)
	return err
}

func (r *SQLiteRecorder) RecordMutation(evt *MutationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO mutation_events
		(timestamp, event_type, symbol, shares, price, outcome, message)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.EventType, evt.Symbol,
		evt.Shares.String(), evt.Price.String(), evt.Outcome, evt.Message,
	)
	return err
}

// CountQuotes returns how many snapshots were recorded for symbol.
func (r *SQLiteRecorder) CountQuotes(symbol string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM quote_snapshots WHERE symbol = ?`, symbol).Scan(&n)
	return n, err
}

// RecentMutations returns the latest events, newest first.
func (r *SQLiteRecorder) RecentMutations(limit int) ([]MutationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, event_type, symbol, outcome, COALESCE(message, '')
		FROM mutation_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query mutations: %w", err)
	}
	defer rows.Close()

	var events []MutationEvent
	for rows.Next() {
		var (
			evt MutationEvent
			ts  int64
		)
		if err := rows.Scan(&ts, &evt.EventType, &evt.Symbol, &evt.Outcome, &evt.Message); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		evt.RecordedAt = time.Unix(ts, 0)
		events = append(events, evt)
	}
	return events, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
