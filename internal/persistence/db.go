// Package persistence provides SQLite-based storage for generated telemetry.
package persistence

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/playersim/internal/engine"
	"github.com/talgya/playersim/internal/players"
)

// TimeLayout is how event times are stored. It sorts lexically.
const TimeLayout = "2006-01-02 15:04:05.000"

// ErrNotEmpty is returned by EnsureEmpty when a previous run left events.
var ErrNotEmpty = errors.New("database already holds events")

// DB wraps a SQLite connection for event storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_time TEXT NOT NULL,
		event_date TEXT NOT NULL,
		event_type TEXT NOT NULL,
		player_id TEXT NOT NULL,
		player_type TEXT NOT NULL,
		session_id INTEGER NOT NULL,
		amount INTEGER NOT NULL,
		stage_score INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		idx INTEGER NOT NULL,
		archetype TEXT NOT NULL,
		acquired_day INTEGER NOT NULL,
		sessions INTEGER NOT NULL,
		purchases INTEGER NOT NULL,
		revenue INTEGER NOT NULL,
		stages INTEGER NOT NULL,
		last_session_end TEXT
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date);
	CREATE INDEX IF NOT EXISTS idx_events_player ON events(player_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Reset removes every row left by a previous run.
func (db *DB) Reset() error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"events", "players", "run_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// EnsureEmpty fails with ErrNotEmpty if events are already stored.
func (db *DB) EnsureEmpty() error {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM events"); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w (%d rows)", ErrNotEmpty, n)
	}
	return nil
}

// WriteEvents appends one day's events.
func (db *DB) WriteEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO events
		(event_time, event_date, event_type, player_id, player_type, session_id, amount, stage_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.Exec(
			e.Time.Format(TimeLayout), e.Time.Format(time.DateOnly),
			string(e.Type), e.PlayerID, e.PlayerType,
			e.SessionID, e.Amount, e.Score,
		)
		if err != nil {
			return fmt.Errorf("insert %s event for %s: %w", e.Type, e.PlayerID, err)
		}
	}

	return tx.Commit()
}

// SavePlayers writes the population (full replace).
func (db *DB) SavePlayers(ps []*players.Player) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM players"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO players
		(id, idx, archetype, acquired_day, sessions, purchases, revenue, stages, last_session_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range ps {
		var last *string
		if !p.LastSessionEnd.IsZero() {
			s := p.LastSessionEnd.Format(TimeLayout)
			last = &s
		}
		_, err := stmt.Exec(
			p.ID.String(), p.Index, p.Label(), p.AcquiredDay,
			p.Sessions, p.Purchases, p.Revenue, p.Stages, last,
		)
		if err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}

	slog.Debug("players saved", "count", len(ps))
	return tx.Commit()
}

// SaveMeta stores a key-value pair describing the run.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// DaySummary aggregates one calendar date of stored events.
type DaySummary struct {
	Date      string `db:"event_date"`
	Active    int    `db:"active"`
	Acquired  int    `db:"acquired"`
	Sessions  int    `db:"sessions"`
	Purchases int    `db:"purchases"`
	Revenue   int    `db:"revenue"`
	Stages    int    `db:"stages"`
}

// DailySummary returns per-date totals in date order. Active counts
// distinct players with at least one login.
func (db *DB) DailySummary() ([]DaySummary, error) {
	var out []DaySummary
	err := db.conn.Select(&out, `SELECT
		event_date,
		COUNT(DISTINCT CASE WHEN event_type = 'login' THEN player_id END) AS active,
		COALESCE(SUM(event_type = 'acquisition'), 0) AS acquired,
		COALESCE(SUM(event_type = 'login'), 0) AS sessions,
		COALESCE(SUM(event_type = 'purchase'), 0) AS purchases,
		COALESCE(SUM(CASE WHEN event_type = 'purchase' THEN amount ELSE 0 END), 0) AS revenue,
		COALESCE(SUM(event_type = 'stage_end'), 0) AS stages
		FROM events GROUP BY event_date ORDER BY event_date`)
	return out, err
}

// ArchetypeSummary aggregates the saved population by archetype.
type ArchetypeSummary struct {
	Archetype string `db:"archetype"`
	Players   int    `db:"players"`
	Sessions  int    `db:"sessions"`
	Purchases int    `db:"purchases"`
	Revenue   int    `db:"revenue"`
}

// Archetypes returns population totals per archetype, largest first.
func (db *DB) Archetypes() ([]ArchetypeSummary, error) {
	var out []ArchetypeSummary
	err := db.conn.Select(&out, `SELECT archetype,
		COUNT(*) AS players,
		SUM(sessions) AS sessions,
		SUM(purchases) AS purchases,
		SUM(revenue) AS revenue
		FROM players GROUP BY archetype ORDER BY players DESC, archetype`)
	return out, err
}

type eventRow struct {
	Time       string `db:"event_time"`
	Type       string `db:"event_type"`
	PlayerID   string `db:"player_id"`
	PlayerType string `db:"player_type"`
	SessionID  int64  `db:"session_id"`
	Amount     int    `db:"amount"`
	Score      int    `db:"stage_score"`
}

// RecentEvents returns the most recent N events, newest first. Times are
// read back in UTC.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var rows []eventRow
	err := db.conn.Select(&rows, `SELECT event_time, event_type, player_id, player_type,
		session_id, amount, stage_score FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	events := make([]engine.Event, 0, len(rows))
	for _, r := range rows {
		t, err := time.Parse(TimeLayout, r.Time)
		if err != nil {
			return nil, fmt.Errorf("parse event time %q: %w", r.Time, err)
		}
		events = append(events, engine.Event{
			Time:       t,
			Type:       engine.EventType(r.Type),
			PlayerID:   r.PlayerID,
			PlayerType: r.PlayerType,
			SessionID:  r.SessionID,
			Amount:     r.Amount,
			Score:      r.Score,
		})
	}
	return events, nil
}
