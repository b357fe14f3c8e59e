// Package archive persists verified submissions after admin delivery
// so the control panel can show recent history. Core workflow state is
// never stored here; losing this file loses nothing but history.
package archive

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"scriptsubmit/internal/workflow"
)

// Record is one archived delivery.
type Record struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	ScriptName   string    `json:"script_name"`
	GameLink     string    `json:"game_link"`
	Features     string    `json:"features"`
	Description  string    `json:"description"`
	HasKeySystem bool      `json:"has_key_system"`
	ScriptKey    string    `json:"script_key"`
	ImageURL     string    `json:"image_url"`
	DeliveredAt  time.Time `json:"delivered_at"`
}

// Store wraps the sqlite handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Keep sqlite responsive under the single-writer pattern.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS deliveries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		username TEXT NOT NULL,
		script_name TEXT NOT NULL,
		game_link TEXT NOT NULL,
		features TEXT NOT NULL,
		description TEXT NOT NULL,
		has_key_system BOOLEAN NOT NULL DEFAULT 0,
		script_key TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		delivered_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one archived delivery, retrying on a locked database.
func (s *Store) Record(ctx context.Context, sum workflow.Summary, deliveredAt time.Time) error {
	id := ulid.MustNew(ulid.Timestamp(deliveredAt), rand.Reader).String()

	var lastErr error
	for i := 0; i < 5; i++ {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO deliveries (id, user_id, username, script_name, game_link, features, description, has_key_system, script_key, image_url, delivered_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, sum.UserID, sum.Username, sum.ScriptName, sum.GameLink, sum.Features,
			sum.Description, sum.HasKeySystem, sum.ScriptKey, sum.ImageURL, deliveredAt.Unix())
		if err == nil {
			return nil
		}
		lastErr = err
		if strings.Contains(err.Error(), "database is locked") {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		return err
	}
	return lastErr
}

// Recent returns up to limit deliveries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, username, script_name, game_link, features, description, has_key_system, script_key, image_url, delivered_at
		 FROM deliveries ORDER BY delivered_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var ts int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.ScriptName, &r.GameLink,
			&r.Features, &r.Description, &r.HasKeySystem, &r.ScriptKey, &r.ImageURL, &ts); err != nil {
			return nil, err
		}
		r.DeliveredAt = time.Unix(ts, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the total number of archived deliveries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deliveries`).Scan(&n)
	return n, err
}
