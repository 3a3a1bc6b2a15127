// Package store persists game sessions.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout has a fixed width so that timestamp columns sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for game sessions.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Option customizes a store.
type Option func(*options)

type options struct {
	log    *slog.Logger
	prefix string
}

// WithLogger sets the logger used to report storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, opts ...Option) (*Store, error) {
	o := buildOptions(opts)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Persistence("create data dir", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Persistence("open database", err)
	}
	store := &Store{db: db, log: o.log}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, errors.Persistence("migrate", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL,
			last_played TEXT NOT NULL,
			data TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_last_played ON games(last_played);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetAll returns every stored session, most recently played first.
func (s *Store) GetAll(ctx context.Context) ([]*model.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM games ORDER BY last_played DESC`)
	if err != nil {
		return nil, s.fail(ctx, "list games", "", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []*model.Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, s.fail(ctx, "list games", "", err)
		}
		sess, err := decodeSession([]byte(data))
		if err != nil {
			return nil, s.fail(ctx, "list games", "", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "list games", "", err)
	}
	return sessions, nil
}

// Get loads one session.
func (s *Store) Get(ctx context.Context, id string) (*model.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM games WHERE id = ?`, id).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("game %s not found", id)
	}
	if err != nil {
		return nil, s.fail(ctx, "get game", id, err)
	}
	sess, err := decodeSession([]byte(data))
	if err != nil {
		return nil, s.fail(ctx, "get game", id, err)
	}
	return sess, nil
}

// Save inserts a new session. An existing id is an error.
func (s *Store) Save(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return s.fail(ctx, "save game", sess.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, title, status, created_at, last_played, data) VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.Title,
		string(sess.Status),
		sess.CreatedAt.UTC().Format(timeLayout),
		sess.LastPlayed.UTC().Format(timeLayout),
		string(data),
	)
	if err != nil {
		return s.fail(ctx, "save game", sess.ID, err)
	}
	return nil
}

// Update replaces a stored session.
func (s *Store) Update(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return s.fail(ctx, "update game", sess.ID, err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET title = ?, status = ?, last_played = ?, data = ? WHERE id = ?`,
		sess.Title,
		string(sess.Status),
		sess.LastPlayed.UTC().Format(timeLayout),
		string(data),
		sess.ID,
	)
	if err != nil {
		return s.fail(ctx, "update game", sess.ID, err)
	}
	return expectOne(res, sess.ID)
}

// Delete removes a stored session.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return s.fail(ctx, "delete game", id, err)
	}
	return expectOne(res, id)
}

func (s *Store) fail(ctx context.Context, op, id string, err error) error {
	s.log.DebugContext(ctx, "sqlite store failure", "op", op, "game_id", id, "err", err)
	return errors.Persistence(op, err)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Persistence("rows affected", err)
	}
	if n == 0 {
		return errors.NotFoundf("game %s not found", id)
	}
	return nil
}

func decodeSession(data []byte) (*model.Session, error) {
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	return &sess, nil
}
