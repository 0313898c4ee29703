package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/focusd/internal/model"
)

// SQLiteStore keeps the document in a SQLite database, one table per
// sequence. Save replaces every row inside a single transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(ctx context.Context, db *sql.DB, path string) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(ctx, db); err != nil {
		return nil, wrapErr("migrate", path, err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, wrapErr("open", path, err)
	}
	db.SetMaxOpenConns(1)
	store, err := NewSQLiteStore(context.Background(), db, path)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (model.Document, error) {
	var file documentFile
	var err error
	if file.Tasks, err = s.loadColumn(ctx, `SELECT name FROM tasks ORDER BY position`); err != nil {
		return model.Document{}, err
	}
	if file.SprintBlocks, err = s.loadColumn(ctx, `SELECT completed_at FROM sprint_blocks ORDER BY position`); err != nil {
		return model.Document{}, err
	}
	if file.SleepLog, err = s.loadColumn(ctx, `SELECT entry FROM sleep_log ORDER BY position`); err != nil {
		return model.Document{}, err
	}
	if file.WeeklyReviews, err = s.loadReviews(ctx); err != nil {
		return model.Document{}, err
	}
	return fromFile(file)
}

func (s *SQLiteStore) loadColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("query", s.path, err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v string
		if scanErr := rows.Scan(&v); scanErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, scanErr)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("query", s.path, err)
	}
	return out, nil
}

func (s *SQLiteStore) loadReviews(ctx context.Context) ([]reviewFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT week_start, wins, struggles, improvements, priorities
		FROM weekly_reviews ORDER BY position`)
	if err != nil {
		return nil, wrapErr("query", s.path, err)
	}
	defer rows.Close()

	out := make([]reviewFile, 0)
	for rows.Next() {
		var r reviewFile
		if scanErr := rows.Scan(&r.WeekStart, &r.Wins, &r.Struggles, &r.Improvements, &r.Priorities); scanErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, s.path, scanErr)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("query", s.path, err)
	}
	return out, nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc model.Document) error {
	file := toFile(doc)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin", s.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"tasks", "sprint_blocks", "sleep_log", "weekly_reviews"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return wrapErr("clear "+table, s.path, err)
		}
	}
	if err := insertColumn(ctx, tx, `INSERT INTO tasks (position, name) VALUES (?, ?)`, file.Tasks); err != nil {
		return wrapErr("insert tasks", s.path, err)
	}
	if err := insertColumn(ctx, tx, `INSERT INTO sprint_blocks (position, completed_at) VALUES (?, ?)`, file.SprintBlocks); err != nil {
		return wrapErr("insert sprint_blocks", s.path, err)
	}
	if err := insertColumn(ctx, tx, `INSERT INTO sleep_log (position, entry) VALUES (?, ?)`, file.SleepLog); err != nil {
		return wrapErr("insert sleep_log", s.path, err)
	}
	for i, r := range file.WeeklyReviews {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO weekly_reviews (position, week_start, wins, struggles, improvements, priorities)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, r.WeekStart, r.Wins, r.Struggles, r.Improvements, r.Priorities,
		); err != nil {
			return wrapErr("insert weekly_reviews", s.path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return wrapErr("commit", s.path, err)
	}
	return nil
}

func insertColumn(ctx context.Context, tx *sql.Tx, query string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, i, v); err != nil {
			return err
		}
	}
	return nil
}
