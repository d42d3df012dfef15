package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dasdy/holdlight/model"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db}
}

func InitDBStorage(ctx context.Context, db *sql.DB) error {
	sqlStmt := `
	create table if not exists boulders(
		name text primary key,
		difficulty text not null default '',
		holds text not null,
		updated_at datetime);`

	_, err := db.ExecContext(ctx, sqlStmt)
	if err != nil {
		slog.Error("Could not create boulders table", "error", err)

		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}

// ConnectDB opens a sqlite file, or an in-memory database for ":memory:".
func ConnectDB(ctx context.Context, path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s: %w", ErrStorage, path, err)
	}

	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if err := InitDBStorage(ctx, db); err != nil {
		db.Close()

		return nil, err
	}

	return NewStorage(db), nil
}

func (s *SQLiteStorage) Save(ctx context.Context, name string, boulder model.Boulder) error {
	if err := validateName(name); err != nil {
		return err
	}

	holds, err := json.Marshal(boulder.Holds)
	if err != nil {
		return fmt.Errorf("%w: could not encode holds: %w", ErrStorage, err)
	}

	_, err = s.db.ExecContext(ctx, `insert into boulders(name, difficulty, holds, updated_at)
	    values(?, ?, ?, datetime('now'))
	    on conflict(name) do update set
	        difficulty = excluded.difficulty,
	        holds = excluded.holds,
	        updated_at = excluded.updated_at`,
		name, boulder.Difficulty, string(holds))
	if err != nil {
		return fmt.Errorf("%w: could not save %q: %w", ErrStorage, name, err)
	}

	return nil
}

func (s *SQLiteStorage) Load(ctx context.Context, name string) (model.Boulder, error) {
	var difficulty, holds string

	err := s.db.QueryRowContext(ctx, `select difficulty, holds from boulders where name = ?`, name).
		Scan(&difficulty, &holds)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Boulder{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err != nil {
		return model.Boulder{}, fmt.Errorf("%w: could not load %q: %w", ErrStorage, name, err)
	}

	result := model.Boulder{Difficulty: difficulty}
	if err := json.Unmarshal([]byte(holds), &result.Holds); err != nil {
		return model.Boulder{}, fmt.Errorf("%w: corrupt holds for %q: %w", ErrStorage, name, err)
	}

	return result, nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `delete from boulders where name = ?`, name)
	if err != nil {
		return fmt.Errorf("%w: could not delete %q: %w", ErrStorage, name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return nil
}

func (s *SQLiteStorage) List(ctx context.Context) ([]model.BoulderSummary, error) {
	rows, err := s.db.QueryContext(ctx, `select name, difficulty from boulders order by name`)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list boulders: %w", ErrStorage, err)
	}

	defer rows.Close()

	result := make([]model.BoulderSummary, 0)

	for rows.Next() {
		var summary model.BoulderSummary

		if err := rows.Scan(&summary.Name, &summary.Difficulty); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		result = append(result, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return result, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
