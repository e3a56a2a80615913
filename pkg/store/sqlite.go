// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/TFMV/TextClassifier/pkg/classifier"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS model_revisions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	revision TEXT NOT NULL UNIQUE,
	saved_at TEXT NOT NULL,
	snapshot TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_model_revisions_name ON model_revisions(name, id);
`

// SQLiteStore appends every save as a new row of model_revisions.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, name string, snapshot classifier.Snapshot) (Record, error) {
	if err := validateName(name); err != nil {
		return Record{}, err
	}

	rec := newRecord(name, snapshot)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return Record{}, fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO model_revisions (name, revision, saved_at, snapshot) VALUES (?, ?, ?, ?)`,
		rec.Name, rec.Revision.String(), rec.SavedAt.Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert revision: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, revision, saved_at, snapshot FROM model_revisions WHERE name = ? ORDER BY id DESC LIMIT 1`,
		name,
	)
	rec, err := scanSQLiteRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return rec, err
}

func (s *SQLiteStore) Revisions(ctx context.Context, name string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, revision, saved_at, snapshot FROM model_revisions WHERE name = ? ORDER BY id DESC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return records, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRecord(row rowScanner) (Record, error) {
	var (
		rec      Record
		revision string
		savedAt  string
		snapshot string
	)
	if err := row.Scan(&rec.Name, &revision, &savedAt, &snapshot); err != nil {
		return Record{}, err
	}
	return decodeRow(rec.Name, revision, savedAt, snapshot)
}

func decodeRow(name, revision, savedAt, snapshot string) (Record, error) {
	rev, err := uuid.Parse(revision)
	if err != nil {
		return Record{}, fmt.Errorf("parse revision: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse saved_at: %w", err)
	}
	s := classifier.DefaultSnapshot()
	if err := json.Unmarshal([]byte(snapshot), &s); err != nil {
		return Record{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return Record{Name: name, Revision: rev, SavedAt: ts, Snapshot: s}, nil
}
