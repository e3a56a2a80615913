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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TFMV/TextClassifier/pkg/classifier"
)

// snapshot is json rather than jsonb, which reorders object keys; the order
// of the "data" keys is the label order.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS model_revisions (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	revision UUID NOT NULL UNIQUE,
	saved_at TIMESTAMPTZ NOT NULL,
	snapshot JSON NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_model_revisions_name ON model_revisions (name, id);
`

// PostgresStore appends every save as a new row of model_revisions.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool for connString and applies the schema.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, snapshot classifier.Snapshot) (Record, error) {
	if err := validateName(name); err != nil {
		return Record{}, err
	}

	rec := newRecord(name, snapshot)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return Record{}, fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO model_revisions (name, revision, saved_at, snapshot) VALUES ($1, $2::text::uuid, $3, $4::text::json)`,
		rec.Name, rec.Revision.String(), rec.SavedAt, string(data),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert revision: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Load(ctx context.Context, name string) (Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT name, revision::text, saved_at, snapshot::text FROM model_revisions WHERE name = $1 ORDER BY id DESC LIMIT 1`,
		name,
	)
	rec, err := scanPostgresRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return rec, err
}

func (s *PostgresStore) Revisions(ctx context.Context, name string) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, revision::text, saved_at, snapshot::text FROM model_revisions WHERE name = $1 ORDER BY id DESC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanPostgresRecord(rows)
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

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPostgresRecord(row pgx.Row) (Record, error) {
	var (
		name     string
		revision string
		savedAt  time.Time
		snapshot string
	)
	if err := row.Scan(&name, &revision, &savedAt, &snapshot); err != nil {
		return Record{}, err
	}
	return decodeRow(name, revision, savedAt.UTC().Format(time.RFC3339Nano), snapshot)
}
