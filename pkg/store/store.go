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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TFMV/TextClassifier/internal/config"
	"github.com/TFMV/TextClassifier/pkg/classifier"
)

// ErrNotFound is returned when no snapshot is saved under a name.
var ErrNotFound = errors.New("model not found")

// Record is one saved revision of a named model.
type Record struct {
	Name     string
	Revision uuid.UUID
	SavedAt  time.Time
	Snapshot classifier.Snapshot
}

// Store persists model snapshots by name.
type Store interface {
	// Save stores snapshot as a new revision of name.
	Save(ctx context.Context, name string, snapshot classifier.Snapshot) (Record, error)
	// Load returns the latest revision of name.
	Load(ctx context.Context, name string) (Record, error)
	// Revisions lists the saved revisions of name, newest first.
	Revisions(ctx context.Context, name string) ([]Record, error)
	Close() error
}

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Dir, cfg.Format)
	case config.DriverSQLite:
		return NewSQLiteStore(ctx, cfg.Path)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.DBCreds.ConnString())
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func newRecord(name string, snapshot classifier.Snapshot) Record {
	return Record{
		Name:     name,
		Revision: uuid.New(),
		SavedAt:  time.Now().UTC(),
		Snapshot: snapshot,
	}
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid model name %q", name)
	}
	return nil
}
