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
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/TFMV/TextClassifier/pkg/classifier"
)

const lockRetryDelay = 50 * time.Millisecond

// FileStore keeps the latest snapshot of each model in its own file under dir.
type FileStore struct {
	dir   string
	codec Codec
}

// NewFileStore creates dir if needed and encodes snapshots with format.
func NewFileStore(dir, format string) (*FileStore, error) {
	codec, err := NewCodec(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}
	return &FileStore{dir: dir, codec: codec}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+s.codec.Ext())
}

func (s *FileStore) lock(name string) *flock.Flock {
	return flock.New(filepath.Join(s.dir, "."+name+".lock"))
}

// Save replaces the file for name. Concurrent writers are serialized by an
// advisory lock and readers never observe a partial file.
func (s *FileStore) Save(ctx context.Context, name string, snapshot classifier.Snapshot) (Record, error) {
	if err := validateName(name); err != nil {
		return Record{}, err
	}

	rec := newRecord(name, snapshot)
	data, err := s.codec.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("encode snapshot: %w", err)
	}

	lock := s.lock(name)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return Record{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return Record{}, fmt.Errorf("acquire lock: %s is busy", name)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return Record{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Record{}, fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return Record{}, fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Record{}, fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return Record{}, fmt.Errorf("replace snapshot: %w", err)
	}

	return rec, nil
}

func (s *FileStore) Load(ctx context.Context, name string) (Record, error) {
	if err := validateName(name); err != nil {
		return Record{}, err
	}

	lock := s.lock(name)
	locked, err := lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return Record{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return Record{}, fmt.Errorf("acquire lock: %s is busy", name)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Record{}, fmt.Errorf("read snapshot: %w", err)
	}
	return s.codec.Unmarshal(data)
}

// Revisions returns the single stored revision; the file store keeps no history.
func (s *FileStore) Revisions(ctx context.Context, name string) ([]Record, error) {
	rec, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return []Record{rec}, nil
}

func (s *FileStore) Close() error {
	return nil
}
