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

package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/TFMV/TextClassifier/pkg/classifier"
	"github.com/TFMV/TextClassifier/pkg/store"
)

// ErrNoStore is returned by Save and Reload when the service runs without a store.
var ErrNoStore = errors.New("no model store configured")

// PredictDefaults fill in prediction limits a request leaves out.
type PredictDefaults struct {
	MaxMatches        int
	MinimumConfidence float64
}

// Service serializes access to a classifier shared by HTTP handlers and
// persists its model under a fixed name.
type Service struct {
	mu         sync.RWMutex
	classifier *classifier.Classifier
	store      store.Store
	name       string
	defaults   PredictDefaults
	logger     *slog.Logger
}

// NewService wraps c. st may be nil, in which case the model lives in memory only.
func NewService(c *classifier.Classifier, st store.Store, name string, defaults PredictDefaults, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		classifier: c,
		store:      st,
		name:       name,
		defaults:   defaults,
		logger:     logger,
	}
}

// Train adds inputs to label and returns the resulting vocabulary size, or -1
// for raw-term models.
func (s *Service) Train(inputs []string, label string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.classifier.TrainAll(inputs, label); err != nil {
		return 0, err
	}
	s.logger.Debug("trained", "label", label, "inputs", len(inputs))

	if vocab, ok := s.classifier.Model().Vocabulary().Get(); ok {
		return vocab.Size(), nil
	}
	return -1, nil
}

// Predict scores input. Nil limits fall back to the service defaults.
func (s *Service) Predict(input string, maxMatches *int, minimumConfidence *float64) ([]classifier.Prediction, error) {
	limit := s.defaults.MaxMatches
	if maxMatches != nil {
		limit = *maxMatches
	}
	minimum := s.defaults.MinimumConfidence
	if minimumConfidence != nil {
		minimum = *minimumConfidence
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifier.Predict(input, limit, minimum)
}

// Snapshot returns the serialized current model.
func (s *Service) Snapshot() classifier.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifier.Model().Serialize()
}

// Labels returns the trained labels.
func (s *Service) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifier.Model().Labels()
}

// Replace swaps in a model restored from snapshot.
func (s *Service) Replace(snapshot classifier.Snapshot) error {
	m, err := classifier.NewModelFromSnapshot(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifier.SetModel(m)
	return nil
}

// Save persists the current model as a new revision.
func (s *Service) Save(ctx context.Context) (store.Record, error) {
	if s.store == nil {
		return store.Record{}, ErrNoStore
	}
	rec, err := s.store.Save(ctx, s.name, s.Snapshot())
	if err != nil {
		return store.Record{}, err
	}
	s.logger.Info("model saved", "name", rec.Name, "revision", rec.Revision)
	return rec, nil
}

// Reload replaces the current model with the latest saved revision.
func (s *Service) Reload(ctx context.Context) (store.Record, error) {
	if s.store == nil {
		return store.Record{}, ErrNoStore
	}
	rec, err := s.store.Load(ctx, s.name)
	if err != nil {
		return store.Record{}, err
	}
	if err := s.Replace(rec.Snapshot); err != nil {
		return store.Record{}, err
	}
	s.logger.Info("model loaded", "name", rec.Name, "revision", rec.Revision)
	return rec, nil
}

// Revisions lists the saved revisions of the model.
func (s *Service) Revisions(ctx context.Context) ([]store.Record, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.Revisions(ctx, s.name)
}
