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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/TFMV/TextClassifier/internal/config"
	"github.com/TFMV/TextClassifier/internal/logging"
	"github.com/TFMV/TextClassifier/pkg/classifier"
	"github.com/TFMV/TextClassifier/pkg/store"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Log.Level = *c.logLevelFlag
		}

		logger, err := logging.Init(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

// withStore opens the configured store for the duration of fn.
func (c *commandContext) withStore(ctx context.Context, fn func(store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

// loadClassifier returns a classifier over the latest saved model, or over a
// new model built from config when nothing has been saved yet. The returned
// record is zero in the latter case.
func (c *commandContext) loadClassifier(ctx context.Context, st store.Store) (*classifier.Classifier, store.Record, error) {
	cfg := c.config
	rec, err := st.Load(ctx, cfg.Store.Name)
	if errors.Is(err, store.ErrNotFound) {
		model, err := classifier.NewModel(cfg.ModelOptions()...)
		if err != nil {
			return nil, store.Record{}, err
		}
		c.logger.Debug("starting new model", "name", cfg.Store.Name)
		return classifier.New(model), store.Record{}, nil
	}
	if err != nil {
		return nil, store.Record{}, err
	}

	model, err := classifier.NewModelFromSnapshot(rec.Snapshot)
	if err != nil {
		return nil, store.Record{}, fmt.Errorf("restore model %s: %w", rec.Name, err)
	}
	c.logger.Debug("loaded model", "name", rec.Name, "revision", rec.Revision)
	return classifier.New(model), rec, nil
}
