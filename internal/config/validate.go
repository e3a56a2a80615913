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

package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validatePredict(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateLog(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.NGramMin < 1 {
		return errors.New("model.ngram_min must be at least 1")
	}
	if c.Model.NGramMax < c.Model.NGramMin {
		return errors.New("model.ngram_max must not be lower than model.ngram_min")
	}
	switch c.Model.Features {
	case FeaturesVocabulary, FeaturesRaw:
	default:
		return fmt.Errorf("model.features: unsupported value %q", c.Model.Features)
	}
	return nil
}

func (c *Config) validatePredict() error {
	if c.Predict.MaxMatches < 0 {
		return errors.New("predict.max_matches must not be negative")
	}
	mc := c.Predict.MinimumConfidence
	if math.IsNaN(mc) || mc < 0 || mc > 1 {
		return errors.New("predict.minimum_confidence must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Name == "" {
		return errors.New("store.name must be set")
	}
	switch c.Store.Driver {
	case DriverFile:
		if c.Store.Dir == "" {
			return errors.New("store.dir must be set for the file driver")
		}
		switch c.Store.Format {
		case FormatJSON, FormatCBOR:
		default:
			return fmt.Errorf("store.format: unsupported value %q", c.Store.Format)
		}
	case DriverSQLite:
		if c.Store.Path == "" {
			return errors.New("store.path must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DBCreds.Host == "" || c.Store.DBCreds.Database == "" {
			return errors.New("store.db_creds.host and store.db_creds.database must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver: unsupported value %q", c.Store.Driver)
	}
	return nil
}

func (c *Config) validateLog() error {
	switch c.Log.Format {
	case "text", "console", "json":
		return nil
	default:
		return fmt.Errorf("log.format: unsupported value %q", c.Log.Format)
	}
}
