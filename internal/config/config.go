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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/TFMV/TextClassifier/pkg/classifier"
)

// EnvPath names the environment variable consulted when no config path is given.
const EnvPath = "CLASSIFY_CONFIG"

type Config struct {
	Model   Model   `yaml:"model" toml:"model"`
	Predict Predict `yaml:"predict" toml:"predict"`
	Store   Store   `yaml:"store" toml:"store"`
	Server  Server  `yaml:"server" toml:"server"`
	Log     Logging `yaml:"log" toml:"log"`
}

// Model configures new classifier models.
type Model struct {
	NGramMin int    `yaml:"ngram_min" toml:"ngram_min"`
	NGramMax int    `yaml:"ngram_max" toml:"ngram_max"`
	Features string `yaml:"features" toml:"features"`
}

// Predict holds the default prediction limits.
type Predict struct {
	MaxMatches        int     `yaml:"max_matches" toml:"max_matches"`
	MinimumConfidence float64 `yaml:"minimum_confidence" toml:"minimum_confidence"`
}

// Store selects where model snapshots are persisted.
type Store struct {
	Driver  string  `yaml:"driver" toml:"driver"`
	Dir     string  `yaml:"dir" toml:"dir"`
	Format  string  `yaml:"format" toml:"format"`
	Path    string  `yaml:"path" toml:"path"`
	Name    string  `yaml:"name" toml:"name"`
	DBCreds DBCreds `yaml:"db_creds" toml:"db_creds"`
}

type DBCreds struct {
	Host     string `yaml:"host" toml:"host"`
	Port     string `yaml:"port" toml:"port"`
	Username string `yaml:"username" toml:"username"`
	Password string `yaml:"password" toml:"password"`
	Database string `yaml:"database" toml:"database"`
}

// ConnString returns the postgres URL for the credentials.
func (c DBCreds) ConnString() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

type Server struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type Logging struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Load reads the config file at path over the defaults. An empty path falls
// back to $CLASSIFY_CONFIG, and to the defaults alone when that is unset too.
// Files ending in .toml are parsed as TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s does not exist", path)
			}
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("unable to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("unable to unmarshal config file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.Model.Features = strings.ToLower(strings.TrimSpace(c.Model.Features))
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Store.Format = strings.ToLower(strings.TrimSpace(c.Store.Format))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// ModelOptions converts the model section into classifier options.
func (c *Config) ModelOptions() []classifier.ModelOption {
	opts := []classifier.ModelOption{classifier.WithNGramRange(c.Model.NGramMin, c.Model.NGramMax)}
	if c.Model.Features == FeaturesRaw {
		opts = append(opts, classifier.WithoutVocabulary())
	}
	return opts
}
