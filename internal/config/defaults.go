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

import "github.com/TFMV/TextClassifier/pkg/classifier"

// Feature key modes.
const (
	FeaturesVocabulary = "vocabulary"
	FeaturesRaw        = "raw"
)

// Store drivers and snapshot formats.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FormatJSON = "json"
	FormatCBOR = "cbor"
)

const (
	defaultStoreDir   = "models"
	defaultSQLitePath = "classifier.db"
	defaultModelName  = "default"
	defaultServerAddr = "127.0.0.1:8080"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
	defaultPGHost     = "localhost"
	defaultPGPort     = "5432"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Model: Model{
			NGramMin: classifier.DefaultNGramMin,
			NGramMax: classifier.DefaultNGramMax,
			Features: FeaturesVocabulary,
		},
		Predict: Predict{
			MaxMatches:        classifier.DefaultMaxMatches,
			MinimumConfidence: classifier.DefaultMinimumConfidence,
		},
		Store: Store{
			Driver: DriverFile,
			Dir:    defaultStoreDir,
			Format: FormatJSON,
			Path:   defaultSQLitePath,
			Name:   defaultModelName,
			DBCreds: DBCreds{
				Host: defaultPGHost,
				Port: defaultPGPort,
			},
		},
		Server: Server{Addr: defaultServerAddr},
		Log: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
