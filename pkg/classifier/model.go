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

package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/TFMV/TextClassifier/pkg/vocabulary"
)

// Default model configuration values.
const (
	DefaultNGramMin = 1
	DefaultNGramMax = 1
)

// ModelVocabulary is either an enabled vocabulary, whose indices are used as
// feature keys, or disabled, in which case raw n-gram terms are the keys.
type ModelVocabulary struct {
	enabled bool
	vocab   *vocabulary.Vocabulary
}

// EnabledVocabulary wraps v. A nil v is replaced by an empty vocabulary.
func EnabledVocabulary(v *vocabulary.Vocabulary) ModelVocabulary {
	if v == nil {
		v = vocabulary.New()
	}
	return ModelVocabulary{enabled: true, vocab: v}
}

// DisabledVocabulary stores raw terms as feature keys.
func DisabledVocabulary() ModelVocabulary {
	return ModelVocabulary{}
}

// Get returns the vocabulary and true when vectorization is enabled.
func (mv ModelVocabulary) Get() (*vocabulary.Vocabulary, bool) {
	return mv.vocab, mv.enabled
}

// Enabled reports whether feature keys are vocabulary indices.
func (mv ModelVocabulary) Enabled() bool {
	return mv.enabled
}

// Model holds the n-gram configuration, the vocabulary and the per-label
// feature tables accumulated by training. Build one with NewModel; the zero
// Model has no valid n-gram range and fails to tokenize with ErrInvalidState.
type Model struct {
	nGramMin   int
	nGramMax   int
	vocabulary ModelVocabulary
	data       map[string]map[string]float64
	labels     []string
}

type modelConfig struct {
	nGramMin   int
	nGramMax   int
	vocabulary ModelVocabulary
	data       map[string]map[string]float64
	labels     []string
}

// ModelOption overrides one field of the default model configuration.
type ModelOption func(*modelConfig)

// WithNGramMin sets the minimum n-gram size.
func WithNGramMin(n int) ModelOption {
	return func(c *modelConfig) { c.nGramMin = n }
}

// WithNGramMax sets the maximum n-gram size.
func WithNGramMax(n int) ModelOption {
	return func(c *modelConfig) { c.nGramMax = n }
}

// WithNGramRange sets both n-gram bounds.
func WithNGramRange(minSize, maxSize int) ModelOption {
	return func(c *modelConfig) {
		c.nGramMin = minSize
		c.nGramMax = maxSize
	}
}

// WithVocabulary seeds the model vocabulary with terms.
func WithVocabulary(terms ...string) ModelOption {
	return func(c *modelConfig) { c.vocabulary = EnabledVocabulary(vocabulary.New(terms...)) }
}

// WithoutVocabulary disables vectorization.
func WithoutVocabulary() ModelOption {
	return func(c *modelConfig) { c.vocabulary = DisabledVocabulary() }
}

// WithData supplies previously accumulated training data. It is deep-copied.
func WithData(data map[string]map[string]float64) ModelOption {
	return func(c *modelConfig) { c.data = data }
}

// WithLabels sets the order in which the labels of the training data are
// scored. Labels not listed follow in sorted order.
func WithLabels(labels ...string) ModelOption {
	return func(c *modelConfig) { c.labels = labels }
}

// NewModel validates the configuration built from opts over the defaults.
func NewModel(opts ...ModelOption) (*Model, error) {
	cfg := modelConfig{
		nGramMin:   DefaultNGramMin,
		nGramMax:   DefaultNGramMax,
		vocabulary: EnabledVocabulary(nil),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateNGramSize("nGramMin", cfg.nGramMin); err != nil {
		return nil, err
	}
	if err := validateNGramSize("nGramMax", cfg.nGramMax); err != nil {
		return nil, err
	}
	if cfg.nGramMax < cfg.nGramMin {
		return nil, fmt.Errorf("%w: invalid nGramMin/nGramMax combination in config", ErrInvalidArgument)
	}
	if err := validateData(cfg.data); err != nil {
		return nil, err
	}

	m := &Model{
		nGramMin: cfg.nGramMin,
		nGramMax: cfg.nGramMax,
	}
	m.SetVocabulary(cfg.vocabulary)
	m.data, m.labels = copyData(cfg.data, cfg.labels)
	return m, nil
}

// NewModelFromSnapshot restores a model from the output of Serialize.
func NewModelFromSnapshot(s Snapshot) (*Model, error) {
	opts := []ModelOption{
		WithNGramRange(s.NGramMin, s.NGramMax),
		WithData(s.Data),
		WithLabels(s.Labels...),
	}
	if s.Vocabulary.Disabled {
		opts = append(opts, WithoutVocabulary())
	} else {
		opts = append(opts, WithVocabulary(s.Vocabulary.Terms...))
	}
	return NewModel(opts...)
}

func validateNGramSize(field string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalidArgument, field)
	}
	return nil
}

func validateData(data map[string]map[string]float64) error {
	for label, table := range data {
		for key, count := range table {
			if math.IsNaN(count) || math.IsInf(count, 0) || count < 0 {
				return fmt.Errorf("%w: data[%q][%q] must be a non-negative count, got %v", ErrInvalidArgument, label, key, count)
			}
		}
	}
	return nil
}

// copyData deep-copies data and returns its labels ordered by orderLabels.
func copyData(data map[string]map[string]float64, order []string) (map[string]map[string]float64, []string) {
	out := make(map[string]map[string]float64, len(data))
	for label, table := range data {
		copied := make(map[string]float64, len(table))
		for key, count := range table {
			copied[key] = count
		}
		out[label] = copied
	}
	return out, orderLabels(data, order)
}

// orderLabels returns the labels of data, first those named in order and then
// the rest sorted. Duplicates and labels absent from data are skipped.
func orderLabels(data map[string]map[string]float64, order []string) []string {
	labels := make([]string, 0, len(data))
	seen := make(map[string]bool, len(data))
	for _, label := range order {
		if _, ok := data[label]; ok && !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}

	rest := make([]string, 0, len(data)-len(labels))
	for label := range data {
		if !seen[label] {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	return append(labels, rest...)
}

// NGramMin returns the minimum n-gram size.
func (m *Model) NGramMin() int {
	return m.nGramMin
}

// SetNGramMin updates the minimum n-gram size. The ordering against
// NGramMax is checked when tokenizing.
func (m *Model) SetNGramMin(n int) error {
	if err := validateNGramSize("nGramMin", n); err != nil {
		return err
	}
	m.nGramMin = n
	return nil
}

// NGramMax returns the maximum n-gram size.
func (m *Model) NGramMax() int {
	return m.nGramMax
}

// SetNGramMax updates the maximum n-gram size.
func (m *Model) SetNGramMax(n int) error {
	if err := validateNGramSize("nGramMax", n); err != nil {
		return err
	}
	m.nGramMax = n
	return nil
}

// Vocabulary returns the model vocabulary variant.
func (m *Model) Vocabulary() ModelVocabulary {
	return m.vocabulary
}

// SetVocabulary replaces the vocabulary. An enabled variant without a
// vocabulary gets a new empty one.
func (m *Model) SetVocabulary(mv ModelVocabulary) {
	if mv.enabled && mv.vocab == nil {
		mv = EnabledVocabulary(nil)
	}
	m.vocabulary = mv
}

// SetVocabularyTerms enables vectorization with a vocabulary built from terms.
func (m *Model) SetVocabularyTerms(terms []string) {
	m.vocabulary = EnabledVocabulary(vocabulary.New(terms...))
}

// Data returns a deep copy of the training data.
func (m *Model) Data() map[string]map[string]float64 {
	data, _ := copyData(m.data, nil)
	return data
}

// SetData validates and replaces the training data with a deep copy of data.
// Labels that were already trained keep their place in the scoring order.
func (m *Model) SetData(data map[string]map[string]float64) error {
	if err := validateData(data); err != nil {
		return err
	}
	m.data, m.labels = copyData(data, m.labels)
	return nil
}

// Labels returns the trained labels in the order they are scored.
func (m *Model) Labels() []string {
	labels := make([]string, len(m.labels))
	copy(labels, m.labels)
	return labels
}

// table returns the feature table for label, creating it on first use.
func (m *Model) table(label string) map[string]float64 {
	if m.data == nil {
		m.data = make(map[string]map[string]float64)
	}
	t, ok := m.data[label]
	if !ok {
		t = make(map[string]float64)
		m.data[label] = t
		m.labels = append(m.labels, label)
	}
	return t
}

// Serialize returns a plain snapshot of the model state.
func (m *Model) Serialize() Snapshot {
	data, labels := copyData(m.data, m.labels)
	s := Snapshot{
		NGramMin: m.nGramMin,
		NGramMax: m.nGramMax,
		Data:     data,
		Labels:   labels,
	}
	if v, ok := m.vocabulary.Get(); ok {
		s.Vocabulary = SnapshotVocabulary{Terms: v.Terms()}
	} else {
		s.Vocabulary = SnapshotVocabulary{Disabled: true}
	}
	return s
}

// Snapshot is the persisted form of a Model.
//
// Labels is the scoring order of the labels in Data. It is not a field of
// the JSON form: the keys of "data" are written in that order and read back
// in the order they appear.
type Snapshot struct {
	NGramMin   int                           `json:"nGramMin"`
	NGramMax   int                           `json:"nGramMax"`
	Vocabulary SnapshotVocabulary            `json:"vocabulary"`
	Data       map[string]map[string]float64 `json:"data"`
	Labels     []string                      `json:"-"`
}

// LabelOrder returns the labels of Data, those listed in Labels first and
// the rest sorted.
func (s Snapshot) LabelOrder() []string {
	return orderLabels(s.Data, s.Labels)
}

// snapshotFields has the fields of Snapshot without its JSON methods.
type snapshotFields Snapshot

func (s Snapshot) MarshalJSON() ([]byte, error) {
	var data bytes.Buffer
	data.WriteByte('{')
	for i, label := range s.LabelOrder() {
		if i > 0 {
			data.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		table := s.Data[label]
		if table == nil {
			table = map[string]float64{}
		}
		value, err := json.Marshal(table)
		if err != nil {
			return nil, err
		}
		data.Write(key)
		data.WriteByte(':')
		data.Write(value)
	}
	data.WriteByte('}')

	return json.Marshal(struct {
		snapshotFields
		Data json.RawMessage `json:"data"`
	}{snapshotFields(s), data.Bytes()})
}

// UnmarshalJSON decodes into the current values, so fields missing from b
// keep them.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	aux := struct {
		*snapshotFields
		Data json.RawMessage `json:"data"`
	}{snapshotFields: (*snapshotFields)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(aux.Data) == 0 {
		return nil
	}

	data, labels, err := decodeData(aux.Data)
	if err != nil {
		return err
	}
	if data != nil {
		s.Data, s.Labels = data, labels
	}
	return nil
}

// decodeData reads the label tables of b along with the order of their keys.
// A JSON null yields a nil map.
func decodeData(b []byte) (map[string]map[string]float64, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if tok == nil {
		return nil, nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("%w: data must be an object of label tables", ErrInvalidArgument)
	}

	data := make(map[string]map[string]float64)
	var labels []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		label := tok.(string)

		var table map[string]float64
		if err := dec.Decode(&table); err != nil {
			return nil, nil, fmt.Errorf("%w: data[%q] must map feature keys to counts", ErrInvalidArgument, label)
		}
		if _, ok := data[label]; !ok {
			labels = append(labels, label)
		}
		data[label] = table
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return data, labels, nil
}

// DefaultSnapshot returns the snapshot of a default model. Decode into it so
// that missing fields keep their defaults.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		NGramMin:   DefaultNGramMin,
		NGramMax:   DefaultNGramMax,
		Vocabulary: SnapshotVocabulary{Terms: []string{}},
		Data:       map[string]map[string]float64{},
	}
}

// SnapshotVocabulary encodes as a JSON array of terms, or false when the
// vocabulary is disabled.
type SnapshotVocabulary struct {
	Disabled bool
	Terms    []string
}

func (sv SnapshotVocabulary) MarshalJSON() ([]byte, error) {
	if sv.Disabled {
		return []byte("false"), nil
	}
	terms := sv.Terms
	if terms == nil {
		terms = []string{}
	}
	return json.Marshal(terms)
}

func (sv *SnapshotVocabulary) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null":
		return nil
	case "false":
		*sv = SnapshotVocabulary{Disabled: true}
		return nil
	}

	var terms []string
	if err := json.Unmarshal(b, &terms); err != nil {
		return fmt.Errorf("%w: vocabulary must be an array of strings or false", ErrInvalidArgument)
	}
	if terms == nil {
		terms = []string{}
	}
	*sv = SnapshotVocabulary{Terms: terms}
	return nil
}
