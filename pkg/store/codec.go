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
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/TFMV/TextClassifier/internal/config"
	"github.com/TFMV/TextClassifier/pkg/classifier"
)

// Codec encodes a Record for the file store.
type Codec interface {
	Marshal(rec Record) ([]byte, error)
	Unmarshal(data []byte) (Record, error)
	Ext() string
}

// NewCodec returns the codec for format ("json" or "cbor").
func NewCodec(format string) (Codec, error) {
	switch format {
	case config.FormatJSON, "":
		return jsonCodec{}, nil
	case config.FormatCBOR:
		return cborCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
}

type jsonDocument struct {
	Name     string              `json:"name"`
	Revision string              `json:"revision"`
	SavedAt  time.Time           `json:"savedAt"`
	Model    classifier.Snapshot `json:"model"`
}

type jsonCodec struct{}

func (jsonCodec) Ext() string { return ".json" }

func (jsonCodec) Marshal(rec Record) ([]byte, error) {
	return json.MarshalIndent(jsonDocument{
		Name:     rec.Name,
		Revision: rec.Revision.String(),
		SavedAt:  rec.SavedAt,
		Model:    rec.Snapshot,
	}, "", "  ")
}

func (jsonCodec) Unmarshal(data []byte) (Record, error) {
	doc := jsonDocument{Model: classifier.DefaultSnapshot()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, fmt.Errorf("decode json snapshot: %w", err)
	}
	return doc.record()
}

func (d jsonDocument) record() (Record, error) {
	rev, err := uuid.Parse(d.Revision)
	if err != nil {
		return Record{}, fmt.Errorf("parse revision: %w", err)
	}
	return Record{Name: d.Name, Revision: rev, SavedAt: d.SavedAt, Snapshot: d.Model}, nil
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	cborEnc, err = encOptions.EncMode()
	if err != nil {
		panic("store: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("store: CBOR decoder initialization failed: " + err.Error())
	}
}

// cborModel mirrors the JSON snapshot layout: vocabulary is an array of
// terms or false. Deterministic encoding sorts map keys, so the label order
// is kept in labels.
type cborModel struct {
	NGramMin   int                           `cbor:"nGramMin"`
	NGramMax   int                           `cbor:"nGramMax"`
	Vocabulary any                           `cbor:"vocabulary"`
	Data       map[string]map[string]float64 `cbor:"data"`
	Labels     []string                      `cbor:"labels,omitempty"`
}

type cborDocument struct {
	Name     string    `cbor:"name"`
	Revision []byte    `cbor:"revision"`
	SavedAt  time.Time `cbor:"savedAt"`
	Model    cborModel `cbor:"model"`
}

type cborCodec struct{}

func (cborCodec) Ext() string { return ".cbor" }

func (cborCodec) Marshal(rec Record) ([]byte, error) {
	s := rec.Snapshot
	var vocab any = false
	if !s.Vocabulary.Disabled {
		terms := s.Vocabulary.Terms
		if terms == nil {
			terms = []string{}
		}
		vocab = terms
	}
	data := s.Data
	if data == nil {
		data = map[string]map[string]float64{}
	}

	return cborEnc.Marshal(cborDocument{
		Name:     rec.Name,
		Revision: rec.Revision[:],
		SavedAt:  rec.SavedAt,
		Model: cborModel{
			NGramMin:   s.NGramMin,
			NGramMax:   s.NGramMax,
			Vocabulary: vocab,
			Data:       data,
			Labels:     s.LabelOrder(),
		},
	})
}

func (cborCodec) Unmarshal(data []byte) (Record, error) {
	defaults := classifier.DefaultSnapshot()
	doc := cborDocument{Model: cborModel{
		NGramMin: defaults.NGramMin,
		NGramMax: defaults.NGramMax,
		Data:     defaults.Data,
	}}
	if err := cborDec.Unmarshal(data, &doc); err != nil {
		return Record{}, fmt.Errorf("decode cbor snapshot: %w", err)
	}

	rev, err := uuid.FromBytes(doc.Revision)
	if err != nil {
		return Record{}, fmt.Errorf("parse revision: %w", err)
	}
	vocab, err := decodeCBORVocabulary(doc.Model.Vocabulary)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Name:     doc.Name,
		Revision: rev,
		SavedAt:  doc.SavedAt,
		Snapshot: classifier.Snapshot{
			NGramMin:   doc.Model.NGramMin,
			NGramMax:   doc.Model.NGramMax,
			Vocabulary: vocab,
			Data:       doc.Model.Data,
			Labels:     doc.Model.Labels,
		},
	}, nil
}

func decodeCBORVocabulary(v any) (classifier.SnapshotVocabulary, error) {
	switch v := v.(type) {
	case nil:
		return classifier.SnapshotVocabulary{Terms: []string{}}, nil
	case bool:
		if !v {
			return classifier.SnapshotVocabulary{Disabled: true}, nil
		}
	case []any:
		terms := make([]string, 0, len(v))
		for _, item := range v {
			term, ok := item.(string)
			if !ok {
				return classifier.SnapshotVocabulary{}, fmt.Errorf("%w: vocabulary must be an array of strings or false", classifier.ErrInvalidArgument)
			}
			terms = append(terms, term)
		}
		return classifier.SnapshotVocabulary{Terms: terms}, nil
	}
	return classifier.SnapshotVocabulary{}, fmt.Errorf("%w: vocabulary must be an array of strings or false", classifier.ErrInvalidArgument)
}
