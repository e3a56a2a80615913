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

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Example is one labelled training text.
type Example struct {
	Text  string
	Label string
}

// Reader streams examples from CSV with a header naming "text" and "label"
// columns in any order. Extra columns are ignored.
type Reader struct {
	reader   *csv.Reader
	textCol  int
	labelCol int
	line     int
	current  Example
	err      error
}

// NewReader reads the header from r.
func NewReader(r io.Reader) (*Reader, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("error reading CSV header: empty input")
		}
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	s := &Reader{reader: reader, textCol: -1, labelCol: -1, line: 1}
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "text":
			s.textCol = i
		case "label":
			s.labelCol = i
		}
	}
	if s.textCol == -1 || s.labelCol == -1 {
		return nil, fmt.Errorf("CSV header must contain text and label columns, got %v", headers)
	}
	return s, nil
}

// Next advances to the next example. It returns false at the end of input or
// on error; check Err afterwards.
func (s *Reader) Next() bool {
	if s.err != nil {
		return false
	}
	record, err := s.reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("error reading CSV: %w", err)
		}
		return false
	}
	s.line++

	if s.textCol >= len(record) || s.labelCol >= len(record) {
		s.err = fmt.Errorf("line %d: expected at least %d fields, got %d", s.line, max(s.textCol, s.labelCol)+1, len(record))
		return false
	}
	label := strings.TrimSpace(record[s.labelCol])
	if label == "" {
		s.err = fmt.Errorf("line %d: empty label", s.line)
		return false
	}
	s.current = Example{Text: record[s.textCol], Label: label}
	return true
}

// Example returns the example read by the last call to Next.
func (s *Reader) Example() Example {
	return s.current
}

func (s *Reader) Err() error {
	return s.err
}

// LoadCSV reads every example from r.
func LoadCSV(r io.Reader) ([]Example, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}

	var examples []Example
	for reader.Next() {
		examples = append(examples, reader.Example())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}

// Group collects texts by label, keeping labels in first-seen order.
func Group(examples []Example) ([]string, map[string][]string) {
	var labels []string
	texts := make(map[string][]string)
	for _, ex := range examples {
		if _, ok := texts[ex.Label]; !ok {
			labels = append(labels, ex.Label)
		}
		texts[ex.Label] = append(texts[ex.Label], ex.Text)
	}
	return labels, texts
}
