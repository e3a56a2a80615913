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
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordJoiners are removed before splitting so that "don't" and "well-known"
// stay single words.
var wordJoiners = strings.NewReplacer("'", "", "´", "", "’", "", "-", "")

// SplitWords lower-cases input and splits it on every run of non-letter
// code points. Input without letters yields a single empty word.
func SplitWords(input string) []string {
	input = wordJoiners.Replace(input)
	input = cases.Lower(language.Und).String(input)

	var b strings.Builder
	b.Grow(len(input))
	inGap := false
	for _, r := range input {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
			inGap = false
			continue
		}
		if !inGap {
			b.WriteByte(' ')
			inGap = true
		}
	}

	return strings.Split(strings.TrimSpace(b.String()), " ")
}

// Tokens holds n-gram occurrence counts and remembers the order in which
// each n-gram was first seen.
type Tokens struct {
	terms  []string
	counts map[string]float64
}

// NewTokens returns an empty token set.
func NewTokens() *Tokens {
	return &Tokens{counts: make(map[string]float64)}
}

// Add increments the occurrence count of term by n.
func (t *Tokens) Add(term string, n float64) {
	if _, ok := t.counts[term]; !ok {
		t.terms = append(t.terms, term)
	}
	t.counts[term] += n
}

// Terms returns the n-grams in first-seen order.
func (t *Tokens) Terms() []string {
	terms := make([]string, len(t.terms))
	copy(terms, t.terms)
	return terms
}

// Count returns the occurrences of term.
func (t *Tokens) Count(term string) float64 {
	return t.counts[term]
}

// Len returns the number of distinct n-grams.
func (t *Tokens) Len() int {
	return len(t.terms)
}

// Map returns a copy of the counts keyed by n-gram.
func (t *Tokens) Map() map[string]float64 {
	m := make(map[string]float64, len(t.counts))
	for term, count := range t.counts {
		m[term] = count
	}
	return m
}

// tokenizeWords counts every contiguous window of words whose length lies
// within [minSize, maxSize].
func tokenizeWords(words []string, minSize, maxSize int) (*Tokens, error) {
	if words == nil {
		return nil, fmt.Errorf("%w: input must be either a string or a word list", ErrInvalidArgument)
	}
	if minSize < 1 || maxSize < minSize {
		return nil, fmt.Errorf("%w: invalid nGramMin/nGramMax combination in model config", ErrInvalidState)
	}

	tokens := NewTokens()
	for i := range words {
		for size := minSize; size <= maxSize && i+size <= len(words); size++ {
			tokens.Add(strings.Join(words[i:i+size], " "), 1)
		}
	}
	return tokens, nil
}
