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

package vocabulary

// Vocabulary maps terms to stable, zero-based indices. The index of a term is
// its position among the terms currently present, in insertion order.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// New creates a Vocabulary seeded with the given terms. Duplicates are ignored.
func New(terms ...string) *Vocabulary {
	v := &Vocabulary{
		index: make(map[string]int, len(terms)),
	}
	v.Add(terms...)
	return v
}

// Size returns the number of terms in the vocabulary
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Terms returns a copy of the terms in index order.
func (v *Vocabulary) Terms() []string {
	terms := make([]string, len(v.terms))
	copy(terms, v.terms)
	return terms
}

// SetTerms replaces the vocabulary contents with the given terms.
func (v *Vocabulary) SetTerms(terms []string) {
	v.terms = v.terms[:0]
	v.index = make(map[string]int, len(terms))
	v.Add(terms...)
}

// Add appends terms that are not present yet. Existing terms keep their index.
func (v *Vocabulary) Add(terms ...string) *Vocabulary {
	for _, term := range terms {
		if _, exists := v.index[term]; exists {
			continue
		}
		v.index[term] = len(v.terms)
		v.terms = append(v.terms, term)
	}
	return v
}

// Remove deletes terms from the vocabulary. Terms after a removed term shift
// down so that indices stay equal to positions.
func (v *Vocabulary) Remove(terms ...string) *Vocabulary {
	drop := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, exists := v.index[term]; exists {
			drop[term] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return v
	}

	kept := v.terms[:0]
	for _, term := range v.terms {
		if _, removed := drop[term]; removed {
			delete(v.index, term)
			continue
		}
		v.index[term] = len(kept)
		kept = append(kept, term)
	}
	v.terms = kept
	return v
}

// Has reports whether the vocabulary contains term.
func (v *Vocabulary) Has(term string) bool {
	_, ok := v.index[term]
	return ok
}

// IndexOf returns the index of term, or -1 if it is absent.
func (v *Vocabulary) IndexOf(term string) int {
	if i, ok := v.index[term]; ok {
		return i
	}
	return -1
}

// Clone returns an independent copy of the vocabulary.
func (v *Vocabulary) Clone() *Vocabulary {
	return New(v.terms...)
}
