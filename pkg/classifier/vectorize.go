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
	"strconv"

	"github.com/TFMV/TextClassifier/pkg/vocabulary"
)

// Vectorized is the result of translating tokens into vocabulary indices.
type Vectorized struct {
	// Vector maps each token's vocabulary index, as a decimal string, to its
	// occurrence count.
	Vector map[string]float64

	// Vocabulary is a copy of the source vocabulary extended with any term
	// that was not known yet.
	Vocabulary *vocabulary.Vocabulary
}

// vectorize looks up every token in a copy of base, appending unknown terms
// in first-seen order. base is never modified.
func vectorize(tokens *Tokens, base *vocabulary.Vocabulary) (Vectorized, error) {
	if tokens == nil {
		return Vectorized{}, fmt.Errorf("%w: tokens must be a token map", ErrInvalidArgument)
	}

	vocab := base.Clone()
	vector := make(map[string]float64, tokens.Len())
	for _, term := range tokens.terms {
		index := vocab.IndexOf(term)
		if index == -1 {
			vocab.Add(term)
			index = vocab.Size() - 1
		}
		vector[strconv.Itoa(index)] = tokens.counts[term]
	}

	return Vectorized{Vector: vector, Vocabulary: vocab}, nil
}
