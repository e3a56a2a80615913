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

package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/TFMV/TextClassifier/pkg/classifier"
)

// WeightedTerm is a feature of one label scored by TF-IDF across labels.
type WeightedTerm struct {
	Term   string
	Count  float64
	Weight float64
}

// DistinctiveTerms returns up to k terms per label, ordered by count weighted
// with the inverse label frequency log(1 + labels/labelsWithTerm). Terms that
// appear under every label rank below terms unique to one. Vocabulary indices
// are resolved back to their n-grams.
func DistinctiveTerms(m *classifier.Model, k int) map[string][]WeightedTerm {
	data := m.Data()
	labels := m.Labels()
	if len(labels) == 0 || k <= 0 {
		return map[string][]WeightedTerm{}
	}

	labelFreq := make(map[string]int)
	for _, table := range data {
		for key, count := range table {
			if count > 0 {
				labelFreq[key]++
			}
		}
	}

	idf := make(map[string]float64, len(labelFreq))
	for key, df := range labelFreq {
		idf[key] = math.Log(1 + float64(len(labels))/float64(df))
	}

	resolve := termResolver(m)
	out := make(map[string][]WeightedTerm, len(labels))
	for _, label := range labels {
		terms := make([]WeightedTerm, 0, len(data[label]))
		for key, count := range data[label] {
			if count <= 0 {
				continue
			}
			terms = append(terms, WeightedTerm{
				Term:   resolve(key),
				Count:  count,
				Weight: count * idf[key],
			})
		}
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].Weight != terms[j].Weight {
				return terms[i].Weight > terms[j].Weight
			}
			return terms[i].Term < terms[j].Term
		})
		if len(terms) > k {
			terms = terms[:k]
		}
		out[label] = terms
	}
	return out
}

// termResolver maps feature keys to n-grams. Raw-term models use the key as is.
func termResolver(m *classifier.Model) func(string) string {
	vocab, ok := m.Vocabulary().Get()
	if !ok {
		return func(key string) string { return key }
	}
	terms := vocab.Terms()
	return func(key string) string {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(terms) {
			return key
		}
		return terms[i]
	}
}
