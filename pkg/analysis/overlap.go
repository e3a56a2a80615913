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
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/TFMV/TextClassifier/pkg/classifier"
)

// Overlap is the pairwise cosine similarity of every trained label.
type Overlap struct {
	Labels     []string
	Similarity *mat.Dense
}

// Pair is one off-diagonal entry of an Overlap.
type Pair struct {
	A, B       string
	Similarity float64
}

// LabelOverlap compares the feature tables of every label in m. Labels whose
// tables share many features are the ones Predict confuses most easily.
func LabelOverlap(m *classifier.Model) Overlap {
	labels, features := FeatureMatrix(m)
	if len(labels) == 0 {
		return Overlap{}
	}

	n := len(labels)
	if features == nil {
		return Overlap{Labels: labels, Similarity: mat.NewDense(n, n, nil)}
	}

	normalizeRows(features)
	var sim mat.Dense
	sim.Mul(features, features.T())
	return Overlap{Labels: labels, Similarity: &sim}
}

// Pairs returns the label pairs with similarity of at least minimum, most
// similar first.
func (o Overlap) Pairs(minimum float64) []Pair {
	var pairs []Pair
	for i := range o.Labels {
		for j := i + 1; j < len(o.Labels); j++ {
			if s := o.Similarity.At(i, j); s >= minimum {
				pairs = append(pairs, Pair{A: o.Labels[i], B: o.Labels[j], Similarity: s})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Similarity > pairs[j].Similarity
	})
	return pairs
}

// FeatureMatrix lays out the training data of m as a label x feature matrix.
// Feature columns are sorted by key. The matrix is nil when no label has any
// feature.
func FeatureMatrix(m *classifier.Model) ([]string, *mat.Dense) {
	labels := m.Labels()
	data := m.Data()

	keySet := make(map[string]struct{})
	for _, table := range data {
		for key := range table {
			keySet[key] = struct{}{}
		}
	}
	if len(labels) == 0 || len(keySet) == 0 {
		return labels, nil
	}

	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	column := make(map[string]int, len(keys))
	for i, key := range keys {
		column[key] = i
	}

	features := mat.NewDense(len(labels), len(keys), nil)
	for i, label := range labels {
		for key, count := range data[label] {
			features.Set(i, column[key], count)
		}
	}
	return labels, features
}

// normalizeRows scales every non-zero row of x to unit length.
func normalizeRows(x *mat.Dense) {
	rows, _ := x.Dims()
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
	}
}
