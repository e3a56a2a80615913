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
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/TFMV/TextClassifier/pkg/classifier"
)

// Projection places every label in a low-dimensional space so that labels
// with similar training data land close together.
type Projection struct {
	Labels      []string
	Coordinates *mat.Dense
}

// ProjectLabels projects the normalised feature rows of m onto their first
// components principal axes.
func ProjectLabels(m *classifier.Model, components int) (Projection, error) {
	if components < 1 {
		return Projection{}, errors.New("number of components must be at least 1")
	}
	labels, features := FeatureMatrix(m)
	if features == nil {
		return Projection{}, errors.New("model has no training data to project")
	}

	normalizeRows(features)
	centered := center(features)

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return Projection{}, errors.New("unable to factorize feature matrix")
	}

	var v mat.Dense
	svd.VTo(&v)
	_, available := v.Dims()
	if components > available {
		return Projection{}, fmt.Errorf("requested %d components, only %d available", components, available)
	}

	var coords mat.Dense
	coords.Mul(centered, v.Slice(0, v.RawMatrix().Rows, 0, components))
	return Projection{Labels: labels, Coordinates: &coords}, nil
}

// center subtracts the column means from a copy of x.
func center(x *mat.Dense) *mat.Dense {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		mean := mat.Sum(x.ColView(j)) / float64(rows)
		for i := 0; i < rows; i++ {
			out.Set(i, j, x.At(i, j)-mean)
		}
	}
	return out
}
