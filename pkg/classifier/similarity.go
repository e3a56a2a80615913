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
	"sort"

	"gonum.org/v1/gonum/floats"
)

// CosineSimilarity returns the cosine of the angle between two sparse
// vectors. The dot product runs over the keys of v1 that also appear in v2;
// each norm covers all of its own vector. Either norm being zero yields 0.
// Keys are visited in sorted order so repeated calls agree to the last bit.
func CosineSimilarity(v1, v2 map[string]float64) (float64, error) {
	if v1 == nil {
		return 0, fmt.Errorf("%w: v1 must be a feature map", ErrInvalidArgument)
	}
	if v2 == nil {
		return 0, fmt.Errorf("%w: v2 must be a feature map", ErrInvalidArgument)
	}

	shared1 := make([]float64, 0, len(v1))
	shared2 := make([]float64, 0, len(v1))
	values1 := make([]float64, 0, len(v1))
	for _, k := range sortedKeys(v1) {
		x := v1[k]
		if y, found := v2[k]; found {
			shared1 = append(shared1, x)
			shared2 = append(shared2, y)
		}
		values1 = append(values1, x)
	}

	norm1 := floats.Norm(values1, 2)
	if norm1 == 0 {
		return 0, nil
	}

	values2 := make([]float64, 0, len(v2))
	for _, k := range sortedKeys(v2) {
		values2 = append(values2, v2[k])
	}
	norm2 := floats.Norm(values2, 2)
	if norm2 == 0 {
		return 0, nil
	}

	return floats.Dot(shared1, shared2) / (norm1 * norm2), nil
}

func sortedKeys(v map[string]float64) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
