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
	"math"
)

// Defaults for Predict.
const (
	DefaultMaxMatches        = 1
	DefaultMinimumConfidence = 0.2
)

// Classifier trains a Model on labelled text and predicts labels for new
// text by cosine similarity. It is not safe for concurrent use.
type Classifier struct {
	model *Model
}

// New returns a Classifier over model. A nil model is replaced by a default one.
func New(model *Model) *Classifier {
	c := &Classifier{}
	c.SetModel(model)
	return c
}

// NewWithOptions builds the model from opts and returns a Classifier over it.
func NewWithOptions(opts ...ModelOption) (*Classifier, error) {
	model, err := NewModel(opts...)
	if err != nil {
		return nil, err
	}
	return New(model), nil
}

// Model returns the current model.
func (c *Classifier) Model() *Model {
	return c.model
}

// SetModel replaces the current model. A nil model is replaced by a default one.
func (c *Classifier) SetModel(model *Model) {
	if model == nil {
		// The default configuration always validates.
		model, _ = NewModel()
	}
	c.model = model
}

// SplitWords splits input into lower-case words.
func (c *Classifier) SplitWords(input string) []string {
	return SplitWords(input)
}

// Tokenize splits input into words and counts its n-grams using the model's
// n-gram range.
func (c *Classifier) Tokenize(input string) (*Tokens, error) {
	return c.TokenizeWords(SplitWords(input))
}

// TokenizeWords counts the n-grams of an already split word list.
func (c *Classifier) TokenizeWords(words []string) (*Tokens, error) {
	return tokenizeWords(words, c.model.nGramMin, c.model.nGramMax)
}

// Vectorize translates tokens into vocabulary indices against a copy of the
// model vocabulary. The model itself is left untouched; callers decide
// whether to keep the returned vocabulary.
func (c *Classifier) Vectorize(tokens *Tokens) (Vectorized, error) {
	if tokens == nil {
		return Vectorized{}, fmt.Errorf("%w: tokens must be a token map", ErrInvalidArgument)
	}
	vocab, ok := c.model.vocabulary.Get()
	if !ok {
		return Vectorized{}, fmt.Errorf("%w: cannot vectorize tokens when vocabulary is disabled", ErrInvariantViolation)
	}
	return vectorize(tokens, vocab)
}

// CosineSimilarity returns the cosine similarity of two feature maps.
func (c *Classifier) CosineSimilarity(v1, v2 map[string]float64) (float64, error) {
	return CosineSimilarity(v1, v2)
}

// Train adds the n-grams of input to the counts of label.
func (c *Classifier) Train(input, label string) (*Classifier, error) {
	return c.TrainAll([]string{input}, label)
}

// TrainAll adds the n-grams of every input to the counts of label. All
// inputs are tokenized before the model is changed, so a failure leaves the
// model as it was.
func (c *Classifier) TrainAll(inputs []string, label string) (*Classifier, error) {
	if inputs == nil {
		return c, fmt.Errorf("%w: input must be either a string or a list of strings", ErrInvalidArgument)
	}

	vocab, vectorizing := c.model.vocabulary.Get()
	features := make([]map[string]float64, 0, len(inputs))
	for _, input := range inputs {
		tokens, err := c.Tokenize(input)
		if err != nil {
			return c, err
		}
		if !vectorizing {
			features = append(features, tokens.Map())
			continue
		}

		v, err := vectorize(tokens, vocab)
		if err != nil {
			return c, err
		}
		features = append(features, v.Vector)
		vocab = v.Vocabulary
	}

	if len(features) == 0 {
		return c, nil
	}
	if vectorizing {
		c.model.vocabulary = EnabledVocabulary(vocab)
	}

	table := c.model.table(label)
	for _, feature := range features {
		for key, occurrences := range feature {
			table[key] += occurrences
		}
	}

	return c, nil
}

// Predict scores input against every trained label and returns up to
// maxMatches predictions whose confidence is at least minimumConfidence,
// best first. The model is never modified.
func (c *Classifier) Predict(input string, maxMatches int, minimumConfidence float64) ([]Prediction, error) {
	if maxMatches < 0 {
		return nil, fmt.Errorf("%w: maxMatches can not be lower than 0", ErrInvalidArgument)
	}
	if math.IsNaN(minimumConfidence) {
		return nil, fmt.Errorf("%w: minimumConfidence must be a number", ErrInvalidArgument)
	}
	if minimumConfidence < 0 {
		return nil, fmt.Errorf("%w: minimumConfidence can not be lower than 0", ErrInvalidArgument)
	}
	if minimumConfidence > 1 {
		return nil, fmt.Errorf("%w: minimumConfidence can not be higher than 1", ErrInvalidArgument)
	}

	tokens, err := c.Tokenize(input)
	if err != nil {
		return nil, err
	}

	query := tokens.Map()
	if vocab, ok := c.model.vocabulary.Get(); ok {
		// The extended vocabulary is dropped; unseen terms get indices
		// that no label table contains.
		v, err := vectorize(tokens, vocab)
		if err != nil {
			return nil, err
		}
		query = v.Vector
	}

	predictions := make([]Prediction, 0, len(c.model.labels))
	for _, label := range c.model.labels {
		confidence, err := CosineSimilarity(query, c.model.data[label])
		if err != nil {
			return nil, err
		}
		if confidence >= minimumConfidence {
			predictions = append(predictions, Prediction{Label: label, Confidence: confidence})
		}
	}

	rankPredictions(predictions)
	if len(predictions) > maxMatches {
		predictions = predictions[:maxMatches]
	}
	return predictions, nil
}
