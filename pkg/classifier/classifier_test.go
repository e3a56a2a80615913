package classifier

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNewUsesDefaultModel(t *testing.T) {
	c := New(nil)
	if c.Model() == nil {
		t.Fatalf("Model() = nil, want default model")
	}
	if c.Model().NGramMin() != 1 || c.Model().NGramMax() != 1 {
		t.Errorf("default n-gram range = %d..%d, want 1..1", c.Model().NGramMin(), c.Model().NGramMax())
	}

	m, err := NewModel(WithNGramMax(4))
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	c.SetModel(m)
	if c.Model().NGramMax() != 4 {
		t.Errorf("NGramMax() = %d after SetModel, want 4", c.Model().NGramMax())
	}

	c.SetModel(nil)
	if c.Model() == nil || c.Model().NGramMax() != 1 {
		t.Errorf("SetModel(nil) did not install a default model")
	}
}

func TestVectorize(t *testing.T) {
	t.Run("New term gets the next index", func(t *testing.T) {
		c := New(nil)
		tokens, _ := c.Tokenize("Hello")
		v, err := c.Vectorize(tokens)
		if err != nil {
			t.Fatalf("Vectorize() error = %v", err)
		}
		if expected := map[string]float64{"0": 1}; !reflect.DeepEqual(v.Vector, expected) {
			t.Errorf("Vectorize() vector = %v, want %v", v.Vector, expected)
		}
	})

	t.Run("Existing term keeps its index", func(t *testing.T) {
		c, err := NewWithOptions(WithVocabulary("hello", "world"))
		if err != nil {
			t.Fatalf("NewWithOptions() error = %v", err)
		}
		tokens, _ := c.Tokenize("world")
		v, err := c.Vectorize(tokens)
		if err != nil {
			t.Fatalf("Vectorize() error = %v", err)
		}
		if expected := map[string]float64{"1": 1}; !reflect.DeepEqual(v.Vector, expected) {
			t.Errorf("Vectorize() vector = %v, want %v", v.Vector, expected)
		}
	})

	t.Run("Returns an extended copy of the vocabulary", func(t *testing.T) {
		c, _ := NewWithOptions(WithVocabulary("foo"))
		tokens, _ := c.Tokenize("Hello world")
		v, err := c.Vectorize(tokens)
		if err != nil {
			t.Fatalf("Vectorize() error = %v", err)
		}
		if expected := []string{"foo", "hello", "world"}; !reflect.DeepEqual(v.Vocabulary.Terms(), expected) {
			t.Errorf("Vectorize() vocabulary = %v, want %v", v.Vocabulary.Terms(), expected)
		}
		vocab, _ := c.Model().Vocabulary().Get()
		if vocab.Size() != 1 {
			t.Errorf("model vocabulary size = %d after Vectorize, want 1", vocab.Size())
		}
	})

	t.Run("Idempotent against an unchanged vocabulary", func(t *testing.T) {
		c, _ := NewWithOptions(WithNGramRange(1, 2))
		tokens, _ := c.Tokenize("the quick brown fox")
		first, _ := c.Vectorize(tokens)
		second, _ := c.Vectorize(tokens)
		if !reflect.DeepEqual(first.Vector, second.Vector) {
			t.Errorf("Vectorize() not idempotent: %v != %v", first.Vector, second.Vector)
		}
	})

	t.Run("Nil tokens", func(t *testing.T) {
		if _, err := New(nil).Vectorize(nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Vectorize(nil) error = %v, want %v", err, ErrInvalidArgument)
		}
	})

	t.Run("Disabled vocabulary", func(t *testing.T) {
		c, _ := NewWithOptions(WithoutVocabulary())
		tokens, _ := c.Tokenize("hello")
		if _, err := c.Vectorize(tokens); !errors.Is(err, ErrInvariantViolation) {
			t.Errorf("Vectorize() error = %v, want %v", err, ErrInvariantViolation)
		}
	})
}

func TestTrain(t *testing.T) {
	tests := []struct {
		name       string
		inputs     []string
		expected   map[string]float64
		vocabulary []string
	}{
		{
			name:       "Single string",
			inputs:     []string{"hello world"},
			expected:   map[string]float64{"0": 1, "1": 1},
			vocabulary: []string{"hello", "world"},
		},
		{
			name:       "Several strings",
			inputs:     []string{"hello world", "foo", "bar"},
			expected:   map[string]float64{"0": 1, "1": 1, "2": 1, "3": 1},
			vocabulary: []string{"hello", "world", "foo", "bar"},
		},
		{
			name:       "Existing term accumulates",
			inputs:     []string{"hello world", "foo", "hello"},
			expected:   map[string]float64{"0": 2, "1": 1, "2": 1},
			vocabulary: []string{"hello", "world", "foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			got, err := c.TrainAll(tt.inputs, "test")
			if err != nil {
				t.Fatalf("TrainAll() error = %v", err)
			}
			if got != c {
				t.Errorf("TrainAll() did not return the classifier")
			}

			expected := map[string]map[string]float64{"test": tt.expected}
			if data := c.Model().Data(); !reflect.DeepEqual(data, expected) {
				t.Errorf("model data = %v, want %v", data, expected)
			}
			vocab, _ := c.Model().Vocabulary().Get()
			if !reflect.DeepEqual(vocab.Terms(), tt.vocabulary) {
				t.Errorf("vocabulary = %v, want %v", vocab.Terms(), tt.vocabulary)
			}
		})
	}
}

func TestTrainWithoutVocabulary(t *testing.T) {
	c, _ := NewWithOptions(WithoutVocabulary(), WithNGramRange(1, 2))
	if _, err := c.Train("hello world", "greeting"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if _, err := c.Train("hello", "greeting"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	expected := map[string]map[string]float64{
		"greeting": {"hello": 2, "hello world": 1, "world": 1},
	}
	if data := c.Model().Data(); !reflect.DeepEqual(data, expected) {
		t.Errorf("model data = %v, want %v", data, expected)
	}
	if c.Model().Vocabulary().Enabled() {
		t.Errorf("vocabulary enabled after training a raw-term model")
	}
}

func TestTrainFailureLeavesModelUntouched(t *testing.T) {
	c := New(nil)
	if _, err := c.Train("hello", "test"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	before := c.Model().Serialize()

	if _, err := c.TrainAll(nil, "test"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("TrainAll(nil) error = %v, want %v", err, ErrInvalidArgument)
	}

	if err := c.Model().SetNGramMin(3); err != nil {
		t.Fatalf("SetNGramMin() error = %v", err)
	}
	if _, err := c.Train("brand new words", "other"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Train() error = %v, want %v", err, ErrInvalidState)
	}

	after := c.Model().Serialize()
	after.NGramMin = before.NGramMin
	if !reflect.DeepEqual(before, after) {
		t.Errorf("model changed after failed training: %+v != %+v", after, before)
	}
}

func TestPredict(t *testing.T) {
	c := New(nil)
	if _, err := c.Train("hello world", "test"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	predictions, err := c.Predict("hello world", DefaultMaxMatches, DefaultMinimumConfidence)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(predictions) != 1 {
		t.Fatalf("Predict() returned %d predictions, want 1", len(predictions))
	}
	if predictions[0].Label != "test" {
		t.Errorf("Predict() label = %q, want %q", predictions[0].Label, "test")
	}
	if math.Abs(predictions[0].Confidence-1) > epsilon {
		t.Errorf("Predict() confidence = %v, want 1", predictions[0].Confidence)
	}
}

func TestPredictWithoutTraining(t *testing.T) {
	predictions, err := New(nil).Predict("test", DefaultMaxMatches, DefaultMinimumConfidence)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if predictions == nil || len(predictions) != 0 {
		t.Errorf("Predict() = %v, want empty slice", predictions)
	}
}

func TestPredictValidation(t *testing.T) {
	tests := []struct {
		name              string
		maxMatches        int
		minimumConfidence float64
	}{
		{"Confidence above 1", DefaultMaxMatches, 1.5},
		{"Confidence above 1 by a lot", DefaultMaxMatches, 2},
		{"Confidence below 0", DefaultMaxMatches, -1},
		{"Confidence NaN", DefaultMaxMatches, math.NaN()},
		{"Negative maxMatches", -1, DefaultMinimumConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil).Predict("", tt.maxMatches, tt.minimumConfidence)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Predict() error = %v, want %v", err, ErrInvalidArgument)
			}
		})
	}
}

func TestPredictRanking(t *testing.T) {
	c := New(nil)
	training := []struct {
		input string
		label string
	}{
		{"book a flight to paris", "travel"},
		{"cheap flight tickets", "travel"},
		{"what is the weather today", "weather"},
		{"will it rain today", "weather"},
		{"play some music", "music"},
	}
	for _, tr := range training {
		if _, err := c.Train(tr.input, tr.label); err != nil {
			t.Fatalf("Train(%q) error = %v", tr.input, err)
		}
	}

	predictions, err := c.Predict("flight today", 3, 0)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(predictions) != 3 {
		t.Fatalf("Predict() returned %d predictions, want 3", len(predictions))
	}
	if predictions[0].Label != "travel" {
		t.Errorf("top prediction = %q, want travel", predictions[0].Label)
	}
	for i := 1; i < len(predictions); i++ {
		if predictions[i].Confidence > predictions[i-1].Confidence {
			t.Errorf("predictions not sorted: %v", predictions)
		}
	}

	limited, err := c.Predict("flight today", 1, 0)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(limited) != 1 || limited[0].Label != "travel" {
		t.Errorf("Predict(maxMatches=1) = %v, want only travel", limited)
	}

	none, err := c.Predict("flight today", 0, 0)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Predict(maxMatches=0) = %v, want none", none)
	}
}

func TestPredictMinimumConfidence(t *testing.T) {
	c := New(nil)
	if _, err := c.Train("hello world", "test"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	const minimumConfidence = 0.8
	predictions, err := c.Predict("hello", DefaultMaxMatches, minimumConfidence)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for _, p := range predictions {
		if p.Confidence < minimumConfidence {
			t.Errorf("prediction %v below minimum confidence %v", p, minimumConfidence)
		}
	}
}

func TestPredictTiesKeepLabelOrder(t *testing.T) {
	c := New(nil)
	for _, label := range []string{"zeta", "alpha", "mid"} {
		if _, err := c.Train("same words", label); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
	}

	predictions, err := c.Predict("same words", 3, 0)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	var labels []string
	for _, p := range predictions {
		labels = append(labels, p.Label)
	}
	if expected := []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(labels, expected) {
		t.Errorf("Predict() labels = %v, want %v", labels, expected)
	}
}

func TestPredictDoesNotMutateModel(t *testing.T) {
	c := New(nil)
	if _, err := c.Train("hello world", "test"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	before := c.Model().Serialize()

	if _, err := c.Predict("hello foo world", DefaultMaxMatches, DefaultMinimumConfidence); err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	vocab, _ := c.Model().Vocabulary().Get()
	if vocab.Has("foo") {
		t.Errorf("Predict() added an unseen term to the vocabulary")
	}
	if after := c.Model().Serialize(); !reflect.DeepEqual(before, after) {
		t.Errorf("Predict() changed the model: %+v != %+v", after, before)
	}
}

func TestPredictWithoutVocabulary(t *testing.T) {
	c, _ := NewWithOptions(WithoutVocabulary())
	if _, err := c.Train("hello world", "greeting"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if _, err := c.Train("goodbye moon", "farewell"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	predictions, err := c.Predict("hello there world", 2, DefaultMinimumConfidence)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(predictions) != 1 || predictions[0].Label != "greeting" {
		t.Errorf("Predict() = %v, want greeting only", predictions)
	}
}

func TestZeroModel(t *testing.T) {
	c := New(&Model{})

	if _, err := c.Train("hello", "greeting"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Train() error = %v, want %v", err, ErrInvalidState)
	}
	if _, err := c.Predict("hello", 1, 0); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Predict() error = %v, want %v", err, ErrInvalidState)
	}

	if err := c.Model().SetNGramMin(1); err != nil {
		t.Fatalf("SetNGramMin() error = %v", err)
	}
	if err := c.Model().SetNGramMax(1); err != nil {
		t.Fatalf("SetNGramMax() error = %v", err)
	}
	if _, err := c.Train("hello", "greeting"); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	expected := map[string]map[string]float64{"greeting": {"hello": 1}}
	if got := c.Model().Data(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Data() = %v, want %v", got, expected)
	}
}
