package classifier

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Basic sentence", "Hello world!", []string{"hello", "world"}},
		{"Apostrophes are removed", "Don't stop", []string{"dont", "stop"}},
		{"Typographic apostrophes", "It’s John´s", []string{"its", "johns"}},
		{"Hyphens join words", "A well-known fact", []string{"a", "wellknown", "fact"}},
		{"Digits separate words", "room42b", []string{"room", "b"}},
		{"Runs of separators collapse", "  foo,\t\n bar...baz  ", []string{"foo", "bar", "baz"}},
		{"Unicode letters", "Ça va, Zürich? Привет мир", []string{"ça", "va", "zürich", "привет", "мир"}},
		{"Empty string", "", []string{""}},
		{"No letters", "123 !!! 456", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitWords(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("SplitWords(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		nGramMin int
		nGramMax int
		input    string
		expected map[string]float64
		order    []string
	}{
		{
			name:     "Unigrams",
			nGramMin: 1,
			nGramMax: 1,
			input:    "Hello world!",
			expected: map[string]float64{"hello": 1, "world": 1},
			order:    []string{"hello", "world"},
		},
		{
			name:     "Bigrams",
			nGramMin: 2,
			nGramMax: 2,
			input:    "Hello world!",
			expected: map[string]float64{"hello world": 1},
			order:    []string{"hello world"},
		},
		{
			name:     "Unigrams and bigrams",
			nGramMin: 1,
			nGramMax: 2,
			input:    "Hello world!",
			expected: map[string]float64{"hello": 1, "hello world": 1, "world": 1},
			order:    []string{"hello", "hello world", "world"},
		},
		{
			name:     "Repeated tokens accumulate",
			nGramMin: 1,
			nGramMax: 1,
			input:    "Hello hello!",
			expected: map[string]float64{"hello": 2},
			order:    []string{"hello"},
		},
		{
			name:     "Range larger than input",
			nGramMin: 3,
			nGramMax: 5,
			input:    "one two",
			expected: map[string]float64{},
			order:    []string{},
		},
		{
			name:     "Letterless input keeps the empty word",
			nGramMin: 1,
			nGramMax: 1,
			input:    "?!",
			expected: map[string]float64{"": 1},
			order:    []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewWithOptions(WithNGramRange(tt.nGramMin, tt.nGramMax))
			if err != nil {
				t.Fatalf("NewWithOptions() error = %v", err)
			}
			tokens, err := c.Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if got := tokens.Map(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			if got := tokens.Terms(); !reflect.DeepEqual(got, tt.order) {
				t.Errorf("Tokenize(%q) order = %q, want %q", tt.input, got, tt.order)
			}
		})
	}
}

func TestTokenizeWords(t *testing.T) {
	c := New(nil)

	tokens, err := c.TokenizeWords([]string{"hello", "world"})
	if err != nil {
		t.Fatalf("TokenizeWords() error = %v", err)
	}
	expected := map[string]float64{"hello": 1, "world": 1}
	if got := tokens.Map(); !reflect.DeepEqual(got, expected) {
		t.Errorf("TokenizeWords() = %v, want %v", got, expected)
	}

	if _, err := c.TokenizeWords(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("TokenizeWords(nil) error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestTokenizeRejectsInvertedRange(t *testing.T) {
	c := New(nil)
	if err := c.Model().SetNGramMin(2); err != nil {
		t.Fatalf("SetNGramMin() error = %v", err)
	}

	_, err := c.Tokenize("Hello world!")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Tokenize() error = %v, want %v", err, ErrInvalidState)
	}
}

// Every window of k words must be counted once per occurrence for each k in range.
func TestTokenizeCountsEveryWindow(t *testing.T) {
	words := strings.Fields("a b a b a c")

	for minSize := 1; minSize <= 4; minSize++ {
		for maxSize := minSize; maxSize <= 7; maxSize++ {
			tokens, err := tokenizeWords(words, minSize, maxSize)
			if err != nil {
				t.Fatalf("tokenizeWords(%d, %d) error = %v", minSize, maxSize, err)
			}

			expected := make(map[string]float64)
			for k := minSize; k <= maxSize && k <= len(words); k++ {
				for i := 0; i+k <= len(words); i++ {
					expected[strings.Join(words[i:i+k], " ")]++
				}
			}

			if got := tokens.Map(); !reflect.DeepEqual(got, expected) {
				t.Errorf("tokenizeWords(%d, %d) = %v, want %v", minSize, maxSize, got, expected)
			}
		}
	}
}
