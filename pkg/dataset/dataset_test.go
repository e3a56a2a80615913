package dataset

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Example
	}{
		{
			name:  "Header order text,label",
			input: "text,label\nhello world,greeting\n\"good bye, friend\",farewell\n",
			expected: []Example{
				{Text: "hello world", Label: "greeting"},
				{Text: "good bye, friend", Label: "farewell"},
			},
		},
		{
			name:  "Header order label,text with extra column",
			input: "id,Label,Text\n1,greeting,hi there\n",
			expected: []Example{
				{Text: "hi there", Label: "greeting"},
			},
		},
		{
			name:     "Header only",
			input:    "text,label\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LoadCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("LoadCSV() error = %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("LoadCSV() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty input", ""},
		{"Missing label column", "text,category\nhello,greeting\n"},
		{"Short record", "text,label\nhello\n"},
		{"Empty label", "text,label\nhello, \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCSV(strings.NewReader(tt.input)); err == nil {
				t.Errorf("LoadCSV(%q) error = nil", tt.input)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	labels, texts := Group([]Example{
		{Text: "a", Label: "x"},
		{Text: "b", Label: "y"},
		{Text: "c", Label: "x"},
	})

	if expected := []string{"x", "y"}; !reflect.DeepEqual(labels, expected) {
		t.Errorf("Group() labels = %v, want %v", labels, expected)
	}
	if expected := []string{"a", "c"}; !reflect.DeepEqual(texts["x"], expected) {
		t.Errorf("Group() texts[x] = %v, want %v", texts["x"], expected)
	}
}

func TestSentences(t *testing.T) {
	sentences, err := Sentences("The weather is nice today. Will it rain tomorrow? I hope not.")
	if err != nil {
		t.Fatalf("Sentences() error = %v", err)
	}
	if len(sentences) != 3 {
		t.Fatalf("Sentences() = %q, want 3 sentences", sentences)
	}
	if sentences[0] != "The weather is nice today." {
		t.Errorf("Sentences()[0] = %q", sentences[0])
	}

	empty, err := Sentences("   ")
	if err != nil {
		t.Fatalf("Sentences() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Sentences(blank) = %q, want none", empty)
	}
}
