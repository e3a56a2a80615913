package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "classify.yaml")
	content := fmt.Sprintf("store:\n  dir: %q\n  name: test\nlog:\n  level: error\n", filepath.Join(dir, "models"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTrainPredictInspect(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)

	out, err := runCLI(t, "-c", cfg, "train", "--label", "greeting", "hello world", "good morning")
	if err != nil {
		t.Fatalf("train error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Saved test revision") {
		t.Errorf("train output = %q, want saved revision", out)
	}

	csvPath := filepath.Join(dir, "farewells.csv")
	if err := os.WriteFile(csvPath, []byte("text,label\nsee you later,farewell\ngood night,farewell\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if out, err := runCLI(t, "-c", cfg, "train", "--csv", csvPath); err != nil {
		t.Fatalf("train --csv error = %v\n%s", err, out)
	}

	out, err = runCLI(t, "-c", cfg, "predict", "hello there world")
	if err != nil {
		t.Fatalf("predict error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "greeting") {
		t.Errorf("predict output = %q, want greeting", out)
	}

	out, err = runCLI(t, "-c", cfg, "predict", "--min", "1", "unrelated words")
	if err != nil {
		t.Fatalf("predict error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "(no match)") {
		t.Errorf("predict output = %q, want no match", out)
	}

	out, err = runCLI(t, "-c", cfg, "inspect", "--min-overlap", "0.01")
	if err != nil {
		t.Fatalf("inspect error = %v\n%s", err, out)
	}
	for _, want := range []string{"greeting", "farewell", "1..1"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestTrainSentences(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)

	out, err := runCLI(t, "-c", cfg, "train", "--sentences", "--label", "weather", "It is sunny today. Tomorrow it will rain.")
	if err != nil {
		t.Fatalf("train error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Trained 2 examples") {
		t.Errorf("train output = %q, want two sentence examples", out)
	}
}

func TestTrainRequiresInput(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	if _, err := runCLI(t, "-c", cfg, "train"); err == nil {
		t.Error("train without input error = nil")
	}
	if _, err := runCLI(t, "-c", cfg, "train", "text without label"); err == nil {
		t.Error("train without --label error = nil")
	}
}

func TestTokenize(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	out, err := runCLI(t, "-c", cfg, "tokenize", "Hello", "hello world")
	if err != nil {
		t.Fatalf("tokenize error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("tokenize output = %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("model:\n  ngram_min: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runCLI(t, "-c", path, "tokenize", "hello"); err == nil {
		t.Error("tokenize with invalid config error = nil")
	}
}
