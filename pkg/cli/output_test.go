package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testResult struct {
	Name  string `yaml:"name" json:"name"`
	Score int    `yaml:"score" json:"score"`
}

func TestOutput_formats(t *testing.T) {
	result := testResult{Name: "session", Score: 72}

	tests := []struct {
		format   OutputFormat
		contains []string
	}{
		{FormatYAML, []string{"name: session", "score: 72"}},
		{"", []string{"name: session"}},
		{FormatJSON, []string{`"name": "session"`, `"score": 72`}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Output(result, OutputOptions{Format: tt.format, Writer: &buf}); err != nil {
			t.Fatalf("Output(%q): %v", tt.format, err)
		}
		for _, want := range tt.contains {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("Output(%q) missing %q in:\n%s", tt.format, want, buf.String())
			}
		}
	}
}

func TestOutput_unsupportedFormat(t *testing.T) {
	if err := Output(testResult{}, OutputOptions{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestOutput_toFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := Output(testResult{Name: "saved"}, OutputOptions{File: path}); err != nil {
		t.Fatalf("Output to file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "name: saved") {
		t.Errorf("file content = %q", data)
	}
}

func TestLoadRequest(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file    string
		content string
	}{
		{"req.yaml", "name: session\nscore: 72\n"},
		{"req.json", `{"name": "session", "score": 72}`},
		{"req.txt", "name: session\nscore: 72\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.file)
		if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
			t.Fatal(err)
		}
		var got testResult
		if err := LoadRequest(path, &got); err != nil {
			t.Fatalf("LoadRequest(%s): %v", tt.file, err)
		}
		if got.Name != "session" || got.Score != 72 {
			t.Errorf("LoadRequest(%s) = %+v", tt.file, got)
		}
	}
}

func TestLoadRequest_badContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	var got testResult
	if err := LoadRequest(path, &got); err == nil {
		t.Fatal("expected parse error")
	}
}
