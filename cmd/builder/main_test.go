package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/store"
)

func writeConfig(t *testing.T, dir, inputDir string) string {
	t.Helper()
	cfg := `
index:
  dataDir: ` + filepath.Join(dir, "index") + `
builder:
  source: dir
  inputDir: ` + inputDir + `
  urlPrefix: http://docs/
  workers: 2
logging:
  level: error
metrics:
  enabled: false
`
	path := filepath.Join(dir, "builder.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBuildsAndSaves(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	page := `<html><body><p>widget gadget</p></body></html>`
	if err := os.WriteFile(filepath.Join(docs, "Widget.html"), []byte(page), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(docs, "Overview.html"), []byte(`<frameset></frameset>`), 0o600); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	code := run([]string{"-config", writeConfig(t, dir, docs), "-env", filepath.Join(dir, "none.env")}, &stderr)
	if code != 0 {
		t.Fatalf("run = %d, stderr %q", code, stderr.String())
	}
	idx, err := store.Load(store.Paths{
		Dir:          filepath.Join(dir, "index"),
		ForwardFile:  "forward.json",
		InvertedFile: "inverted.json",
	})
	if err != nil {
		t.Fatalf("loading built index: %v", err)
	}
	if n := idx.Forward.Len(); n != 2 {
		t.Fatalf("documents = %d, want 2", n)
	}
	titles := map[string]bool{}
	for _, rec := range idx.Forward.Records() {
		titles[rec.Title] = true
	}
	if !titles["Overview"] || !titles["Widget"] {
		t.Errorf("titles = %v, want Overview and Widget", titles)
	}
}

func TestRunReturnsErrorCodes(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "no-such-dir")
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad flag", []string{"-nope"}, 2},
		{"missing config", []string{"-config", filepath.Join(dir, "missing.yaml"), "-env", filepath.Join(dir, "none.env")}, 1},
		{"unknown source", []string{"-config", writeConfig(t, dir, missing), "-env", filepath.Join(dir, "none.env"), "-source", "ftp"}, 1},
		{"scan failure", []string{"-config", writeConfig(t, dir, missing), "-env", filepath.Join(dir, "none.env")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if got := run(tt.args, &stderr); got != tt.want {
				t.Errorf("run = %d, want %d (stderr %q)", got, tt.want, stderr.String())
			}
		})
	}
}
