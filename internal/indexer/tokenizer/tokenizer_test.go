package tokenizer

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

func TestTokenize(t *testing.T) {
	a := New()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "Hello World", []string{"hello", "world"}},
		{"punctuation", "ArrayList, is not: a List!", []string{"arraylist", "is", "not", "a", "list"}},
		{"digits", "Java 17 release", []string{"java", "17", "release"}},
		{"repeats kept", "widget gadget widget", []string{"widget", "gadget", "widget"}},
		{"empty", "", []string{}},
		{"only punctuation", "... --- !!!", []string{}},
		{"fullwidth folded", "ＡＢＣ", []string{"abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Tokenize(tt.in)
			if err != nil {
				t.Fatalf("Tokenize(%q): %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	_, err := New().Tokenize("bad \xff\xfe bytes")
	if !errors.Is(err, apperrors.ErrTokenization) {
		t.Fatalf("err = %v, want ErrTokenization", err)
	}
}

func TestTokenizeStemming(t *testing.T) {
	got, err := New(WithStemming(true)).Tokenize("running runs")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(got) != 2 || got[0] != "run" || got[1] != "run" {
		t.Errorf("stemmed tokens = %q, want [run run]", got)
	}
}

func TestCounts(t *testing.T) {
	got, err := Counts(New(), "Widget gadget WIDGET")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	want := map[string]int{"widget": 2, "gadget": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Counts = %v, want %v", got, want)
	}
}
