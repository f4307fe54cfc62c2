package snippet

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		terms   []string
		want    string
	}{
		{
			name:    "whole word only",
			content: "arraylist is not list",
			terms:   []string{"list"},
			want:    "arraylist is not <i>list</i>",
		},
		{
			name:    "case insensitive keeps original case",
			content: "Widget gadget WIDGET",
			terms:   []string{"widget"},
			want:    "<i>Widget</i> gadget <i>WIDGET</i>",
		},
		{
			name:    "short content without match unchanged",
			content: "nothing to see here",
			terms:   []string{"widget"},
			want:    "nothing to see here",
		},
		{
			name:    "first found term in term order decides",
			content: "alpha beta gamma",
			terms:   []string{"zeta", "gamma", "alpha"},
			want:    "<i>alpha</i> beta <i>gamma</i>",
		},
		{
			name:    "duplicate terms not double wrapped",
			content: "list of list",
			terms:   []string{"list", "list"},
			want:    "<i>list</i> of <i>list</i>",
		},
		{
			name:    "underscore joins words",
			content: "my_list list",
			terms:   []string{"list"},
			want:    "my_list <i>list</i>",
		},
		{
			name:    "non ascii",
			content: "Die Größe der Liste",
			terms:   []string{"größe"},
			want:    "Die <i>Größe</i> der Liste",
		},
		{
			name:    "no terms",
			content: "plain",
			terms:   nil,
			want:    "plain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.content, tt.terms); got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateNoMatchTruncates(t *testing.T) {
	content := strings.Repeat("abcd ", 50)
	got := Generate(content, []string{"zzz"})
	want := content[:Width] + Ellipsis
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}

	exact := strings.Repeat("a", Width)
	if got := Generate(exact, []string{"zzz"}); got != exact {
		t.Errorf("content of exactly %d chars should be unchanged, got %q", Width, got)
	}
}

func TestGenerateWindow(t *testing.T) {
	before := strings.Repeat("x ", 100)
	after := strings.Repeat("y ", 100)
	content := before + "target " + after

	got := Generate(content, []string{"target"})
	p := len(before)
	window := content[p-Lead : p-Lead+Width]
	want := strings.Replace(window, "target", "<i>target</i>", 1) + Ellipsis
	if got != want {
		t.Errorf("Generate() =\n%q\nwant\n%q", got, want)
	}
}

func TestGenerateWindowReachesEnd(t *testing.T) {
	content := strings.Repeat("x ", 10) + "target tail"
	got := Generate(content, []string{"target"})
	if strings.HasSuffix(got, Ellipsis) {
		t.Errorf("window reaching the end must not be marked truncated: %q", got)
	}
	if !strings.HasPrefix(got, "x x") || !strings.Contains(got, "<i>target</i> tail") {
		t.Errorf("unexpected snippet %q", got)
	}
}

func TestGenerateIgnoresWordCutAtWindowEdge(t *testing.T) {
	content := "target " + strings.Repeat("z", Width-10) + " list"
	got := Generate(content, []string{"target", "li"})
	if strings.Contains(got, "<i>li</i>") {
		t.Errorf("partial word at window edge highlighted: %q", got)
	}
}

func TestGenerateRuneOffsets(t *testing.T) {
	content := strings.Repeat("é", 70) + " hit " + strings.Repeat("ü", 200)
	got := Generate(content, []string{"hit"})
	runes := []rune(strings.TrimSuffix(got, Ellipsis))
	plain := strings.NewReplacer(OpenTag, "", CloseTag, "").Replace(string(runes))
	if n := len([]rune(plain)); n != Width {
		t.Errorf("window has %d runes, want %d", n, Width)
	}
	// "hit" sits at rune 71, so the window opens at rune 11.
	if !strings.HasPrefix(plain, strings.Repeat("é", 59)+" hit ") {
		t.Errorf("window should start %d runes before the match: %q", Lead, plain)
	}
}

func TestGenerateMatchesCompatibilityForms(t *testing.T) {
	tests := []struct {
		name    string
		content string
		terms   []string
		want    string
	}{
		{"fullwidth", "Ｗｉｄｇｅｔ here", []string{"widget"}, "<i>Ｗｉｄｇｅｔ</i> here"},
		{"fullwidth digits", "version ２ released", []string{"2"}, "version <i>２</i> released"},
		{"ligature left alone", "ﬁle and file", []string{"file"}, "ﬁle and <i>file</i>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.content, tt.terms); got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}
