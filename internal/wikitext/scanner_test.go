package wikitext

import (
	"math/rand"
	"strings"
	"testing"
)

// checkPartition asserts the scanner's span contract: no gaps, no overlaps,
// strictly increasing, and concatenating the slices reproduces the original
// text exactly.
func checkPartition(t *testing.T, input string) {
	t.Helper()
	sc := NewScanner(input)
	var b strings.Builder
	prev := 0
	for _, tok := range sc.All() {
		if tok.Span.Start != prev {
			t.Errorf("input %q: gap or overlap at offset %d (got start %d)", input, prev, tok.Span.Start)
		}
		if tok.Span.End <= tok.Span.Start {
			t.Errorf("input %q: empty or inverted span %+v", input, tok.Span)
		}
		b.WriteString(input[tok.Span.Start:tok.Span.End])
		prev = tok.Span.End
	}
	if prev != len(input) {
		t.Errorf("input %q: spans end at %d, want %d", input, prev, len(input))
	}
	if b.String() != input {
		t.Errorf("input %q: concatenated spans do not round-trip", input)
	}
}

func TestScannerPartition(t *testing.T) {
	inputs := []string{
		"",
		"plain text only",
		"before {{cite journal|last=Curie|first=Marie}} after",
		"{{outer|{{inner|x}}|y}} tail",
		"a [[Marie Curie|M. Curie]] b [[Einstein]] c",
		"== History ==\nbody\n=== Sub ===\nmore",
		"x <ref name=\"a\">{{cite book|last=Bohr}}</ref> y <ref name=b /> z",
		"note<!-- hidden -->visible",
		"broken {{cite journal|last=Curie and nothing closes it",
		"broken [[link with no close",
		"<ref>unclosed ref",
		"{{a}}{{b}}[[c]]",
		"= not a heading inline = but {{t}} follows\n== Real ==\n",
		"unicode Šikšnys {{cite web|author=Virginijus Šikšnys}} text",
	}

	for _, input := range inputs {
		checkPartition(t, input)
	}
}

func TestScannerPartitionGenerated(t *testing.T) {
	// Random concatenations of markup fragments, balanced and not. The
	// fixed seed keeps failures reproducible.
	fragments := []string{
		"{{", "}}", "[[", "]]", "|", "=", "==", "\n", " ",
		"text", "cite web", "last=Curie", "Šikšnys",
		"<ref>", "</ref>", "<ref name=x />", "<!--", "-->",
		"{{cite book|last=Bohr}}", "[[Marie Curie|M. Curie]]",
		"== History ==\n",
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.Intn(24); n > 0; n-- {
			b.WriteString(fragments[rng.Intn(len(fragments))])
		}
		checkPartition(t, b.String())
	}
}

func TestScannerTemplates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantArgs string
	}{
		{
			name:     "simple citation",
			input:    "{{cite journal|last1=Curie|first1=Marie}}",
			wantName: "cite journal",
			wantArgs: "last1=Curie|first1=Marie",
		},
		{
			name:     "no arguments",
			input:    "{{reflist}}",
			wantName: "reflist",
			wantArgs: "",
		},
		{
			name:     "nested template in argument",
			input:    "{{cite book|year={{circa|1900}}|last=Planck}}",
			wantName: "cite book",
			wantArgs: "year={{circa|1900}}|last=Planck",
		},
		{
			name:     "whitespace around name",
			input:    "{{ cite web |url=x}}",
			wantName: "cite web",
			wantArgs: "url=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewScanner(tt.input)
			tok, err := sc.Next()
			if err != nil {
				t.Fatalf("Next() error: %v", err)
			}
			if tok.Type != Template {
				t.Fatalf("token type = %v, want template", tok.Type)
			}
			if tok.Name != tt.wantName {
				t.Errorf("template name = %q, want %q", tok.Name, tt.wantName)
			}
			if tok.Args != tt.wantArgs {
				t.Errorf("template args = %q, want %q", tok.Args, tt.wantArgs)
			}
			if got := tt.input[tok.Span.Start:tok.Span.End]; got != tt.input {
				t.Errorf("template span covers %q, want whole input", got)
			}
		})
	}
}

func TestScannerUnclosedTemplateIsPlainText(t *testing.T) {
	input := "intro {{cite journal|last=Curie and no closer"
	toks := NewScanner(input).All()

	for _, tok := range toks {
		if tok.Type != PlainText {
			t.Fatalf("got %v token for unclosed template, want only plain_text", tok.Type)
		}
	}
	last := toks[len(toks)-1]
	if last.Span.End != len(input) {
		t.Errorf("unmatched remainder ends at %d, want %d", last.Span.End, len(input))
	}
}

func TestScannerConstructsAfterMalformedOpener(t *testing.T) {
	// A dangling opener degrades to plain text without hiding later
	// well-formed constructs.
	input := "{{broken [[ok]] {{fine|x}}"
	toks := NewScanner(input).All()

	var types []SpanType
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	want := []SpanType{PlainText, Link, PlainText, Template}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(types), types, len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d type = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestScannerHeadings(t *testing.T) {
	input := "== History ==\ntext\n===Early work===\n"
	var headings []string
	for _, tok := range NewScanner(input).All() {
		if tok.Type == Heading {
			headings = append(headings, tok.Name)
		}
	}
	if len(headings) != 2 || headings[0] != "History" || headings[1] != "Early work" {
		t.Errorf("headings = %v, want [History, Early work]", headings)
	}
}

func TestScannerRefTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // exact text the other_markup span should cover
	}{
		{
			name:  "paired ref",
			input: "a<ref>{{cite book|last=Bohr}}</ref>b",
			want:  "<ref>{{cite book|last=Bohr}}</ref>",
		},
		{
			name:  "self closing",
			input: "a<ref name=\"x\" />b",
			want:  "<ref name=\"x\" />",
		},
		{
			name:  "case insensitive close",
			input: "a<REF>x</REF>b",
			want:  "<REF>x</REF>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, tok := range NewScanner(tt.input).All() {
				if tok.Type == OtherMarkup {
					if got := tt.input[tok.Span.Start:tok.Span.End]; got != tt.want {
						t.Errorf("markup span = %q, want %q", got, tt.want)
					}
					return
				}
			}
			t.Errorf("no other_markup token found in %q", tt.input)
		})
	}
}

func TestScannerReferencesTagNotRef(t *testing.T) {
	input := "<references/> tail"
	toks := NewScanner(input).All()
	if toks[0].Type != PlainText {
		t.Errorf("<references/> lexed as %v, want plain_text", toks[0].Type)
	}
}

func TestScannerReset(t *testing.T) {
	sc := NewScanner("{{a}} b")
	first := sc.All()
	sc.Reset()
	second := sc.All()
	if len(first) != len(second) {
		t.Fatalf("restarted scan yields %d tokens, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs after reset: %+v vs %+v", i, first[i], second[i])
		}
	}
}
