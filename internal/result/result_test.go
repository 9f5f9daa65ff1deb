package result

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"wikinames/internal/name"
	"wikinames/internal/wikitext"
)

func TestNewPreservesOrderAndFields(t *testing.T) {
	in := []name.Match{
		{
			Span:           wikitext.Span{Start: 10, End: 21},
			Text:           "Marie Curie",
			Candidate:      name.Candidate{Full: "Marie Curie", First: "Marie", Last: "Curie", SourceField: "last1/first1"},
			Classification: name.Full,
		},
		{
			Span:           wikitext.Span{Start: 40, End: 48},
			Text:           "Einstein",
			Candidate:      name.Candidate{Full: "Albert Einstein", First: "Albert", Last: "Einstein", SourceField: "author"},
			Classification: name.SurnameOnly,
		},
	}

	doc := New("Marie Curie", 200, "parser", in)
	if doc.Article != "Marie Curie" || doc.RevisionID != 200 || doc.Pipeline != "parser" {
		t.Errorf("document header = %+v", doc)
	}
	want := []Match{
		{Text: "Marie Curie", Start: 10, End: 21, Classification: "full", SourceField: "last1/first1"},
		{Text: "Einstein", Start: 40, End: 48, Classification: "surname_only", SourceField: "author"},
	}
	if !reflect.DeepEqual(doc.Matches, want) {
		t.Errorf("Matches = %+v, want %+v", doc.Matches, want)
	}
}

func TestNewEmptyMatches(t *testing.T) {
	doc := New("X", 1, "parser", nil)
	if doc.Matches == nil || len(doc.Matches) != 0 {
		t.Errorf("Matches = %#v, want empty non-nil slice", doc.Matches)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	doc := &Document{
		Article:    "Niels Bohr",
		RevisionID: 300,
		Pipeline:   "hybrid",
		Matches: []Match{
			{Text: "Bohr", Start: 5, End: 9, Classification: "surname_only", SourceField: "name_list"},
		},
	}

	path := filepath.Join(t.TempDir(), "out", "bohr.json")
	if err := Write(path, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip = %+v, want %+v", got, doc)
	}
}

func TestWriteCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.json")
	if err := Write(path, &Document{Article: "X", RevisionID: 1, Pipeline: "parser"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestWriteSerializedForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	doc := &Document{
		Article:    "Marie Curie",
		RevisionID: 200,
		Pipeline:   "parser",
		Matches: []Match{
			{Text: "Curie", Start: 3, End: 8, Classification: "surname_only", SourceField: "last"},
		},
	}
	if err := Write(path, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, key := range []string{`"article"`, `"revision_id"`, `"pipeline"`, `"classification"`, `"source_field"`} {
		if !strings.Contains(s, key) {
			t.Errorf("serialized form missing %s", key)
		}
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("serialized form missing trailing newline")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Read(path)
	if err == nil {
		t.Fatal("expected an error for malformed input")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}
