package namelist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "names.txt")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeList(t, "Marie Curie\nPierre\nCurie\n")
	set, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(set), set)
	}
	for _, tok := range []string{"Marie", "Curie", "Pierre"} {
		if _, ok := set[tok]; !ok {
			t.Errorf("missing %q", tok)
		}
	}
}

func TestLoadAppliesStoplist(t *testing.T) {
	path := writeList(t, "The National Institute\nMarie Curie\nof Science\n")
	set, err := Load(path, DefaultStoplist)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, gone := range []string{"The", "National", "Institute", "of", "Science"} {
		if _, ok := set[gone]; ok {
			t.Errorf("stoplist token %q survived", gone)
		}
	}
	for _, kept := range []string{"Marie", "Curie"} {
		if _, ok := set[kept]; !ok {
			t.Errorf("name token %q was removed", kept)
		}
	}
}

func TestLoadCaseSensitive(t *testing.T) {
	// The stoplist carries both cases explicitly; unlisted casings stay.
	path := writeList(t, "THE\n")
	set, err := Load(path, DefaultStoplist)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := set["THE"]; !ok {
		t.Error("unlisted casing was removed")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	set, err := Load(writeList(t, ""), DefaultStoplist)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("got %d tokens from an empty list", len(set))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt"), nil); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
