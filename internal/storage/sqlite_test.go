package storage

import (
	"path/filepath"
	"testing"

	"wikinames/internal/result"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleDocs() []*result.Document {
	return []*result.Document{
		{
			Article:    "Marie Curie",
			RevisionID: 200,
			Pipeline:   "parser",
			Matches: []result.Match{
				{Text: "Marie Curie", Start: 10, End: 21, Classification: "full", SourceField: "last1/first1"},
				{Text: "Curie", Start: 50, End: 55, Classification: "surname_only", SourceField: "last1/first1"},
			},
		},
		{
			Article:    "Niels Bohr",
			RevisionID: 300,
			Pipeline:   "hybrid",
			Matches: []result.Match{
				{Text: "Bohr", Start: 5, End: 9, Classification: "surname_only", SourceField: "name_list"},
			},
		},
	}
}

func TestRebuildAndQueryAll(t *testing.T) {
	db := openTestDB(t)

	n, err := db.Rebuild(sampleDocs())
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n != 3 {
		t.Errorf("Rebuild inserted %d rows, want 3", n)
	}

	rows, err := db.Query("", "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Ordered by article, revision, start offset.
	if rows[0].Article != "Marie Curie" || rows[0].Start != 10 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Start != 50 {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].Article != "Niels Bohr" || rows[2].Pipeline != "hybrid" {
		t.Errorf("row 2 = %+v", rows[2])
	}
}

func TestQueryNameFilter(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Rebuild(sampleDocs()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	rows, err := db.Query("Curie", "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}
	for _, r := range rows {
		if r.Article != "Marie Curie" {
			t.Errorf("unexpected row %+v", r)
		}
	}
}

func TestQueryClassificationFilter(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Rebuild(sampleDocs()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	rows, err := db.Query("", "full")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 1 || rows[0].Text != "Marie Curie" {
		t.Errorf("rows = %+v, want the one full match", rows)
	}
}

func TestQueryCombinedFilters(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Rebuild(sampleDocs()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	rows, err := db.Query("Curie", "surname_only")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 1 || rows[0].Start != 50 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestRebuildReplacesPriorContents(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Rebuild(sampleDocs()); err != nil {
		t.Fatalf("first Rebuild: %v", err)
	}

	n, err := db.Rebuild(sampleDocs()[:1])
	if err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}
	if n != 2 {
		t.Errorf("second Rebuild inserted %d rows, want 2", n)
	}

	rows, err := db.Query("", "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows after rebuild, want 2 (old rows cleared)", len(rows))
	}
}

func TestQueryEmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	rows, err := db.Query("", "")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows from an empty index", len(rows))
	}
}
