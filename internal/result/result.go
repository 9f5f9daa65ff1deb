// Package result serializes per-revision match records to the per-article,
// per-pipeline output files consumed by manual review.
package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"wikinames/internal/name"
)

// Match is one serialized match record.
type Match struct {
	Text           string `json:"text"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Classification string `json:"classification"`
	SourceField    string `json:"source_field,omitempty"`
}

// Document is the output record for one (article, revision, pipeline)
// combination. Matches are ordered by ascending start offset.
type Document struct {
	Article    string  `json:"article"`
	RevisionID uint64  `json:"revision_id"`
	Pipeline   string  `json:"pipeline"`
	Matches    []Match `json:"matches"`
}

// New builds a document from matcher output. The match order is preserved;
// the matcher already sorts by start offset.
func New(article string, revisionID uint64, pipeline string, matches []name.Match) *Document {
	doc := &Document{
		Article:    article,
		RevisionID: revisionID,
		Pipeline:   pipeline,
		Matches:    make([]Match, 0, len(matches)),
	}
	for _, m := range matches {
		doc.Matches = append(doc.Matches, Match{
			Text:           m.Text,
			Start:          m.Span.Start,
			End:            m.Span.End,
			Classification: m.Classification.String(),
			SourceField:    m.Candidate.SourceField,
		})
	}
	return doc
}

// Write serializes the document to path, creating parent directories as
// needed.
func Write(path string, doc *Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// Read loads a previously written document.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}
