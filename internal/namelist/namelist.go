// Package namelist loads the externally produced person-name reference
// list consumed by the hybrid pipeline.
package namelist

import (
	"bufio"
	"fmt"
	"os"
)

// DefaultStoplist holds tokens that leak into NER-derived name lists but
// never denote a person: function words and the organisational vocabulary
// of scientific articles. Removed from every loaded list.
var DefaultStoplist = []string{
	"a", "an", "and", "at", "by", "for", "in", "not", "of", "on", "the", "with",
	"A", "An", "And", "At", "By", "For", "In", "Not", "Of", "On", "The", "With",
	"Association", "Board", "Center", "Clinical", "Commission", "Committee",
	"Corporation", "Council", "Department", "Federal", "Foundation", "Global",
	"Health", "Information", "Institute", "International", "Journal",
	"Laboratory", "Medical", "Medicine", "National", "Office", "Organization",
	"Research", "Science", "Sciences", "Society", "System", "Technology",
	"United", "University",
}

// Load reads a whitespace-separated name list, one or more tokens per line,
// into a set. Tokens on the stoplist are removed.
func Load(path string, stoplist []string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening name list: %w", err)
	}
	defer f.Close()

	set := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		set[scanner.Text()] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading name list: %w", err)
	}

	for _, tok := range stoplist {
		delete(set, tok)
	}
	return set, nil
}
