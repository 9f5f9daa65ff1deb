// Package name derives person-name candidates from citation fields and
// locates their occurrences in article text as character-offset spans.
package name

import (
	"regexp"
	"strings"
	"unicode"

	"wikinames/internal/citation"
	"wikinames/internal/wikitext"
)

// Candidate is one person name derived from citation fields.
type Candidate struct {
	// Full is the display form, "First Last" when both components exist.
	Full string `json:"full"`
	// First is the given-name component; empty for surname-only candidates.
	First string `json:"first,omitempty"`
	// Last is the surname component. Never empty.
	Last string `json:"last"`
	// SourceField names the citation parameter(s) the candidate came from,
	// e.g. "author2" or "last1/first1".
	SourceField string `json:"source_field"`
}

var (
	parenRe  = regexp.MustCompile(`\s*\([^)]*\)`)
	entityRe = regexp.MustCompile(`&[a-zA-Z]+#?[0-9]*;`)
	urlRe    = regexp.MustCompile(`(?i)\bhttps?://|\bwww\.`)
)

// CleanField normalizes a raw citation field value into a plain name
// string. Wiki-links collapse to their display text, parenthetical
// qualifiers are dropped, and whitespace is collapsed. Values that cannot
// be a personal name (digits, HTML entities, URLs, uniform letter case)
// are rejected.
func CleanField(raw string) (string, bool) {
	s := wikitext.StripLinks(raw)
	s = parenRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", false
	}
	if strings.ContainsAny(s, "0123456789") {
		return "", false
	}
	if entityRe.MatchString(s) || urlRe.MatchString(s) {
		return "", false
	}
	hasUpper, hasLower := false, false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
		} else if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if !hasUpper || !hasLower {
		return "", false
	}
	return s, true
}

// SplitName splits a cleaned name string into given-name and surname
// components. An explicit "Surname, Given" order takes precedence;
// otherwise the last token is the surname. A single token with no
// delimiter is a surname-only candidate, never discarded.
func SplitName(s string) (first, last string) {
	if idx := strings.Index(s, ","); idx > 0 {
		return strings.TrimSpace(s[idx+1:]), strings.TrimSpace(s[:idx])
	}
	parts := strings.Fields(s)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// pairKey groups surname/given fields that belong to the same person.
// Pairing never crosses the author/editor boundary, and never crosses
// template boundaries: last= in one citation and first= in another are
// different people.
type pairKey struct {
	tmpl   int // start offset of the owning template
	editor bool
	index  int
}

type pairEntry struct {
	first, last string
	source      []string
}

// FromRecords turns citation field records into name candidates. Within one
// template, surname/given fields with the same index pair up into one
// candidate; full-name fields each yield their own. Duplicate (first, last)
// pairs collapse into the earliest occurrence.
func FromRecords(recs []citation.Record) []Candidate {
	var out []Candidate
	pairs := map[pairKey]*pairEntry{}
	var pairOrder []pairKey

	for _, rec := range recs {
		val, ok := CleanField(rec.Raw)
		if !ok {
			continue
		}
		switch {
		case rec.Field == citation.FieldVAuthors:
			out = append(out, vancouverCandidates(val, rec.SourceField())...)
		case rec.Field.IsSurname():
			k := pairKey{tmpl: rec.Span.Start, editor: rec.Field.IsEditor(), index: rec.Index}
			e := pairs[k]
			if e == nil {
				e = &pairEntry{}
				pairs[k] = e
				pairOrder = append(pairOrder, k)
			}
			e.last = val
			e.source = append(e.source, rec.SourceField())
		case rec.Field.IsGiven():
			k := pairKey{tmpl: rec.Span.Start, editor: rec.Field.IsEditor(), index: rec.Index}
			e := pairs[k]
			if e == nil {
				e = &pairEntry{}
				pairs[k] = e
				pairOrder = append(pairOrder, k)
			}
			e.first = val
			e.source = append(e.source, rec.SourceField())
		default: // full-name fields: author, editor and their variants
			first, last := SplitName(val)
			if last == "" {
				continue
			}
			out = append(out, newCandidate(first, last, rec.SourceField()))
		}
	}

	// Paired fields come after the full-name fields of the same record set;
	// emit them in first-appearance order. A given name with no surname to
	// attach to is dropped (nothing to match on).
	for _, k := range pairOrder {
		e := pairs[k]
		if e.last == "" {
			continue
		}
		out = append(out, newCandidate(e.first, e.last, strings.Join(e.source, "/")))
	}

	return Dedupe(out)
}

func newCandidate(first, last, source string) Candidate {
	full := last
	if first != "" {
		full = first + " " + last
	}
	return Candidate{Full: full, First: first, Last: last, SourceField: source}
}

// vancouverCandidates parses a vauthors list: comma-separated entries of
// "Surname Initials" ("Smith AB, de Vries JG").
func vancouverCandidates(val, source string) []Candidate {
	var out []Candidate
	for _, entry := range strings.Split(val, ",") {
		parts := strings.Fields(strings.TrimSpace(entry))
		if len(parts) == 0 {
			continue
		}
		if strings.EqualFold(parts[0], "etal") || strings.EqualFold(parts[0], "et") {
			continue
		}
		if len(parts) == 1 {
			out = append(out, newCandidate("", parts[0], source))
			continue
		}
		initials := parts[len(parts)-1]
		if isInitials(initials) {
			last := strings.Join(parts[:len(parts)-1], " ")
			out = append(out, newCandidate(initials, last, source))
			continue
		}
		first, last := SplitName(strings.Join(parts, " "))
		out = append(out, newCandidate(first, last, source))
	}
	return out
}

// isInitials reports whether a token looks like Vancouver-style initials
// (1-3 uppercase letters).
func isInitials(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// Dedupe collapses candidates with identical components, keeping the
// earliest. Distinct candidates sharing only a surname are preserved.
func Dedupe(cands []Candidate) []Candidate {
	seen := map[string]bool{}
	out := cands[:0]
	for _, c := range cands {
		key := c.First + "\x00" + c.Last
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
