package name

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"wikinames/internal/wikitext"
)

// DefaultWindow is the maximum number of intervening tokens allowed between
// the first- and last-name components of a full match. Both "Marie Curie"
// and "Curie, Marie Skłodowska" fall within a window of 2.
const DefaultWindow = 2

// Classification grades the quality of a match.
type Classification int

const (
	SurnameOnly Classification = iota
	Full
)

// String returns the serialized tag for the classification.
func (c Classification) String() string {
	if c == Full {
		return "full"
	}
	return "surname_only"
}

// Match records one located occurrence of a candidate name.
type Match struct {
	// Span covers the occurrence in the revision's raw text.
	Span wikitext.Span
	// Text is the matched text, sliced from the scanned input.
	Text string
	// Candidate is the name that matched.
	Candidate Candidate
	// Classification is Full when both components were found at the span,
	// SurnameOnly when only the surname was.
	Classification Classification
}

// Matcher locates candidate names in article text.
//
// The input text is expected to be masked (wikitext.Mask), so occurrences
// inside citation templates - including the very field a candidate was
// extracted from - can never match.
type Matcher struct {
	// Window bounds the full-name adjacency check; see DefaultWindow.
	Window int
}

// NewMatcher returns a matcher with the default window.
func NewMatcher() *Matcher {
	return &Matcher{Window: DefaultWindow}
}

// FindAll scans text left to right for occurrences of each candidate and
// returns the match set ordered by ascending start offset. Running it twice
// over the same input yields an identical set.
//
// Overlapping spans of the same candidate merge, keeping the widest (Full
// over SurnameOnly). Overlapping spans of different candidates sharing a
// surname are all retained: they may be distinct people, and disambiguation
// is out of scope.
func (m *Matcher) FindAll(text string, cands []Candidate) []Match {
	window := m.Window
	if window < 0 {
		window = DefaultWindow
	}

	var all []Match
	for _, c := range cands {
		all = append(all, m.findCandidate(text, c, window)...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		if a.Candidate.Last != b.Candidate.Last {
			return a.Candidate.Last < b.Candidate.Last
		}
		return a.Candidate.First < b.Candidate.First
	})
	return all
}

func (m *Matcher) findCandidate(text string, c Candidate, window int) []Match {
	if c.Last == "" {
		return nil
	}

	// Exact pass first; one case-insensitive pass only if it found nothing.
	occ := wordIndexAll(text, c.Last, false)
	fold := false
	if len(occ) == 0 {
		occ = wordIndexAll(text, c.Last, true)
		fold = true
	}

	var ms []Match
	for _, start := range occ {
		span := wikitext.Span{Start: start, End: start + len(c.Last)}
		class := SurnameOnly
		if c.First != "" {
			if full, ok := m.expandFull(text, span, c.First, window, fold); ok {
				span = full
				class = Full
			}
		}
		ms = append(ms, Match{
			Span:           span,
			Text:           matchText(text[span.Start:span.End]),
			Candidate:      c,
			Classification: class,
		})
	}
	return mergeOverlaps(ms)
}

// expandFull widens a surname span to a full-name span when the given-name
// tokens co-occur within the window, preceding the surname or following it
// (covers "Curie, Marie"). Initials stand in for full given names.
func (m *Matcher) expandFull(text string, surname wikitext.Span, first string, window int, fold bool) (wikitext.Span, bool) {
	want := strings.Fields(first)
	if len(want) == 0 {
		return surname, false
	}

	before := tokensBefore(text, surname.Start, window+len(want))
	for gap := 0; gap <= window; gap++ {
		end := len(before) - 1 - gap
		start := end - len(want) + 1
		if start < 0 {
			break
		}
		if runEq(before[start:end+1], want, fold) {
			return wikitext.Span{Start: before[start].start, End: surname.End}, true
		}
	}

	after := tokensAfter(text, surname.End, window+len(want))
	for gap := 0; gap <= window; gap++ {
		start := gap
		end := start + len(want) - 1
		if end >= len(after) {
			break
		}
		if runEq(after[start:end+1], want, fold) {
			return wikitext.Span{Start: surname.Start, End: after[end].end}, true
		}
	}

	return surname, false
}

// matchText normalizes a matched slice for serialization. A full-name span
// can cross markup the mask blanked (a wiki-link around the given name);
// the leftover space runs collapse to single spaces. The span itself stays
// in raw-text coordinates.
func matchText(s string) string {
	if !strings.Contains(s, "  ") && !strings.ContainsAny(s, "\n\t") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}

// mergeOverlaps collapses overlapping spans of one candidate, preferring
// Full classification, then the wider span.
func mergeOverlaps(ms []Match) []Match {
	if len(ms) < 2 {
		return ms
	}
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Span.Start != ms[j].Span.Start {
			return ms[i].Span.Start < ms[j].Span.Start
		}
		return ms[i].Span.End < ms[j].Span.End
	})
	out := ms[:0]
	for _, m := range ms {
		if len(out) > 0 && m.Span.Overlaps(out[len(out)-1].Span) {
			prev := &out[len(out)-1]
			if m.Classification > prev.Classification ||
				(m.Classification == prev.Classification && m.Span.Len() > prev.Span.Len()) {
				*prev = m
			}
			continue
		}
		out = append(out, m)
	}
	return out
}

// tokenPos is a word token with its offsets in the scanned text.
type tokenPos struct {
	text  string
	start int
	end   int
}

// isWordRune covers the characters that occur inside personal names,
// initials included.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '.' || r == '\'' || r == '-'
}

// tokensBefore collects up to n word tokens ending before pos, in textual
// order.
func tokensBefore(text string, pos, n int) []tokenPos {
	var toks []tokenPos
	i := pos
	for len(toks) < n && i > 0 {
		for i > 0 {
			r, size := utf8.DecodeLastRuneInString(text[:i])
			if isWordRune(r) {
				break
			}
			i -= size
		}
		if i == 0 {
			break
		}
		end := i
		for i > 0 {
			r, size := utf8.DecodeLastRuneInString(text[:i])
			if !isWordRune(r) {
				break
			}
			i -= size
		}
		toks = append(toks, tokenPos{text: text[i:end], start: i, end: end})
	}
	// Collected nearest-first; flip to textual order.
	for a, b := 0, len(toks)-1; a < b; a, b = a+1, b-1 {
		toks[a], toks[b] = toks[b], toks[a]
	}
	return toks
}

// tokensAfter collects up to n word tokens starting after pos.
func tokensAfter(text string, pos, n int) []tokenPos {
	var toks []tokenPos
	i := pos
	for len(toks) < n && i < len(text) {
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if isWordRune(r) {
				break
			}
			i += size
		}
		if i >= len(text) {
			break
		}
		start := i
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !isWordRune(r) {
				break
			}
			i += size
		}
		toks = append(toks, tokenPos{text: text[start:i], start: start, end: i})
	}
	return toks
}

// runEq compares a token run against the wanted given-name tokens.
func runEq(toks []tokenPos, want []string, fold bool) bool {
	if len(toks) != len(want) {
		return false
	}
	for i := range want {
		if !tokenEq(toks[i].text, want[i], fold) {
			return false
		}
	}
	return true
}

// tokenEq reports whether a text token matches a given-name token. A
// single-letter initial (with or without a period) on either side matches
// the other's first letter.
func tokenEq(tok, want string, fold bool) bool {
	tok = strings.TrimSuffix(tok, ".")
	want = strings.TrimSuffix(want, ".")
	if tok == "" || want == "" {
		return false
	}
	if strEq(tok, want, fold) {
		return true
	}
	tr, _ := utf8.DecodeRuneInString(tok)
	wr, _ := utf8.DecodeRuneInString(want)
	if utf8.RuneCountInString(tok) == 1 || utf8.RuneCountInString(want) == 1 {
		return runeEq(tr, wr, fold)
	}
	return false
}

func strEq(a, b string, fold bool) bool {
	if fold {
		return asciiFoldEq(a, b)
	}
	return a == b
}

func runeEq(a, b rune, fold bool) bool {
	if a == b {
		return true
	}
	if !fold {
		return false
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// wordIndexAll returns the start offsets of word-bounded occurrences of
// word in text. The fold pass is ASCII case-insensitive; the exact pass
// handles everything else.
func wordIndexAll(text, word string, fold bool) []int {
	if word == "" {
		return nil
	}
	var out []int
	if fold {
		for i := 0; i+len(word) <= len(text); i++ {
			if asciiFoldEq(text[i:i+len(word)], word) && wordBounded(text, i, i+len(word)) {
				out = append(out, i)
			}
		}
		return out
	}
	off := 0
	for {
		idx := strings.Index(text[off:], word)
		if idx < 0 {
			return out
		}
		i := off + idx
		if wordBounded(text, i, i+len(word)) {
			out = append(out, i)
		}
		off = i + 1
	}
}

func wordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func asciiFoldEq(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
