package name

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"wikinames/internal/wikitext"
)

// FindKnownNames locates occurrences of reference-list tokens in masked
// article text. This is the matching half of the hybrid pipeline: the
// reference list comes from an external NER collaborator (see the namelist
// package) rather than from the revision's own citations.
//
// Letter tokens present in the set are collected, adjacent hits are merged
// into multi-word names, and phrases whose tokens are uniformly lower- or
// uppercase are dropped. Single-word results classify SurnameOnly,
// multi-word results Full.
func FindKnownNames(text string, names map[string]struct{}) []Match {
	hits := collectHits(text, names)
	hits = mergeAdjacent(hits)

	var out []Match
	for _, h := range hits {
		if uniformCase(h.words) {
			continue
		}
		phrase := text[h.start:h.end]
		class := SurnameOnly
		first := ""
		if len(h.words) > 1 {
			class = Full
			first = strings.Join(h.words[:len(h.words)-1], " ")
		}
		out = append(out, Match{
			Span: wikitext.Span{Start: h.start, End: h.end},
			Text: phrase,
			Candidate: Candidate{
				Full:        phrase,
				First:       first,
				Last:        h.words[len(h.words)-1],
				SourceField: "name_list",
			},
			Classification: class,
		})
	}
	return out
}

type hit struct {
	words []string
	start int
	end   int
}

// collectHits walks letter-token runs and keeps those present in the set.
func collectHits(text string, names map[string]struct{}) []hit {
	var hits []hit
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsLetter(r) {
			i += size
			continue
		}
		start := i
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsLetter(r) {
				break
			}
			i += size
		}
		word := text[start:i]
		if _, ok := names[word]; ok {
			hits = append(hits, hit{words: []string{word}, start: start, end: i})
		}
	}
	return hits
}

// mergeAdjacent joins hits separated by a single character, or by two
// characters when the preceding word is a bare uppercase initial
// ("Marie S Curie").
func mergeAdjacent(hits []hit) []hit {
	var out []hit
	for _, h := range hits {
		if len(out) > 0 {
			prev := &out[len(out)-1]
			gap := h.start - prev.end
			lastWord := prev.words[len(prev.words)-1]
			if gap == 1 || (gap == 2 && isUpperInitial(lastWord)) {
				prev.words = append(prev.words, h.words...)
				prev.end = h.end
				continue
			}
		}
		out = append(out, h)
	}
	return out
}

func isUpperInitial(w string) bool {
	r, size := utf8.DecodeRuneInString(w)
	return size == len(w) && unicode.IsUpper(r)
}

// uniformCase reports whether every word is entirely lowercase, or every
// word entirely uppercase. Such phrases are acronyms or running prose, not
// personal names.
func uniformCase(words []string) bool {
	allLower, allUpper := true, true
	for _, w := range words {
		lower, upper := true, true
		for _, r := range w {
			if unicode.IsUpper(r) {
				lower = false
			}
			if unicode.IsLower(r) {
				upper = false
			}
		}
		allLower = allLower && lower
		allUpper = allUpper && upper
	}
	return allLower || allUpper
}
