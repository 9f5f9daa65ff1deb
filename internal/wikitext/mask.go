package wikitext

import "strings"

// terminalSections are the headings after which an article carries no further
// prose worth matching (link farms and reading lists).
var terminalSections = map[string]bool{
	"external links":  true,
	"see also":        true,
	"further reading": true,
}

// Mask returns a copy of text with non-content markup blanked out by spaces,
// preserving byte length so that offsets into the masked text are valid
// offsets into the original.
//
// Blanked regions:
//   - Template constructs for which maskTemplate(name) reports true
//     (typically the citation/footnote family, so that matches never land
//     inside the very field a candidate was extracted from)
//   - <ref> bodies and HTML comments
//   - the target half of piped [[target|display]] links and all link
//     delimiters (display text keeps its position)
//   - everything from a terminal section heading to the end of the text
func Mask(text string, maskTemplate func(name string) bool) string {
	b := []byte(text)
	sc := NewScanner(text)
	for {
		tok, err := sc.Next()
		if err != nil {
			break
		}
		switch tok.Type {
		case Template:
			if maskTemplate != nil && maskTemplate(tok.Name) {
				blank(b, tok.Span.Start, tok.Span.End)
			}
		case OtherMarkup:
			blank(b, tok.Span.Start, tok.Span.End)
		case Link:
			maskLink(b, tok.Span)
		case Heading:
			if terminalSections[strings.ToLower(tok.Name)] {
				blank(b, tok.Span.Start, len(b))
				return string(b)
			}
		}
	}
	return string(b)
}

// maskLink blanks the delimiters of a [[...]] construct and, for piped
// links, the target text up to and including the first pipe.
func maskLink(b []byte, s Span) {
	inner := string(b[s.Start+2 : s.End-2])
	blank(b, s.Start, s.Start+2)
	blank(b, s.End-2, s.End)
	if pipe := strings.IndexByte(inner, '|'); pipe >= 0 {
		blank(b, s.Start+2, s.Start+2+pipe+1)
	}
}

func blank(b []byte, start, end int) {
	for i := start; i < end && i < len(b); i++ {
		b[i] = ' '
	}
}

// StripLinks replaces every [[target|display]] in s with its display text
// and every [[target]] with its target text. Used on citation field values
// before name splitting; the link's display text is the author string.
func StripLinks(s string) string {
	for {
		open := strings.Index(s, "[[")
		if open < 0 {
			return s
		}
		close := strings.Index(s[open:], "]]")
		if close < 0 {
			return s
		}
		close += open
		inner := s[open+2 : close]
		if pipe := strings.LastIndexByte(inner, '|'); pipe >= 0 {
			inner = inner[pipe+1:]
		}
		s = s[:open] + inner + s[close+2:]
	}
}
