package citation

import (
	"strconv"
	"strings"

	"wikinames/internal/wikitext"
)

// Record is one name-bearing field extracted from a citation template.
type Record struct {
	// Template is the citation template name as written, e.g. "cite journal".
	Template string
	// Span covers the whole template construct in the raw revision text.
	Span wikitext.Span
	// Field classifies the parameter the value came from.
	Field Field
	// Index is the parameter numbering (last2 -> 2), 0 if unnumbered.
	Index int
	// Raw is the verbatim field value, embedded wiki-links included.
	Raw string
	// FieldSpan covers the field value in the raw revision text.
	FieldSpan wikitext.Span
}

// SourceField returns the parameter name the record came from, numbering
// included ("last1", "author").
func (r Record) SourceField() string {
	if r.Index == 0 {
		return r.Field.String()
	}
	return r.Field.String() + strconv.Itoa(r.Index)
}

// Extract scans raw wikitext and returns the name-bearing fields of every
// allow-listed citation template, in document order. A revision with no
// citations yields an empty slice, not an error.
func Extract(text string) []Record {
	var recs []Record
	sc := wikitext.NewScanner(text)
	for {
		tok, err := sc.Next()
		if err != nil {
			break
		}
		if tok.Type != wikitext.Template || !IsCitation(tok.Name) {
			continue
		}
		recs = append(recs, extractTemplate(text, tok)...)
	}
	return recs
}

// extractTemplate parses one template's pipe-delimited named parameters and
// keeps the recognized name fields. Positional and unrecognized parameters
// are ignored.
func extractTemplate(text string, tok wikitext.Token) []Record {
	if tok.Args == "" {
		return nil
	}
	// Offset of the argument text inside the raw input: past "{{" and the
	// name segment's pipe.
	inner := text[tok.Span.Start+2 : tok.Span.End-2]
	argsOff := tok.Span.Start + 2 + strings.IndexByte(inner, '|') + 1

	var recs []Record
	for _, seg := range splitArgs(tok.Args) {
		eq := topLevelIndexByte(seg.text, '=')
		if eq < 0 {
			continue
		}
		field, index := classifyKey(seg.text[:eq])
		if field == FieldUnknown {
			continue
		}
		val, lead := trimOffsets(seg.text[eq+1:])
		if val == "" {
			continue // empty field: no record, no error
		}
		start := argsOff + seg.start + eq + 1 + lead
		recs = append(recs, Record{
			Template:  tok.Name,
			Span:      tok.Span,
			Field:     field,
			Index:     index,
			Raw:       val,
			FieldSpan: wikitext.Span{Start: start, End: start + len(val)},
		})
	}
	return recs
}

type segment struct {
	text  string
	start int // offset within the args text
}

// splitArgs splits argument text on top-level pipes, leaving pipes inside
// nested {{ }} and [[ ]] constructs alone.
func splitArgs(args string) []segment {
	var segs []segment
	depth := 0
	start := 0
	for i := 0; i < len(args); i++ {
		switch {
		case i+1 < len(args) && (args[i:i+2] == "{{" || args[i:i+2] == "[["):
			depth++
			i++
		case i+1 < len(args) && (args[i:i+2] == "}}" || args[i:i+2] == "]]"):
			depth--
			i++
		case args[i] == '|' && depth == 0:
			segs = append(segs, segment{text: args[start:i], start: start})
			start = i + 1
		}
	}
	segs = append(segs, segment{text: args[start:], start: start})
	return segs
}

// topLevelIndexByte returns the index of the first c outside nested
// {{ }} / [[ ]] constructs, or -1.
func topLevelIndexByte(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i+1 < len(s) && (s[i:i+2] == "{{" || s[i:i+2] == "[["):
			depth++
			i++
		case i+1 < len(s) && (s[i:i+2] == "}}" || s[i:i+2] == "]]"):
			depth--
			i++
		case s[i] == c && depth == 0:
			return i
		}
	}
	return -1
}

// trimOffsets trims surrounding whitespace and reports how many leading
// bytes were removed, so the caller can keep offsets anchored in the raw
// text.
func trimOffsets(s string) (string, int) {
	trimmed := strings.TrimLeft(s, " \t\n\r")
	lead := len(s) - len(trimmed)
	return strings.TrimRight(trimmed, " \t\n\r"), lead
}
