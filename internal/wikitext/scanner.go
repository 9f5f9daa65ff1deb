// Package wikitext provides a structural scanner for raw wikitext markup.
//
// The scanner partitions its input into typed spans without interpreting
// template semantics; what a template means (citation or otherwise) is the
// caller's concern.
package wikitext

import (
	"io"
	"strings"
)

// SpanType classifies a scanned region of wikitext.
type SpanType int

const (
	PlainText SpanType = iota
	Template
	Link
	Heading
	OtherMarkup
)

// String returns the lowercase name of the span type.
func (t SpanType) String() string {
	switch t {
	case PlainText:
		return "plain_text"
	case Template:
		return "template"
	case Link:
		return "link"
	case Heading:
		return "heading"
	case OtherMarkup:
		return "other_markup"
	}
	return "unknown"
}

// Span is a half-open [Start, End) byte-offset range into the raw text of
// one revision. Offsets are always into the raw text; nothing in this
// package converts to token indices.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether two spans share at least one offset.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Token is one scanned region of the input.
type Token struct {
	Type SpanType
	Span Span

	// Name is the template name for Template tokens and the section title
	// for Heading tokens. Empty otherwise.
	Name string

	// Args is the raw argument text for Template tokens, verbatim and
	// unparsed (it may itself contain balanced nested templates).
	Args string
}

// Scanner walks raw wikitext and emits a sequence of typed spans that
// partition the input: no gaps, no overlaps, offsets strictly increasing.
// Malformed markup never fails the scan; an opener that cannot be balanced
// is folded into the surrounding plain text.
type Scanner struct {
	text string
	pos  int
}

// NewScanner returns a scanner over the given raw wikitext.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// Reset rewinds the scanner to the start of the input.
func (s *Scanner) Reset() { s.pos = 0 }

// Next returns the next token, or io.EOF once the input is exhausted.
func (s *Scanner) Next() (Token, error) {
	if s.pos >= len(s.text) {
		return Token{}, io.EOF
	}

	if tok, ok := s.lexAt(s.pos); ok {
		s.pos = tok.Span.End
		return tok, nil
	}

	// Plain text runs until the next position where a construct lexes.
	start := s.pos
	i := s.pos + 1
	for i < len(s.text) {
		j := s.nextCandidate(i)
		if j < 0 {
			i = len(s.text)
			break
		}
		if _, ok := s.lexAt(j); ok {
			i = j
			break
		}
		i = j + 1
	}
	s.pos = i
	return Token{Type: PlainText, Span: Span{Start: start, End: i}}, nil
}

// nextCandidate returns the next offset at or after i that could start a
// non-plain construct, or -1 if none remains.
func (s *Scanner) nextCandidate(i int) int {
	off := strings.IndexAny(s.text[i:], "{[<=")
	if off < 0 {
		return -1
	}
	return i + off
}

func (s *Scanner) lexAt(i int) (Token, bool) {
	t := s.text
	switch {
	case strings.HasPrefix(t[i:], "{{"):
		return s.lexTemplate(i)
	case strings.HasPrefix(t[i:], "[["):
		return s.lexLink(i)
	case strings.HasPrefix(t[i:], "<!--"):
		return s.lexComment(i)
	case isRefOpen(t[i:]):
		return s.lexRef(i)
	case t[i] == '=' && (i == 0 || t[i-1] == '\n'):
		return s.lexHeading(i)
	}
	return Token{}, false
}

// lexTemplate balances nested {{ }} delimiters starting at an opener.
func (s *Scanner) lexTemplate(start int) (Token, bool) {
	t := s.text
	depth := 1
	i := start + 2
	for i < len(t) {
		switch {
		case i+1 < len(t) && t[i] == '{' && t[i+1] == '{':
			depth++
			i += 2
		case i+1 < len(t) && t[i] == '}' && t[i+1] == '}':
			depth--
			i += 2
			if depth == 0 {
				name, args := splitTemplate(t[start+2 : i-2])
				return Token{
					Type: Template,
					Span: Span{Start: start, End: i},
					Name: name,
					Args: args,
				}, true
			}
		default:
			i++
		}
	}
	return Token{}, false
}

// splitTemplate separates a template's inner text into its name and raw
// argument text (everything after the first pipe).
func splitTemplate(inner string) (name, args string) {
	if idx := strings.IndexByte(inner, '|'); idx >= 0 {
		return strings.TrimSpace(inner[:idx]), inner[idx+1:]
	}
	return strings.TrimSpace(inner), ""
}

// lexLink balances nested [[ ]] delimiters (file links embed further links
// in their captions).
func (s *Scanner) lexLink(start int) (Token, bool) {
	t := s.text
	depth := 1
	i := start + 2
	for i < len(t) {
		switch {
		case i+1 < len(t) && t[i] == '[' && t[i+1] == '[':
			depth++
			i += 2
		case i+1 < len(t) && t[i] == ']' && t[i+1] == ']':
			depth--
			i += 2
			if depth == 0 {
				return Token{Type: Link, Span: Span{Start: start, End: i}}, true
			}
		default:
			i++
		}
	}
	return Token{}, false
}

func (s *Scanner) lexComment(start int) (Token, bool) {
	end := strings.Index(s.text[start+4:], "-->")
	if end < 0 {
		return Token{}, false
	}
	return Token{Type: OtherMarkup, Span: Span{Start: start, End: start + 4 + end + 3}}, true
}

// isRefOpen reports whether the text begins a <ref> tag (and not some other
// tag that merely shares the prefix, like <references/>).
func isRefOpen(t string) bool {
	if len(t) < 5 || !strings.EqualFold(t[:4], "<ref") {
		return false
	}
	switch t[4] {
	case ' ', '\t', '\n', '>', '/':
		return true
	}
	return false
}

// lexRef consumes <ref .../> or <ref ...>...</ref>.
func (s *Scanner) lexRef(start int) (Token, bool) {
	t := s.text
	gt := strings.IndexByte(t[start:], '>')
	if gt < 0 {
		return Token{}, false
	}
	gt += start
	if t[gt-1] == '/' { // self-closing
		return Token{Type: OtherMarkup, Span: Span{Start: start, End: gt + 1}}, true
	}
	rest := t[gt+1:]
	for off := 0; off < len(rest); {
		idx := strings.IndexByte(rest[off:], '<')
		if idx < 0 {
			return Token{}, false
		}
		idx += off
		if len(rest) >= idx+6 && strings.EqualFold(rest[idx:idx+6], "</ref>") {
			return Token{Type: OtherMarkup, Span: Span{Start: start, End: gt + 1 + idx + 6}}, true
		}
		off = idx + 1
	}
	return Token{}, false
}

// lexHeading consumes a == Heading == line. The trailing newline stays with
// the following plain text.
func (s *Scanner) lexHeading(start int) (Token, bool) {
	t := s.text
	end := strings.IndexByte(t[start:], '\n')
	if end < 0 {
		end = len(t)
	} else {
		end += start
	}
	line := strings.TrimRight(t[start:end], " \t")
	if len(line) < 3 || !strings.HasSuffix(line, "=") {
		return Token{}, false
	}
	title := strings.TrimSpace(strings.Trim(line, "="))
	if title == "" {
		return Token{}, false
	}
	return Token{Type: Heading, Span: Span{Start: start, End: end}, Name: title}, true
}

// All runs the scanner to completion and returns every token. The scanner
// is left positioned at the end of the input.
func (s *Scanner) All() []Token {
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return toks
		}
		toks = append(toks, tok)
	}
}
