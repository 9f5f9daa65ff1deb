package citation

import "strings"

// Field is the closed set of recognized name-bearing citation parameters.
type Field int

const (
	FieldUnknown     Field = iota
	FieldAuthor            // full author name: author, authors, coauthors
	FieldVAuthors          // Vancouver author list: vauthors
	FieldLast              // surname component: last, surname, author-last
	FieldFirst             // given-name component: first, given, author-first
	FieldEditor            // full editor name: editor, editors, veditors
	FieldEditorLast        // editor surname: editor-last, editor-surname
	FieldEditorFirst       // editor given name: editor-first, editor-given
)

// String returns the canonical parameter name for the field.
func (f Field) String() string {
	switch f {
	case FieldAuthor:
		return "author"
	case FieldVAuthors:
		return "vauthors"
	case FieldLast:
		return "last"
	case FieldFirst:
		return "first"
	case FieldEditor:
		return "editor"
	case FieldEditorLast:
		return "editor-last"
	case FieldEditorFirst:
		return "editor-first"
	}
	return "unknown"
}

// IsSurname reports whether the field holds only the surname component.
func (f Field) IsSurname() bool {
	return f == FieldLast || f == FieldEditorLast
}

// IsGiven reports whether the field holds only the given-name component.
func (f Field) IsGiven() bool {
	return f == FieldFirst || f == FieldEditorFirst
}

// IsEditor reports whether the field describes an editor rather than an
// author. Surname/given pairing never crosses the author/editor boundary.
func (f Field) IsEditor() bool {
	return f == FieldEditor || f == FieldEditorLast || f == FieldEditorFirst
}

// fieldBases maps a parameter key, with any numbering removed, to its field.
var fieldBases = map[string]Field{
	"author":         FieldAuthor,
	"authors":        FieldAuthor,
	"coauthor":       FieldAuthor,
	"coauthors":      FieldAuthor,
	"author-link":    FieldAuthor,
	"authorlink":     FieldAuthor,
	"vauthors":       FieldVAuthors,
	"last":           FieldLast,
	"surname":        FieldLast,
	"author-last":    FieldLast,
	"authorlast":     FieldLast,
	"first":          FieldFirst,
	"given":          FieldFirst,
	"author-first":   FieldFirst,
	"authorfirst":    FieldFirst,
	"editor":         FieldEditor,
	"editors":        FieldEditor,
	"veditors":       FieldEditor,
	"editor-link":    FieldEditor,
	"editor-last":    FieldEditorLast,
	"editorlast":     FieldEditorLast,
	"editor-surname": FieldEditorLast,
	"editor-first":   FieldEditorFirst,
	"editorfirst":    FieldEditorFirst,
	"editor-given":   FieldEditorFirst,
}

// classifyKey parses a citation parameter key into its field and numbering
// index ("last3" -> FieldLast, 3; "editor2-last" -> FieldEditorLast, 2).
// Index 0 means unnumbered. Numbering need not be contiguous; gaps are the
// caller's business, not an error.
func classifyKey(key string) (Field, int) {
	key = strings.ToLower(strings.TrimSpace(key))
	base, index := splitNumber(key)
	f, ok := fieldBases[base]
	if !ok {
		return FieldUnknown, 0
	}
	return f, index
}

// splitNumber removes the first digit run from a key, returning the key
// without it and its numeric value.
func splitNumber(key string) (string, int) {
	start := strings.IndexFunc(key, isDigit)
	if start < 0 {
		return key, 0
	}
	end := start
	n := 0
	for end < len(key) && isDigit(rune(key[end])) {
		n = n*10 + int(key[end]-'0')
		end++
	}
	return key[:start] + key[end:], n
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
