// Package citation identifies citation templates in scanned wikitext and
// extracts their author and editor fields as candidate name records.
package citation

import "strings"

// citationAliases lists citation template names that do not carry the
// "cite " prefix. New aliases are added here, not by ad hoc branching.
var citationAliases = map[string]bool{
	"citation": true,
	"citec":    true,
	"vcite":    true,
}

// footnoteFamily lists shorthand reference templates. They point at full
// citations elsewhere and carry no author fields worth extracting, but they
// must be blanked before matching so a shorthand like {{harv|Curie|1903}}
// is never counted as an article-body mention.
var footnoteFamily = map[string]bool{
	"harvard citation": true,
	"harv":             true,
	"harvnb":           true,
	"harvtxt":          true,
	"harvcoltxt":       true,
	"harvcol":          true,
	"harvcolnb":        true,
	"harvs":            true,
	"harvp":            true,
	"harvc":            true,
	"sfn":              true,
	"sfnp":             true,
	"sfnm":             true,
	"sfnmp":            true,
	"efn":              true,
}

// IsCitation reports whether a template name belongs to the allow-list of
// citation templates whose fields are extracted. Unrecognized templates are
// not an error; the allow-list is intentionally conservative.
func IsCitation(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.HasPrefix(n, "cite ") || citationAliases[n]
}

// IsReferenceMarkup reports whether a template name belongs to the wider
// family of bibliographic markup that is masked out of the text before
// matching (citations plus footnote shorthands).
func IsReferenceMarkup(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return IsCitation(n) || footnoteFamily[n]
}
