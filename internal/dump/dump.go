// Package dump reads revision-pinned wikitext out of MediaWiki XML export
// containers, one container per article. Containers may be bz2-compressed.
package dump

import (
	"compress/bzip2"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrRevisionNotFound reports that a requested revision id is absent from
// the container. It is fatal for that single article only; callers skip and
// log rather than abort the batch.
var ErrRevisionNotFound = errors.New("revision not found in dump")

// SiteInfo is the dump's toplevel site description, when present.
type SiteInfo struct {
	SiteName  string `xml:"sitename"`
	Base      string `xml:"base"`
	Generator string `xml:"generator"`
}

// Revision is one historical version of a page's wikitext.
type Revision struct {
	ID        uint64 `xml:"id"`
	Timestamp string `xml:"timestamp"`
	Text      string `xml:"text"`
}

// Page is one article and its exported revision history.
type Page struct {
	Title     string     `xml:"title"`
	ID        uint64     `xml:"id"`
	Revisions []Revision `xml:"revision"`
}

// Parser walks a MediaWiki export stream page by page.
type Parser struct {
	// SiteInfo is populated once the stream's siteinfo element (if any)
	// has been passed.
	SiteInfo SiteInfo

	d *xml.Decoder
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{d: xml.NewDecoder(r)}
}

// Next returns the next page in the stream, or io.EOF when exhausted.
func (p *Parser) Next() (*Page, error) {
	for {
		tok, err := p.d.Token()
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "siteinfo":
			if err := p.d.DecodeElement(&p.SiteInfo, &start); err != nil {
				return nil, fmt.Errorf("decoding siteinfo: %w", err)
			}
		case "page":
			page := new(Page)
			if err := p.d.DecodeElement(page, &start); err != nil {
				return nil, fmt.Errorf("decoding page: %w", err)
			}
			return page, nil
		}
	}
}

// File is an opened dump container.
type File struct {
	*Parser
	f *os.File
}

// Open opens a dump container, transparently decompressing .bz2 files.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}
	return &File{Parser: NewParser(r), f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// FindRevision locates the exact revision id in the container (not merely
// the latest). Returns ErrRevisionNotFound, wrapped with both ids, if the
// container does not hold it.
func FindRevision(path string, revID uint64) (*Page, *Revision, error) {
	f, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	for {
		page, err := f.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for i := range page.Revisions {
			if page.Revisions[i].ID == revID {
				return page, &page.Revisions[i], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("%s revision %d: %w", path, revID, ErrRevisionNotFound)
}
