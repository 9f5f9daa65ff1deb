// Package download fetches full revision histories from Special:Export and
// merges paginated parts into a single dump container. It runs before the
// core pipeline; nothing else in this tool touches the network.
package download

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"wikinames/internal/dump"
)

const (
	// BaseURL is the export endpoint of English Wikipedia.
	BaseURL = "https://en.wikipedia.org/w/index.php"

	// RateLimit is the request budget in requests per second. Export
	// responses are large; one in flight per second is plenty.
	RateLimit = 1

	// DefaultLimit is the maximum revisions requested per page of results.
	// Wikipedia may cap the effective value server-side.
	DefaultLimit = 1000
)

// Client is a rate-limited HTTP client for Special:Export.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient returns a Special:Export client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchHistory downloads the complete revision history of a page, following
// timestamp offsets until the server returns no further revisions, and
// writes one merged container to outPath. Returns the number of revisions
// written.
func (c *Client) FetchHistory(ctx context.Context, page string, limit int, outPath string) (int, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var (
		title     string
		pageID    uint64
		revisions []dump.Revision
		seen      = map[uint64]bool{}
		offset    = "1"
	)

	for {
		part, err := c.fetchPart(ctx, page, limit, offset)
		if err != nil {
			return 0, err
		}
		if part == nil || len(part.Revisions) == 0 {
			break
		}
		title = part.Title
		pageID = part.ID

		added := 0
		for _, rev := range part.Revisions {
			if seen[rev.ID] { // parts overlap at the offset boundary
				continue
			}
			seen[rev.ID] = true
			revisions = append(revisions, rev)
			added++
		}
		if added == 0 {
			break
		}

		last := part.Revisions[len(part.Revisions)-1].Timestamp
		if last == "" || last == offset {
			break
		}
		offset = last
	}

	if len(revisions) == 0 {
		return 0, fmt.Errorf("no revisions fetched for page %q", page)
	}

	if err := writeContainer(outPath, title, pageID, revisions); err != nil {
		return 0, err
	}
	return len(revisions), nil
}

// fetchPart requests one page of export results. A response with no <page>
// element means the history is exhausted and yields a nil page.
func (c *Client) fetchPart(ctx context.Context, page string, limit int, offset string) (*dump.Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("title", "Special:Export")
	q.Set("pages", page)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", offset)

	// Special:Export expects a POST with the parameters in the query.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?"+q.Encode(), strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching export part: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export request failed: %s", resp.Status)
	}

	p, err := dump.NewParser(resp.Body).Next()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing export part: %w", err)
	}
	return p, nil
}

// exportDoc is the minimal container shape the dump package reads back.
type exportDoc struct {
	XMLName xml.Name  `xml:"mediawiki"`
	Page    dump.Page `xml:"page"`
}

func writeContainer(path, title string, pageID uint64, revisions []dump.Revision) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, xml.Header); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	doc := exportDoc{Page: dump.Page{Title: title, ID: pageID, Revisions: revisions}}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding container: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing container: %w", err)
	}
	return f.Close()
}
