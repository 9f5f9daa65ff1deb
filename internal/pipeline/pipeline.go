// Package pipeline runs the per-article processing chain: select revision,
// tokenize, extract citations, match, write. Articles are independent; one
// article's failure never reaches another.
package pipeline

import (
	"fmt"
	"io"
	"log"
	"sync"

	"wikinames/internal/citation"
	"wikinames/internal/config"
	"wikinames/internal/dump"
	"wikinames/internal/name"
	"wikinames/internal/namelist"
	"wikinames/internal/result"
	"wikinames/internal/wikitext"
)

// defaultConcurrency bounds the article fan-out. Each article reads its own
// dump and writes its own outputs; the dump store is the only shared
// resource and is read-only.
const defaultConcurrency = 4

// Skip records one revision the batch could not process.
type Skip struct {
	Article    string `json:"article"`
	RevisionID uint64 `json:"revision_id"`
	Reason     string `json:"reason"`
}

// Summary reports what a batch run did. The batch always completes; skipped
// revisions are reported here rather than aborting anything.
type Summary struct {
	Articles int    `json:"articles"`
	Written  int    `json:"written"`
	Skipped  []Skip `json:"skipped,omitempty"`
}

// Runner executes batches of article instructions.
type Runner struct {
	// Matcher carries the full-name window policy.
	Matcher *name.Matcher
	// Concurrency bounds the number of articles processed in parallel.
	Concurrency int
	// Log receives per-revision skip diagnostics. Defaults to the standard
	// logger.
	Log *log.Logger
}

// NewRunner returns a runner with default matcher and concurrency.
func NewRunner() *Runner {
	return &Runner{
		Matcher:     name.NewMatcher(),
		Concurrency: defaultConcurrency,
		Log:         log.Default(),
	}
}

// Run processes every article, fanning out with bounded concurrency, and
// returns the batch summary.
func (r *Runner) Run(articles []config.Article) Summary {
	workers := r.Concurrency
	if workers < 1 {
		workers = 1
	}

	results := make([]articleResult, len(articles))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, a := range articles {
		wg.Add(1)
		go func(idx int, art config.Article) {
			defer wg.Done()
			sem <- struct{}{}        // acquire semaphore
			defer func() { <-sem }() // release semaphore
			results[idx] = r.processArticle(art)
		}(i, a)
	}
	wg.Wait()

	summary := Summary{Articles: len(articles)}
	for _, res := range results {
		summary.Written += res.written
		summary.Skipped = append(summary.Skipped, res.skipped...)
	}
	for _, s := range summary.Skipped {
		r.logf("skipped %s revision %d: %s", s.Article, s.RevisionID, s.Reason)
	}
	return summary
}

type articleResult struct {
	written int
	skipped []Skip
}

// processArticle runs the whole chain for one article. All state is local;
// results are returned, never accumulated in shared structures.
func (r *Runner) processArticle(a config.Article) articleResult {
	var res articleResult

	skipAll := func(reason string) articleResult {
		for _, rev := range a.Revisions {
			res.skipped = append(res.skipped, Skip{Article: a.Name, RevisionID: rev.ID, Reason: reason})
		}
		return res
	}

	var names map[string]struct{}
	if a.Pipeline == config.PipelineHybrid {
		set, err := namelist.Load(a.NameList, namelist.DefaultStoplist)
		if err != nil {
			return skipAll(fmt.Sprintf("loading name list: %v", err))
		}
		names = set
	}

	targets := make(map[uint64]string, len(a.Revisions))
	for _, rev := range a.Revisions {
		targets[rev.ID] = rev.Output
	}

	f, err := dump.Open(a.Dump)
	if err != nil {
		return skipAll(err.Error())
	}
	defer f.Close()

	// Single pass over the container: remember the pinned revisions and,
	// in history-pool mode, fold every revision's citations into the
	// candidate pool.
	pinned := make(map[uint64]string)
	empty := make(map[uint64]bool)
	var pool []name.Candidate
	history := a.Pipeline == config.PipelineParser && a.Pool == config.PoolHistory

	for {
		page, err := f.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return skipAll(fmt.Sprintf("reading dump: %v", err))
		}
		for _, rev := range page.Revisions {
			if rev.Text == "" {
				// Present but empty is a different diagnostic than absent.
				if _, ok := targets[rev.ID]; ok {
					empty[rev.ID] = true
				}
				continue
			}
			if history {
				pool = append(pool, name.FromRecords(citation.Extract(rev.Text))...)
			}
			if _, ok := targets[rev.ID]; ok {
				pinned[rev.ID] = rev.Text
			}
		}
	}
	pool = name.Dedupe(pool)

	for _, rev := range a.Revisions {
		text, ok := pinned[rev.ID]
		if !ok {
			reason := dump.ErrRevisionNotFound.Error()
			if empty[rev.ID] {
				reason = "revision has no text"
			}
			res.skipped = append(res.skipped, Skip{
				Article:    a.Name,
				RevisionID: rev.ID,
				Reason:     reason,
			})
			continue
		}

		matches := r.matchRevision(text, pool, names, a, history)
		doc := result.New(a.Name, rev.ID, a.Pipeline, matches)
		if err := result.Write(rev.Output, doc); err != nil {
			res.skipped = append(res.skipped, Skip{Article: a.Name, RevisionID: rev.ID, Reason: err.Error()})
			continue
		}
		res.written++
	}
	return res
}

// matchRevision produces the match set for one revision's raw wikitext.
func (r *Runner) matchRevision(text string, pool []name.Candidate, names map[string]struct{}, a config.Article, history bool) []name.Match {
	masked := wikitext.Mask(text, citation.IsReferenceMarkup)

	if a.Pipeline == config.PipelineHybrid {
		return name.FindKnownNames(masked, names)
	}

	cands := pool
	if !history {
		cands = name.FromRecords(citation.Extract(text))
	}
	return r.Matcher.FindAll(masked, cands)
}

func (r *Runner) logf(format string, args ...any) {
	if r.Log != nil {
		r.Log.Printf(format, args...)
	}
}
