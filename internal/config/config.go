// Package config loads and validates the batch instructions file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pipeline names accepted in the instructions file. The spacy pipeline runs
// outside this tool; hybrid consumes its exported name list.
const (
	PipelineParser = "parser"
	PipelineHybrid = "hybrid"
)

// Candidate pool modes for the parser pipeline.
const (
	// PoolRevision derives candidates from the processed revision's own
	// citations.
	PoolRevision = "revision"
	// PoolHistory derives candidates from the citations of every revision
	// in the article's dump.
	PoolHistory = "history"
)

// Instructions maps articles to the revisions to process and where each
// result goes.
type Instructions struct {
	Articles []Article `yaml:"articles"`
}

// Article is one dump container and its pinned target revisions.
type Article struct {
	Name      string           `yaml:"article"`
	Dump      string           `yaml:"dump"`
	Pipeline  string           `yaml:"pipeline,omitempty"`  // parser (default) or hybrid
	Pool      string           `yaml:"pool,omitempty"`      // revision (default) or history
	NameList  string           `yaml:"name_list,omitempty"` // required for hybrid
	Revisions []RevisionTarget `yaml:"revisions"`
}

// RevisionTarget pins one revision id to one output file.
type RevisionTarget struct {
	ID     uint64 `yaml:"id"`
	Output string `yaml:"output"`
}

// Load reads and validates an instructions file. Defaults are filled in
// (pipeline parser, pool revision); anything structurally wrong is an
// error before any article is touched.
func Load(path string) (*Instructions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var ins Instructions
	if err := yaml.Unmarshal(data, &ins); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(ins.Articles) == 0 {
		return nil, fmt.Errorf("%s must define at least one article", path)
	}

	for i := range ins.Articles {
		a := &ins.Articles[i]
		if a.Name == "" {
			return nil, fmt.Errorf("article entry %d must have 'article'", i+1)
		}
		if a.Dump == "" {
			return nil, fmt.Errorf("article %q must have 'dump'", a.Name)
		}
		if a.Pipeline == "" {
			a.Pipeline = PipelineParser
		}
		if a.Pipeline != PipelineParser && a.Pipeline != PipelineHybrid {
			return nil, fmt.Errorf("article %q: unknown pipeline %q", a.Name, a.Pipeline)
		}
		if a.Pool == "" {
			a.Pool = PoolRevision
		}
		if a.Pool != PoolRevision && a.Pool != PoolHistory {
			return nil, fmt.Errorf("article %q: unknown pool %q", a.Name, a.Pool)
		}
		if a.Pipeline == PipelineHybrid && a.Pool == PoolHistory {
			return nil, fmt.Errorf("article %q: pool %q applies only to the parser pipeline", a.Name, PoolHistory)
		}
		if a.Pipeline == PipelineHybrid && a.NameList == "" {
			return nil, fmt.Errorf("article %q: hybrid pipeline requires 'name_list'", a.Name)
		}
		if len(a.Revisions) == 0 {
			return nil, fmt.Errorf("article %q must pin at least one revision", a.Name)
		}
		for j, rev := range a.Revisions {
			if rev.ID == 0 {
				return nil, fmt.Errorf("article %q revision %d must have 'id'", a.Name, j+1)
			}
			if rev.Output == "" {
				return nil, fmt.Errorf("article %q revision %d must have 'output'", a.Name, rev.ID)
			}
		}
	}

	return &ins, nil
}
