// Package groundtruth reads the manually annotated per-article span files.
// The dataset is read-only reference material for manual review; nothing in
// this tool scores matches against it automatically.
package groundtruth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Annotation is one manually marked person-name span.
type Annotation struct {
	Text  string `yaml:"text"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// Dataset is the annotation file for one article.
type Dataset struct {
	Article string       `yaml:"article"`
	URL     string       `yaml:"url"` // link to the annotated revision
	Spans   []Annotation `yaml:"spans"`
}

// Load reads and validates one annotation file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, a := range ds.Spans {
		if a.Start >= a.End {
			return nil, fmt.Errorf("%s: span %d has start %d >= end %d", path, i+1, a.Start, a.End)
		}
	}
	return &ds, nil
}
