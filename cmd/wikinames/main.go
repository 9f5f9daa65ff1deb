// Package main provides the wikinames CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wikinames",
	Short: "Extract scientist name mentions from Wikipedia revisions",
	Long: `wikinames extracts mentions of scientists' personal names from pinned
Wikipedia article revisions.

Pipelines:
  - parser: rule-based; candidate names come from the revision's own
    citation templates and are located as character spans in the article
    body
  - hybrid: candidate names come from an externally produced NER name
    list; the rule engine locates them

Dumps are MediaWiki XML export containers (optionally bz2), one per
article. Results are JSON files, one per (article, revision, pipeline),
with an optional SQLite index for review queries.

All commands output JSON by default for scripted use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
