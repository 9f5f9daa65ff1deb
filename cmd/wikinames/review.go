package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wikinames/internal/groundtruth"
	"wikinames/internal/result"
)

var reviewCmd = &cobra.Command{
	Use:   "review <result.json> <groundtruth.yml>",
	Short: "Show match records beside ground-truth annotations",
	Long: `Display one revision's match records next to the manually annotated
spans for the same article, ordered by offset.

This is a reading aid for the manual evaluation step. Whether a
surname-only match counts against an annotation is a judgement call the
reviewer makes; no score is computed here.`,
	Args: cobra.ExactArgs(2),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

// ReviewResponse pairs one result document with its annotation set.
type ReviewResponse struct {
	Result      *result.Document     `json:"result"`
	GroundTruth *groundtruth.Dataset `json:"ground_truth"`
}

func runReview(cmd *cobra.Command, args []string) error {
	doc, err := result.Read(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	ds, err := groundtruth.Load(args[1])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if !humanOutput {
		outputJSON(ReviewResponse{Result: doc, GroundTruth: ds})
		return nil
	}

	fmt.Printf("%s revision %d (%s pipeline) vs %s\n", doc.Article, doc.RevisionID, doc.Pipeline, ds.URL)
	fmt.Printf("\nMatches (%d):\n", len(doc.Matches))
	for _, m := range doc.Matches {
		fmt.Printf("  [%6d:%6d] %-12s %q", m.Start, m.End, m.Classification, m.Text)
		if m.SourceField != "" {
			fmt.Printf(" (from %s)", m.SourceField)
		}
		fmt.Println()
	}
	fmt.Printf("\nAnnotated spans (%d):\n", len(ds.Spans))
	for _, a := range ds.Spans {
		fmt.Printf("  [%6d:%6d] %q\n", a.Start, a.End, a.Text)
	}
	return nil
}
