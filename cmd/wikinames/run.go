package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wikinames/internal/config"
	"wikinames/internal/pipeline"
)

var (
	runWindow      int
	runConcurrency int
)

var runCmd = &cobra.Command{
	Use:   "run <instructions.yml>",
	Short: "Process dump revisions per an instructions file",
	Long: `Run the extraction batch described by an instructions file.

Each article entry names its dump container, pipeline, and the pinned
revisions to process; every pinned revision produces one JSON result file.
Articles are processed independently: a missing revision or unreadable
dump skips that entry with a diagnostic, and the batch always completes.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runWindow, "window", -1, "Max intervening tokens in a full-name match (default: matcher default)")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "Articles processed in parallel (default 4)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ins, err := config.Load(args[0])
	if err != nil {
		exitWithError(ExitConfigError, "loading instructions: %v", err)
	}

	runner := pipeline.NewRunner()
	if runWindow >= 0 {
		runner.Matcher.Window = runWindow
	}
	if runConcurrency > 0 {
		runner.Concurrency = runConcurrency
	}

	summary := runner.Run(ins.Articles)

	if humanOutput {
		fmt.Printf("Articles:  %d\n", summary.Articles)
		fmt.Printf("Written:   %d\n", summary.Written)
		fmt.Printf("Skipped:   %d\n", len(summary.Skipped))
		for _, s := range summary.Skipped {
			fmt.Printf("  %s revision %d: %s\n", s.Article, s.RevisionID, s.Reason)
		}
	} else {
		outputJSON(summary)
	}
	return nil
}
