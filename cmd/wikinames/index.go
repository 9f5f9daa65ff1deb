package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wikinames/internal/result"
	"wikinames/internal/storage"
)

var (
	indexDB    string
	queryName  string
	queryClass string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain and query the SQLite match index",
	Long: `The index is an ephemeral SQLite view over written result files, for
querying match records during manual review. The JSON result files stay
the source of truth; rebuild the index whenever they change.`,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild <result.json>...",
	Short: "Rebuild the index from result files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIndexRebuild,
}

var indexQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query indexed match records",
	Args:  cobra.NoArgs,
	RunE:  runIndexQuery,
}

func init() {
	indexCmd.PersistentFlags().StringVar(&indexDB, "db", "matches.db", "Path to the index database")
	indexQueryCmd.Flags().StringVar(&queryName, "name", "", "Filter by matched text substring")
	indexQueryCmd.Flags().StringVar(&queryClass, "classification", "", "Filter by classification (full or surname_only)")
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexQueryCmd)
	rootCmd.AddCommand(indexCmd)
}

// RebuildResponse reports an index rebuild.
type RebuildResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
	Matches   int    `json:"matches"`
}

func runIndexRebuild(cmd *cobra.Command, args []string) error {
	docs := make([]*result.Document, 0, len(args))
	for _, path := range args {
		doc, err := result.Read(path)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		docs = append(docs, doc)
	}

	db, err := storage.Open(indexDB)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer db.Close()

	n, err := db.Rebuild(docs)
	if err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d matches from %d result files\n", n, len(docs))
	} else {
		outputJSON(RebuildResponse{Status: "rebuilt", Documents: len(docs), Matches: n})
	}
	return nil
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(indexDB)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(queryName, queryClass)
	if err != nil {
		exitWithError(ExitError, "querying index: %v", err)
	}

	if humanOutput {
		for _, r := range rows {
			fmt.Printf("%s r%d [%d:%d] %-12s %q", r.Article, r.RevisionID, r.Start, r.End, r.Classification, r.Text)
			if r.SourceField != "" {
				fmt.Printf(" (from %s)", r.SourceField)
			}
			fmt.Println()
		}
		fmt.Printf("\n%d matches\n", len(rows))
	} else {
		outputJSON(rows)
	}
	return nil
}
