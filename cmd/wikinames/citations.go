package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"wikinames/internal/citation"
	"wikinames/internal/dump"
	"wikinames/internal/name"
)

var citationsCmd = &cobra.Command{
	Use:   "citations <dump.xml[.bz2]> <revision-id>",
	Short: "Show the citation name fields of one pinned revision",
	Long: `Extract and display the name-bearing citation fields of a single
revision, together with the candidates derived from them. Intended for
auditing what the parser pipeline would match against.`,
	Args: cobra.ExactArgs(2),
	RunE: runCitations,
}

func init() {
	rootCmd.AddCommand(citationsCmd)
}

// CitationField is one extracted field in the citations listing.
type CitationField struct {
	Template string `json:"template"`
	Field    string `json:"field"`
	Raw      string `json:"raw"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// CitationsResponse lists a revision's citation fields and the candidates
// they produce.
type CitationsResponse struct {
	RevisionID uint64           `json:"revision_id"`
	Fields     []CitationField  `json:"fields"`
	Candidates []name.Candidate `json:"candidates"`
}

func runCitations(cmd *cobra.Command, args []string) error {
	revID, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid revision id %q", args[1])
	}

	_, rev, err := dump.FindRevision(args[0], revID)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	recs := citation.Extract(rev.Text)
	resp := CitationsResponse{
		RevisionID: revID,
		Fields:     make([]CitationField, 0, len(recs)),
		Candidates: name.FromRecords(recs),
	}
	for _, r := range recs {
		resp.Fields = append(resp.Fields, CitationField{
			Template: r.Template,
			Field:    r.SourceField(),
			Raw:      r.Raw,
			Start:    r.FieldSpan.Start,
			End:      r.FieldSpan.End,
		})
	}

	if humanOutput {
		fmt.Printf("Revision %d: %d citation fields, %d candidates\n\n", revID, len(resp.Fields), len(resp.Candidates))
		for _, f := range resp.Fields {
			fmt.Printf("  {{%s}} %s = %q [%d:%d]\n", f.Template, f.Field, f.Raw, f.Start, f.End)
		}
		fmt.Println()
		for _, c := range resp.Candidates {
			fmt.Printf("  %-30s (last=%q first=%q from %s)\n", c.Full, c.Last, c.First, c.SourceField)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
