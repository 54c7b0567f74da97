package link

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/phonematch/internal/linker"

	"github.com/spf13/cobra"
)

// linkSummary is the JSON shape printed by -o json.
type linkSummary struct {
	Matched   int          `json:"matched"`
	Total     int          `json:"total"`
	Rate      float64      `json:"rate"`
	Unmatched int          `json:"unmatched"`
	Files     writtenFiles `json:"files"`
}

// printSummary prints the statistics line followed by a short table of
// the written files.
func printSummary(cmd *cobra.Command, result *linker.Result, files writtenFiles) {
	fmt.Fprintln(cmd.OutOrStdout(), result.Stats.String())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Matched rows:\t%d\t%s\n", result.Matched.Len(), files.Matched)
	if files.Unmatched != "" {
		fmt.Fprintf(w, "  Unmatched rows:\t%d\t%s\n", result.Unmatched.Len(), files.Unmatched)
	} else {
		fmt.Fprintf(w, "  Unmatched rows:\t%d\t\n", result.Unmatched.Len())
	}
	w.Flush()
}

// printSummaryJSON encodes the statistics as indented JSON to stdout.
func printSummaryJSON(cmd *cobra.Command, result *linker.Result, files writtenFiles) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(linkSummary{
		Matched:   result.Stats.Matched,
		Total:     result.Stats.Total,
		Rate:      result.Stats.Rate(),
		Unmatched: result.Unmatched.Len(),
		Files:     files,
	})
}
