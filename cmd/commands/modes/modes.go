package modes

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/phonematch/internal/phone"

	"github.com/spf13/cobra"
)

// NewCommand returns the "modes" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List the phone number normalization modes",
		Long: `List the normalization modes accepted by --mode and --key-mode.

Numbers use the ` + phone.CountryPrefix + ` country prefix. The short shape is
` + phone.CountryPrefix + `XXXXXXXX and the long shape inserts an extra "` + phone.ExtraDigit + `"
after the prefix.`,
		Args:         cobra.NoArgs,
		RunE:         runModes,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

type modeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func runModes(cmd *cobra.Command, args []string) error {
	modes := phone.Modes()

	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "json":
		infos := make([]modeInfo, len(modes))
		for i, m := range modes {
			infos[i] = modeInfo{Name: m.String(), Description: m.Description()}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MODE\tDESCRIPTION")
		fmt.Fprintln(w, "----\t-----------")
		for _, m := range modes {
			fmt.Fprintf(w, "%s\t%s\n", m.String(), m.Description())
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json)", output)
	}
}
