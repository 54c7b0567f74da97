package link

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/config"
	"nathanbeddoewebdev/phonematch/internal/csvio"
	"nathanbeddoewebdev/phonematch/internal/linker"
	"nathanbeddoewebdev/phonematch/internal/logger"
	"nathanbeddoewebdev/phonematch/internal/phone"
	"nathanbeddoewebdev/phonematch/internal/tui"
	"nathanbeddoewebdev/phonematch/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DefaultOutput is the matched-rows file written when --out is not given.
const DefaultOutput = "resultat_appariement.csv"

// NewCommand returns the "link" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Identify target numbers using a source directory",
		Long: `Join a target list of phone numbers against a source directory of
name/number pairs and attach the matching name to every target row.

Every target row is kept. A target number matching several source rows
appears once per match. Numbers are compared exactly after trimming
whitespace, unless --key-mode normalizes both sides first.

Without --source and --target, and when running in a terminal, an
interactive wizard collects the inputs and the result opens in a viewer.

Examples:
  # Interactive mode
  phonematch link

  # Non-interactive
  phonematch link --source repertoire.csv --target cibles.csv

  # Custom columns, keep unmatched rows, write them separately
  phonematch link --source rep.csv --target cib.csv \
    --source-name-col nom --target-number-col tel \
    --include-unmatched --unmatched-out inconnus.csv

  # Print the matched rows as CSV for piping
  phonematch link --source rep.csv --target cib.csv -o csv`,
		Args:         cobra.NoArgs,
		RunE:         util.Guard(runLink),
		SilenceUsage: true,
	}

	cmd.Flags().String("source", "", "Source CSV with names and numbers")
	cmd.Flags().String("target", "", "Target CSV with the numbers to identify")
	cmd.Flags().String("source-name-col", "", "Name column in the source (default from config, else \"noms\")")
	cmd.Flags().String("source-number-col", "", "Number column in the source (default from config, else \"numeros\")")
	cmd.Flags().String("target-number-col", "", "Number column in the target (default from config, else \"numeros\")")
	cmd.Flags().Bool("dedup-source", false, "Drop source rows repeating an earlier number")
	cmd.Flags().Bool("dedup-target", false, "Drop target rows repeating an earlier number")
	cmd.Flags().Bool("include-unmatched", false, "Keep rows without a name in the result")
	cmd.Flags().String("key-mode", "", "Normalize both key columns before matching: "+strings.Join(phone.ModeNames(), ", "))
	cmd.Flags().String("out", DefaultOutput, "File for the matched rows")
	cmd.Flags().String("unmatched-out", "", "File for the unmatched rows (not written when empty)")
	cmd.Flags().String("delimiter", "", "CSV field separator (default from config, else \",\")")
	cmd.Flags().String("encoding", "", "Input encoding: "+strings.Join(csvio.Encodings(), ", "))
	cmd.Flags().StringP("output", "o", "table", "Output format: table, csv or json")

	return cmd
}

// linkParams is everything runLink needs after flags and config are merged.
type linkParams struct {
	sourcePath   string
	targetPath   string
	opts         linker.Options
	read         csvio.ReadOptions
	delimiter    rune
	out          string
	unmatchedOut string
	output       string
}

func runLink(cmd *cobra.Command, args []string) error {
	log := logger.FromContext(cmd.Context())

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p, err := resolveParams(cmd, cfg)
	if err != nil {
		return err
	}

	if p.sourcePath == "" || p.targetPath == "" {
		if cmd.Flags().Changed("output") || !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("--source and --target are required when not running interactively")
		}
		return runInteractive(cmd, p)
	}

	source, target, err := loadTables(cmd.Context(), p.sourcePath, p.targetPath, p.read)
	if err != nil {
		return err
	}
	log.Debugw("inputs loaded", "source_rows", source.Len(), "target_rows", target.Len())

	result, err := linker.Link(source, target, p.opts)
	if err != nil {
		return err
	}
	log.Debugw("link complete", "matched", result.Stats.Matched, "total", result.Stats.Total)

	switch p.output {
	case "csv":
		return csvio.Write(cmd.OutOrStdout(), result.Matched, p.delimiter)
	case "json":
		files, err := writeResult(result, p)
		if err != nil {
			return err
		}
		return printSummaryJSON(cmd, result, files)
	default:
		files, err := writeResult(result, p)
		if err != nil {
			return err
		}
		printSummary(cmd, result, files)
		return nil
	}
}

func runInteractive(cmd *cobra.Command, p linkParams) error {
	log := logger.FromContext(cmd.Context())

	req, err := tui.LinkForm(tui.LinkRequest{
		SourcePath: p.sourcePath,
		TargetPath: p.targetPath,
		Options:    p.opts,
	})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Link cancelled.")
			return nil
		}
		return err
	}
	p.sourcePath = req.SourcePath
	p.targetPath = req.TargetPath
	p.opts = req.Options

	var result *linker.Result
	err = tui.RunWithSpinner("Linking records...", func(ctx context.Context) error {
		source, target, err := loadTables(ctx, p.sourcePath, p.targetPath, p.read)
		if err != nil {
			return err
		}
		result, err = linker.Link(source, target, p.opts)
		return err
	})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Link cancelled.")
			return nil
		}
		return err
	}
	log.Debugw("link complete", "matched", result.Stats.Matched, "total", result.Stats.Total)

	saved, err := tui.RunResultView(result, func() (string, error) {
		files, err := writeResult(result, p)
		if err != nil {
			return "", err
		}
		return strings.Join(files.paths(), ", "), nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Stats.String())
	if !saved {
		fmt.Fprintln(cmd.ErrOrStderr(), "Result not saved.")
	}
	return nil
}

// resolveParams merges flags over config over built-in defaults.
func resolveParams(cmd *cobra.Command, cfg *config.Config) (linkParams, error) {
	var p linkParams

	p.sourcePath = strings.TrimSpace(stringFlag(cmd, "source", ""))
	p.targetPath = strings.TrimSpace(stringFlag(cmd, "target", ""))

	p.opts = linker.Options{
		SourceNameColumn:   stringFlag(cmd, "source-name-col", cfg.SourceNameColumnOrDefault()),
		SourceNumberColumn: stringFlag(cmd, "source-number-col", cfg.SourceNumberColumnOrDefault()),
		TargetNumberColumn: stringFlag(cmd, "target-number-col", cfg.TargetNumberColumnOrDefault()),
	}
	p.opts.DedupSource, _ = cmd.Flags().GetBool("dedup-source")
	p.opts.DedupTarget, _ = cmd.Flags().GetBool("dedup-target")
	p.opts.IncludeUnmatched, _ = cmd.Flags().GetBool("include-unmatched")

	if keyMode := stringFlag(cmd, "key-mode", ""); keyMode != "" {
		mode, err := phone.ParseMode(keyMode)
		if err != nil {
			return p, err
		}
		p.opts.KeyMode = mode
	}

	delim := stringFlag(cmd, "delimiter", cfg.DelimiterOrDefault())
	if err := util.ValidateDelimiter(delim); err != nil {
		return p, err
	}
	p.delimiter = util.Delimiter(delim)

	enc := stringFlag(cmd, "encoding", cfg.EncodingOrDefault())
	if _, err := csvio.LookupEncoding(enc); err != nil {
		return p, err
	}
	p.read = csvio.ReadOptions{Delimiter: p.delimiter, Encoding: enc}

	p.out = strings.TrimSpace(stringFlag(cmd, "out", DefaultOutput))
	p.unmatchedOut = strings.TrimSpace(stringFlag(cmd, "unmatched-out", ""))
	if p.out == "" {
		return p, errors.New("--out must not be empty")
	}

	p.output = stringFlag(cmd, "output", "table")
	switch p.output {
	case "table", "csv", "json":
	default:
		return p, fmt.Errorf("unknown output format %q (valid: table, csv, json)", p.output)
	}

	return p, nil
}

// stringFlag returns the flag value when it was set explicitly, else fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}
