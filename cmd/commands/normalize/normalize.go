package normalize

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/phonematch/internal/config"
	"nathanbeddoewebdev/phonematch/internal/csvio"
	"nathanbeddoewebdev/phonematch/internal/linker"
	"nathanbeddoewebdev/phonematch/internal/logger"
	"nathanbeddoewebdev/phonematch/internal/phone"
	"nathanbeddoewebdev/phonematch/internal/util"

	"github.com/spf13/cobra"
)

// outputSuffix is appended to the input base name when no --out is given.
const outputSuffix = "_normalized"

// NewCommand returns the "normalize" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [number...]",
		Short: "Normalize phone numbers to a canonical shape",
		Long: `Rewrite phone numbers into a canonical shape.

Numbers given as arguments are normalized and printed one per line.
With --input, the number column of each CSV file is rewritten and the
file is saved next to the input (or in --out-dir) with a "` + outputSuffix + `"
suffix. Every other column is left untouched.

Output numbers are wrapped as ="..." so that spreadsheets keep them as
text. Use --no-escape to print bare digits.

Run "phonematch modes" to list the normalization modes.

Examples:
  phonematch normalize --mode standardize 237612345678 '="23712345678"'
  phonematch normalize -i contacts.csv --column tel --out contacts_ok.csv
  phonematch normalize -i a.csv -i b.csv --out-dir normalized/ --check
  phonematch normalize -i contacts.csv --out - --no-escape > clean.csv`,
		RunE:         util.Guard(runNormalize),
		SilenceUsage: true,
	}

	cmd.Flags().String("mode", "", "Normalization mode: "+strings.Join(phone.ModeNames(), ", ")+" (default from config, else \"correct\")")
	cmd.Flags().String("column", linker.DefaultNumberColumn, "Number column to rewrite in input files")
	cmd.Flags().StringArrayP("input", "i", nil, "CSV file to normalize (repeatable)")
	cmd.Flags().String("out", "", "Output file for a single --input (\"-\" for stdout)")
	cmd.Flags().String("out-dir", "", "Directory for normalized files")
	cmd.Flags().Bool("no-escape", false, "Write bare digits instead of =\"...\"")
	cmd.Flags().Bool("check", false, "Report numbers that are not valid for the numbering plan")
	cmd.Flags().Int("workers", 0, "Concurrent workers per file (0 uses all CPUs)")
	cmd.Flags().String("delimiter", "", "CSV field separator (default from config, else \",\")")
	cmd.Flags().String("encoding", "", "Input encoding: "+strings.Join(csvio.Encodings(), ", "))

	return cmd
}

type normalizeParams struct {
	mode      phone.Mode
	column    string
	inputs    []string
	out       string
	outDir    string
	batch     phone.BatchOptions
	check     bool
	delimiter rune
	read      csvio.ReadOptions
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p, err := resolveParams(cmd, cfg)
	if err != nil {
		return err
	}

	if len(p.inputs) == 0 && len(args) == 0 {
		return errors.New("nothing to normalize: pass numbers as arguments or files with --input")
	}

	if len(args) > 0 {
		if err := normalizeValues(cmd, p, args); err != nil {
			return err
		}
	}

	if len(p.inputs) == 0 {
		return nil
	}

	reports := make([]fileReport, 0, len(p.inputs))
	for _, in := range p.inputs {
		r, err := normalizeFile(cmd, p, in)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}

	// Keep stdout clean when it carries CSV.
	w := cmd.OutOrStdout()
	if p.out == "-" {
		w = cmd.ErrOrStderr()
	}
	printReports(w, reports, p.check)
	return nil
}

func resolveParams(cmd *cobra.Command, cfg *config.Config) (normalizeParams, error) {
	var p normalizeParams

	modeName := cfg.ModeOrDefault()
	if cmd.Flags().Changed("mode") {
		modeName, _ = cmd.Flags().GetString("mode")
	}
	mode, err := phone.ParseMode(modeName)
	if err != nil {
		return p, err
	}
	p.mode = mode

	p.column, _ = cmd.Flags().GetString("column")
	if err := util.ValidateColumnName(p.column); err != nil {
		return p, err
	}
	p.column = strings.TrimSpace(p.column)

	p.inputs, _ = cmd.Flags().GetStringArray("input")
	p.out, _ = cmd.Flags().GetString("out")
	p.outDir, _ = cmd.Flags().GetString("out-dir")
	p.out = strings.TrimSpace(p.out)
	p.outDir = strings.TrimSpace(p.outDir)
	if p.out != "" && len(p.inputs) != 1 {
		return p, errors.New("--out requires exactly one --input; use --out-dir for several files")
	}
	if p.out != "" && p.outDir != "" {
		return p, errors.New("--out and --out-dir cannot be combined")
	}

	noEscape, _ := cmd.Flags().GetBool("no-escape")
	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 0 {
		return p, fmt.Errorf("--workers must not be negative, got %d", workers)
	}
	p.batch = phone.BatchOptions{Workers: workers, Escape: !noEscape}
	p.check, _ = cmd.Flags().GetBool("check")

	delim := cfg.DelimiterOrDefault()
	if cmd.Flags().Changed("delimiter") {
		delim, _ = cmd.Flags().GetString("delimiter")
	}
	if err := util.ValidateDelimiter(delim); err != nil {
		return p, err
	}
	p.delimiter = util.Delimiter(delim)

	enc := cfg.EncodingOrDefault()
	if cmd.Flags().Changed("encoding") {
		enc, _ = cmd.Flags().GetString("encoding")
	}
	if _, err := csvio.LookupEncoding(enc); err != nil {
		return p, err
	}
	p.read = csvio.ReadOptions{Delimiter: p.delimiter, Encoding: enc}

	return p, nil
}

// normalizeValues prints each argument normalized on its own line.
func normalizeValues(cmd *cobra.Command, p normalizeParams, values []string) error {
	out, err := phone.NormalizeAll(cmd.Context(), values, p.mode, p.batch)
	if err != nil {
		return err
	}

	if !p.check {
		for _, v := range out {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, v := range out {
		fmt.Fprintf(w, "%s\t%s\n", v, validity(v))
	}
	return w.Flush()
}

func validity(v string) string {
	if phone.Valid(v) {
		return "valid"
	}
	return "invalid"
}

// fileReport summarizes one normalized file.
type fileReport struct {
	Input   string
	Output  string
	Rows    int
	Changed int
	Invalid int
}

func normalizeFile(cmd *cobra.Command, p normalizeParams, path string) (fileReport, error) {
	log := logger.FromContext(cmd.Context())

	t, err := csvio.ReadFile(path, p.read)
	if err != nil {
		return fileReport{}, err
	}
	t.TrimColumns()
	if !t.Has(p.column) {
		return fileReport{}, fmt.Errorf("%s: %w", path, &linker.MissingColumnError{
			Role:     "input",
			Expected: p.column,
			Found:    t.Columns,
		})
	}

	before := t.ColumnValues(p.column)
	after, err := phone.NormalizeAll(cmd.Context(), before, p.mode, p.batch)
	if err != nil {
		return fileReport{}, err
	}
	t.SetColumnValues(p.column, after)

	r := fileReport{Input: path, Output: outputPath(p, path), Rows: t.Len()}
	for i := range before {
		if phone.Unescape(before[i]) != phone.Unescape(after[i]) {
			r.Changed++
		}
		if p.check && !phone.Valid(after[i]) {
			r.Invalid++
		}
	}
	log.Debugw("file normalized", "input", path, "rows", r.Rows, "changed", r.Changed, "mode", p.mode.String())

	if r.Output == "-" {
		return r, csvio.Write(cmd.OutOrStdout(), t, p.delimiter)
	}
	if err := csvio.WriteFile(r.Output, t, p.delimiter); err != nil {
		return fileReport{}, fmt.Errorf("failed to write %s: %w", r.Output, err)
	}
	return r, nil
}

// outputPath picks the destination for input: --out, else the input base
// name with outputSuffix, placed in --out-dir or next to the input.
func outputPath(p normalizeParams, input string) string {
	if p.out != "" {
		return p.out
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	if ext == "" {
		ext = ".csv"
	}
	name := base + outputSuffix + ext
	if p.outDir != "" {
		return filepath.Join(p.outDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

func printReports(out io.Writer, reports []fileReport, check bool) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	if check {
		fmt.Fprintln(w, "INPUT\tROWS\tCHANGED\tINVALID\tOUTPUT")
		fmt.Fprintln(w, "-----\t----\t-------\t-------\t------")
	} else {
		fmt.Fprintln(w, "INPUT\tROWS\tCHANGED\tOUTPUT")
		fmt.Fprintln(w, "-----\t----\t-------\t------")
	}
	for _, r := range reports {
		output := r.Output
		if output == "-" {
			output = "(stdout)"
		}
		if check {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", r.Input, r.Rows, r.Changed, r.Invalid, output)
		} else {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Input, r.Rows, r.Changed, output)
		}
	}
	w.Flush()
}
