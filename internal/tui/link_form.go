package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/linker"
	"nathanbeddoewebdev/phonematch/internal/phone"
	"nathanbeddoewebdev/phonematch/internal/util"

	"github.com/charmbracelet/huh"
)

// LinkRequest is everything the link wizard collects.
type LinkRequest struct {
	SourcePath string
	TargetPath string
	Options    linker.Options
}

// keyModeExact is the select value meaning "join on the trimmed strings".
const keyModeExact = ""

// LinkForm walks the user through choosing the two files, the join columns
// and the link options. Fields already set in prefill are used as defaults.
func LinkForm(prefill LinkRequest) (*LinkRequest, error) {
	accessible := accessibleMode()

	req := prefill
	keyMode := keyModeExact
	if req.Options.KeyMode != 0 {
		keyMode = req.Options.KeyMode.String()
	}

	// --- Form 1: files ---

	sourceField := huh.NewInput().
		Title("Source file").
		Description("CSV with names and numbers").
		Value(&req.SourcePath).
		Validate(validateFilePath)

	targetField := huh.NewInput().
		Title("Target file").
		Description("CSV with the numbers to identify").
		Value(&req.TargetPath).
		Validate(validateFilePath)

	if err := runForm(accessible,
		huh.NewGroup(sourceField, targetField),
	); err != nil {
		return nil, err
	}

	// --- Form 2: columns, options, confirm ---

	nameColField := huh.NewInput().
		Title("Source name column").
		Value(&req.Options.SourceNameColumn).
		Validate(util.ValidateColumnName)

	sourceNumField := huh.NewInput().
		Title("Source number column").
		Value(&req.Options.SourceNumberColumn).
		Validate(util.ValidateColumnName)

	targetNumField := huh.NewInput().
		Title("Target number column").
		Value(&req.Options.TargetNumberColumn).
		Validate(util.ValidateColumnName)

	dedupSourceField := huh.NewConfirm().
		Title("Remove duplicate numbers from the source?").
		Value(&req.Options.DedupSource)

	dedupTargetField := huh.NewConfirm().
		Title("Remove duplicate numbers from the target?").
		Value(&req.Options.DedupTarget)

	includeField := huh.NewConfirm().
		Title("Keep unmatched rows in the result?").
		Value(&req.Options.IncludeUnmatched)

	modeOpts := buildKeyModeOptions(keyMode)
	keyModeField := huh.NewSelect[string]().
		Title("Normalize numbers before matching").
		Options(modeOpts...).
		Value(&keyMode).
		Height(selectHeight(len(modeOpts), 6))

	confirm := true
	summaryNote := huh.NewNote().
		Title("Summary").
		DescriptionFunc(func() string {
			return buildLinkSummary(req, keyMode)
		}, &req)

	confirmField := huh.NewConfirm().
		Title("Link these files?").
		Value(&confirm)

	if err := runForm(accessible,
		huh.NewGroup(nameColField, sourceNumField, targetNumField),
		huh.NewGroup(dedupSourceField, dedupTargetField, includeField, keyModeField),
		huh.NewGroup(summaryNote, confirmField),
	); err != nil {
		return nil, err
	}

	if !confirm {
		return nil, ErrAborted
	}

	return finalizeLinkRequest(req, keyMode)
}

// finalizeLinkRequest trims the collected values and resolves the key mode.
func finalizeLinkRequest(req LinkRequest, keyMode string) (*LinkRequest, error) {
	req.SourcePath = strings.TrimSpace(req.SourcePath)
	req.TargetPath = strings.TrimSpace(req.TargetPath)
	req.Options.SourceNameColumn = strings.TrimSpace(req.Options.SourceNameColumn)
	req.Options.SourceNumberColumn = strings.TrimSpace(req.Options.SourceNumberColumn)
	req.Options.TargetNumberColumn = strings.TrimSpace(req.Options.TargetNumberColumn)

	req.Options.KeyMode = 0
	if keyMode != keyModeExact {
		mode, err := phone.ParseMode(keyMode)
		if err != nil {
			return nil, err
		}
		req.Options.KeyMode = mode
	}
	return &req, nil
}

// buildKeyModeOptions lists "exact match" followed by every normalization mode.
func buildKeyModeOptions(current string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(phone.Modes())+1)
	options = append(options, huh.NewOption("Exact match (no normalization)", keyModeExact).
		Selected(current == keyModeExact))
	for _, m := range phone.Modes() {
		label := fmt.Sprintf("%s - %s", m.String(), m.Description())
		options = append(options, huh.NewOption(label, m.String()).Selected(current == m.String()))
	}
	return options
}

func buildLinkSummary(req LinkRequest, keyMode string) string {
	mode := keyMode
	if mode == keyModeExact {
		mode = "exact"
	}
	lines := []string{
		fmt.Sprintf("Source: %s (%s, %s)", strings.TrimSpace(req.SourcePath),
			strings.TrimSpace(req.Options.SourceNameColumn), strings.TrimSpace(req.Options.SourceNumberColumn)),
		fmt.Sprintf("Target: %s (%s)", strings.TrimSpace(req.TargetPath),
			strings.TrimSpace(req.Options.TargetNumberColumn)),
		fmt.Sprintf("Dedup source: %s", yesNo(req.Options.DedupSource)),
		fmt.Sprintf("Dedup target: %s", yesNo(req.Options.DedupTarget)),
		fmt.Sprintf("Keep unmatched: %s", yesNo(req.Options.IncludeUnmatched)),
		fmt.Sprintf("Key normalization: %s", mode),
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// validateFilePath accepts an existing regular file.
func validateFilePath(value string) error {
	path := strings.TrimSpace(value)
	if path == "" {
		return errors.New("file path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s does not exist", path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
