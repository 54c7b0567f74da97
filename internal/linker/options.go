package linker

import (
	"strings"

	"nathanbeddoewebdev/phonematch/internal/phone"
)

const (
	// DefaultNameColumn is the source column holding contact names.
	DefaultNameColumn = "noms"
	// DefaultNumberColumn is the join column on both sides.
	DefaultNumberColumn = "numeros"
)

// Options configures a Link call.
type Options struct {
	SourceNameColumn   string `json:"source_name_column" validate:"required,nefield=SourceNumberColumn"`
	SourceNumberColumn string `json:"source_number_column" validate:"required"`
	TargetNumberColumn string `json:"target_number_column" validate:"required"`

	// DedupSource and DedupTarget drop rows whose number repeats an earlier
	// row, before keys are trimmed.
	DedupSource bool `json:"dedup_source"`
	DedupTarget bool `json:"dedup_target"`

	// IncludeUnmatched keeps rows without a name in the matched output.
	IncludeUnmatched bool `json:"include_unmatched"`

	// KeyMode, when set, canonicalizes both key columns with phone.Canonicalize
	// before joining so that short and long shapes can meet. The zero value
	// joins on the trimmed strings as they are.
	KeyMode phone.Mode `json:"key_mode,omitempty"`
}

// DefaultOptions returns options with the conventional column names.
func DefaultOptions() Options {
	return Options{
		SourceNameColumn:   DefaultNameColumn,
		SourceNumberColumn: DefaultNumberColumn,
		TargetNumberColumn: DefaultNumberColumn,
	}
}

// trimmed returns opts with surrounding whitespace removed from the column
// names, matching how headers are looked up.
func (o Options) trimmed() Options {
	o.SourceNameColumn = strings.TrimSpace(o.SourceNameColumn)
	o.SourceNumberColumn = strings.TrimSpace(o.SourceNumberColumn)
	o.TargetNumberColumn = strings.TrimSpace(o.TargetNumberColumn)
	return o
}
