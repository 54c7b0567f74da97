package linker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is matched by every *MissingColumnError.
var ErrMissingColumn = errors.New("missing column")

// Role names which input a column was expected in.
type Role string

const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// MissingColumnError reports a required column absent from an input after
// header whitespace was trimmed.
type MissingColumnError struct {
	Role     Role
	Expected string
	Found    []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s file; columns found: [%s]",
		e.Expected, e.Role, strings.Join(e.Found, ", "))
}

// Is makes errors.Is(err, ErrMissingColumn) succeed.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
