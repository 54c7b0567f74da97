package csvio

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("csv parse failure")

// ParseError reports input that could not be read as column-delimited text.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	src := "input"
	if e.Path != "" {
		src = e.Path
	}
	return fmt.Sprintf("unable to read CSV %s: %v; check the format (separator, encoding, etc.)", src, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) succeed.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
