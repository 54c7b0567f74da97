package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json name so messages match flag/config wording.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct checks s against its `validate` struct tags and flattens
// any failures into a single readable error.
func ValidateStruct(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "nefield":
			msgs = append(msgs, fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ValidateColumnName checks that a column name is usable as a CSV header:
//   - Not empty after trimming
//   - No line breaks
func ValidateColumnName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("column name must not be empty")
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return fmt.Errorf("column name %q must not contain line breaks", trimmed)
	}
	return nil
}

// ValidateDelimiter checks that s is a single character usable as a CSV
// field separator.
func ValidateDelimiter(s string) error {
	if utf8.RuneCountInString(s) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("delimiter %q is not allowed", s)
	}
	return nil
}

// Delimiter returns the rune of a validated delimiter string, or ',' when s
// is empty.
func Delimiter(s string) rune {
	if s == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
