package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels the interactive flow.
var ErrAborted = errors.New("aborted by user")

// accessibleMode reports whether huh forms should run in accessible mode.
func accessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// RunWithSpinner shows a spinner on stderr while action runs. Ctrl+C cancels
// the context passed to action and is reported as ErrAborted.
func RunWithSpinner(title string, action func(ctx context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(accessibleMode()).
		Output(os.Stderr).
		ActionWithErr(action).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
