package util

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RunFunc is the signature of a cobra RunE.
type RunFunc func(cmd *cobra.Command, args []string) error

// Guard wraps run so that a panic is returned as an "unexpected failure"
// error instead of crashing the process.
func Guard(run RunFunc) RunFunc {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("unexpected failure: %v", r)
			}
		}()
		return run(cmd, args)
	}
}
