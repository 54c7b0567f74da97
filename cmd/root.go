package cmd

import (
	"context"
	"os"

	cfgcmd "nathanbeddoewebdev/phonematch/cmd/commands/config"
	"nathanbeddoewebdev/phonematch/cmd/commands/link"
	"nathanbeddoewebdev/phonematch/cmd/commands/modes"
	"nathanbeddoewebdev/phonematch/cmd/commands/normalize"
	"nathanbeddoewebdev/phonematch/internal/logger"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "phonematch",
		Short: "Match phone numbers between CSV files and normalize their format",
		Long: `phonematch identifies the owners of phone numbers by joining a target
list against a source directory of name/number pairs, and rewrites numbers
into a canonical shape so that both files agree.

Every run works on the files it is given; nothing is stored besides your
preferences.

Quick start:
  phonematch link                                 # Interactive wizard
  phonematch link --source rep.csv --target cib.csv
  phonematch normalize -i contacts.csv --mode standardize
  phonematch modes                                # List normalization modes`,
		PersistentPreRunE:  setupLogger,
		PersistentPostRunE: syncLogger,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr (overrides "+logger.EnvVar+")")

	cmd.AddCommand(link.NewCommand())
	cmd.AddCommand(normalize.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(modes.NewCommand())

	return cmd
}

// setupLogger builds the logger from --verbose or PHONEMATCH_LOG and stores it
// in the command context.
func setupLogger(cmd *cobra.Command, args []string) error {
	env := os.Getenv(logger.EnvVar)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		env = "debug"
	}

	log, err := logger.New("phonematch", env)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx, log))
	log.Debugw("command started", "command", cmd.CommandPath())
	return nil
}

func syncLogger(cmd *cobra.Command, args []string) error {
	logger.FromContext(cmd.Context()).SafeSync()
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
