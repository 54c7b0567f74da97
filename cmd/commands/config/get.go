package config

import (
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/config"
	"nathanbeddoewebdev/phonematch/internal/tui"
	"nathanbeddoewebdev/phonematch/internal/util"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"If no key is provided and running in a terminal, opens an interactive\n" +
			"config viewer where you can browse and edit all settings.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  phonematch config get                 # interactive viewer\n" +
			"  phonematch config get mode            # print a single value\n" +
			"  phonematch config get --key encoding  # same, as a flag",
		Args:         cobra.MaximumNArgs(1),
		RunE:         util.Guard(runGet),
		SilenceUsage: true,
	}

	cmd.Flags().String("key", "", "Configuration key to fetch (prints a single value)")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	keyFlag, _ := cmd.Flags().GetString("key")
	if len(args) == 1 {
		keyFlag = args[0]
	}
	keyFlag = strings.TrimSpace(keyFlag)

	// No key: open the interactive config viewer.
	if keyFlag == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if err := tui.RunConfigView(); err != nil {
				return fmt.Errorf("config view failed: %w", err)
			}
			return nil
		}

		// Non-interactive: list all values.
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		for _, spec := range config.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", spec.Name, displayValue(spec.Get(cfg)))
		}
		return nil
	}

	key := util.NormalizeKey(keyFlag)

	spec := config.Lookup(key)
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", keyFlag, strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), displayValue(spec.Get(cfg)))
	return nil
}

// displayValue makes empty and invisible values readable.
func displayValue(v string) string {
	switch v {
	case "":
		return "not set"
	case "\t":
		return `\t`
	}
	return v
}
