package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/config"
	"nathanbeddoewebdev/phonematch/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. An empty value resets the key\n" +
			"to its built-in default.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  phonematch config set mode standardize\n" +
			"  phonematch config set source-name-column nom\n" +
			"  phonematch config set delimiter ';'",
		Args:         cobra.ExactArgs(2),
		RunE:         util.Guard(runSet),
		SilenceUsage: true,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := ""
	if args[1] != "" {
		value = spec.Normalize(args[1])
	}
	if value != "" && spec.Validate != nil {
		if err := spec.Validate(value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", spec.Name, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s reset to default\n", spec.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
	return nil
}
