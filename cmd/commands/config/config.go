package config

import (
	"nathanbeddoewebdev/phonematch/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage phonematch preferences",
		Long: "View and modify persistent phonematch preferences.\n\n" +
			"Preferences are stored at ~/.config/phonematch/config.json and provide\n" +
			"defaults for command flags. Flags always take precedence.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
