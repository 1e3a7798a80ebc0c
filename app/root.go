// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "identity-endpoint",
	Short: "identity-endpoint exchanges Google ID tokens for session tokens",
	Long: `identity-endpoint verifies Google ID tokens, registers users with a
fixed role (student or expert) on their first login and issues refresh and
access tokens for them.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory containing main.toml")
}

var configPath string // Path to the configuration directory

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
