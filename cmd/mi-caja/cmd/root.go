// Package cmd implements the CLI commands for the mi-caja server.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mi-caja",
	Short: "Stock-alert engine for Mi Caja",
	Long: "Watches each user's inventory, raises a critical-stock popup with a sound cue\n" +
		"when items run low, and lets users snooze or dismiss it per browser tab.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env is fine; real deployments set the environment directly.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(tokenCommand())
	rootCmd.AddCommand(versionCommand())
}

// Root returns the root command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
