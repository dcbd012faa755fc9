package cmd

import (
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "reportdesk",
	Short:         "Report and task management backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing config.yaml (default: working directory)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(tasksCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
