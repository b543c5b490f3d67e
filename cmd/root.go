package cmd

import (
	"github.com/spf13/cobra"

	"github.com/HoangNamHai/pmquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pmquest",
	Short: "Quiz-driven PMP exam prep in the terminal",
	Long:  "PMQuest — bite-sized, scenario-driven lessons for PMP exam preparation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PMQUEST_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Directory with paths.json and lessons/ (overrides the built-in content)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then PMQUEST_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
