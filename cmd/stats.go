package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-lesson attempt statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		catalog, err := loadCatalog(cmd, cfg)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		dbPath, err := resolveDBPath(cmd, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		repo := st.Attempts()

		xp, err := repo.TotalXP(ctx)
		if err != nil {
			return fmt.Errorf("total xp: %w", err)
		}
		fmt.Printf("Total XP: %d\n\n", xp)

		fmt.Printf("%-24s %-8s %-10s %-6s %s\n", "LESSON", "TRIES", "FINISHED", "BEST", "LAST ATTEMPT")
		for _, id := range catalog.LessonIDs() {
			stats, err := repo.Stats(ctx, id)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", id, err)
			}
			if stats.Attempts == 0 {
				continue
			}
			last := "-"
			if !stats.LastAttempt.IsZero() {
				last = stats.LastAttempt.Format("2006-01-02 15:04")
			}
			fmt.Printf("%-24s %-8d %-10d %-6s %s\n",
				id, stats.Attempts, stats.Completed, fmt.Sprintf("%d%%", stats.BestPercent), last)
		}
		return nil
	},
}
