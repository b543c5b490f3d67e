package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/store"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List learning paths, courses, and lessons with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		catalog, err := loadCatalog(cmd, cfg)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		// Progress is best-effort here: a missing database just means a
		// fresh learner.
		progress := content.Progress{}
		dbPath, err := resolveDBPath(cmd, cfg.DBPath)
		if err == nil {
			if st, err := store.Open(dbPath); err == nil {
				defer st.Close()
				if p, err := st.Attempts().LessonProgress(); err == nil {
					progress = p
				}
			}
		}

		for _, ps := range catalog.Paths(progress) {
			fmt.Printf("%s — %s (%d/%d lessons, %d%%)\n",
				ps.Path.ID, ps.Path.Title, ps.CompletedLessons, ps.TotalLessons, ps.Percent)
			for _, course := range catalog.CoursesFor(ps.Path.ID) {
				fmt.Printf("  %s — %s\n", course.ID, course.Title)
				for _, ls := range catalog.LessonsFor(course.ID, progress) {
					fmt.Printf("    %-24s %-32s %s\n", ls.Lesson.ID, ls.Lesson.Title, lessonState(ls))
				}
			}
		}
		return nil
	},
}

func lessonState(ls content.LessonStatus) string {
	switch {
	case ls.Completed:
		return fmt.Sprintf("completed (%d%%)", ls.BestPercent)
	case ls.InProgress:
		return "in progress"
	case ls.Locked:
		return "locked"
	default:
		return fmt.Sprintf("%d min, %d XP", ls.Lesson.Duration, ls.Lesson.XPReward)
	}
}
