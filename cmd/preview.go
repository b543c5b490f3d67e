package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/score"
)

var previewCmd = &cobra.Command{
	Use:   "preview <lesson.json>",
	Short: "Validate a lesson file and print its structure (no database)",
	Long: `Validate a lesson JSON file against the schema and print its screens,
questions, and point totals.

This is a stateless authoring tool — no database and no progress tracking.
Useful for checking new lesson content before shipping it.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := content.ValidateLesson(data); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	lesson, err := content.ParseLesson(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	fmt.Printf("%s — %s\n", lesson.ID, lesson.Title)
	fmt.Printf("path %s, course %s, %d min, %d XP, pass at %d%%\n\n",
		lesson.PathID, lesson.CourseID, lesson.Duration, lesson.XPReward, lesson.MasteryThreshold)

	points := 0
	for i, screen := range lesson.Screens {
		fmt.Printf("screen %d: %-10s %s\n", i+1, screen.Type, screen.Title)
		for _, sc := range screen.Scenarios {
			fmt.Printf("  scenario %s: %s\n", sc.ID, sc.Title)
			for _, q := range sc.Questions {
				base := q.Base()
				fmt.Printf("    %-24s %-20s %3d pts\n", base.ID, q.Type(), maxPoints(q))
				points += maxPoints(q)
			}
		}
	}

	fmt.Printf("\nquestion points: %d, declared totalPoints: %d\n", points, lesson.TotalPoints)
	if points != lesson.TotalPoints {
		return fmt.Errorf("totalPoints mismatch: questions add up to %d, lesson declares %d",
			points, lesson.TotalPoints)
	}
	fmt.Println("OK")
	return nil
}

// maxPoints is the highest score a question can award. Dialogue questions
// earn per-turn option points rather than the flat point value.
func maxPoints(q content.Question) int {
	if d, ok := q.(*content.DialogueSimulator); ok {
		return score.DialogueMaxPoints(d)
	}
	return q.Base().Points
}
