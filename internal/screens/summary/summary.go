// Package summary shows the outcome of a finished lesson attempt.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/content"
	engine "github.com/HoangNamHai/pmquest/internal/player"
	"github.com/HoangNamHai/pmquest/internal/router"
	"github.com/HoangNamHai/pmquest/internal/ui/components"
	"github.com/HoangNamHai/pmquest/internal/ui/layout"
	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

// SummaryScreen displays the result of one lesson attempt.
type SummaryScreen struct {
	lesson   *content.Lesson
	sum      engine.Summary
	duration time.Duration
	menu     components.Menu
}

var _ router.Screen = (*SummaryScreen)(nil)
var _ router.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. retry builds a fresh attempt at the same
// lesson; it exists as a closure so this package does not depend on the
// lesson runner.
func New(lesson *content.Lesson, sum engine.Summary, duration time.Duration, retry func() router.Screen) *SummaryScreen {
	s := &SummaryScreen{
		lesson:   lesson,
		sum:      sum,
		duration: duration,
	}

	items := []components.MenuItem{
		{
			Label: "Try again",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: retry()}
				}
			},
		},
		{
			Label: "Back to lessons",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PopScreenMsg{}
				}
			},
		},
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	if s.sum.Passed {
		center(theme.Correct.Render("Lesson complete!"))
	} else {
		center(theme.Incorrect.Render("Not quite there yet"))
	}
	center(theme.Subtitle.Render(s.lesson.Title))
	b.WriteString("\n")

	bar := components.NewProgressBar(
		fmt.Sprintf("Score: %d%%", s.sum.ScorePercent),
		float64(s.sum.ScorePercent)/100,
		false,
		40,
	)
	center(bar.View())
	center(theme.Hint.Render(fmt.Sprintf("passing score %d%%", s.lesson.MasteryThreshold)))
	b.WriteString("\n")

	center(theme.Body.Render(fmt.Sprintf(
		"%s correct   %s incorrect   %d/%d points",
		theme.Correct.Render(fmt.Sprintf("✓ %d", s.sum.CorrectAnswers)),
		theme.Incorrect.Render(fmt.Sprintf("✗ %d", s.sum.IncorrectAnswers)),
		s.sum.TotalScore, s.sum.MaxScore,
	)))

	if s.sum.XPEarned > 0 {
		center(theme.XPBadge.Render(fmt.Sprintf("+%d XP", s.sum.XPEarned)))
	}
	center(theme.Hint.Render("finished in " + formatDuration(s.duration)))
	b.WriteString("\n")

	center(s.menu.View())

	return b.String()
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// formatDuration renders m:ss, rounding to whole seconds.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
