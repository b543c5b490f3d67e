// Package browse lists the lessons of one learning path, grouped by course,
// with lock and completion state.
package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/router"
	"github.com/HoangNamHai/pmquest/internal/screens/player"
	"github.com/HoangNamHai/pmquest/internal/store"
	"github.com/HoangNamHai/pmquest/internal/ui/components"
	"github.com/HoangNamHai/pmquest/internal/ui/layout"
	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

// BrowseScreen shows a path's courses and lessons.
type BrowseScreen struct {
	catalog  *content.Catalog
	attempts *store.AttemptRepo
	cfg      config.Config
	pathID   string

	title string
	menu  components.Menu
}

var _ router.Screen = (*BrowseScreen)(nil)
var _ router.Refresher = (*BrowseScreen)(nil)
var _ router.KeyHintProvider = (*BrowseScreen)(nil)

// New creates a browse screen for the given path.
func New(catalog *content.Catalog, attempts *store.AttemptRepo, cfg config.Config, pathID string) *BrowseScreen {
	b := &BrowseScreen{
		catalog:  catalog,
		attempts: attempts,
		cfg:      cfg,
		pathID:   pathID,
	}
	b.reload()
	return b
}

// Refresh implements router.Refresher: lesson state changes after an attempt.
func (b *BrowseScreen) Refresh() { b.reload() }

func (b *BrowseScreen) reload() {
	progress := content.Progress{}
	if b.attempts != nil {
		if p, err := b.attempts.LessonProgress(); err == nil {
			progress = p
		}
	}

	var items []components.MenuItem
	for _, course := range b.catalog.CoursesFor(b.pathID) {
		lessons := b.catalog.LessonsFor(course.ID, progress)
		if len(lessons) == 0 {
			continue
		}
		// Course header as a disabled separator row.
		items = append(items, components.MenuItem{
			Label:    strings.ToUpper(course.Title),
			Disabled: true,
		})
		for _, ls := range lessons {
			ls := ls
			items = append(items, components.MenuItem{
				Label:    "  " + ls.Lesson.Title,
				Detail:   lessonDetail(ls),
				Disabled: ls.Locked,
				Action: func() tea.Cmd {
					return func() tea.Msg {
						return router.PushScreenMsg{
							Screen: player.New(ls.Lesson, b.attempts, b.cfg),
						}
					}
				},
			})
		}
	}
	b.menu = components.NewMenu(items)

	b.title = b.pathID
	for _, ps := range b.catalog.Paths(progress) {
		if ps.Path.ID == b.pathID {
			b.title = ps.Path.Title
		}
	}
}

func lessonDetail(ls content.LessonStatus) string {
	switch {
	case ls.Locked:
		return "locked"
	case ls.Completed:
		return fmt.Sprintf("✓ %d%%", ls.BestPercent)
	case ls.InProgress:
		return "in progress"
	default:
		return fmt.Sprintf("%d min · %d XP", ls.Lesson.Duration, ls.Lesson.XPReward)
	}
}

func (b *BrowseScreen) Init() tea.Cmd {
	return nil
}

func (b *BrowseScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmd tea.Cmd
	b.menu, cmd = b.menu.Update(msg)
	return b, cmd
}

func (b *BrowseScreen) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Width(width).Render(b.title))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Left, b.menu.View()))
	return sb.String()
}

func (b *BrowseScreen) Title() string {
	return b.title
}

func (b *BrowseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start lesson"},
		{Key: "Esc", Description: "Back"},
	}
}
