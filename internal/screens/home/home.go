// Package home is the entry screen: the list of learning paths plus the
// learner's overall numbers.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/router"
	"github.com/HoangNamHai/pmquest/internal/screens/browse"
	"github.com/HoangNamHai/pmquest/internal/store"
	"github.com/HoangNamHai/pmquest/internal/ui/components"
	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	catalog  *content.Catalog
	attempts *store.AttemptRepo
	cfg      config.Config

	menu    components.Menu
	paths   []content.PathStatus
	totalXP int
}

var _ router.Screen = (*HomeScreen)(nil)
var _ router.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen. Progress is read at construction and again
// whenever the screen becomes active after a pop.
func New(catalog *content.Catalog, attempts *store.AttemptRepo, cfg config.Config) *HomeScreen {
	h := &HomeScreen{catalog: catalog, attempts: attempts, cfg: cfg}
	h.reload()
	return h
}

// Refresh implements router.Refresher.
func (h *HomeScreen) Refresh() { h.reload() }

func (h *HomeScreen) reload() {
	progress := content.Progress{}
	if h.attempts != nil {
		if p, err := h.attempts.LessonProgress(); err == nil {
			progress = p
		}
		if xp, err := h.attempts.TotalXP(context.Background()); err == nil {
			h.totalXP = xp
		}
	}
	h.paths = h.catalog.Paths(progress)

	items := make([]components.MenuItem, 0, len(h.paths)+1)
	for _, ps := range h.paths {
		ps := ps
		items = append(items, components.MenuItem{
			Label:  ps.Path.Title,
			Detail: fmt.Sprintf("%d/%d lessons · %d%%", ps.CompletedLessons, ps.TotalLessons, ps.Percent),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: browse.New(h.catalog, h.attempts, h.cfg, ps.Path.ID),
					}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: "Quit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})
	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("PMQuest"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Five minutes of PMP practice at a time"))
	b.WriteString("\n\n")

	xpLine := theme.XPBadge.Render(fmt.Sprintf("✦ %d XP earned", h.totalXP))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, xpLine))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
