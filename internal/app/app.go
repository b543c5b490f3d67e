// Package app holds the root Bubble Tea model: the screen stack inside the
// shared header and footer chrome.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/router"
	"github.com/HoangNamHai/pmquest/internal/screens/home"
	"github.com/HoangNamHai/pmquest/internal/screens/player"
	"github.com/HoangNamHai/pmquest/internal/store"
	"github.com/HoangNamHai/pmquest/internal/ui/layout"
)

// Options bundles the dependencies of the TUI.
type Options struct {
	Catalog  *content.Catalog
	Attempts *store.AttemptRepo
	Config   config.Config

	// LessonID, when set, starts straight into that lesson instead of the
	// home screen.
	LessonID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	attempts *store.AttemptRepo
	initCmd  tea.Cmd
	totalXP  int
	width    int
	height   int
}

// newAppModel creates a new AppModel with the home screen, optionally with
// a lesson already pushed on top.
func newAppModel(opts Options) (AppModel, error) {
	homeScreen := home.New(opts.Catalog, opts.Attempts, opts.Config)
	m := AppModel{
		router:   router.New(homeScreen),
		attempts: opts.Attempts,
	}
	if opts.LessonID != "" {
		lesson := opts.Catalog.Lesson(opts.LessonID)
		if lesson == nil {
			return m, fmt.Errorf("unknown lesson %q", opts.LessonID)
		}
		m.initCmd = m.router.Push(player.New(lesson, opts.Attempts, opts.Config))
	}
	m.refreshXP()
	return m, nil
}

// refreshXP re-reads the accumulated XP shown in the header.
func (m *AppModel) refreshXP() {
	if m.attempts == nil {
		return
	}
	if xp, err := m.attempts.TotalXP(context.Background()); err == nil {
		m.totalXP = xp
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg, router.ReplaceScreenMsg:
		// Navigation points are where the earned XP can have changed.
		cmd := m.router.Update(msg)
		m.refreshXP()
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if esc, ok := m.router.Active().(router.EscInterceptor); ok && esc.InterceptsEsc() {
				break // the screen runs its own leave flow
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.totalXP, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(router.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
