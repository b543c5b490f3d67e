package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

// Checklist is a multi-select picker. MaxPicks of 0 means unlimited; a
// positive cap blocks further toggles until something is untoggled, which is
// how "select exactly N" questions keep the learner honest.
type Checklist struct {
	Options  []OptionItem
	Selected int
	MaxPicks int

	picked   map[string]bool
	revealed bool
	correct  map[string]bool
}

// NewChecklist creates a checklist over the options.
func NewChecklist(options []OptionItem, maxPicks int) Checklist {
	return Checklist{
		Options:  options,
		MaxPicks: maxPicks,
		picked:   make(map[string]bool),
	}
}

// Update handles navigation and space-to-toggle.
func (c Checklist) Update(msg tea.Msg) Checklist {
	if c.revealed {
		return c
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "space", " ":
		if len(c.Options) == 0 {
			return c
		}
		id := c.Options[c.Selected].ID
		if c.picked[id] {
			delete(c.picked, id)
		} else if c.MaxPicks == 0 || len(c.picked) < c.MaxPicks {
			c.picked[id] = true
		}
	}
	return c
}

// Picked returns the toggled ids in option order.
func (c Checklist) Picked() []string {
	var ids []string
	for _, opt := range c.Options {
		if c.picked[opt.ID] {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// PickedCount returns the number of toggled options.
func (c Checklist) PickedCount() int {
	return len(c.picked)
}

// Reveal locks the checklist and marks the correct set for display.
func (c *Checklist) Reveal(correct []string) {
	c.revealed = true
	c.correct = make(map[string]bool, len(correct))
	for _, id := range correct {
		c.correct[id] = true
	}
}

// View renders the checklist.
func (c Checklist) View() string {
	var s string
	for i, opt := range c.Options {
		box := "[ ]"
		if c.picked[opt.ID] {
			box = "[x]"
		}
		line := fmt.Sprintf("  %s %s", box, opt.Text)

		if c.revealed {
			switch {
			case c.correct[opt.ID] && c.picked[opt.ID]:
				s += theme.Correct.Render("  [✓] "+opt.Text) + "\n"
			case c.correct[opt.ID]:
				s += theme.Correct.Render("  [ ] "+opt.Text) + missedTag() + "\n"
			case c.picked[opt.ID]:
				s += theme.Incorrect.Render("  [✗] "+opt.Text) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
			continue
		}

		if i == c.Selected {
			s += theme.Selected.Render("▸ "+line[2:]) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}

func missedTag() string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("  (missed)")
}
