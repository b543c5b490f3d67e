package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

// OptionItem is one selectable entry in an option list.
type OptionItem struct {
	ID   string
	Text string
}

// OptionList is a single-select option picker. After Reveal it repaints the
// options to show the correct answer versus the learner's choice and stops
// accepting input.
type OptionList struct {
	Options  []OptionItem
	Selected int

	revealed  bool
	chosenID  string
	correctID string
}

// NewOptionList creates an option list with the cursor on the first option.
func NewOptionList(options []OptionItem) OptionList {
	return OptionList{Options: options}
}

// Update handles keyboard navigation. Enter returns the chosen id through
// Chosen; the caller decides what submission means.
func (l OptionList) Update(msg tea.Msg) OptionList {
	if l.revealed {
		return l
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l
	}
	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Options)-1 {
			l.Selected++
		}
	}
	return l
}

// Chosen returns the id under the cursor.
func (l OptionList) Chosen() string {
	if l.Selected < 0 || l.Selected >= len(l.Options) {
		return ""
	}
	return l.Options[l.Selected].ID
}

// Reveal locks the list and marks the chosen and correct options for display.
func (l *OptionList) Reveal(chosenID, correctID string) {
	l.revealed = true
	l.chosenID = chosenID
	l.correctID = correctID
}

// View renders the option list.
func (l OptionList) View() string {
	var s string
	for i, opt := range l.Options {
		label := optionLabel(i)
		line := fmt.Sprintf("  %s)  %s", label, opt.Text)

		if l.revealed {
			switch {
			case opt.ID == l.correctID:
				s += theme.Correct.Render("✓ "+line[2:]) + "\n"
			case opt.ID == l.chosenID:
				s += theme.Incorrect.Render("✗ "+line[2:]) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
			continue
		}

		if i == l.Selected {
			s += theme.Selected.Render("▸ "+line[2:]) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}

// optionLabel returns A, B, C... for an option index.
func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}
