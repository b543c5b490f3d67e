package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

// Ranker is a reorderable list: the learner moves items up and down until
// the order matches their answer. Shift+arrows (or J/K) grab the item under
// the cursor.
type Ranker struct {
	Items    []OptionItem
	Selected int

	revealed bool
	ideal    map[string]int // id -> 1-based ideal position
}

// NewRanker creates a ranker over the items in their presented order.
func NewRanker(items []OptionItem) Ranker {
	return Ranker{Items: items}
}

// Update handles cursor moves and item swaps.
func (r Ranker) Update(msg tea.Msg) Ranker {
	if r.revealed {
		return r
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r
	}
	switch kmsg.String() {
	case "up", "k":
		if r.Selected > 0 {
			r.Selected--
		}
	case "down", "j":
		if r.Selected < len(r.Items)-1 {
			r.Selected++
		}
	case "shift+up", "K":
		if r.Selected > 0 {
			r.Items[r.Selected-1], r.Items[r.Selected] = r.Items[r.Selected], r.Items[r.Selected-1]
			r.Selected--
		}
	case "shift+down", "J":
		if r.Selected < len(r.Items)-1 {
			r.Items[r.Selected+1], r.Items[r.Selected] = r.Items[r.Selected], r.Items[r.Selected+1]
			r.Selected++
		}
	}
	return r
}

// Order returns the item ids top to bottom.
func (r Ranker) Order() []string {
	ids := make([]string, len(r.Items))
	for i, it := range r.Items {
		ids[i] = it.ID
	}
	return ids
}

// Reveal locks the ranker and marks each slot right or wrong against the
// ideal positions.
func (r *Ranker) Reveal(ideal map[string]int) {
	r.revealed = true
	r.ideal = ideal
}

// View renders the ranker.
func (r Ranker) View() string {
	var s string
	for i, it := range r.Items {
		line := fmt.Sprintf("  %d.  %s", i+1, it.Text)

		if r.revealed {
			if r.ideal[it.ID] == i+1 {
				s += theme.Correct.Render("✓ "+line[2:]) + "\n"
			} else {
				wrong := fmt.Sprintf("✗ %d.  %s", i+1, it.Text)
				hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render(fmt.Sprintf("  (should be %d)", r.ideal[it.ID]))
				s += theme.Incorrect.Render(wrong) + hint + "\n"
			}
			continue
		}

		if i == r.Selected {
			s += theme.Selected.Render("▸ "+line[2:]) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
