package components

import (
	"fmt"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

// TextArea wraps bubbles/textarea for free-text answers, with a live word
// counter against the question's bounds.
type TextArea struct {
	Model    textarea.Model
	MinWords int
	MaxWords int

	countWords func(string) int
	locked     bool
}

// NewTextArea creates a styled multi-line input sized for short written
// answers. countWords is injected so the counter agrees with the scorer.
func NewTextArea(placeholder string, minWords, maxWords int, countWords func(string) int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.Focus()

	return TextArea{
		Model:      ta,
		MinWords:   minWords,
		MaxWords:   maxWords,
		countWords: countWords,
	}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	if t.locked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// WordCount returns the word count of the current text.
func (t TextArea) WordCount() int {
	return t.countWords(t.Model.Value())
}

// InBounds reports whether the word count satisfies the question's range.
func (t TextArea) InBounds() bool {
	n := t.WordCount()
	return n >= t.MinWords && n <= t.MaxWords
}

// Lock stops the textarea from accepting further input.
func (t *TextArea) Lock() {
	t.locked = true
	t.Model.Blur()
}

// View renders the textarea with the word counter underneath.
func (t TextArea) View() string {
	counter := fmt.Sprintf("%d words (need %d-%d)", t.WordCount(), t.MinWords, t.MaxWords)
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.InBounds() {
		style = lipgloss.NewStyle().Foreground(theme.Success)
	}
	return t.Model.View() + "\n" + style.Render(counter)
}
