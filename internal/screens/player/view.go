package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/ui/components"
	"github.com/HoangNamHai/pmquest/internal/ui/layout"
	"github.com/HoangNamHai/pmquest/internal/ui/theme"
)

const contentWidth = 72

// blankToken marks a gap in a sentence_builder sentence, in authoring order.
const blankToken = "[________]"

var dimStyle = lipgloss.NewStyle().Foreground(theme.TextDim)

func (p *PlayerScreen) View(width, height int) string {
	if p.confirmQuit {
		return p.renderQuitConfirm(width)
	}

	screen, err := p.seq.CurrentScreen()
	if err != nil {
		return theme.Hint.Render("This lesson has no screens.")
	}

	var b strings.Builder
	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	center(components.StepDots(p.seq.ScreenIndex(), p.seq.ScreenCount()))
	center(theme.Title.Render(screen.Title))
	b.WriteString("\n")

	var body string
	switch {
	case p.showingFeedback:
		body = p.renderFeedback()
	case !screen.Interactive():
		body = p.renderInfo(screen)
	case p.seq.ScreenComplete():
		body = p.renderScreenReview(screen)
	default:
		body = p.renderQuestion()
	}
	center(body)

	if p.errMsg != "" {
		b.WriteString("\n")
		center(theme.Incorrect.Render(p.errMsg))
	}
	return b.String()
}

// renderInfo shows a non-interactive screen: body paragraphs plus takeaways.
func (p *PlayerScreen) renderInfo(screen *content.Screen) string {
	var b strings.Builder
	for i, para := range screen.Body {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Body.Render(strings.Join(layout.Wrap(para, contentWidth), "\n")))
	}
	if len(screen.Takeaways) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Selected.Render("Key takeaways"))
		for _, t := range screen.Takeaways {
			b.WriteString("\n")
			b.WriteString(theme.Body.Render("  • " + strings.Join(layout.Wrap(t, contentWidth-4), "\n    ")))
		}
	}
	return b.String()
}

// renderQuestion shows the active question with its scenario context and the
// type-specific input.
func (p *PlayerScreen) renderQuestion() string {
	fq := p.seq.CurrentQuestion()
	if fq == nil || p.inter == nil {
		return ""
	}
	q := fq.Question
	base := q.Base()

	var b strings.Builder

	if fq.Scenario != nil && (fq.Scenario.Title != "" || len(fq.Scenario.Description) > 0) {
		var sc strings.Builder
		if fq.Scenario.Title != "" {
			sc.WriteString(theme.Selected.Render(fq.Scenario.Title))
		}
		for _, d := range fq.Scenario.Description {
			if sc.Len() > 0 {
				sc.WriteString("\n")
			}
			sc.WriteString(dimStyle.Render(strings.Join(layout.Wrap(d, contentWidth-4), "\n")))
		}
		b.WriteString(theme.ScenarioCard.Render(sc.String()))
		b.WriteString("\n\n")
	}

	counter := fmt.Sprintf("Question %d of %d · %d pts", p.seq.QuestionIndex()+1, p.seq.QuestionCount(), base.Points)
	b.WriteString(theme.Hint.Render(counter))
	b.WriteString("\n")
	b.WriteString(theme.Body.Bold(true).Render(strings.Join(layout.Wrap(base.Prompt, contentWidth), "\n")))
	if base.Instruction != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(strings.Join(layout.Wrap(base.Instruction, contentWidth), "\n")))
	}
	b.WriteString("\n\n")
	b.WriteString(p.renderInteraction(q))

	return b.String()
}

// renderInteraction dispatches to the type-specific input view.
func (p *PlayerScreen) renderInteraction(q content.Question) string {
	in := p.inter
	switch q := q.(type) {
	case *content.SingleChoice:
		return in.options.View()
	case *content.MultiSelect, *content.StrategyBuilder:
		return in.checklist.View()
	case *content.Ranking:
		return in.ranker.View()
	case *content.FreeText:
		return in.text.View()
	case *content.Matching:
		return p.renderMatching(q)
	case *content.SwipeClassifier:
		return p.renderSwipe(q)
	case *content.SentenceBuilder:
		return p.renderSentence(q)
	case *content.DialogueSimulator:
		return p.renderDialogue(q)
	}
	return ""
}

func (p *PlayerScreen) renderMatching(q *content.Matching) string {
	in := p.inter
	var b strings.Builder
	for i, item := range q.Items {
		marker := "  "
		style := theme.Unselected
		if i == in.matchItemIdx {
			marker = "▸ "
			style = theme.Selected
		}
		line := marker + style.Render(item.Label)
		if assigned, ok := in.matches[item.ID]; ok {
			line += dimStyle.Render(" → " + assigned)
		} else {
			line += theme.Hint.Render(" → ?")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if in.matchItemIdx < len(q.Items) {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Pick the match:"))
		b.WriteString("\n")
		b.WriteString(in.matchPool.View())
	}
	return b.String()
}

func (p *PlayerScreen) renderSwipe(q *content.SwipeClassifier) string {
	in := p.inter
	if in.cardIdx >= len(q.Cards) {
		return ""
	}
	card := q.Cards[in.cardIdx]

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Card %d of %d", in.cardIdx+1, len(q.Cards))))
	b.WriteString("\n")
	b.WriteString(theme.Card.Width(contentWidth).Render(strings.Join(layout.Wrap(card.Statement, contentWidth-6), "\n")))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("← swipe left        swipe right →"))
	return b.String()
}

func (p *PlayerScreen) renderSentence(q *content.SentenceBuilder) string {
	in := p.inter

	// Blank tokens appear in the sentence in the same order as q.Blanks.
	// Show the sentence with blanks filled as far as the learner has gone.
	sentence := q.Sentence
	for i, blank := range q.Blanks {
		fill := "______"
		if word, ok := in.fills[blank.ID]; ok {
			fill = word
		} else if i == in.blankIdx {
			fill = "▸_____"
		}
		sentence = strings.Replace(sentence, blankToken, fill, 1)
	}

	var b strings.Builder
	b.WriteString(theme.Body.Render(strings.Join(layout.Wrap(sentence, contentWidth), "\n")))
	if in.blankIdx < len(q.Blanks) {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Word bank:"))
		b.WriteString("\n")
		b.WriteString(in.wordBank.View())
	}
	return b.String()
}

func (p *PlayerScreen) renderDialogue(q *content.DialogueSimulator) string {
	in := p.inter
	var b strings.Builder

	turn := in.dialogue.Turn()
	for i := 0; i < turn && i < len(q.Turns); i++ {
		t := q.Turns[i]
		b.WriteString(theme.Selected.Render(t.Speaker+": ") + theme.Body.Render(strings.Join(layout.Wrap(t.Text, contentWidth-8), "\n")))
		b.WriteString("\n")
		if opt := in.dialogue.ChosenOption(t.ID); opt != nil {
			b.WriteString(dimStyle.Render("  You: " + strings.Join(layout.Wrap(opt.Text, contentWidth-8), "\n       ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if in.lastChoice != nil {
		// Pause between turns: show what was just said without the next
		// prompt yet.
		return b.String()
	}
	if turn < len(q.Turns) {
		t := q.Turns[turn]
		b.WriteString(theme.Selected.Render(t.Speaker+": ") + theme.Body.Render(strings.Join(layout.Wrap(t.Text, contentWidth-8), "\n")))
		b.WriteString("\n\n")
		b.WriteString(in.turnPicker.View())
	}
	return b.String()
}

// renderFeedback shows the outcome of the last submission.
func (p *PlayerScreen) renderFeedback() string {
	q := p.lastQuestion
	if q == nil {
		return ""
	}
	base := q.Base()

	var b strings.Builder
	if p.lastResult.Correct {
		b.WriteString(theme.Correct.Render("✓ Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Not quite"))
	}
	b.WriteString(theme.Body.Render(fmt.Sprintf("   +%d pts", p.lastResult.Points)))
	b.WriteString("\n\n")

	msg := base.Feedback.Incorrect
	if p.lastResult.Correct {
		msg = base.Feedback.Correct
	}
	if msg != "" {
		b.WriteString(theme.Body.Render(strings.Join(layout.Wrap(msg, contentWidth), "\n")))
	}
	return b.String()
}

// renderScreenReview lists the answered questions of a finished screen.
func (p *PlayerScreen) renderScreenReview(screen *content.Screen) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("All questions answered"))
	b.WriteString("\n\n")

	for _, sc := range screen.Scenarios {
		for _, q := range sc.Questions {
			base := q.Base()
			entry, ok := p.attempt.Ledger.Get(base.ID)
			if !ok {
				continue
			}
			mark := theme.Incorrect.Render("✗")
			if entry.Correct {
				mark = theme.Correct.Render("✓")
			}
			prompt := base.Prompt
			if len(prompt) > contentWidth-14 {
				prompt = prompt[:contentWidth-17] + "..."
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				mark,
				theme.Body.Render(prompt),
				theme.Hint.Render(fmt.Sprintf("%d/%d pts", entry.Points, base.Points)),
			))
		}
	}
	return b.String()
}

func (p *PlayerScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	center := func(line string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n\n")
	center(theme.Title.Render("Leave this lesson?"))
	b.WriteString("\n")
	center(theme.Body.Render("Your answers so far are kept, but the attempt will stay unfinished."))
	b.WriteString("\n")
	center(theme.Correct.Render("[Y]") + theme.Body.Render(" leave    ") + theme.Incorrect.Render("[N]") + theme.Body.Render(" keep going"))
	return b.String()
}
