package player

import (
	"sort"

	tea "charm.land/bubbletea/v2"

	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/score"
	"github.com/HoangNamHai/pmquest/internal/ui/components"
)

// interaction holds the transient input state for the question under the
// pointer. It is rebuilt from scratch whenever the pointer moves, so no
// input state ever leaks between questions.
type interaction struct {
	kind content.QuestionType

	// single_choice
	options components.OptionList

	// multi_select, strategy_builder
	checklist components.Checklist

	// ranking
	ranker components.Ranker

	// free_text
	text components.TextArea

	// matching
	matchItemIdx int
	matchPool    components.OptionList
	matches      map[string]string

	// swipe_classifier
	cardIdx int
	swipes  map[string]content.Direction

	// sentence_builder
	blankIdx int
	fills    map[string]string
	wordBank components.OptionList

	// dialogue_simulator
	dialogue   *score.DialogueProgress
	turnPicker components.OptionList
	lastChoice *content.DialogueOption
}

// newInteraction builds the input state for a question.
func newInteraction(q content.Question) (*interaction, tea.Cmd) {
	in := &interaction{kind: q.Type()}
	var cmd tea.Cmd

	switch q := q.(type) {
	case *content.SingleChoice:
		in.options = components.NewOptionList(optionItems(q.Options))

	case *content.MultiSelect:
		in.checklist = components.NewChecklist(multiSelectItems(q.Options), 0)

	case *content.Matching:
		in.matches = make(map[string]string)
		in.matchPool = components.NewOptionList(matchPoolItems(q, nil))

	case *content.Ranking:
		items := make([]components.OptionItem, len(q.Options))
		for i, o := range q.Options {
			items[i] = components.OptionItem{ID: o.ID, Text: o.Text}
		}
		in.ranker = components.NewRanker(items)

	case *content.FreeText:
		in.text = components.NewTextArea("Type your answer...", q.MinWords, q.MaxWords, score.CountWords)
		cmd = in.text.Init()

	case *content.SwipeClassifier:
		in.swipes = make(map[string]content.Direction)

	case *content.SentenceBuilder:
		in.fills = make(map[string]string)
		in.wordBank = components.NewOptionList(optionItems(q.WordBank))

	case *content.StrategyBuilder:
		items := make([]components.OptionItem, len(q.Elements))
		for i, e := range q.Elements {
			items[i] = components.OptionItem{ID: e.ID, Text: e.Text}
		}
		in.checklist = components.NewChecklist(items, q.SelectCount)

	case *content.DialogueSimulator:
		in.dialogue = score.NewDialogueProgress(q)
		in.turnPicker = turnPicker(q, 0)
	}

	return in, cmd
}

func optionItems(opts []content.Option) []components.OptionItem {
	items := make([]components.OptionItem, len(opts))
	for i, o := range opts {
		items[i] = components.OptionItem{ID: o.ID, Text: o.Text}
	}
	return items
}

func multiSelectItems(opts []content.MultiSelectOption) []components.OptionItem {
	items := make([]components.OptionItem, len(opts))
	for i, o := range opts {
		items[i] = components.OptionItem{ID: o.ID, Text: o.Text}
	}
	return items
}

// matchPoolItems returns the unassigned match values as pool entries, in
// stable alphabetical order so the pool does not give the answer away.
func matchPoolItems(q *content.Matching, assigned map[string]string) []components.OptionItem {
	used := make(map[string]int)
	for _, v := range assigned {
		used[v]++
	}
	var values []string
	for _, item := range q.Items {
		if used[item.Match] > 0 {
			used[item.Match]--
			continue
		}
		values = append(values, item.Match)
	}
	sort.Strings(values)
	items := make([]components.OptionItem, len(values))
	for i, v := range values {
		items[i] = components.OptionItem{ID: v, Text: v}
	}
	return items
}

// turnPicker builds the option list for one dialogue turn.
func turnPicker(q *content.DialogueSimulator, turn int) components.OptionList {
	if turn >= len(q.Turns) {
		return components.NewOptionList(nil)
	}
	opts := q.Turns[turn].Options
	items := make([]components.OptionItem, len(opts))
	for i, o := range opts {
		items[i] = components.OptionItem{ID: o.ID, Text: o.Text}
	}
	return components.NewOptionList(items)
}
