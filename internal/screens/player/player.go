// Package player runs one lesson attempt: it walks the lesson's screens,
// collects answers, shows feedback, and hands the finished attempt to the
// summary screen.
package player

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/content"
	engine "github.com/HoangNamHai/pmquest/internal/player"
	"github.com/HoangNamHai/pmquest/internal/router"
	"github.com/HoangNamHai/pmquest/internal/score"
	"github.com/HoangNamHai/pmquest/internal/screens/summary"
	"github.com/HoangNamHai/pmquest/internal/ui/components"
	"github.com/HoangNamHai/pmquest/internal/ui/layout"
)

// AttemptStore is the persistence surface the player needs. Satisfied by
// store.AttemptRepo.
type AttemptStore interface {
	Start(ctx context.Context, a *engine.Attempt) error
	AppendAnswer(ctx context.Context, attemptID string, e engine.Entry) error
	Complete(ctx context.Context, attemptID string, sum engine.Summary, finishedAt time.Time) error
}

// PlayerScreen implements router.Screen for an active lesson attempt.
type PlayerScreen struct {
	lesson   *content.Lesson
	attempt  *engine.Attempt
	seq      *engine.Sequencer
	attempts AttemptStore
	cfg      config.Config

	inter           *interaction
	showingFeedback bool
	lastQuestion    content.Question
	lastResult      score.Result

	// answerSeq tags every submission; delayed ticks carrying an older
	// value are ignored.
	answerSeq int

	confirmQuit bool
	errMsg      string
}

var _ router.Screen = (*PlayerScreen)(nil)
var _ router.KeyHintProvider = (*PlayerScreen)(nil)
var _ router.EscInterceptor = (*PlayerScreen)(nil)

// New starts a fresh attempt at the lesson.
func New(lesson *content.Lesson, attempts AttemptStore, cfg config.Config) *PlayerScreen {
	attempt := engine.NewAttempt(lesson)
	p := &PlayerScreen{
		lesson:   lesson,
		attempt:  attempt,
		seq:      attempt.Sequencer,
		attempts: attempts,
		cfg:      cfg,
	}
	p.syncInteraction()
	return p
}

func (p *PlayerScreen) Init() tea.Cmd {
	if p.attempts == nil {
		return nil
	}
	attempt := p.attempt
	repo := p.attempts
	return func() tea.Msg {
		return persistDoneMsg{Err: repo.Start(context.Background(), attempt)}
	}
}

func (p *PlayerScreen) Title() string {
	return p.lesson.Title
}

// InterceptsEsc implements router.EscInterceptor: leaving mid-lesson goes
// through a confirmation instead of popping straight away.
func (p *PlayerScreen) InterceptsEsc() bool { return true }

// syncInteraction rebuilds the input state for the question under the
// sequencer's pointer. Answered questions get no interaction: the screen
// renders its completed state instead.
func (p *PlayerScreen) syncInteraction() tea.Cmd {
	p.inter = nil
	fq := p.seq.CurrentQuestion()
	if fq == nil || p.attempt.Ledger.Answered(fq.Question.Base().ID) {
		return nil
	}
	inter, cmd := newInteraction(fq.Question)
	p.inter = inter
	return cmd
}

func (p *PlayerScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case persistDoneMsg:
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
		}
		return p, nil

	case feedbackDoneMsg:
		if msg.Seq != p.answerSeq || !p.showingFeedback || p.confirmQuit {
			return p, nil
		}
		return p, p.advancePastFeedback()

	case dialogueStepMsg:
		if msg.Seq != p.answerSeq || p.confirmQuit {
			return p, nil
		}
		return p, p.advanceDialogueTurn()

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	// Everything else goes to the free-text input, which needs cursor
	// blinks and paste messages.
	if p.inter != nil && p.inter.kind == content.TypeFreeText && !p.showingFeedback {
		var cmd tea.Cmd
		p.inter.text, cmd = p.inter.text.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PlayerScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	key := msg.String()

	if p.confirmQuit {
		switch key {
		case "y", "Y":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			p.confirmQuit = false
			return p, p.resumeAfterQuitPrompt()
		}
		return p, nil
	}

	if key == "esc" {
		p.confirmQuit = true
		return p, nil
	}

	if p.showingFeedback {
		// Enter skips the rest of the delay.
		if key == "enter" {
			p.answerSeq++ // invalidate the pending timer
			return p, p.advancePastFeedback()
		}
		return p, nil
	}

	screen, err := p.seq.CurrentScreen()
	if err != nil {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if !screen.Interactive() || p.seq.ScreenComplete() {
		switch key {
		case "enter", "right", "l":
			return p, p.advanceScreen()
		case "left", "h":
			p.seq.RetreatScreen()
			p.syncInteraction()
		}
		return p, nil
	}

	return p, p.handleQuestionKey(msg)
}

// handleQuestionKey routes input to the active interaction.
func (p *PlayerScreen) handleQuestionKey(msg tea.KeyMsg) tea.Cmd {
	in := p.inter
	if in == nil {
		return nil
	}
	fq := p.seq.CurrentQuestion()
	key := msg.String()

	switch q := fq.Question.(type) {
	case *content.SingleChoice:
		in.options = in.options.Update(msg)
		if key == "enter" {
			chosen := in.options.Chosen()
			in.options.Reveal(chosen, q.CorrectOption)
			return p.submit(fq.Question, chosen, score.SingleChoice(q, chosen))
		}

	case *content.MultiSelect:
		in.checklist = in.checklist.Update(msg)
		if key == "enter" && in.checklist.PickedCount() > 0 {
			picked := in.checklist.Picked()
			in.checklist.Reveal(q.ValidIDs())
			return p.submit(fq.Question, picked, score.MultiSelect(q, picked))
		}

	case *content.Matching:
		return p.handleMatchingKey(msg, q)

	case *content.Ranking:
		in.ranker = in.ranker.Update(msg)
		if key == "enter" {
			order := in.ranker.Order()
			ideal := make(map[string]int, len(q.Options))
			for _, o := range q.Options {
				ideal[o.ID] = o.IdealRank
			}
			in.ranker.Reveal(ideal)
			return p.submit(fq.Question, order, score.Ranking(q, order))
		}

	case *content.FreeText:
		if key == "ctrl+d" {
			text := in.text.Value()
			in.text.Lock()
			return p.submit(fq.Question, text, score.FreeText(q, text))
		}
		var cmd tea.Cmd
		in.text, cmd = in.text.Update(msg)
		return cmd

	case *content.SwipeClassifier:
		return p.handleSwipeKey(key, q)

	case *content.SentenceBuilder:
		return p.handleSentenceKey(msg, q)

	case *content.StrategyBuilder:
		in.checklist = in.checklist.Update(msg)
		if key == "enter" && in.checklist.PickedCount() == q.SelectCount {
			picked := in.checklist.Picked()
			in.checklist.Reveal(q.CorrectIDs())
			return p.submit(fq.Question, picked, score.StrategyBuilder(q, picked))
		}

	case *content.DialogueSimulator:
		return p.handleDialogueKey(msg, q)
	}

	return nil
}

func (p *PlayerScreen) handleMatchingKey(msg tea.KeyMsg, q *content.Matching) tea.Cmd {
	in := p.inter
	in.matchPool = in.matchPool.Update(msg)

	switch msg.String() {
	case "enter":
		if in.matchItemIdx >= len(q.Items) {
			return nil
		}
		item := q.Items[in.matchItemIdx]
		in.matches[item.ID] = in.matchPool.Chosen()
		in.matchItemIdx++
		if in.matchItemIdx >= len(q.Items) {
			matches := in.matches
			return p.submit(q, matches, score.Matching(q, matches))
		}
		in.matchPool = components.NewOptionList(matchPoolItems(q, in.matches))

	case "backspace":
		if in.matchItemIdx > 0 {
			in.matchItemIdx--
			delete(in.matches, q.Items[in.matchItemIdx].ID)
			in.matchPool = components.NewOptionList(matchPoolItems(q, in.matches))
		}
	}
	return nil
}

func (p *PlayerScreen) handleSwipeKey(key string, q *content.SwipeClassifier) tea.Cmd {
	in := p.inter
	if in.cardIdx >= len(q.Cards) {
		return nil
	}
	var dir content.Direction
	switch key {
	case "left", "h":
		dir = content.SwipeLeft
	case "right", "l":
		dir = content.SwipeRight
	default:
		return nil
	}
	in.swipes[q.Cards[in.cardIdx].ID] = dir
	in.cardIdx++
	if in.cardIdx >= len(q.Cards) {
		swipes := in.swipes
		return p.submit(q, swipes, score.SwipeClassifier(q, swipes))
	}
	return nil
}

func (p *PlayerScreen) handleSentenceKey(msg tea.KeyMsg, q *content.SentenceBuilder) tea.Cmd {
	in := p.inter
	in.wordBank = in.wordBank.Update(msg)

	switch msg.String() {
	case "enter":
		if in.blankIdx >= len(q.Blanks) {
			return nil
		}
		// Fill with the chosen word's text: the answer key is the word
		// itself, not the bank entry id.
		var word string
		for _, w := range q.WordBank {
			if w.ID == in.wordBank.Chosen() {
				word = w.Text
			}
		}
		in.fills[q.Blanks[in.blankIdx].ID] = word
		in.blankIdx++
		if in.blankIdx >= len(q.Blanks) {
			fills := in.fills
			return p.submit(q, fills, score.SentenceBuilder(q, fills))
		}

	case "backspace":
		if in.blankIdx > 0 {
			in.blankIdx--
			delete(in.fills, q.Blanks[in.blankIdx].ID)
		}
	}
	return nil
}

func (p *PlayerScreen) handleDialogueKey(msg tea.KeyMsg, q *content.DialogueSimulator) tea.Cmd {
	in := p.inter
	if in.lastChoice != nil {
		// Waiting out the turn pause; ignore input.
		return nil
	}
	in.turnPicker = in.turnPicker.Update(msg)
	if msg.String() != "enter" {
		return nil
	}

	turn := in.dialogue.Turn()
	if turn >= len(q.Turns) {
		return nil
	}
	chosenID := in.turnPicker.Chosen()
	in.dialogue.Choose(chosenID)
	in.lastChoice = in.dialogue.ChosenOption(q.Turns[turn].ID)

	p.answerSeq++
	seq := p.answerSeq
	delay := p.cfg.DialogueDelay()
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return dialogueStepMsg{Seq: seq}
	})
}

// advanceDialogueTurn runs after the between-turn pause: either shows the
// next turn or, when the dialogue is done, submits the whole question.
func (p *PlayerScreen) advanceDialogueTurn() tea.Cmd {
	in := p.inter
	fq := p.seq.CurrentQuestion()
	if in == nil || fq == nil {
		return nil
	}
	q, ok := fq.Question.(*content.DialogueSimulator)
	if !ok {
		return nil
	}
	in.lastChoice = nil
	if in.dialogue.Done() {
		return p.submit(q, in.dialogue.Choices(), in.dialogue.Result())
	}
	in.turnPicker = turnPicker(q, in.dialogue.Turn())
	return nil
}

// submit records the answer in the ledger, persists it, and starts the
// feedback display period.
func (p *PlayerScreen) submit(q content.Question, raw any, res score.Result) tea.Cmd {
	if err := p.attempt.Submit(q, raw, res); err != nil {
		p.errMsg = err.Error()
		return nil
	}

	p.showingFeedback = true
	p.lastQuestion = q
	p.lastResult = res
	p.answerSeq++
	seq := p.answerSeq

	cmds := []tea.Cmd{
		tea.Tick(p.cfg.FeedbackDelay(), func(time.Time) tea.Msg {
			return feedbackDoneMsg{Seq: seq}
		}),
	}
	if p.attempts != nil {
		repo := p.attempts
		attemptID := p.attempt.ID
		entry, _ := p.attempt.Ledger.Get(q.Base().ID)
		cmds = append(cmds, func() tea.Msg {
			return persistDoneMsg{Err: repo.AppendAnswer(context.Background(), attemptID, entry)}
		})
	}
	return tea.Batch(cmds...)
}

// resumeAfterQuitPrompt restarts whichever pause timer the leave prompt
// swallowed, so declining the prompt does not strand the feedback view or
// a dialogue turn.
func (p *PlayerScreen) resumeAfterQuitPrompt() tea.Cmd {
	switch {
	case p.showingFeedback:
		p.answerSeq++
		seq := p.answerSeq
		return tea.Tick(p.cfg.FeedbackDelay(), func(time.Time) tea.Msg {
			return feedbackDoneMsg{Seq: seq}
		})
	case p.inter != nil && p.inter.lastChoice != nil:
		p.answerSeq++
		seq := p.answerSeq
		return tea.Tick(p.cfg.DialogueDelay(), func(time.Time) tea.Msg {
			return dialogueStepMsg{Seq: seq}
		})
	}
	return nil
}

// advancePastFeedback moves to the next unanswered question, or onward
// through the lesson when the screen is finished.
func (p *PlayerScreen) advancePastFeedback() tea.Cmd {
	p.showingFeedback = false
	p.lastQuestion = nil

	if p.seq.AdvanceQuestion() {
		// Screen complete. Informational screens advance on enter; a
		// finished question screen moves on immediately.
		return p.advanceScreen()
	}
	return p.syncInteraction()
}

// advanceScreen steps the sequencer forward, finishing the lesson when the
// last screen is done.
func (p *PlayerScreen) advanceScreen() tea.Cmd {
	if p.seq.AdvanceScreen() {
		return p.finishLesson()
	}
	return p.syncInteraction()
}

// finishLesson closes the attempt, persists the result, and swaps in the
// summary screen.
func (p *PlayerScreen) finishLesson() tea.Cmd {
	p.attempt.Finish()
	sum := engine.BuildSummary(p.lesson, p.attempt.Ledger)

	lesson, repo, cfg := p.lesson, p.attempts, p.cfg
	cmds := []tea.Cmd{
		func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(lesson, sum, p.attempt.Duration(), func() router.Screen {
					return New(lesson, repo, cfg)
				}),
			}
		},
	}
	if p.attempts != nil {
		repo := p.attempts
		attemptID := p.attempt.ID
		finishedAt := p.attempt.FinishedAt()
		cmds = append(cmds, func() tea.Msg {
			return persistDoneMsg{Err: repo.Complete(context.Background(), attemptID, sum, finishedAt)}
		})
	}
	return tea.Batch(cmds...)
}

func (p *PlayerScreen) KeyHints() []layout.KeyHint {
	if p.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave lesson"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if p.showingFeedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	}
	screen, err := p.seq.CurrentScreen()
	if err == nil && screen.Interactive() && !p.seq.ScreenComplete() {
		return p.questionKeyHints()
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "←", Description: "Back"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (p *PlayerScreen) questionKeyHints() []layout.KeyHint {
	fq := p.seq.CurrentQuestion()
	if fq == nil {
		return nil
	}
	switch fq.Question.(type) {
	case *content.MultiSelect, *content.StrategyBuilder:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	case *content.Ranking:
		return []layout.KeyHint{
			{Key: "Shift+↑↓", Description: "Move item"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	case *content.FreeText:
		return []layout.KeyHint{
			{Key: "Ctrl+D", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	case *content.SwipeClassifier:
		return []layout.KeyHint{
			{Key: "←", Description: "Swipe left"},
			{Key: "→", Description: "Swipe right"},
			{Key: "Esc", Description: "Leave"},
		}
	case *content.Matching, *content.SentenceBuilder:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Assign"},
			{Key: "Backspace", Description: "Undo"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}
