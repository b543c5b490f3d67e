package player

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/content"
	engine "github.com/HoangNamHai/pmquest/internal/player"
	"github.com/HoangNamHai/pmquest/internal/router"
	"github.com/HoangNamHai/pmquest/internal/screens/summary"
)

// mockAttemptStore implements AttemptStore for testing.
type mockAttemptStore struct {
	started   []*engine.Attempt
	answers   []engine.Entry
	completed []engine.Summary
}

func (m *mockAttemptStore) Start(_ context.Context, a *engine.Attempt) error {
	m.started = append(m.started, a)
	return nil
}

func (m *mockAttemptStore) AppendAnswer(_ context.Context, _ string, e engine.Entry) error {
	m.answers = append(m.answers, e)
	return nil
}

func (m *mockAttemptStore) Complete(_ context.Context, _ string, sum engine.Summary, _ time.Time) error {
	m.completed = append(m.completed, sum)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testLesson() *content.Lesson {
	return &content.Lesson{
		ID:               "test-01",
		Title:            "Test Lesson",
		TotalPoints:      20,
		MasteryThreshold: 70,
		XPReward:         50,
		Screens: []content.Screen{
			{
				Type:  content.ScreenHook,
				Title: "Welcome",
				Body:  []string{"Some context."},
			},
			{
				Type:  content.ScreenChallenge,
				Title: "Challenge",
				Scenarios: []content.Scenario{
					{
						ID:    "s1",
						Title: "Scenario",
						Questions: []content.Question{
							&content.SingleChoice{
								QuestionBase: content.QuestionBase{
									ID:     "q1",
									Prompt: "Pick the right one",
									Points: 10,
									Feedback: content.Feedback{
										Correct:   "Right.",
										Incorrect: "Wrong.",
									},
								},
								Options: []content.Option{
									{ID: "a", Text: "first"},
									{ID: "b", Text: "second"},
								},
								CorrectOption: "b",
							},
							&content.SwipeClassifier{
								QuestionBase: content.QuestionBase{
									ID:     "q2",
									Prompt: "Classify",
									Points: 10,
								},
								Cards: []content.SwipeCard{
									{ID: "c1", Statement: "one", Answer: content.SwipeLeft},
									{ID: "c2", Statement: "two", Answer: content.SwipeRight},
								},
							},
						},
					},
				},
			},
			{
				Type:      content.ScreenWrap,
				Title:     "Wrap",
				Takeaways: []string{"Remember this."},
			},
		},
	}
}

func testPlayer() (*PlayerScreen, *mockAttemptStore) {
	repo := &mockAttemptStore{}
	cfg := config.Default()
	// Zero delays keep executed tick commands from sleeping.
	cfg.FeedbackDelayMs = 0
	cfg.DialogueDelayMs = 0
	p := New(testLesson(), repo, cfg)
	return p, repo
}

// toChallenge drives the player to the challenge screen.
func toChallenge(t *testing.T, p *PlayerScreen) {
	t.Helper()
	p.Update(specialKey(tea.KeyEnter))
	if p.seq.ScreenIndex() != 1 {
		t.Fatalf("ScreenIndex = %d, want 1", p.seq.ScreenIndex())
	}
	if p.inter == nil {
		t.Fatal("expected an interaction on the challenge screen")
	}
}

func TestPlayerScreen_Title(t *testing.T) {
	p, _ := testPlayer()
	if p.Title() != "Test Lesson" {
		t.Errorf("Title = %q, want %q", p.Title(), "Test Lesson")
	}
}

func TestPlayerScreen_InitPersistsAttempt(t *testing.T) {
	p, repo := testPlayer()
	cmd := p.Init()
	if cmd == nil {
		t.Fatal("expected a persistence command from Init")
	}
	if msg, ok := cmd().(persistDoneMsg); !ok || msg.Err != nil {
		t.Errorf("Init cmd = %#v, want persistDoneMsg with nil error", msg)
	}
	if len(repo.started) != 1 {
		t.Errorf("started attempts = %d, want 1", len(repo.started))
	}
}

func TestPlayerScreen_InfoScreenAdvance(t *testing.T) {
	p, _ := testPlayer()

	p.Update(specialKey(tea.KeyEnter))
	if p.seq.ScreenIndex() != 1 {
		t.Errorf("ScreenIndex = %d, want 1 after enter", p.seq.ScreenIndex())
	}

	p.Update(specialKey(tea.KeyLeft))
	if p.seq.ScreenIndex() != 0 {
		t.Errorf("ScreenIndex = %d, want 0 after back", p.seq.ScreenIndex())
	}
}

func TestPlayerScreen_SubmitCorrectAnswer(t *testing.T) {
	p, _ := testPlayer()
	toChallenge(t, p)

	// Move the cursor to the correct option and submit.
	p.Update(keyPress('j'))
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}

	if !p.showingFeedback {
		t.Error("expected feedback after submit")
	}
	if !p.lastResult.Correct {
		t.Error("expected correct result for option b")
	}
	entry, ok := p.attempt.Ledger.Get("q1")
	if !ok {
		t.Fatal("expected a ledger entry for q1")
	}
	if entry.Points != 10 {
		t.Errorf("Points = %d, want 10", entry.Points)
	}
}

func TestPlayerScreen_FeedbackAdvancesToNextQuestion(t *testing.T) {
	p, _ := testPlayer()
	toChallenge(t, p)

	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))

	p.Update(feedbackDoneMsg{Seq: p.answerSeq})
	if p.showingFeedback {
		t.Error("expected feedback to be dismissed")
	}
	fq := p.seq.CurrentQuestion()
	if fq == nil || fq.Question.Base().ID != "q2" {
		t.Error("expected the pointer to move to q2")
	}
}

func TestPlayerScreen_StaleFeedbackTickIgnored(t *testing.T) {
	p, _ := testPlayer()
	toChallenge(t, p)

	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))

	p.Update(feedbackDoneMsg{Seq: p.answerSeq - 1})
	if !p.showingFeedback {
		t.Error("a stale tick must not dismiss feedback")
	}
}

func TestPlayerScreen_EnterSkipsFeedbackDelay(t *testing.T) {
	p, _ := testPlayer()
	toChallenge(t, p)

	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))
	seqBefore := p.answerSeq

	p.Update(specialKey(tea.KeyEnter))
	if p.showingFeedback {
		t.Error("expected enter to dismiss feedback early")
	}
	// The pending timer must be invalidated.
	p.showingFeedback = true
	p.Update(feedbackDoneMsg{Seq: seqBefore})
	if !p.showingFeedback {
		t.Error("the superseded timer must be a no-op")
	}
}

func TestPlayerScreen_DuplicateSubmitBlocked(t *testing.T) {
	p, _ := testPlayer()
	toChallenge(t, p)

	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))
	p.Update(feedbackDoneMsg{Seq: p.answerSeq})

	if p.attempt.Ledger.AnsweredCount() != 1 {
		t.Fatalf("AnsweredCount = %d, want 1", p.attempt.Ledger.AnsweredCount())
	}
	entry, _ := p.attempt.Ledger.Get("q1")
	if !entry.Correct {
		t.Error("the first submission must stand")
	}
}

func TestPlayerScreen_SwipeFlow(t *testing.T) {
	p, repo := testPlayer()
	toChallenge(t, p)

	// Answer q1 and move on to the swipe question.
	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))
	p.Update(feedbackDoneMsg{Seq: p.answerSeq})

	// Swipe both cards the right way; the last swipe submits.
	p.Update(specialKey(tea.KeyLeft))
	_, cmd := p.Update(specialKey(tea.KeyRight))
	if cmd == nil {
		t.Fatal("expected a command after the last swipe")
	}
	entry, ok := p.attempt.Ledger.Get("q2")
	if !ok {
		t.Fatal("expected a ledger entry for q2")
	}
	if !entry.Correct || entry.Points != 10 {
		t.Errorf("entry = %+v, want correct with 10 points", entry)
	}

	// Both answers were persisted via the batched commands; run them.
	drainCmds(cmd)
	if len(repo.answers) == 0 {
		t.Error("expected persisted answer events")
	}
}

func TestPlayerScreen_FinishReplacesWithSummary(t *testing.T) {
	p, repo := testPlayer()
	toChallenge(t, p)

	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))
	p.Update(feedbackDoneMsg{Seq: p.answerSeq})
	p.Update(specialKey(tea.KeyLeft))
	p.Update(specialKey(tea.KeyRight))
	p.Update(feedbackDoneMsg{Seq: p.answerSeq})

	// Challenge screen is complete and the sequencer moved to the wrap
	// screen. Enter on the wrap screen finishes the lesson.
	if p.seq.ScreenIndex() != 2 {
		t.Fatalf("ScreenIndex = %d, want 2", p.seq.ScreenIndex())
	}
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command after the final screen")
	}
	if !p.attempt.Finished() {
		t.Error("expected the attempt to be finished")
	}

	msgs := drainCmds(cmd)
	var replaced bool
	for _, msg := range msgs {
		if rm, ok := msg.(router.ReplaceScreenMsg); ok {
			replaced = true
			if _, ok := rm.Screen.(*summary.SummaryScreen); !ok {
				t.Errorf("replacement screen = %T, want *summary.SummaryScreen", rm.Screen)
			}
		}
	}
	if !replaced {
		t.Error("expected a ReplaceScreenMsg")
	}
	if len(repo.completed) != 1 {
		t.Fatalf("completed = %d, want 1", len(repo.completed))
	}
	if got := repo.completed[0].ScorePercent; got != 100 {
		t.Errorf("ScorePercent = %d, want 100", got)
	}
}

func TestPlayerScreen_QuitConfirm(t *testing.T) {
	p, _ := testPlayer()

	p.Update(specialKey(tea.KeyEscape))
	if !p.confirmQuit {
		t.Error("expected quit confirmation after esc")
	}

	p.Update(keyPress('n'))
	if p.confirmQuit {
		t.Error("expected n to dismiss the confirmation")
	}

	p.Update(specialKey(tea.KeyEscape))
	_, cmd := p.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after confirming quit")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected a PopScreenMsg")
	}
}

func TestPlayerScreen_QuitPromptHoldsFeedbackTimer(t *testing.T) {
	p, _ := testPlayer()
	toChallenge(t, p)

	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))
	pendingSeq := p.answerSeq

	// The pending timer fires while the leave prompt is up.
	p.Update(specialKey(tea.KeyEscape))
	p.Update(feedbackDoneMsg{Seq: pendingSeq})
	if !p.showingFeedback {
		t.Fatal("the timer must not advance under the leave prompt")
	}
	fq := p.seq.CurrentQuestion()
	if fq == nil || fq.Question.Base().ID != "q1" {
		t.Error("the pointer must stay on q1 while the prompt is up")
	}

	// Declining restarts the pause; the new timer advances as usual.
	_, cmd := p.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected a replacement timer after declining")
	}
	for _, msg := range drainCmds(cmd) {
		p.Update(msg)
	}
	if p.showingFeedback {
		t.Error("expected the restarted timer to dismiss feedback")
	}
	fq = p.seq.CurrentQuestion()
	if fq == nil || fq.Question.Base().ID != "q2" {
		t.Error("expected the pointer to move to q2 after the restart")
	}
}

func TestPlayerScreen_ViewSmoke(t *testing.T) {
	p, _ := testPlayer()
	if p.View(80, 24) == "" {
		t.Error("expected a non-empty hook view")
	}

	toChallenge(t, p)
	if p.View(80, 24) == "" {
		t.Error("expected a non-empty question view")
	}

	p.Update(keyPress('j'))
	p.Update(specialKey(tea.KeyEnter))
	if p.View(80, 24) == "" {
		t.Error("expected a non-empty feedback view")
	}
}

func TestPlayerScreen_KeyHints(t *testing.T) {
	p, _ := testPlayer()
	if len(p.KeyHints()) == 0 {
		t.Error("expected key hints on the hook screen")
	}
	toChallenge(t, p)
	if len(p.KeyHints()) == 0 {
		t.Error("expected key hints on a question")
	}
}

// drainCmds executes a command tree and collects every message it produces,
// skipping timers.
func drainCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			msgs = append(msgs, drainCmds(c)...)
		}
	default:
		msgs = append(msgs, msg)
	}
	return msgs
}
