package player

import (
	"testing"

	"github.com/HoangNamHai/pmquest/internal/content"
)

func testLesson() *content.Lesson {
	return &content.Lesson{
		ID:               "test-lesson",
		TotalPoints:      30,
		MasteryThreshold: 70,
		XPReward:         50,
		Screens: []content.Screen{
			{Type: content.ScreenHook, Title: "Hook"},
			{Type: content.ScreenChallenge, Title: "Challenge", Scenarios: []content.Scenario{
				{ID: "s1", Questions: []content.Question{
					&content.SingleChoice{
						QuestionBase:  content.QuestionBase{ID: "q1", Points: 10},
						Options:       []content.Option{{ID: "a"}, {ID: "b"}},
						CorrectOption: "b",
					},
				}},
				{ID: "s2", Questions: []content.Question{
					&content.SingleChoice{
						QuestionBase:  content.QuestionBase{ID: "q2", Points: 10},
						Options:       []content.Option{{ID: "a"}, {ID: "b"}},
						CorrectOption: "a",
					},
					&content.FreeText{
						QuestionBase: content.QuestionBase{ID: "q3", Points: 10},
						MinWords:     1,
						MaxWords:     10,
					},
				}},
			}},
			{Type: content.ScreenWrap, Title: "Wrap"},
		},
	}
}

func TestSequencer_ScreenNavigation(t *testing.T) {
	s := NewSequencer(testLesson(), NewLedger())

	screen, err := s.CurrentScreen()
	if err != nil {
		t.Fatalf("CurrentScreen: %v", err)
	}
	if screen.Type != content.ScreenHook {
		t.Errorf("first screen = %s, want hook", screen.Type)
	}
	if !s.OnFirstScreen() {
		t.Error("expected OnFirstScreen")
	}
	if s.RetreatScreen() {
		t.Error("RetreatScreen on first screen should be a no-op")
	}

	if s.AdvanceScreen() {
		t.Error("AdvanceScreen should not report completion mid-lesson")
	}
	screen, _ = s.CurrentScreen()
	if screen.Type != content.ScreenChallenge {
		t.Errorf("second screen = %s, want challenge", screen.Type)
	}

	s.AdvanceScreen()
	if !s.OnLastScreen() {
		t.Error("expected OnLastScreen after two advances")
	}
	if !s.AdvanceScreen() {
		t.Error("AdvanceScreen on last screen should report completion")
	}
	if s.ScreenIndex() != 2 {
		t.Errorf("ScreenIndex = %d, want 2 (no move past end)", s.ScreenIndex())
	}
}

func TestSequencer_EmptyLesson(t *testing.T) {
	s := NewSequencer(&content.Lesson{ID: "empty"}, NewLedger())
	if _, err := s.CurrentScreen(); err != ErrNoScreens {
		t.Errorf("CurrentScreen err = %v, want ErrNoScreens", err)
	}
	if !s.AdvanceScreen() {
		t.Error("AdvanceScreen on empty lesson should report completion")
	}
}

func TestSequencer_FlattenedQuestionOrder(t *testing.T) {
	s := NewSequencer(testLesson(), NewLedger())
	s.AdvanceScreen() // challenge

	flat := s.Questions()
	if len(flat) != 3 {
		t.Fatalf("len(Questions) = %d, want 3", len(flat))
	}
	wantIDs := []string{"q1", "q2", "q3"}
	wantScenarios := []string{"s1", "s2", "s2"}
	for i := range flat {
		if flat[i].Question.Base().ID != wantIDs[i] {
			t.Errorf("Questions[%d] = %s, want %s", i, flat[i].Question.Base().ID, wantIDs[i])
		}
		if flat[i].Scenario.ID != wantScenarios[i] {
			t.Errorf("Questions[%d].Scenario = %s, want %s", i, flat[i].Scenario.ID, wantScenarios[i])
		}
	}
}

func TestSequencer_InformationalScreenHasNoQuestions(t *testing.T) {
	s := NewSequencer(testLesson(), NewLedger())
	if s.QuestionCount() != 0 {
		t.Errorf("hook screen QuestionCount = %d, want 0", s.QuestionCount())
	}
	if s.CurrentQuestion() != nil {
		t.Error("hook screen CurrentQuestion should be nil")
	}
	if !s.ScreenComplete() {
		t.Error("informational screen should be complete")
	}
}

func TestSequencer_AdvanceQuestion(t *testing.T) {
	ledger := NewLedger()
	s := NewSequencer(testLesson(), ledger)
	s.AdvanceScreen()

	if s.CurrentQuestion().Question.Base().ID != "q1" {
		t.Fatalf("pointer at %s, want q1", s.CurrentQuestion().Question.Base().ID)
	}

	ledger.Record("q1", `"b"`, true, 10)
	if s.AdvanceQuestion() {
		t.Error("screen should not be done after one of three answers")
	}
	if s.CurrentQuestion().Question.Base().ID != "q2" {
		t.Errorf("pointer at %s, want q2", s.CurrentQuestion().Question.Base().ID)
	}

	ledger.Record("q2", `"a"`, true, 10)
	s.AdvanceQuestion()
	ledger.Record("q3", `"done"`, true, 10)
	if !s.AdvanceQuestion() {
		t.Error("screen should be done after all three answers")
	}
	if !s.ScreenComplete() {
		t.Error("expected ScreenComplete")
	}
}

func TestSequencer_ResumeAtFirstUnanswered(t *testing.T) {
	ledger := NewLedger()
	ledger.Record("q1", `"b"`, true, 10)

	s := NewSequencer(testLesson(), ledger)
	s.AdvanceScreen()
	if got := s.CurrentQuestion().Question.Base().ID; got != "q2" {
		t.Errorf("resume pointer at %s, want q2 (first unanswered)", got)
	}
}

func TestSequencer_ResumeFullyAnsweredScreen(t *testing.T) {
	ledger := NewLedger()
	ledger.Record("q1", "", true, 10)
	ledger.Record("q2", "", false, 0)
	ledger.Record("q3", "", true, 10)

	s := NewSequencer(testLesson(), ledger)
	s.AdvanceScreen()
	if got := s.CurrentQuestion().Question.Base().ID; got != "q3" {
		t.Errorf("resume pointer at %s, want q3 (last, all answered)", got)
	}
	if !s.ScreenComplete() {
		t.Error("expected ScreenComplete on fully answered screen")
	}
}

func TestSequencer_RetreatThenReturnKeepsLedger(t *testing.T) {
	ledger := NewLedger()
	s := NewSequencer(testLesson(), ledger)
	s.AdvanceScreen()
	ledger.Record("q1", "", true, 10)

	s.RetreatScreen()
	s.AdvanceScreen()
	if got := s.CurrentQuestion().Question.Base().ID; got != "q2" {
		t.Errorf("pointer after round trip = %s, want q2", got)
	}
	if !ledger.Answered("q1") {
		t.Error("q1 answer must survive navigation")
	}
}
