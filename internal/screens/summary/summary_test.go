package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/HoangNamHai/pmquest/internal/content"
	engine "github.com/HoangNamHai/pmquest/internal/player"
	"github.com/HoangNamHai/pmquest/internal/router"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (router.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(width, height int) string           { return "stub" }
func (s *stubScreen) Title() string                           { return "Stub" }

func testSummary(passed bool) (*content.Lesson, engine.Summary) {
	lesson := &content.Lesson{
		ID:               "pm-basics-01",
		Title:            "The Iron Triangle",
		TotalPoints:      50,
		MasteryThreshold: 70,
		XPReward:         50,
	}
	sum := engine.Summary{
		LessonID:         lesson.ID,
		AnsweredCount:    5,
		CorrectAnswers:   4,
		IncorrectAnswers: 1,
		TotalScore:       40,
		MaxScore:         50,
		ScorePercent:     80,
		Passed:           passed,
	}
	if passed {
		sum.XPEarned = lesson.XPReward
	}
	return lesson, sum
}

func testScreen(passed bool) *SummaryScreen {
	lesson, sum := testSummary(passed)
	return New(lesson, sum, 4*time.Minute, func() router.Screen { return &stubScreen{} })
}

func TestSummaryScreen_Title(t *testing.T) {
	s := testScreen(true)
	if s.Title() != "Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := testScreen(true)
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	if !strings.Contains(view, "80%") {
		t.Error("expected the score percent in the view")
	}
	if !strings.Contains(view, "+50 XP") {
		t.Error("expected the XP award in the view")
	}
}

func TestSummaryScreen_FailedAttemptHidesXP(t *testing.T) {
	s := testScreen(false)
	view := s.View(80, 24)
	if strings.Contains(view, "+50 XP") {
		t.Error("a failed attempt must not show an XP award")
	}
}

func TestSummaryScreen_RetryReplacesScreen(t *testing.T) {
	s := testScreen(true)

	// The first menu item is "Try again".
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want router.ReplaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*stubScreen); !ok {
		t.Errorf("replacement = %T, want the retry screen", msg.Screen)
	}
}

func TestSummaryScreen_BackPops(t *testing.T) {
	s := testScreen(true)

	s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("msg = %T, want router.PopScreenMsg", cmd())
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := testScreen(true)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("msg = %T, want router.PopScreenMsg", cmd())
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := testScreen(true)
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
}
