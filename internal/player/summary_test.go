package player

import (
	"testing"

	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/score"
)

func TestScorePercent(t *testing.T) {
	cases := []struct {
		total, max, want int
	}{
		{65, 65, 100},
		{45, 65, 69}, // round(69.23)
		{46, 65, 71},
		{0, 65, 0},
		{0, 0, 0},  // no scorable points is not a division by zero
		{10, 0, 0}, // defensive: earned points with zero max
	}
	for _, c := range cases {
		if got := ScorePercent(c.total, c.max); got != c.want {
			t.Errorf("ScorePercent(%d, %d) = %d, want %d", c.total, c.max, got, c.want)
		}
	}
}

func TestPassed(t *testing.T) {
	if !Passed(70, 70) {
		t.Error("meeting the threshold exactly should pass")
	}
	if Passed(69, 70) {
		t.Error("one point under the threshold should fail")
	}
}

func TestBuildSummary_Passing(t *testing.T) {
	lesson := testLesson()
	ledger := NewLedger()
	ledger.Record("q1", "", true, 10)
	ledger.Record("q2", "", true, 10)
	ledger.Record("q3", "", false, 5)

	s := BuildSummary(lesson, ledger)
	if s.TotalScore != 25 || s.MaxScore != 30 {
		t.Errorf("score %d/%d, want 25/30", s.TotalScore, s.MaxScore)
	}
	if s.ScorePercent != 83 {
		t.Errorf("ScorePercent = %d, want 83", s.ScorePercent)
	}
	if !s.Passed {
		t.Error("83%% against a 70%% threshold should pass")
	}
	if s.XPEarned != lesson.XPReward {
		t.Errorf("XPEarned = %d, want %d", s.XPEarned, lesson.XPReward)
	}
	if s.CorrectAnswers != 2 || s.IncorrectAnswers != 1 {
		t.Errorf("correct/incorrect = %d/%d, want 2/1", s.CorrectAnswers, s.IncorrectAnswers)
	}
}

func TestBuildSummary_Failing(t *testing.T) {
	lesson := testLesson()
	ledger := NewLedger()
	ledger.Record("q1", "", true, 10)

	s := BuildSummary(lesson, ledger)
	if s.ScorePercent != 33 {
		t.Errorf("ScorePercent = %d, want 33", s.ScorePercent)
	}
	if s.Passed {
		t.Error("33%% against a 70%% threshold should fail")
	}
	if s.XPEarned != 0 {
		t.Errorf("XPEarned = %d, want 0 on a failed attempt", s.XPEarned)
	}
}

func TestBuildSummary_NoQuestions(t *testing.T) {
	lesson := &content.Lesson{ID: "info-only", MasteryThreshold: 70}
	s := BuildSummary(lesson, NewLedger())
	if s.ScorePercent != 0 || s.Passed {
		t.Errorf("got %+v, want 0%% and not passed for a lesson with no points", s)
	}
}

func TestAttempt_Submit(t *testing.T) {
	a := NewAttempt(testLesson())
	if a.ID == "" {
		t.Error("attempt should have an id")
	}

	q := a.Lesson.Questions()[0]
	if err := a.Submit(q, "b", score.Result{Correct: true, Points: 10}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := a.Submit(q, "a", score.Result{}); err == nil {
		t.Error("second Submit for the same question should error")
	}

	e, ok := a.Ledger.Get(q.Base().ID)
	if !ok {
		t.Fatal("expected ledger entry")
	}
	if e.RawAnswer != `"b"` {
		t.Errorf("RawAnswer = %s, want %q", e.RawAnswer, `"b"`)
	}
}

func TestAttempt_FinishIdempotent(t *testing.T) {
	a := NewAttempt(testLesson())
	if a.Finished() {
		t.Error("fresh attempt should not be finished")
	}
	a.Finish()
	first := a.FinishedAt()
	a.Finish()
	if !a.FinishedAt().Equal(first) {
		t.Error("second Finish must not move the timestamp")
	}
	if a.Duration() < 0 {
		t.Error("Duration should be non-negative")
	}
}
