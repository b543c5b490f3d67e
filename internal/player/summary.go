package player

import (
	"math"

	"github.com/HoangNamHai/pmquest/internal/content"
)

// ScorePercent converts earned points to a 0-100 percentage. A lesson with
// zero available points scores 0, never a division by zero.
func ScorePercent(total, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(max) * 100))
}

// Passed reports whether the percentage meets the lesson's mastery threshold.
func Passed(pct, threshold int) bool { return pct >= threshold }

// Summary aggregates an attempt's ledger into the numbers the wrap screen
// and the attempt record need.
type Summary struct {
	LessonID         string
	AnsweredCount    int
	CorrectAnswers   int
	IncorrectAnswers int
	TotalScore       int
	MaxScore         int
	ScorePercent     int
	Passed           bool
	XPEarned         int
}

// BuildSummary computes the summary from a lesson and its ledger. XP is
// awarded only on a passing attempt.
func BuildSummary(lesson *content.Lesson, ledger *Ledger) Summary {
	correct := ledger.CorrectCount()
	s := Summary{
		LessonID:         lesson.ID,
		AnsweredCount:    ledger.AnsweredCount(),
		CorrectAnswers:   correct,
		IncorrectAnswers: ledger.AnsweredCount() - correct,
		TotalScore:       ledger.TotalScore(),
		MaxScore:         lesson.TotalPoints,
	}
	s.ScorePercent = ScorePercent(s.TotalScore, s.MaxScore)
	s.Passed = Passed(s.ScorePercent, lesson.MasteryThreshold)
	if s.Passed {
		s.XPEarned = lesson.XPReward
	}
	return s
}
