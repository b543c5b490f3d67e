package player

import (
	"errors"

	"github.com/HoangNamHai/pmquest/internal/content"
)

// ErrNoScreens is returned by CurrentScreen for a lesson with no screens.
var ErrNoScreens = errors.New("lesson has no screens")

// FlatQuestion is one entry of a screen's flattened scenario×question list.
type FlatQuestion struct {
	Scenario *content.Scenario
	Question content.Question
}

// Sequencer presents exactly one screen at a time and, within challenge and
// transfer screens, exactly one question at a time, in declaration order.
// It consults the ledger so a partially answered screen resumes at the first
// unanswered question.
type Sequencer struct {
	lesson *content.Lesson
	ledger *Ledger

	screenIdx   int
	questionIdx int
	flat        []FlatQuestion
}

// NewSequencer positions the sequencer at the lesson's first screen.
func NewSequencer(lesson *content.Lesson, ledger *Ledger) *Sequencer {
	s := &Sequencer{lesson: lesson, ledger: ledger}
	s.syncQuestions()
	return s
}

// CurrentScreen returns the active screen.
func (s *Sequencer) CurrentScreen() (*content.Screen, error) {
	if len(s.lesson.Screens) == 0 {
		return nil, ErrNoScreens
	}
	return &s.lesson.Screens[s.screenIdx], nil
}

// ScreenIndex returns the 0-based index of the active screen.
func (s *Sequencer) ScreenIndex() int { return s.screenIdx }

// ScreenCount returns the number of screens in the lesson.
func (s *Sequencer) ScreenCount() int { return len(s.lesson.Screens) }

// OnFirstScreen reports whether the active screen is the first.
func (s *Sequencer) OnFirstScreen() bool { return s.screenIdx == 0 }

// OnLastScreen reports whether the active screen is the last.
func (s *Sequencer) OnLastScreen() bool {
	return len(s.lesson.Screens) == 0 || s.screenIdx == len(s.lesson.Screens)-1
}

// AdvanceScreen moves to the next screen. On the last screen it does not
// move and returns true: lesson completion is a signal, not an error.
func (s *Sequencer) AdvanceScreen() (completed bool) {
	if s.OnLastScreen() {
		return true
	}
	s.screenIdx++
	s.syncQuestions()
	return false
}

// RetreatScreen moves to the previous screen; no-op on the first.
func (s *Sequencer) RetreatScreen() bool {
	if s.OnFirstScreen() {
		return false
	}
	s.screenIdx--
	s.syncQuestions()
	return true
}

// Questions returns the active screen's flattened question list: scenario
// order, then question order within each scenario. Empty for informational
// screens.
func (s *Sequencer) Questions() []FlatQuestion { return s.flat }

// QuestionIndex returns the 0-based pointer into the flattened list.
func (s *Sequencer) QuestionIndex() int { return s.questionIdx }

// QuestionCount returns the flattened list's length.
func (s *Sequencer) QuestionCount() int { return len(s.flat) }

// CurrentQuestion returns the question under the pointer, or nil for an
// informational or empty screen.
func (s *Sequencer) CurrentQuestion() *FlatQuestion {
	if len(s.flat) == 0 {
		return nil
	}
	return &s.flat[s.questionIdx]
}

// AdvanceQuestion moves the pointer to the next unanswered question after
// the current one. When none remains it stays put and reports whether the
// screen is complete (every question answered).
func (s *Sequencer) AdvanceQuestion() (screenDone bool) {
	for i := s.questionIdx + 1; i < len(s.flat); i++ {
		if !s.ledger.Answered(s.flat[i].Question.Base().ID) {
			s.questionIdx = i
			return false
		}
	}
	if len(s.flat) > 0 {
		s.questionIdx = len(s.flat) - 1
	}
	return s.ScreenComplete()
}

// ScreenComplete reports whether every question on the active screen has a
// ledger entry. Informational screens are always complete.
func (s *Sequencer) ScreenComplete() bool {
	for _, fq := range s.flat {
		if !s.ledger.Answered(fq.Question.Base().ID) {
			return false
		}
	}
	return true
}

// syncQuestions rebuilds the flattened list for the active screen and
// initializes the pointer: first unanswered question, or the last question
// when everything is already answered (resuming a finished screen).
func (s *Sequencer) syncQuestions() {
	s.flat = nil
	s.questionIdx = 0
	if len(s.lesson.Screens) == 0 {
		return
	}

	screen := &s.lesson.Screens[s.screenIdx]
	if !screen.Interactive() {
		return
	}
	for i := range screen.Scenarios {
		sc := &screen.Scenarios[i]
		for _, q := range sc.Questions {
			s.flat = append(s.flat, FlatQuestion{Scenario: sc, Question: q})
		}
	}

	for i, fq := range s.flat {
		if !s.ledger.Answered(fq.Question.Base().ID) {
			s.questionIdx = i
			return
		}
	}
	if len(s.flat) > 0 {
		s.questionIdx = len(s.flat) - 1
	}
}
