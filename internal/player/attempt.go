package player

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/score"
)

// Attempt is one run of a lesson: a sequencer, a write-once ledger, and the
// timestamps framing the run.
type Attempt struct {
	ID        string
	Lesson    *content.Lesson
	Sequencer *Sequencer
	Ledger    *Ledger
	StartedAt time.Time

	finishedAt time.Time
}

// NewAttempt starts a fresh attempt at the lesson's first screen.
func NewAttempt(lesson *content.Lesson) *Attempt {
	ledger := NewLedger()
	return &Attempt{
		ID:        uuid.NewString(),
		Lesson:    lesson,
		Sequencer: NewSequencer(lesson, ledger),
		Ledger:    ledger,
		StartedAt: time.Now(),
	}
}

// Submit records a scored answer. The raw interaction is serialized to JSON
// so the ledger entry is self-describing regardless of question type. A
// second submission for the same question is rejected.
func (a *Attempt) Submit(q content.Question, raw any, res score.Result) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding answer for %s: %w", q.Base().ID, err)
	}
	if !a.Ledger.Record(q.Base().ID, string(data), res.Correct, res.Points) {
		return fmt.Errorf("question %s already answered", q.Base().ID)
	}
	return nil
}

// Finish stamps the attempt's end time. Idempotent.
func (a *Attempt) Finish() {
	if a.finishedAt.IsZero() {
		a.finishedAt = time.Now()
	}
}

// Finished reports whether Finish has been called.
func (a *Attempt) Finished() bool { return !a.finishedAt.IsZero() }

// FinishedAt returns the end timestamp; zero until Finish is called.
func (a *Attempt) FinishedAt() time.Time { return a.finishedAt }

// Duration returns the elapsed time of the attempt, using the current time
// while the attempt is still running.
func (a *Attempt) Duration() time.Duration {
	if a.finishedAt.IsZero() {
		return time.Since(a.StartedAt)
	}
	return a.finishedAt.Sub(a.StartedAt)
}
