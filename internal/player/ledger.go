package player

// Entry is one answered question: the serialized interaction and its scoring
// outcome. Entries are created exactly once and never mutated; an answered
// question is locked.
type Entry struct {
	QuestionID string
	RawAnswer  string
	Correct    bool
	Points     int
}

// Ledger is the per-attempt, write-once record of submitted answers. It is
// the source of truth for progress and the final score.
type Ledger struct {
	entries map[string]Entry
	order   []string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]Entry)}
}

// Record stores an entry for questionID. If the question was already
// answered the call is a silent no-op and returns false: the UI disables
// input after an answer, but the ledger defends regardless.
func (l *Ledger) Record(questionID, rawAnswer string, correct bool, points int) bool {
	if _, exists := l.entries[questionID]; exists {
		return false
	}
	l.entries[questionID] = Entry{
		QuestionID: questionID,
		RawAnswer:  rawAnswer,
		Correct:    correct,
		Points:     points,
	}
	l.order = append(l.order, questionID)
	return true
}

// Get returns the entry for questionID, if present.
func (l *Ledger) Get(questionID string) (Entry, bool) {
	e, ok := l.entries[questionID]
	return e, ok
}

// Answered reports whether questionID has been answered.
func (l *Ledger) Answered(questionID string) bool {
	_, ok := l.entries[questionID]
	return ok
}

// TotalScore sums the points earned across all entries.
func (l *Ledger) TotalScore() int {
	total := 0
	for _, e := range l.entries {
		total += e.Points
	}
	return total
}

// AnsweredCount returns the number of answered questions.
func (l *Ledger) AnsweredCount() int {
	return len(l.entries)
}

// CorrectCount returns the number of correctly answered questions.
func (l *Ledger) CorrectCount() int {
	n := 0
	for _, e := range l.entries {
		if e.Correct {
			n++
		}
	}
	return n
}

// Entries returns all entries in submission order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.entries[id])
	}
	return out
}
