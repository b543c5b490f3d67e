package content

// ScreenType identifies the kind of lesson screen.
type ScreenType string

const (
	ScreenHook      ScreenType = "hook"
	ScreenChallenge ScreenType = "challenge"
	ScreenReason    ScreenType = "reason"
	ScreenFeedback  ScreenType = "feedback"
	ScreenTransfer  ScreenType = "transfer"
	ScreenWrap      ScreenType = "wrap"
)

// Lesson is a static, ordered unit of instructional content. Loaded once from
// JSON and treated as read-only everywhere.
type Lesson struct {
	ID          string
	Title       string
	CourseID    string
	PathID      string
	Order       int
	Duration    int // estimated minutes
	XPReward    int
	Description string
	Objectives  []string

	// TotalPoints is the maximum score across all questions.
	TotalPoints int

	// MasteryThreshold is the minimum score percent required to pass.
	MasteryThreshold int

	Screens []Screen
}

// Questions returns every scorable question in declaration order:
// screen order, then scenario order, then question order within scenario.
func (l *Lesson) Questions() []Question {
	var qs []Question
	for i := range l.Screens {
		for j := range l.Screens[i].Scenarios {
			qs = append(qs, l.Screens[i].Scenarios[j].Questions...)
		}
	}
	return qs
}

// Screen is one page of a lesson. Hook, reason, feedback and wrap screens are
// purely informational; challenge and transfer screens carry scenarios with
// questions.
type Screen struct {
	Type      ScreenType
	Title     string
	Body      []string
	Takeaways []string
	Scenarios []Scenario
}

// Interactive reports whether the screen carries questions.
func (s *Screen) Interactive() bool {
	return s.Type == ScreenChallenge || s.Type == ScreenTransfer
}

// Scenario groups questions under a shared narrative context. Order of the
// questions is significant: display and scoring both follow declaration order.
type Scenario struct {
	ID          string
	Title       string
	Description []string
	Questions   []Question
}
