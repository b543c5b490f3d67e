package content

// QuestionType discriminates the question union.
type QuestionType string

const (
	TypeSingleChoice      QuestionType = "single_choice"
	TypeMultiSelect       QuestionType = "multi_select"
	TypeMatching          QuestionType = "matching"
	TypeRanking           QuestionType = "ranking"
	TypeFreeText          QuestionType = "free_text"
	TypeSwipeClassifier   QuestionType = "swipe_classifier"
	TypeSentenceBuilder   QuestionType = "sentence_builder"
	TypeStrategyBuilder   QuestionType = "strategy_builder"
	TypeDialogueSimulator QuestionType = "dialogue_simulator"
)

// Feedback holds the per-question response messages shown after answering.
type Feedback struct {
	Correct   string
	Incorrect string
}

// QuestionBase carries the fields shared by every question variant.
type QuestionBase struct {
	ID          string
	Prompt      string
	Points      int
	Instruction string
	Feedback    Feedback
}

// Question is the closed union over the nine interactive question kinds.
// Scorers dispatch on the concrete type; QuestionBase carries the identity
// and point value common to all of them.
type Question interface {
	Base() *QuestionBase
	Type() QuestionType
}

// Option is a selectable answer choice.
type Option struct {
	ID   string
	Text string
}

// SingleChoice: pick exactly one option.
type SingleChoice struct {
	QuestionBase
	Options       []Option
	CorrectOption string
}

func (q *SingleChoice) Base() *QuestionBase { return &q.QuestionBase }
func (q *SingleChoice) Type() QuestionType  { return TypeSingleChoice }

// MultiSelectOption is an option with a validity flag.
type MultiSelectOption struct {
	ID    string
	Text  string
	Valid bool
}

// MultiSelect: pick every valid option and nothing else.
type MultiSelect struct {
	QuestionBase
	Options []MultiSelectOption
}

func (q *MultiSelect) Base() *QuestionBase { return &q.QuestionBase }
func (q *MultiSelect) Type() QuestionType  { return TypeMultiSelect }

// ValidIDs returns the ids of the valid options in declaration order.
func (q *MultiSelect) ValidIDs() []string {
	var ids []string
	for _, o := range q.Options {
		if o.Valid {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// MatchItem pairs a label with its one correct match value.
type MatchItem struct {
	ID    string
	Label string
	Match string
}

// Matching: assign each item its correct match.
type Matching struct {
	QuestionBase
	Items []MatchItem
}

func (q *Matching) Base() *QuestionBase { return &q.QuestionBase }
func (q *Matching) Type() QuestionType  { return TypeMatching }

// RankOption is an option with its ideal 1-based position.
type RankOption struct {
	ID        string
	Text      string
	IdealRank int
}

// Ranking: order the options to match their ideal ranks.
type Ranking struct {
	QuestionBase
	Options []RankOption
}

func (q *Ranking) Base() *QuestionBase { return &q.QuestionBase }
func (q *Ranking) Type() QuestionType  { return TypeRanking }

// FreeText: open answer graded on word-count bounds only.
type FreeText struct {
	QuestionBase
	MinWords        int
	MaxWords        int
	SuccessCriteria []string
	ModelAnswer     string
}

func (q *FreeText) Base() *QuestionBase { return &q.QuestionBase }
func (q *FreeText) Type() QuestionType  { return TypeFreeText }

// Direction is a binary swipe classification.
type Direction string

const (
	SwipeLeft  Direction = "left"
	SwipeRight Direction = "right"
)

// SwipeCard is one statement to classify.
type SwipeCard struct {
	ID          string
	Statement   string
	Answer      Direction
	Explanation string
}

// ScoringTier maps a minimum correct count to a point award.
type ScoringTier struct {
	Count  int
	Points int
}

// ScoringTable is the tiered award table used by swipe_classifier and
// sentence_builder. Missing tiers fall back to authoring defaults derived
// from the item count.
type ScoringTable struct {
	Perfect *ScoringTier
	Good    *ScoringTier
	Partial *ScoringTier
	Low     *ScoringTier // sentence_builder only
}

// SwipeClassifier: classify each card left or right, scored on a tier table.
type SwipeClassifier struct {
	QuestionBase
	Cards   []SwipeCard
	Scoring ScoringTable
}

func (q *SwipeClassifier) Base() *QuestionBase { return &q.QuestionBase }
func (q *SwipeClassifier) Type() QuestionType  { return TypeSwipeClassifier }

// Blank is one gap in a sentence with its acceptable fill values.
type Blank struct {
	ID     string
	Accept []string
}

// SentenceBuilder: fill every blank from a word bank, scored on a tier table.
type SentenceBuilder struct {
	QuestionBase
	Sentence string
	Blanks   []Blank
	WordBank []Option
	Scoring  ScoringTable
}

func (q *SentenceBuilder) Base() *QuestionBase { return &q.QuestionBase }
func (q *SentenceBuilder) Type() QuestionType  { return TypeSentenceBuilder }

// StrategyElement is a candidate strategy component.
type StrategyElement struct {
	ID          string
	Text        string
	Correct     bool
	Explanation string
}

// StrategyBuilder: select exactly SelectCount elements; the correct elements
// form the answer key.
type StrategyBuilder struct {
	QuestionBase
	Elements    []StrategyElement
	SelectCount int
}

func (q *StrategyBuilder) Base() *QuestionBase { return &q.QuestionBase }
func (q *StrategyBuilder) Type() QuestionType  { return TypeStrategyBuilder }

// CorrectIDs returns ids of the elements flagged correct, in declaration order.
func (q *StrategyBuilder) CorrectIDs() []string {
	var ids []string
	for _, e := range q.Elements {
		if e.Correct {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// DialogueOption is one response choice within a dialogue turn.
type DialogueOption struct {
	ID        string
	Text      string
	Points    int
	Correct   bool
	Technique string
}

// DialogueTurn is a single exchange: the speaker's line plus response options.
type DialogueTurn struct {
	ID      string
	Speaker string
	Text    string
	Options []DialogueOption
}

// DialogueSimulator: multi-turn branching dialogue. Turns are strictly
// sequential; points accumulate per chosen option.
type DialogueSimulator struct {
	QuestionBase
	Turns []DialogueTurn
}

func (q *DialogueSimulator) Base() *QuestionBase { return &q.QuestionBase }
func (q *DialogueSimulator) Type() QuestionType  { return TypeDialogueSimulator }
