// Package score implements the per-type question scorers. Every scorer is a
// pure function from a question definition plus the learner's raw interaction
// to a Result. Malformed content (empty item lists, missing keys) degrades to
// a zero Result instead of failing: authoring defects must never crash a
// lesson in progress.
package score

import (
	"math"
	"strings"

	"github.com/HoangNamHai/pmquest/internal/content"
)

// Result is the outcome of scoring one question.
type Result struct {
	Correct bool
	Points  int
}

// SingleChoice awards full points for the one correct option.
func SingleChoice(q *content.SingleChoice, selected string) Result {
	if selected != "" && selected == q.CorrectOption {
		return Result{Correct: true, Points: q.Points}
	}
	return Result{}
}

// MultiSelect awards full points only for the exact valid set, order-independent.
func MultiSelect(q *content.MultiSelect, selected []string) Result {
	valid := q.ValidIDs()
	if len(valid) == 0 || len(selected) != len(valid) {
		return Result{}
	}
	validSet := toSet(valid)
	for _, id := range selected {
		if !validSet[id] {
			return Result{}
		}
	}
	return Result{Correct: true, Points: q.Points}
}

// Matching awards full points when every item is matched correctly, otherwise
// partial credit proportional to the correct count.
func Matching(q *content.Matching, matches map[string]string) Result {
	if len(q.Items) == 0 {
		return Result{}
	}
	correct := 0
	for _, item := range q.Items {
		if matches[item.ID] == item.Match {
			correct++
		}
	}
	if correct == len(q.Items) {
		return Result{Correct: true, Points: q.Points}
	}
	return Result{Points: roundRatio(q.Points, correct, len(q.Items))}
}

// Ranking compares each option's 1-based position in the submitted order
// against its ideal rank. Full points when all positions match, otherwise
// the same partial-credit law as Matching.
func Ranking(q *content.Ranking, order []string) Result {
	if len(q.Options) == 0 {
		return Result{}
	}
	rankByID := make(map[string]int, len(q.Options))
	for _, o := range q.Options {
		rankByID[o.ID] = o.IdealRank
	}
	correct := 0
	for pos, id := range order {
		if ideal, ok := rankByID[id]; ok && ideal == pos+1 {
			correct++
		}
	}
	if correct == len(q.Options) {
		return Result{Correct: true, Points: q.Points}
	}
	return Result{Points: roundRatio(q.Points, correct, len(q.Options))}
}

// FreeText grades on word-count bounds only; there is no semantic grading.
func FreeText(q *content.FreeText, text string) Result {
	n := CountWords(text)
	if n >= q.MinWords && n <= q.MaxWords {
		return Result{Correct: true, Points: q.Points}
	}
	return Result{}
}

// SwipeClassifier counts correctly classified cards and awards points from
// the tier table. Correct means every card classified right.
func SwipeClassifier(q *content.SwipeClassifier, swipes map[string]content.Direction) Result {
	n := len(q.Cards)
	if n == 0 {
		return Result{}
	}
	correct := 0
	for _, card := range q.Cards {
		if swipes[card.ID] == card.Answer {
			correct++
		}
	}
	tiers := []appliedTier{
		{q.Scoring.Perfect, n, q.Points},
		{q.Scoring.Good, n - 1, pctPoints(q.Points, 0.8)},
		{q.Scoring.Partial, n - 2, pctPoints(q.Points, 0.6)},
	}
	return Result{
		Correct: correct == n,
		Points:  applyTiers(tiers, correct),
	}
}

// SentenceBuilder counts blanks filled with an acceptable value and awards
// points from the tier table, which carries an extra low tier. Correct means
// every blank acceptable.
func SentenceBuilder(q *content.SentenceBuilder, fills map[string]string) Result {
	n := len(q.Blanks)
	if n == 0 {
		return Result{}
	}
	correct := 0
	for _, blank := range q.Blanks {
		if accepts(blank, fills[blank.ID]) {
			correct++
		}
	}
	tiers := []appliedTier{
		{q.Scoring.Perfect, n, q.Points},
		{q.Scoring.Good, n - 1, pctPoints(q.Points, 0.8)},
		{q.Scoring.Partial, n - 2, pctPoints(q.Points, 0.6)},
		{q.Scoring.Low, 0, pctPoints(q.Points, 0.4)},
	}
	return Result{
		Correct: correct == n,
		Points:  applyTiers(tiers, correct),
	}
}

// StrategyBuilder requires the selected set to equal the correct set in both
// directions for full points. Partial credit is proportional to how many of
// the correct elements were selected.
func StrategyBuilder(q *content.StrategyBuilder, selected []string) Result {
	correctIDs := q.CorrectIDs()
	if len(correctIDs) == 0 {
		return Result{}
	}
	correctSet := toSet(correctIDs)

	allSelectedCorrect := true
	correctSelected := 0
	selectedSet := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
		if correctSet[id] {
			correctSelected++
		} else {
			allSelectedCorrect = false
		}
	}
	allCorrectSelected := true
	for _, id := range correctIDs {
		if !selectedSet[id] {
			allCorrectSelected = false
			break
		}
	}

	if allSelectedCorrect && allCorrectSelected {
		return Result{Correct: true, Points: q.Points}
	}
	return Result{Points: roundRatio(q.Points, correctSelected, len(correctIDs))}
}

// Dialogue sums the chosen option's points per turn; Correct means the sum
// reaches the maximum attainable across all turns. choices maps turn id to
// the chosen option id.
func Dialogue(q *content.DialogueSimulator, choices map[string]string) Result {
	if len(q.Turns) == 0 {
		return Result{}
	}
	total := 0
	for _, turn := range q.Turns {
		if opt := findOption(turn, choices[turn.ID]); opt != nil {
			total += opt.Points
		}
	}
	return Result{
		Correct: total >= DialogueMaxPoints(q),
		Points:  total,
	}
}

// DialogueMaxPoints is the sum of each turn's best option. A turn with no
// options contributes nothing; content validation treats that as an
// authoring error.
func DialogueMaxPoints(q *content.DialogueSimulator) int {
	total := 0
	for _, turn := range q.Turns {
		best := 0
		for _, opt := range turn.Options {
			if opt.Points > best {
				best = opt.Points
			}
		}
		total += best
	}
	return total
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// appliedTier pairs an authored tier with its fallback count and points.
type appliedTier struct {
	tier      *content.ScoringTier
	defCount  int
	defPoints int
}

// applyTiers walks the table top down and returns the first tier whose
// threshold the correct count meets, falling through to zero.
func applyTiers(tiers []appliedTier, correct int) int {
	for _, t := range tiers {
		count, points := t.defCount, t.defPoints
		if t.tier != nil {
			count, points = t.tier.Count, t.tier.Points
		}
		if correct >= count {
			return points
		}
	}
	return 0
}

func pctPoints(points int, frac float64) int {
	return int(math.Round(float64(points) * frac))
}

// roundRatio computes round(points * num/den), guarding the zero denominator.
func roundRatio(points, num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(points) * float64(num) / float64(den)))
}

func accepts(blank content.Blank, fill string) bool {
	if fill == "" {
		return false
	}
	for _, a := range blank.Accept {
		if a == fill {
			return true
		}
	}
	return false
}

func findOption(turn content.DialogueTurn, optionID string) *content.DialogueOption {
	for i := range turn.Options {
		if turn.Options[i].ID == optionID {
			return &turn.Options[i]
		}
	}
	return nil
}

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
