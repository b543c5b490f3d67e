package score

import "github.com/HoangNamHai/pmquest/internal/content"

// DialogueProgress accumulates a dialogue simulation one turn at a time.
// Turns are strictly sequential: the next turn's options are not offered
// until the current turn has been answered. The final Result is only
// meaningful once Done reports true.
type DialogueProgress struct {
	q       *content.DialogueSimulator
	turn    int
	points  int
	choices map[string]string
}

// NewDialogueProgress starts an accumulator at the first turn.
func NewDialogueProgress(q *content.DialogueSimulator) *DialogueProgress {
	return &DialogueProgress{
		q:       q,
		choices: make(map[string]string),
	}
}

// Turn returns the current 0-based turn index.
func (p *DialogueProgress) Turn() int { return p.turn }

// Done reports whether every turn has been answered.
func (p *DialogueProgress) Done() bool { return p.turn >= len(p.q.Turns) }

// Points returns the points accumulated so far.
func (p *DialogueProgress) Points() int { return p.points }

// Choices returns the turn-id to option-id selections made so far.
func (p *DialogueProgress) Choices() map[string]string { return p.choices }

// ChosenOption returns the option chosen for the given turn, or nil.
func (p *DialogueProgress) ChosenOption(turnID string) *content.DialogueOption {
	optID, ok := p.choices[turnID]
	if !ok {
		return nil
	}
	for i := range p.q.Turns {
		if p.q.Turns[i].ID == turnID {
			return findOption(p.q.Turns[i], optID)
		}
	}
	return nil
}

// Choose records the option for the current turn and advances. It returns
// the points the option awarded and whether the dialogue is now complete.
// Choosing after completion, or an unknown option id, is a no-op.
func (p *DialogueProgress) Choose(optionID string) (awarded int, done bool) {
	if p.Done() {
		return 0, true
	}
	turn := p.q.Turns[p.turn]
	opt := findOption(turn, optionID)
	if opt == nil {
		return 0, false
	}
	p.choices[turn.ID] = opt.ID
	p.points += opt.Points
	p.turn++
	return opt.Points, p.Done()
}

// Result computes the final scoring outcome from the accumulated choices.
func (p *DialogueProgress) Result() Result {
	return Dialogue(p.q, p.choices)
}
