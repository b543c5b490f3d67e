package player

// feedbackDoneMsg ends the answer-feedback display period. Seq is the
// submission sequence the timer was armed for; a stale timer (the learner
// already moved on) is ignored.
type feedbackDoneMsg struct {
	Seq int
}

// dialogueStepMsg ends the pause between dialogue turns.
type dialogueStepMsg struct {
	Seq int
}

// persistDoneMsg reports the outcome of an async store write.
type persistDoneMsg struct {
	Err error
}
