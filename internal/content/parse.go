package content

import (
	"encoding/json"
	"fmt"
)

// Wire structs mirror the lesson JSON layout. Domain types stay free of json
// tags; mapping happens here so authoring-format changes touch one file.

type lessonJSON struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	CourseID         string       `json:"courseId"`
	PathID           string       `json:"pathId"`
	Order            int          `json:"order"`
	Duration         int          `json:"duration"`
	XPReward         int          `json:"xpReward"`
	Description      string       `json:"description"`
	Objectives       []string     `json:"objectives"`
	TotalPoints      int          `json:"totalPoints"`
	MasteryThreshold int          `json:"masteryThreshold"`
	Screens          []screenJSON `json:"screens"`
}

type screenJSON struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      []string       `json:"body"`
	Takeaways []string       `json:"takeaways"`
	Scenarios []scenarioJSON `json:"scenarios"`
}

type scenarioJSON struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description []string          `json:"description"`
	Questions   []json.RawMessage `json:"questions"`
}

type questionHeader struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Question    string       `json:"question"`
	Points      int          `json:"points"`
	Instruction string       `json:"instruction"`
	Feedback    struct {
		Correct   string `json:"correct"`
		Incorrect string `json:"incorrect"`
	} `json:"feedback"`
}

type optionJSON struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Valid     bool   `json:"isValid"`
	IdealRank int    `json:"idealRank"`
}

type scoringTierJSON struct {
	Count  int `json:"count"`
	Points int `json:"points"`
}

type scoringTableJSON struct {
	Perfect *scoringTierJSON `json:"perfect"`
	Good    *scoringTierJSON `json:"good"`
	Partial *scoringTierJSON `json:"partial"`
	Low     *scoringTierJSON `json:"low"`
}

// ParseLesson decodes a lesson JSON document into the domain model.
// It fails on unknown question or screen types; field-level validation
// beyond decoding belongs to ValidateLesson.
func ParseLesson(data []byte) (*Lesson, error) {
	var lj lessonJSON
	if err := json.Unmarshal(data, &lj); err != nil {
		return nil, fmt.Errorf("decode lesson: %w", err)
	}

	lesson := &Lesson{
		ID:               lj.ID,
		Title:            lj.Title,
		CourseID:         lj.CourseID,
		PathID:           lj.PathID,
		Order:            lj.Order,
		Duration:         lj.Duration,
		XPReward:         lj.XPReward,
		Description:      lj.Description,
		Objectives:       lj.Objectives,
		TotalPoints:      lj.TotalPoints,
		MasteryThreshold: lj.MasteryThreshold,
	}

	for i, sj := range lj.Screens {
		screen, err := parseScreen(sj)
		if err != nil {
			return nil, fmt.Errorf("lesson %s: screen %d: %w", lj.ID, i, err)
		}
		lesson.Screens = append(lesson.Screens, screen)
	}

	return lesson, nil
}

func parseScreen(sj screenJSON) (Screen, error) {
	st := ScreenType(sj.Type)
	switch st {
	case ScreenHook, ScreenChallenge, ScreenReason, ScreenFeedback, ScreenTransfer, ScreenWrap:
	default:
		return Screen{}, fmt.Errorf("unknown screen type %q", sj.Type)
	}

	screen := Screen{
		Type:      st,
		Title:     sj.Title,
		Body:      sj.Body,
		Takeaways: sj.Takeaways,
	}

	for _, scj := range sj.Scenarios {
		scenario := Scenario{
			ID:          scj.ID,
			Title:       scj.Title,
			Description: scj.Description,
		}
		for _, raw := range scj.Questions {
			q, err := parseQuestion(raw)
			if err != nil {
				return Screen{}, fmt.Errorf("scenario %s: %w", scj.ID, err)
			}
			scenario.Questions = append(scenario.Questions, q)
		}
		screen.Scenarios = append(screen.Scenarios, scenario)
	}

	return screen, nil
}

func parseQuestion(raw json.RawMessage) (Question, error) {
	var hdr questionHeader
	if err := json.Unmarshal(raw, &hdr); err != nil {
		return nil, fmt.Errorf("decode question header: %w", err)
	}

	base := QuestionBase{
		ID:          hdr.ID,
		Prompt:      hdr.Question,
		Points:      hdr.Points,
		Instruction: hdr.Instruction,
		Feedback: Feedback{
			Correct:   hdr.Feedback.Correct,
			Incorrect: hdr.Feedback.Incorrect,
		},
	}

	var (
		q   Question
		err error
	)
	switch hdr.Type {
	case TypeSingleChoice:
		q, err = parseSingleChoice(base, raw)
	case TypeMultiSelect:
		q, err = parseMultiSelect(base, raw)
	case TypeMatching:
		q, err = parseMatching(base, raw)
	case TypeRanking:
		q, err = parseRanking(base, raw)
	case TypeFreeText:
		q, err = parseFreeText(base, raw)
	case TypeSwipeClassifier:
		q, err = parseSwipeClassifier(base, raw)
	case TypeSentenceBuilder:
		q, err = parseSentenceBuilder(base, raw)
	case TypeStrategyBuilder:
		q, err = parseStrategyBuilder(base, raw)
	case TypeDialogueSimulator:
		q, err = parseDialogueSimulator(base, raw)
	default:
		return nil, fmt.Errorf("question %s: unknown type %q", hdr.ID, hdr.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("question %s: %w", hdr.ID, err)
	}
	return q, nil
}

func parseSingleChoice(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Options       []optionJSON `json:"options"`
		CorrectAnswer string       `json:"correctAnswer"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &SingleChoice{QuestionBase: base, CorrectOption: body.CorrectAnswer}
	for _, o := range body.Options {
		q.Options = append(q.Options, Option{ID: o.ID, Text: o.Text})
	}
	return q, nil
}

func parseMultiSelect(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Options []optionJSON `json:"options"`
		// Explicit key overrides the per-option isValid flags when present.
		CorrectAnswers []string `json:"correctAnswers"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &MultiSelect{QuestionBase: base}
	explicit := make(map[string]bool, len(body.CorrectAnswers))
	for _, id := range body.CorrectAnswers {
		explicit[id] = true
	}
	for _, o := range body.Options {
		valid := o.Valid
		if len(explicit) > 0 {
			valid = explicit[o.ID]
		}
		q.Options = append(q.Options, MultiSelectOption{ID: o.ID, Text: o.Text, Valid: valid})
	}
	return q, nil
}

func parseMatching(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Items []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
			Match string `json:"match"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &Matching{QuestionBase: base}
	for _, it := range body.Items {
		q.Items = append(q.Items, MatchItem{ID: it.ID, Label: it.Label, Match: it.Match})
	}
	return q, nil
}

func parseRanking(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Options []optionJSON `json:"options"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &Ranking{QuestionBase: base}
	for _, o := range body.Options {
		q.Options = append(q.Options, RankOption{ID: o.ID, Text: o.Text, IdealRank: o.IdealRank})
	}
	return q, nil
}

func parseFreeText(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		MinWords        int      `json:"minWords"`
		MaxWords        int      `json:"maxWords"`
		SuccessCriteria []string `json:"successCriteria"`
		ModelAnswer     string   `json:"modelAnswer"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return &FreeText{
		QuestionBase:    base,
		MinWords:        body.MinWords,
		MaxWords:        body.MaxWords,
		SuccessCriteria: body.SuccessCriteria,
		ModelAnswer:     body.ModelAnswer,
	}, nil
}

func parseSwipeClassifier(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Cards []struct {
			ID            string `json:"id"`
			Statement     string `json:"statement"`
			CorrectAnswer string `json:"correctAnswer"`
			Explanation   string `json:"explanation"`
		} `json:"cards"`
		Scoring scoringTableJSON `json:"scoring"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &SwipeClassifier{QuestionBase: base, Scoring: parseScoringTable(body.Scoring)}
	for _, c := range body.Cards {
		dir := Direction(c.CorrectAnswer)
		if dir != SwipeLeft && dir != SwipeRight {
			return nil, fmt.Errorf("card %s: bad direction %q", c.ID, c.CorrectAnswer)
		}
		q.Cards = append(q.Cards, SwipeCard{
			ID:          c.ID,
			Statement:   c.Statement,
			Answer:      dir,
			Explanation: c.Explanation,
		})
	}
	return q, nil
}

func parseSentenceBuilder(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Sentence string `json:"sentence"`
		Blanks   []struct {
			ID             string   `json:"id"`
			CorrectAnswers []string `json:"correctAnswers"`
		} `json:"blanks"`
		WordBank []optionJSON     `json:"wordBank"`
		Scoring  scoringTableJSON `json:"scoring"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &SentenceBuilder{
		QuestionBase: base,
		Sentence:     body.Sentence,
		Scoring:      parseScoringTable(body.Scoring),
	}
	for _, b := range body.Blanks {
		q.Blanks = append(q.Blanks, Blank{ID: b.ID, Accept: b.CorrectAnswers})
	}
	for _, w := range body.WordBank {
		q.WordBank = append(q.WordBank, Option{ID: w.ID, Text: w.Text})
	}
	return q, nil
}

func parseStrategyBuilder(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Elements []struct {
			ID          string `json:"id"`
			Text        string `json:"text"`
			IsCorrect   bool   `json:"isCorrect"`
			Explanation string `json:"explanation"`
		} `json:"elements"`
		SelectCount int `json:"selectCount"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &StrategyBuilder{QuestionBase: base, SelectCount: body.SelectCount}
	for _, e := range body.Elements {
		q.Elements = append(q.Elements, StrategyElement{
			ID:          e.ID,
			Text:        e.Text,
			Correct:     e.IsCorrect,
			Explanation: e.Explanation,
		})
	}
	return q, nil
}

func parseDialogueSimulator(base QuestionBase, raw json.RawMessage) (Question, error) {
	var body struct {
		Turns []struct {
			ID      string `json:"id"`
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
			Options []struct {
				ID        string `json:"id"`
				Text      string `json:"text"`
				Points    int    `json:"points"`
				IsCorrect bool   `json:"isCorrect"`
				Technique string `json:"technique"`
			} `json:"options"`
		} `json:"turns"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	q := &DialogueSimulator{QuestionBase: base}
	for _, t := range body.Turns {
		turn := DialogueTurn{ID: t.ID, Speaker: t.Speaker, Text: t.Text}
		for _, o := range t.Options {
			turn.Options = append(turn.Options, DialogueOption{
				ID:        o.ID,
				Text:      o.Text,
				Points:    o.Points,
				Correct:   o.IsCorrect,
				Technique: o.Technique,
			})
		}
		q.Turns = append(q.Turns, turn)
	}
	return q, nil
}

func parseScoringTable(tj scoringTableJSON) ScoringTable {
	conv := func(t *scoringTierJSON) *ScoringTier {
		if t == nil {
			return nil
		}
		return &ScoringTier{Count: t.Count, Points: t.Points}
	}
	return ScoringTable{
		Perfect: conv(tj.Perfect),
		Good:    conv(tj.Good),
		Partial: conv(tj.Partial),
		Low:     conv(tj.Low),
	}
}
