package content

import "testing"

func TestValidateLesson_Valid(t *testing.T) {
	if err := ValidateLesson([]byte(sampleLesson)); err != nil {
		t.Errorf("sample lesson should validate: %v", err)
	}
}

func TestValidateLesson_MissingRequired(t *testing.T) {
	doc := `{"title": "no id", "totalPoints": 10, "masteryThreshold": 70,
		"screens": [{"type": "hook"}]}`
	if err := ValidateLesson([]byte(doc)); err == nil {
		t.Error("expected error for missing lesson id")
	}
}

func TestValidateLesson_BadQuestionType(t *testing.T) {
	doc := `{"id": "l1", "title": "t", "totalPoints": 0, "masteryThreshold": 0,
		"screens": [{"type": "challenge", "scenarios": [{"id": "s1", "questions": [
			{"id": "q1", "type": "essay", "points": 5}
		]}]}]}`
	if err := ValidateLesson([]byte(doc)); err == nil {
		t.Error("expected error for unknown question type")
	}
}

func TestValidateLesson_MissingAnswerKey(t *testing.T) {
	// single_choice without correctAnswer trips the per-type clause.
	doc := `{"id": "l1", "title": "t", "totalPoints": 10, "masteryThreshold": 70,
		"screens": [{"type": "challenge", "scenarios": [{"id": "s1", "questions": [
			{"id": "q1", "type": "single_choice", "points": 10,
			 "options": [{"id": "a", "text": "A"}]}
		]}]}]}`
	if err := ValidateLesson([]byte(doc)); err == nil {
		t.Error("expected error for single_choice without correctAnswer")
	}
}

func TestValidateLesson_EmptyOptionList(t *testing.T) {
	doc := `{"id": "l1", "title": "t", "totalPoints": 10, "masteryThreshold": 70,
		"screens": [{"type": "challenge", "scenarios": [{"id": "s1", "questions": [
			{"id": "q1", "type": "multi_select", "points": 10, "options": []}
		]}]}]}`
	if err := ValidateLesson([]byte(doc)); err == nil {
		t.Error("expected error for multi_select with no options")
	}
}

func TestValidateLesson_EmptyCardList(t *testing.T) {
	doc := `{"id": "l1", "title": "t", "totalPoints": 10, "masteryThreshold": 70,
		"screens": [{"type": "transfer", "scenarios": [{"id": "s1", "questions": [
			{"id": "q1", "type": "swipe_classifier", "points": 10, "cards": []}
		]}]}]}`
	if err := ValidateLesson([]byte(doc)); err == nil {
		t.Error("expected error for swipe_classifier with no cards")
	}
}

func TestValidateLesson_EmptyDialogueTurn(t *testing.T) {
	// A turn without options would leave the learner with nothing to choose
	// and the dialogue could never finish.
	doc := `{"id": "l1", "title": "t", "totalPoints": 10, "masteryThreshold": 70,
		"screens": [{"type": "transfer", "scenarios": [{"id": "s1", "questions": [
			{"id": "q1", "type": "dialogue_simulator", "points": 10,
			 "turns": [{"id": "t1", "speaker": "Sponsor", "text": "Well?", "options": []}]}
		]}]}]}`
	if err := ValidateLesson([]byte(doc)); err == nil {
		t.Error("expected error for dialogue turn with no options")
	}
}

func TestValidateLesson_InvalidJSON(t *testing.T) {
	if err := ValidateLesson([]byte("{")); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestValidateLesson_ThresholdRange(t *testing.T) {
	doc := `{"id": "l1", "title": "t", "totalPoints": 10, "masteryThreshold": 120,
		"screens": [{"type": "hook"}]}`
	if err := ValidateLesson([]byte(doc)); err == nil {
		t.Error("expected error for threshold over 100")
	}
}
