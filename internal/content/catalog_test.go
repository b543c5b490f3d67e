package content

import (
	"fmt"
	"testing"
	"testing/fstest"
)

func lessonDoc(id, courseID string, order int) string {
	return fmt.Sprintf(`{
		"id": %q, "title": "Lesson %s", "courseId": %q, "pathId": "foundation",
		"order": %d, "totalPoints": 10, "masteryThreshold": 70,
		"screens": [{"type": "challenge", "scenarios": [{"id": "s1", "questions": [
			{"id": "q-%s", "type": "single_choice", "points": 10,
			 "options": [{"id": "a", "text": "A"}, {"id": "b", "text": "B"}],
			 "correctAnswer": "a"}
		]}]}]
	}`, id, id, courseID, order, id)
}

func testFS() fstest.MapFS {
	paths := `{"paths": [
		{"id": "foundation", "title": "Foundation", "order": 1, "courses": [
			{"id": "pm-basics", "title": "PM Basics"},
			{"id": "stakeholders", "title": "Stakeholders"}
		]}
	]}`
	return fstest.MapFS{
		"paths.json":          {Data: []byte(paths)},
		"lessons/a.json":      {Data: []byte(lessonDoc("l1", "pm-basics", 1))},
		"lessons/b.json":      {Data: []byte(lessonDoc("l2", "pm-basics", 2))},
		"lessons/c.json":      {Data: []byte(lessonDoc("l3", "stakeholders", 1))},
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(testFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := c.LessonIDs(); len(got) != 3 {
		t.Errorf("LessonIDs = %v, want 3 ids", got)
	}
	if c.Lesson("l1") == nil || c.Lesson("missing") != nil {
		t.Error("Lesson lookup wrong")
	}
	courses := c.CoursesFor("foundation")
	if len(courses) != 2 || courses[0].ID != "pm-basics" {
		t.Errorf("CoursesFor = %v", courses)
	}
}

func TestLoadCatalog_DuplicateLessonID(t *testing.T) {
	fsys := testFS()
	fsys["lessons/d.json"] = &fstest.MapFile{Data: []byte(lessonDoc("l1", "pm-basics", 3))}
	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("expected error for duplicate lesson id")
	}
}

func TestLoadCatalog_InvalidLesson(t *testing.T) {
	fsys := testFS()
	fsys["lessons/bad.json"] = &fstest.MapFile{Data: []byte(`{"title": "no id"}`)}
	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("expected validation error")
	}
}

func TestLessonsFor_LockRule(t *testing.T) {
	c, err := LoadCatalog(testFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Fresh learner: first lesson open, second locked.
	fresh := Progress{}
	lessons := c.LessonsFor("pm-basics", fresh)
	if len(lessons) != 2 {
		t.Fatalf("len = %d, want 2", len(lessons))
	}
	if lessons[0].Locked {
		t.Error("first lesson must never be locked")
	}
	if !lessons[1].Locked {
		t.Error("second lesson should be locked for a fresh learner")
	}

	// Starting the first lesson unlocks the second.
	started := Progress{Started: map[string]bool{"l1": true}}
	lessons = c.LessonsFor("pm-basics", started)
	if lessons[1].Locked {
		t.Error("second lesson should unlock once the first is started")
	}
	if !lessons[0].InProgress {
		t.Error("started but not completed should be InProgress")
	}

	// Completing flips state.
	done := Progress{
		Completed:   map[string]bool{"l1": true},
		Started:     map[string]bool{"l1": true},
		BestPercent: map[string]int{"l1": 85},
	}
	lessons = c.LessonsFor("pm-basics", done)
	if !lessons[0].Completed || lessons[0].InProgress {
		t.Errorf("lesson state = %+v", lessons[0])
	}
	if lessons[0].BestPercent != 85 {
		t.Errorf("BestPercent = %d, want 85", lessons[0].BestPercent)
	}
}

func TestPaths_Aggregate(t *testing.T) {
	c, err := LoadCatalog(testFS())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := Progress{Completed: map[string]bool{"l1": true, "l3": true}}
	paths := c.Paths(p)
	if len(paths) != 1 {
		t.Fatalf("len(paths) = %d, want 1", len(paths))
	}
	ps := paths[0]
	if ps.TotalLessons != 3 || ps.CompletedLessons != 2 {
		t.Errorf("lessons = %d/%d, want 2/3", ps.CompletedLessons, ps.TotalLessons)
	}
	if ps.Percent != 67 {
		t.Errorf("Percent = %d, want 67", ps.Percent)
	}
}

func TestLoadBuiltin(t *testing.T) {
	c, err := LoadBuiltin()
	if err != nil {
		t.Fatalf("builtin content must load cleanly: %v", err)
	}
	if len(c.LessonIDs()) == 0 {
		t.Fatal("expected embedded lessons")
	}
	for _, id := range c.LessonIDs() {
		lesson := c.Lesson(id)
		if len(lesson.Screens) == 0 {
			t.Errorf("lesson %s has no screens", id)
		}
		// Declared totals must match the question points.
		sum := 0
		for _, q := range lesson.Questions() {
			sum += q.Base().Points
		}
		if sum != lesson.TotalPoints {
			t.Errorf("lesson %s: totalPoints %d, questions sum to %d", id, lesson.TotalPoints, sum)
		}
	}
}
