package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

// Path is a top-level learning track composed of courses.
type Path struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Domain      string   `json:"domain"`
	Order       int      `json:"order"`
	Courses     []Course `json:"courses"`
}

// Course is a named group of lessons within a path.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Progress holds the per-lesson facts the catalog needs to compute display
// state. Populated from the attempt store; zero value means a fresh learner.
type Progress struct {
	Completed   map[string]bool
	Started     map[string]bool
	BestPercent map[string]int
}

// ProgressSource supplies lesson progress facts.
type ProgressSource interface {
	LessonProgress() (Progress, error)
}

// LessonStatus is a lesson plus its computed display state.
type LessonStatus struct {
	Lesson      *Lesson
	Completed   bool
	InProgress  bool
	Locked      bool
	BestPercent int
}

// PathStatus is a path plus aggregate completion numbers.
type PathStatus struct {
	Path             Path
	TotalLessons     int
	CompletedLessons int
	Percent          int
}

// Catalog holds the full parsed contentset: paths, courses, and lessons.
type Catalog struct {
	paths   []Path
	lessons map[string]*Lesson
}

// LoadCatalog reads paths.json and every lesson under lessons/ from fsys,
// validating each lesson against the schema before parsing.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, "paths.json")
	if err != nil {
		return nil, fmt.Errorf("read paths.json: %w", err)
	}
	var pd struct {
		Paths []Path `json:"paths"`
	}
	if err := json.Unmarshal(raw, &pd); err != nil {
		return nil, fmt.Errorf("decode paths.json: %w", err)
	}
	sort.Slice(pd.Paths, func(i, j int) bool { return pd.Paths[i].Order < pd.Paths[j].Order })

	c := &Catalog{paths: pd.Paths, lessons: make(map[string]*Lesson)}

	entries, err := fs.ReadDir(fsys, "lessons")
	if err != nil {
		return nil, fmt.Errorf("read lessons dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, "lessons/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		if err := ValidateLesson(data); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		lesson, err := ParseLesson(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, dup := c.lessons[lesson.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate lesson id %q", e.Name(), lesson.ID)
		}
		c.lessons[lesson.ID] = lesson
	}

	return c, nil
}

// Lesson returns the lesson with the given id, or nil if unknown.
func (c *Catalog) Lesson(id string) *Lesson {
	return c.lessons[id]
}

// LessonIDs returns all lesson ids sorted lexically.
func (c *Catalog) LessonIDs() []string {
	ids := make([]string, 0, len(c.lessons))
	for id := range c.lessons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Paths returns all learning paths with aggregate progress.
func (c *Catalog) Paths(p Progress) []PathStatus {
	out := make([]PathStatus, 0, len(c.paths))
	for _, path := range c.paths {
		var total, done int
		for _, l := range c.lessons {
			if l.PathID != path.ID {
				continue
			}
			total++
			if p.Completed[l.ID] {
				done++
			}
		}
		pct := 0
		if total > 0 {
			pct = int(float64(done)/float64(total)*100 + 0.5)
		}
		out = append(out, PathStatus{
			Path:             path,
			TotalLessons:     total,
			CompletedLessons: done,
			Percent:          pct,
		})
	}
	return out
}

// CoursesFor returns the courses of a path in declaration order.
func (c *Catalog) CoursesFor(pathID string) []Course {
	for _, path := range c.paths {
		if path.ID == pathID {
			return path.Courses
		}
	}
	return nil
}

// LessonsFor returns a course's lessons in course order with display state.
// A lesson is locked when its predecessor is neither completed nor started;
// the first lesson is always unlocked.
func (c *Catalog) LessonsFor(courseID string, p Progress) []LessonStatus {
	var lessons []*Lesson
	for _, l := range c.lessons {
		if l.CourseID == courseID {
			lessons = append(lessons, l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })

	out := make([]LessonStatus, 0, len(lessons))
	for i, l := range lessons {
		locked := false
		if i > 0 {
			prev := lessons[i-1]
			locked = !p.Completed[prev.ID] && !p.Started[prev.ID]
		}
		out = append(out, LessonStatus{
			Lesson:      l,
			Completed:   p.Completed[l.ID],
			InProgress:  p.Started[l.ID] && !p.Completed[l.ID],
			Locked:      locked,
			BestPercent: p.BestPercent[l.ID],
		})
	}
	return out
}
