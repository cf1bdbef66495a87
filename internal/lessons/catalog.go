package lessons

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed content/lessons.json
var contentFS embed.FS

// Catalog holds the static hand-authored lesson content compiled into the
// binary. It never changes at runtime.
type Catalog struct {
	lessons []Lesson
	byID    map[string]*Lesson
}

// Load parses and validates the embedded lesson content.
func Load() (*Catalog, error) {
	data, err := contentFS.ReadFile("content/lessons.json")
	if err != nil {
		return nil, fmt.Errorf("read lesson content: %w", err)
	}

	var lessons []Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("parse lesson content: %w", err)
	}

	byID := make(map[string]*Lesson, len(lessons))
	for i := range lessons {
		l := &lessons[i]
		if l.ID == "" {
			return nil, fmt.Errorf("lesson %d has no id", i)
		}
		if _, dup := byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %q", l.ID)
		}
		if len(l.Exercises) == 0 {
			return nil, fmt.Errorf("lesson %q has no exercises", l.ID)
		}
		if l.BaseXP <= 0 {
			return nil, fmt.Errorf("lesson %q has non-positive base xp", l.ID)
		}
		byID[l.ID] = l
	}

	return &Catalog{lessons: lessons, byID: byID}, nil
}

func (c *Catalog) ByID(id string) (*Lesson, bool) {
	l, ok := c.byID[id]
	return l, ok
}

func (c *Catalog) Summaries() []LessonSummary {
	summaries := make([]LessonSummary, 0, len(c.lessons))
	for _, l := range c.lessons {
		summaries = append(summaries, LessonSummary{
			ID:            l.ID,
			Title:         l.Title,
			Unit:          l.Unit,
			Language:      l.Language,
			Difficulty:    l.Difficulty,
			BaseXP:        l.BaseXP,
			ExerciseCount: len(l.Exercises),
		})
	}
	return summaries
}

func (c *Catalog) Len() int {
	return len(c.lessons)
}
