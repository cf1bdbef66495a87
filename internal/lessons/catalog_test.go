package lessons

import "testing"

func TestLoadEmbeddedContent(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if catalog.Len() == 0 {
		t.Fatal("catalog is empty")
	}

	for _, s := range catalog.Summaries() {
		lesson, ok := catalog.ByID(s.ID)
		if !ok {
			t.Errorf("summary id %q not resolvable via ByID", s.ID)
			continue
		}
		if len(lesson.Exercises) != s.ExerciseCount {
			t.Errorf("lesson %q: summary count %d, actual %d", s.ID, s.ExerciseCount, len(lesson.Exercises))
		}
		if lesson.BaseXP <= 0 {
			t.Errorf("lesson %q has base xp %v", s.ID, lesson.BaseXP)
		}
		for _, ex := range lesson.Exercises {
			if ex.ID == "" || ex.Prompt == "" {
				t.Errorf("lesson %q has an exercise missing id or prompt", s.ID)
			}
		}
	}
}

func TestCatalogByIDUnknown(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := catalog.ByID("no-such-lesson"); ok {
		t.Error("ByID returned a lesson for an unknown id")
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	tests := []struct {
		difficulty string
		want       float64
	}{
		{"easy", 1.0},
		{"medium", 1.25},
		{"hard", 1.5},
		{"", 1.0},
		{"impossible", 1.0},
	}
	for _, tt := range tests {
		if got := DifficultyMultiplier(tt.difficulty); got != tt.want {
			t.Errorf("DifficultyMultiplier(%q) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}
