package lessons

// Exercise is one prompt inside a lesson. Grading happens on the client; the
// backend only receives outcome summaries.
type Exercise struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices,omitempty"`
	Answer  string   `json:"answer"`
}

type Lesson struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Unit       string     `json:"unit"`
	Language   string     `json:"language"`
	Difficulty string     `json:"difficulty"`
	BaseXP     float64    `json:"base_xp"`
	Exercises  []Exercise `json:"exercises"`
}

// LessonSummary is the list view with exercise content omitted.
type LessonSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Unit          string  `json:"unit"`
	Language      string  `json:"language"`
	Difficulty    string  `json:"difficulty"`
	BaseXP        float64 `json:"base_xp"`
	ExerciseCount int     `json:"exercise_count"`
}

// DifficultyMultiplier maps a lesson difficulty to the XP multiplier applied
// per exercise. Unknown difficulties fall back to 1.
func DifficultyMultiplier(difficulty string) float64 {
	switch difficulty {
	case "easy":
		return 1.0
	case "medium":
		return 1.25
	case "hard":
		return 1.5
	default:
		return 1.0
	}
}
