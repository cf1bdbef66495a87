package progression

import (
	"testing"

	"github.com/lingo-app/backend/internal/config"
)

var lessonParams = config.Default().XP.Lesson

func TestComputeXPCorrectBaseline(t *testing.T) {
	// No streak, exactly ideal time, no difficulty modifier.
	got := ComputeXP(10, true, 0, 20, 1.0, lessonParams)
	if got != 10 {
		t.Errorf("baseline correct answer = %d, want 10", got)
	}
}

func TestComputeXPWrongAnswerPartialCredit(t *testing.T) {
	correct := ComputeXP(10, true, 0, 20, 1.0, lessonParams)
	wrong := ComputeXP(10, false, 0, 20, 1.0, lessonParams)

	if wrong <= 0 {
		t.Errorf("wrong answer = %d, want a positive partial award", wrong)
	}
	if wrong >= correct {
		t.Errorf("wrong answer %d not less than correct answer %d", wrong, correct)
	}
	// 10 * 0.25 = 2.5, rounds to 3.
	if wrong != 3 {
		t.Errorf("wrong answer = %d, want 3", wrong)
	}
}

func TestComputeXPStreakBonusCapped(t *testing.T) {
	// Lesson params: 5% per streak day capped at +50%, so a 10-day streak
	// already hits the cap and longer streaks add nothing.
	atCap := ComputeXP(10, true, 10, 20, 1.0, lessonParams)
	beyond := ComputeXP(10, true, 500, 20, 1.0, lessonParams)

	if atCap != 15 {
		t.Errorf("streak 10 = %d, want 15", atCap)
	}
	if beyond != atCap {
		t.Errorf("streak 500 = %d, want capped at %d", beyond, atCap)
	}
}

func TestComputeXPSpeedClamped(t *testing.T) {
	tests := []struct {
		name        string
		timeSeconds float64
		want        int
	}{
		{"instant answer hits ceiling", 0, 15},          // 10 * 1.5
		{"fast answer hits ceiling", 5, 15},             // raw 4.0 clamps to 1.5
		{"double ideal time", 40, 5},                    // 10 * 0.5
		{"very slow answer hits floor", 600, 5},         // raw 0.033 clamps to 0.5
		{"slightly quick stays unclamped", 16, 13},      // 10 * 1.25 = 12.5 -> 13
	}

	for _, tt := range tests {
		if got := ComputeXP(10, true, 0, tt.timeSeconds, 1.0, lessonParams); got != tt.want {
			t.Errorf("%s: ComputeXP = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestComputeXPDifficultyMultiplier(t *testing.T) {
	easy := ComputeXP(10, true, 0, 20, 1.0, lessonParams)
	hard := ComputeXP(10, true, 0, 20, 1.5, lessonParams)

	if hard != 15 || easy != 10 {
		t.Errorf("difficulty scaling: easy %d hard %d, want 10 and 15", easy, hard)
	}

	// Nonsense multipliers are treated as neutral rather than zeroing awards.
	if got := ComputeXP(10, true, 0, 20, -2, lessonParams); got != easy {
		t.Errorf("negative difficulty = %d, want %d", got, easy)
	}
}

func TestComputeXPZeroBase(t *testing.T) {
	if got := ComputeXP(0, true, 12, 1, 2.0, lessonParams); got != 0 {
		t.Errorf("zero base = %d, want 0", got)
	}
}

func TestComputeXPChallengeParamsStackFactors(t *testing.T) {
	p := config.Default().XP.Challenge

	// base 10, correct, 10-day streak (10 * 0.1 = +100%, at cap),
	// instant answer (ceiling 2.0), hard exercise (1.5):
	// 10 * 1.0 * 2.0 * 2.0 * 1.5 = 60.
	if got := ComputeXP(10, true, 10, 0, 1.5, p); got != 60 {
		t.Errorf("stacked challenge factors = %d, want 60", got)
	}
}
