package progression

import (
	"math"

	"github.com/lingo-app/backend/internal/config"
)

// DefaultExerciseBaseXP is the per-exercise base when the session context
// does not supply one (practice and challenge sessions).
const DefaultExerciseBaseXP = 10

// ComputeXP applies the award formula for one exercise:
//
//	round(base * accuracyFactor * streakBonus * speedFactor * difficulty)
//
// Wrong answers earn the configured partial credit instead of zero. The speed
// factor rewards answering near the ideal time and is clamped to the
// configured floor/ceiling; times under one second count as one to keep the
// factor bounded.
func ComputeXP(base float64, isCorrect bool, currentStreak int, timeTakenSeconds float64, difficultyMultiplier float64, p config.XPParams) int {
	if base <= 0 {
		return 0
	}
	if difficultyMultiplier <= 0 {
		difficultyMultiplier = 1
	}

	accuracyFactor := p.PartialCredit
	if isCorrect {
		accuracyFactor = 1.0
	}

	streakBonus := 1 + math.Min(p.StreakCap, float64(currentStreak)*p.StreakRate)

	speedFactor := p.IdealTimeSeconds / math.Max(1, timeTakenSeconds)
	if speedFactor < p.SpeedFloor {
		speedFactor = p.SpeedFloor
	}
	if speedFactor > p.SpeedCeiling {
		speedFactor = p.SpeedCeiling
	}

	return int(math.Round(base * accuracyFactor * streakBonus * speedFactor * difficultyMultiplier))
}
