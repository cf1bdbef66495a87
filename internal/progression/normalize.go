package progression

import "github.com/lingo-app/backend/internal/models"

// NormalizeProfile repairs malformed or partially-initialized profile fields
// in place, once, at the storage boundary. Business logic downstream may then
// assume well-formed values instead of defensively re-checking. Returns true
// when anything was repaired (worth a log line, not an error; a half-written
// document is an expected transient state right after signup).
func NormalizeProfile(p *models.UserProfile, maxLives int) bool {
	repaired := false

	clampInt64 := func(v *int64) {
		if *v < 0 {
			*v = 0
			repaired = true
		}
	}
	clampInt := func(v *int) {
		if *v < 0 {
			*v = 0
			repaired = true
		}
	}

	clampInt64(&p.XP)
	clampInt64(&p.WeeklyXP)
	clampInt(&p.CurrentStreak)
	clampInt(&p.LongestStreak)
	clampInt(&p.ExercisesAnswered)
	clampInt(&p.ExercisesCorrect)
	clampInt(&p.LessonsCompleted)
	clampInt(&p.PerfectLessons)
	clampInt(&p.ChallengesCompleted)
	clampInt(&p.Coins)
	clampInt(&p.Tickets)
	clampInt(&p.Lives)

	if p.ExercisesCorrect > p.ExercisesAnswered {
		p.ExercisesCorrect = p.ExercisesAnswered
		repaired = true
	}
	if p.LongestStreak < p.CurrentStreak {
		p.LongestStreak = p.CurrentStreak
		repaired = true
	}
	if p.Level < 1 {
		p.Level = 1
		repaired = true
	}
	if p.Lives > maxLives {
		p.Lives = maxLives
		repaired = true
	}
	if rankTier(p.Rank) < 0 {
		p.Rank = DefaultRank.Name
		repaired = true
	}
	return repaired
}
