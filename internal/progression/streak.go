package progression

import "time"

// StreakResult is the outcome of a streak update.
type StreakResult struct {
	Current int
	Longest int
}

// UpdateStreak computes the new streak counters for an activity at now.
// Dates are compared by civil calendar day:
//   - no prior activity: streak starts at 1
//   - same day: unchanged (replays are no-ops)
//   - next day: streak increments
//   - gap of more than one day: streak resets to 1
//   - future-dated last activity (clock skew): reset to 1
func UpdateStreak(currentStreak, longestStreak int, lastActive *time.Time, now time.Time) StreakResult {
	newStreak := 1
	if lastActive != nil {
		switch diff := daysBetween(*lastActive, now); {
		case diff == 0:
			newStreak = currentStreak
		case diff == 1:
			newStreak = currentStreak + 1
		default:
			// Broken streak, or a future-dated record.
			newStreak = 1
		}
	}

	newLongest := longestStreak
	if newStreak > newLongest {
		newLongest = newStreak
	}
	return StreakResult{Current: newStreak, Longest: newLongest}
}

var streakMilestones = map[int]bool{7: true, 14: true, 30: true, 50: true, 100: true, 365: true}

// IsStreakMilestone reports whether a streak length is worth a notification.
func IsStreakMilestone(n int) bool {
	return streakMilestones[n]
}

// daysBetween returns whole civil days from a to b, comparing each value's
// own calendar date. The stored last-active value is a bare date (midnight
// UTC from the DATE column); converting it into the server's zone would
// shift it across midnight, so the date components are taken as-is.
// Negative when a's date is after b's.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
