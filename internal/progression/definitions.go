package progression

import "github.com/lingo-app/backend/internal/models"

// Requirement is the declarative predicate shared by badges and achievements.
// Zero-valued fields are not checked. Accuracy gates only apply once the
// minimum answer sample is reached, so a fresh account with one lucky answer
// does not sweep every accuracy award.
type Requirement struct {
	MinXP             int64
	MinLevel          int
	MinStreak         int
	MinLongestStreak  int
	MinLessons        int
	MinPerfectLessons int
	MinChallenges     int
	MinAccuracy       float64
	AccuracySample    int
	MinCoins          int
}

// MetBy evaluates the predicate against the current profile snapshot only.
func (r Requirement) MetBy(p *models.UserProfile) bool {
	if p.XP < r.MinXP {
		return false
	}
	if ResolveLevel(p.XP).Level < r.MinLevel {
		return false
	}
	if p.CurrentStreak < r.MinStreak {
		return false
	}
	if p.LongestStreak < r.MinLongestStreak {
		return false
	}
	if p.LessonsCompleted < r.MinLessons {
		return false
	}
	if p.PerfectLessons < r.MinPerfectLessons {
		return false
	}
	if p.ChallengesCompleted < r.MinChallenges {
		return false
	}
	if r.MinAccuracy > 0 {
		if p.ExercisesAnswered < r.AccuracySample {
			return false
		}
		if p.Accuracy() < r.MinAccuracy {
			return false
		}
	}
	if p.Coins < r.MinCoins {
		return false
	}
	return true
}

// Reward is applied additively to currency balances when a definition unlocks.
type Reward struct {
	Coins   int
	Tickets int
}

type Definition struct {
	ID          string
	Name        string
	Description string
	Tier        string
	Requires    Requirement
	Reward      Reward
}

// Unlock kinds as stored in the unlocks table.
const (
	KindBadge       = "badge"
	KindAchievement = "achievement"
)

var Badges = []Definition{
	{ID: "first_lesson", Name: "First Words", Description: "Complete your first lesson", Tier: "bronze",
		Requires: Requirement{MinLessons: 1}, Reward: Reward{Coins: 50}},
	{ID: "lessons_10", Name: "Bookworm", Description: "Complete 10 lessons", Tier: "bronze",
		Requires: Requirement{MinLessons: 10}, Reward: Reward{Coins: 75}},
	{ID: "lessons_50", Name: "Scholar", Description: "Complete 50 lessons", Tier: "silver",
		Requires: Requirement{MinLessons: 50}, Reward: Reward{Coins: 150, Tickets: 1}},
	{ID: "lessons_200", Name: "Polyglot in Training", Description: "Complete 200 lessons", Tier: "gold",
		Requires: Requirement{MinLessons: 200}, Reward: Reward{Coins: 400, Tickets: 3}},
	{ID: "perfect_1", Name: "Flawless", Description: "Finish a lesson with every answer correct", Tier: "bronze",
		Requires: Requirement{MinPerfectLessons: 1}, Reward: Reward{Coins: 40}},
	{ID: "perfect_25", Name: "Perfectionist", Description: "25 perfect lessons", Tier: "silver",
		Requires: Requirement{MinPerfectLessons: 25}, Reward: Reward{Coins: 200, Tickets: 1}},
	{ID: "streak_3", Name: "Warming Up", Description: "Reach a 3-day streak", Tier: "bronze",
		Requires: Requirement{MinStreak: 3}, Reward: Reward{Coins: 30}},
	{ID: "streak_7", Name: "Week Warrior", Description: "Reach a 7-day streak", Tier: "silver",
		Requires: Requirement{MinStreak: 7}, Reward: Reward{Coins: 100}},
	{ID: "streak_30", Name: "Monthly Devotion", Description: "Reach a 30-day streak", Tier: "gold",
		Requires: Requirement{MinStreak: 30}, Reward: Reward{Coins: 300, Tickets: 2}},
	{ID: "sharp_ear", Name: "Sharp Ear", Description: "Hold 90% accuracy over 100 exercises", Tier: "silver",
		Requires: Requirement{MinAccuracy: 90, AccuracySample: 100}, Reward: Reward{Coins: 150}},
	{ID: "challenger", Name: "Challenger", Description: "Complete 5 timed challenges", Tier: "silver",
		Requires: Requirement{MinChallenges: 5}, Reward: Reward{Tickets: 2}},
	{ID: "arena_veteran", Name: "Arena Veteran", Description: "Complete 25 timed challenges", Tier: "gold",
		Requires: Requirement{MinChallenges: 25}, Reward: Reward{Coins: 250, Tickets: 3}},
}

var Achievements = []Definition{
	{ID: "xp_500", Name: "Rising Star", Description: "Earn 500 XP", Tier: "bronze",
		Requires: Requirement{MinXP: 500}, Reward: Reward{Coins: 25}},
	{ID: "xp_2500", Name: "Dedicated Learner", Description: "Earn 2,500 XP", Tier: "bronze",
		Requires: Requirement{MinXP: 2500}, Reward: Reward{Coins: 75}},
	{ID: "xp_10000", Name: "Powerhouse", Description: "Earn 10,000 XP", Tier: "silver",
		Requires: Requirement{MinXP: 10000}, Reward: Reward{Coins: 200, Tickets: 1}},
	{ID: "xp_23200", Name: "Summit", Description: "Earn enough XP for the final level", Tier: "gold",
		Requires: Requirement{MinXP: 23200}, Reward: Reward{Coins: 500, Tickets: 5}},
	{ID: "level_5", Name: "Out of the Nest", Description: "Reach level 5", Tier: "bronze",
		Requires: Requirement{MinLevel: 5}, Reward: Reward{Coins: 50}},
	{ID: "level_10", Name: "Double Digits", Description: "Reach level 10", Tier: "silver",
		Requires: Requirement{MinLevel: 10}, Reward: Reward{Coins: 100}},
	{ID: "level_20", Name: "Veteran", Description: "Reach level 20", Tier: "silver",
		Requires: Requirement{MinLevel: 20}, Reward: Reward{Coins: 250, Tickets: 1}},
	{ID: "level_30", Name: "Living Legend", Description: "Reach the final level", Tier: "gold",
		Requires: Requirement{MinLevel: 30}, Reward: Reward{Coins: 600, Tickets: 5}},
	{ID: "longest_streak_14", Name: "Fortnight of Fire", Description: "A best streak of 14 days", Tier: "silver",
		Requires: Requirement{MinLongestStreak: 14}, Reward: Reward{Coins: 150}},
	{ID: "longest_streak_100", Name: "Centurion", Description: "A best streak of 100 days", Tier: "gold",
		Requires: Requirement{MinLongestStreak: 100}, Reward: Reward{Coins: 1000, Tickets: 10}},
	{ID: "accuracy_80", Name: "Careful Student", Description: "Hold 80% accuracy over 50 exercises", Tier: "bronze",
		Requires: Requirement{MinAccuracy: 80, AccuracySample: 50}, Reward: Reward{Coins: 50}},
	{ID: "accuracy_95", Name: "Precision Instrument", Description: "Hold 95% accuracy over 200 exercises", Tier: "gold",
		Requires: Requirement{MinAccuracy: 95, AccuracySample: 200}, Reward: Reward{Coins: 400, Tickets: 2}},
	{ID: "saver_1000", Name: "Coin Collector", Description: "Hold 1,000 coins at once", Tier: "silver",
		Requires: Requirement{MinCoins: 1000}, Reward: Reward{Tickets: 2}},
	{ID: "challenge_first", Name: "Into the Arena", Description: "Complete your first timed challenge", Tier: "bronze",
		Requires: Requirement{MinChallenges: 1}, Reward: Reward{Coins: 40}},
}

// DefinitionByID searches both tables.
func DefinitionByID(id string) (Definition, bool) {
	for _, d := range Badges {
		if d.ID == id {
			return d, true
		}
	}
	for _, d := range Achievements {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// FindNewlyEarned returns every definition whose predicate passes against the
// current snapshot and whose id is not yet in the unlocked set. Evaluation
// order across definitions does not matter; multiple simultaneous unlocks are
// all returned.
func FindNewlyEarned(defs []Definition, unlocked map[string]bool, p *models.UserProfile) []Definition {
	var earned []Definition
	for _, d := range defs {
		if unlocked[d.ID] {
			continue
		}
		if d.Requires.MetBy(p) {
			earned = append(earned, d)
		}
	}
	return earned
}
