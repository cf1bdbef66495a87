package progression

// RankRequirements are the secondary gates a user must meet in addition to
// the level range.
type RankRequirements struct {
	Accuracy float64
	Streak   int
	Lessons  int
}

type RankDefinition struct {
	Name         string
	MinLevel     int
	MaxLevel     int
	Requirements RankRequirements
	Color        string
}

// RankTable is ordered lowest tier first. Level ranges partition [1, MaxLevel]
// and requirement thresholds are non-decreasing with tier.
var RankTable = []RankDefinition{
	{Name: "Bronze", MinLevel: 1, MaxLevel: 5, Requirements: RankRequirements{Accuracy: 0, Streak: 0, Lessons: 0}, Color: "#cd7f32"},
	{Name: "Silver", MinLevel: 6, MaxLevel: 10, Requirements: RankRequirements{Accuracy: 50, Streak: 3, Lessons: 5}, Color: "#c0c0c0"},
	{Name: "Topaz", MinLevel: 11, MaxLevel: 15, Requirements: RankRequirements{Accuracy: 65, Streak: 5, Lessons: 10}, Color: "#ffc87c"},
	{Name: "Sapphire", MinLevel: 16, MaxLevel: 20, Requirements: RankRequirements{Accuracy: 75, Streak: 7, Lessons: 20}, Color: "#0f52ba"},
	{Name: "Ruby", MinLevel: 21, MaxLevel: 24, Requirements: RankRequirements{Accuracy: 82, Streak: 10, Lessons: 35}, Color: "#e0115f"},
	{Name: "Emerald", MinLevel: 25, MaxLevel: 27, Requirements: RankRequirements{Accuracy: 88, Streak: 14, Lessons: 50}, Color: "#50c878"},
	{Name: "Diamond", MinLevel: 28, MaxLevel: 30, Requirements: RankRequirements{Accuracy: 92, Streak: 21, Lessons: 75}, Color: "#b9f2ff"},
}

// DefaultRank is the lowest tier, used when nothing matches.
var DefaultRank = RankTable[0]

// RankStats are the profile fields rank resolution depends on.
type RankStats struct {
	Level            int
	Accuracy         float64
	Streak           int
	LessonsCompleted int
}

// ResolveRank scans from the highest tier down and returns the first rank
// whose level range and all secondary gates are satisfied. A user whose level
// lands in a high rank's range but who fails that rank's gates falls all the
// way through to the default; level alone does not guarantee rank.
func ResolveRank(stats RankStats) RankDefinition {
	for i := len(RankTable) - 1; i >= 0; i-- {
		r := RankTable[i]
		if stats.Level < r.MinLevel || stats.Level > r.MaxLevel {
			continue
		}
		if stats.Accuracy >= r.Requirements.Accuracy &&
			stats.Streak >= r.Requirements.Streak &&
			stats.LessonsCompleted >= r.Requirements.Lessons {
			return r
		}
	}
	return DefaultRank
}

// RankByName looks a rank up in the table; falls back to the default for
// unknown names so a malformed stored rank never breaks rendering.
func RankByName(name string) RankDefinition {
	for _, r := range RankTable {
		if r.Name == name {
			return r
		}
	}
	return DefaultRank
}

// rankTier returns the table index of a rank name, -1 if unknown.
func rankTier(name string) int {
	for i, r := range RankTable {
		if r.Name == name {
			return i
		}
	}
	return -1
}
