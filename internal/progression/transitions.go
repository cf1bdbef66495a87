package progression

import "github.com/lingo-app/backend/internal/models"

// ProfileStats are the primary fields the derived level and rank are
// recomputed from.
type ProfileStats struct {
	XP               int64
	Accuracy         float64
	Streak           int
	LessonsCompleted int
}

// StatsOf extracts resolver inputs from a profile snapshot.
func StatsOf(p *models.UserProfile) ProfileStats {
	return ProfileStats{
		XP:               p.XP,
		Accuracy:         p.Accuracy(),
		Streak:           p.CurrentStreak,
		LessonsCompleted: p.LessonsCompleted,
	}
}

// Transitions describes the derived-field changes between the last persisted
// state and a fresh snapshot.
type Transitions struct {
	LeveledUp bool
	OldLevel  int
	NewLevel  int

	RankChanged bool
	RankedUp    bool
	OldRank     string
	NewRank     string
}

// DetectTransitions compares the last-observed derived fields against the
// resolvers' output for the current snapshot. Comparing against what was
// stored (rather than re-deriving the previous state) keeps reconciliation
// idempotent: once the write lands, re-running detection on the same snapshot
// reports no transition, even if an earlier notification write was lost.
func DetectTransitions(storedLevel int, storedRank string, curr ProfileStats) Transitions {
	lvl := ResolveLevel(curr.XP)
	rank := ResolveRank(RankStats{
		Level:            lvl.Level,
		Accuracy:         curr.Accuracy,
		Streak:           curr.Streak,
		LessonsCompleted: curr.LessonsCompleted,
	})

	t := Transitions{
		OldLevel: storedLevel,
		NewLevel: lvl.Level,
		OldRank:  storedRank,
		NewRank:  rank.Name,
	}
	t.LeveledUp = lvl.Level > storedLevel
	t.RankChanged = rank.Name != storedRank
	t.RankedUp = t.RankChanged && rankTier(rank.Name) > rankTier(storedRank)
	return t
}

// NeedsReconcile reports whether the stored derived fields have drifted from
// the snapshot (in either direction).
func (t Transitions) NeedsReconcile() bool {
	return t.NewLevel != t.OldLevel || t.RankChanged
}
