package progression

import "testing"

func TestRankTableWellFormed(t *testing.T) {
	// Level ranges must partition [1, MaxLevel] contiguously and gates must
	// be non-decreasing with tier.
	if RankTable[0].MinLevel != 1 {
		t.Errorf("lowest rank MinLevel = %d, want 1", RankTable[0].MinLevel)
	}
	if RankTable[len(RankTable)-1].MaxLevel != MaxLevel {
		t.Errorf("highest rank MaxLevel = %d, want %d", RankTable[len(RankTable)-1].MaxLevel, MaxLevel)
	}
	for i := 1; i < len(RankTable); i++ {
		prev, cur := RankTable[i-1], RankTable[i]
		if cur.MinLevel != prev.MaxLevel+1 {
			t.Errorf("rank %q level range not contiguous with %q", cur.Name, prev.Name)
		}
		if cur.Requirements.Accuracy < prev.Requirements.Accuracy ||
			cur.Requirements.Streak < prev.Requirements.Streak ||
			cur.Requirements.Lessons < prev.Requirements.Lessons {
			t.Errorf("rank %q gates decrease relative to %q", cur.Name, prev.Name)
		}
	}
}

func TestResolveRankExactThresholds(t *testing.T) {
	// Equality at every gate qualifies; thresholds are inclusive.
	got := ResolveRank(RankStats{Level: 11, Accuracy: 65, Streak: 5, LessonsCompleted: 10})
	if got.Name != "Topaz" {
		t.Errorf("ResolveRank(level 11, exact gates) = %q, want Topaz", got.Name)
	}
}

func TestResolveRankTableCases(t *testing.T) {
	tests := []struct {
		name  string
		stats RankStats
		want  string
	}{
		{"fresh account", RankStats{Level: 1}, "Bronze"},
		{"top of bronze range", RankStats{Level: 5, Accuracy: 100, Streak: 50, LessonsCompleted: 99}, "Bronze"},
		{"silver qualified", RankStats{Level: 7, Accuracy: 60, Streak: 4, LessonsCompleted: 8}, "Silver"},
		{"silver level but weak gates", RankStats{Level: 7, Accuracy: 40, Streak: 0, LessonsCompleted: 1}, "Bronze"},
		{"diamond qualified", RankStats{Level: 30, Accuracy: 95, Streak: 25, LessonsCompleted: 120}, "Diamond"},
		{"level beyond table clamps nothing", RankStats{Level: 11, Accuracy: 64.9, Streak: 5, LessonsCompleted: 10}, "Bronze"},
	}

	for _, tt := range tests {
		if got := ResolveRank(tt.stats); got.Name != tt.want {
			t.Errorf("%s: ResolveRank(%+v) = %q, want %q", tt.name, tt.stats, got.Name, tt.want)
		}
	}
}

// A user inside a high rank's level range who fails its secondary gates is
// not re-checked against lower ranks' level ranges, so they fall through to
// the default. Intentional gating: level alone does not guarantee rank.
func TestResolveRankFallthroughToDefault(t *testing.T) {
	got := ResolveRank(RankStats{Level: 22, Accuracy: 50, Streak: 0, LessonsCompleted: 3})
	if got.Name != DefaultRank.Name {
		t.Errorf("high level with failed gates resolved to %q, want default %q", got.Name, DefaultRank.Name)
	}
}

func TestResolveRankDeterministic(t *testing.T) {
	stats := RankStats{Level: 17, Accuracy: 80, Streak: 9, LessonsCompleted: 30}
	first := ResolveRank(stats)
	for i := 0; i < 5; i++ {
		if got := ResolveRank(stats); got.Name != first.Name {
			t.Fatalf("ResolveRank not deterministic: %q then %q", first.Name, got.Name)
		}
	}
}

func TestResolveRankAlwaysInTable(t *testing.T) {
	stats := []RankStats{
		{Level: 0}, {Level: -3}, {Level: 999, Accuracy: 100, Streak: 100, LessonsCompleted: 1000},
		{Level: 15, Accuracy: 70, Streak: 6, LessonsCompleted: 12},
	}
	for _, s := range stats {
		got := ResolveRank(s)
		if rankTier(got.Name) < 0 {
			t.Errorf("ResolveRank(%+v) returned %q, not a table member", s, got.Name)
		}
	}
}

func TestRankByNameUnknownFallsBack(t *testing.T) {
	if got := RankByName("Adamantium"); got.Name != DefaultRank.Name {
		t.Errorf("RankByName(unknown) = %q, want default %q", got.Name, DefaultRank.Name)
	}
}
