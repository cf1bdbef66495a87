package progression

import "testing"

func TestLevelTableStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(LevelTable); i++ {
		prev, cur := LevelTable[i-1], LevelTable[i]
		if cur.Level != prev.Level+1 {
			t.Errorf("level numbers not contiguous at index %d: %d then %d", i, prev.Level, cur.Level)
		}
		if cur.XPRequired <= prev.XPRequired {
			t.Errorf("XPRequired not strictly increasing at level %d: %d then %d",
				cur.Level, prev.XPRequired, cur.XPRequired)
		}
	}
}

func TestResolveLevelZeroXP(t *testing.T) {
	got := ResolveLevel(0)
	if got.Level != 1 {
		t.Errorf("ResolveLevel(0).Level = %d, want 1", got.Level)
	}
	if got.ProgressPercent != 0 {
		t.Errorf("ResolveLevel(0).ProgressPercent = %f, want 0", got.ProgressPercent)
	}
}

func TestResolveLevelBoundaryInclusive(t *testing.T) {
	// At exactly the threshold for a level, the user is that level.
	for _, def := range LevelTable {
		got := ResolveLevel(def.XPRequired)
		if got.Level != def.Level {
			t.Errorf("ResolveLevel(%d).Level = %d, want %d", def.XPRequired, got.Level, def.Level)
		}
	}

	// One XP short of a threshold stays on the previous level.
	got := ResolveLevel(LevelTable[1].XPRequired - 1)
	if got.Level != 1 {
		t.Errorf("ResolveLevel(threshold-1).Level = %d, want 1", got.Level)
	}
}

func TestResolveLevelMonotonic(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= 25000; xp += 37 {
		got := ResolveLevel(xp)
		if got.Level < prev {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prev, got.Level)
		}
		if got.ProgressPercent < 0 || got.ProgressPercent > 100 {
			t.Fatalf("progress out of range at xp=%d: %f", xp, got.ProgressPercent)
		}
		prev = got.Level
	}
}

func TestResolveLevelMaxLevelTerminal(t *testing.T) {
	top := LevelTable[len(LevelTable)-1]

	got := ResolveLevel(top.XPRequired + 99999)
	if got.Level != MaxLevel {
		t.Errorf("Level = %d, want max %d", got.Level, MaxLevel)
	}
	if got.ProgressPercent != 100 {
		t.Errorf("ProgressPercent = %f, want 100", got.ProgressPercent)
	}
	if got.XPForNextLevel != 0 {
		t.Errorf("XPForNextLevel = %d, want 0 at max level", got.XPForNextLevel)
	}
}

func TestResolveLevelNegativeXPClamps(t *testing.T) {
	got := ResolveLevel(-500)
	if got.Level != 1 || got.XPIntoLevel != 0 || got.ProgressPercent != 0 {
		t.Errorf("ResolveLevel(-500) = %+v, want level 1 / 0 XP / 0%%", got)
	}
}

func TestResolveLevelMidLevelProgress(t *testing.T) {
	// Level 2 spans 100..250; 175 XP is exactly halfway.
	got := ResolveLevel(175)
	if got.Level != 2 {
		t.Fatalf("Level = %d, want 2", got.Level)
	}
	if got.XPIntoLevel != 75 {
		t.Errorf("XPIntoLevel = %d, want 75", got.XPIntoLevel)
	}
	if got.XPForNextLevel != 75 {
		t.Errorf("XPForNextLevel = %d, want 75", got.XPForNextLevel)
	}
	if got.ProgressPercent != 50 {
		t.Errorf("ProgressPercent = %f, want 50", got.ProgressPercent)
	}
}
