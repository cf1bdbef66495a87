package progression

import "github.com/lingo-app/backend/internal/models"

// LevelDefinition maps a level to the cumulative XP required to reach it.
type LevelDefinition struct {
	Level      int
	XPRequired int64
}

// LevelTable is ordered ascending; XPRequired is strictly increasing.
// Level gaps grow by 50 XP per level (100, 150, 200, ...).
var LevelTable = []LevelDefinition{
	{1, 0},
	{2, 100},
	{3, 250},
	{4, 450},
	{5, 700},
	{6, 1000},
	{7, 1350},
	{8, 1750},
	{9, 2200},
	{10, 2700},
	{11, 3250},
	{12, 3850},
	{13, 4500},
	{14, 5200},
	{15, 5950},
	{16, 6750},
	{17, 7600},
	{18, 8500},
	{19, 9450},
	{20, 10450},
	{21, 11500},
	{22, 12600},
	{23, 13750},
	{24, 14950},
	{25, 16200},
	{26, 17500},
	{27, 18850},
	{28, 20250},
	{29, 21700},
	{30, 23200},
}

// MaxLevel is the terminal level of the table.
var MaxLevel = LevelTable[len(LevelTable)-1].Level

// ResolveLevel returns the highest level fully funded by xp together with
// progress toward the next one. Negative xp is a contract violation from a
// malformed document and clamps to level 1 / 0 XP. At the top of the table
// the progress reports 100% with no next-level target.
func ResolveLevel(xp int64) models.LevelProgress {
	if xp < 0 {
		xp = 0
	}

	idx := 0
	for i, def := range LevelTable {
		if xp < def.XPRequired {
			break
		}
		idx = i
	}

	current := LevelTable[idx]
	if idx == len(LevelTable)-1 {
		return models.LevelProgress{
			Level:           current.Level,
			XPIntoLevel:     xp - current.XPRequired,
			XPForNextLevel:  0,
			ProgressPercent: 100,
		}
	}

	next := LevelTable[idx+1]
	span := next.XPRequired - current.XPRequired
	pct := float64(xp-current.XPRequired) / float64(span) * 100
	if pct > 100 {
		pct = 100
	}

	return models.LevelProgress{
		Level:           current.Level,
		XPIntoLevel:     xp - current.XPRequired,
		XPForNextLevel:  next.XPRequired - xp,
		ProgressPercent: pct,
	}
}
