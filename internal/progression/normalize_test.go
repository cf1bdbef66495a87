package progression

import (
	"testing"

	"github.com/lingo-app/backend/internal/models"
)

func TestNormalizeProfileClampsCorruptFields(t *testing.T) {
	p := &models.UserProfile{
		XP:                -50,
		Level:             0,
		Rank:              "Mithril",
		CurrentStreak:     -2,
		LongestStreak:     1,
		ExercisesAnswered: 10,
		ExercisesCorrect:  25,
		Lives:             99,
	}

	if !NormalizeProfile(p, 5) {
		t.Fatal("corrupt profile reported as already clean")
	}

	if p.XP != 0 {
		t.Errorf("XP = %d, want 0", p.XP)
	}
	if p.Level != 1 {
		t.Errorf("Level = %d, want 1", p.Level)
	}
	if p.Rank != DefaultRank.Name {
		t.Errorf("Rank = %q, want default %q", p.Rank, DefaultRank.Name)
	}
	if p.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", p.CurrentStreak)
	}
	if p.ExercisesCorrect > p.ExercisesAnswered {
		t.Errorf("correct %d exceeds answered %d after normalization", p.ExercisesCorrect, p.ExercisesAnswered)
	}
	if p.LongestStreak < p.CurrentStreak {
		t.Error("longest streak below current after normalization")
	}
	if p.Lives != 5 {
		t.Errorf("Lives = %d, want clamped to 5", p.Lives)
	}
}

func TestNormalizeProfileCleanIsUntouched(t *testing.T) {
	p := &models.UserProfile{
		XP: 700, Level: 5, Rank: "Bronze",
		CurrentStreak: 3, LongestStreak: 8,
		ExercisesAnswered: 40, ExercisesCorrect: 30,
		Lives: 4,
	}
	before := *p

	if NormalizeProfile(p, 5) {
		t.Error("clean profile reported as changed")
	}
	if *p != before {
		t.Errorf("clean profile mutated: %+v", *p)
	}
}
