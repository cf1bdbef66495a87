package progression

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	got := UpdateStreak(0, 0, nil, date(2026, time.March, 10, 9))
	if got.Current != 1 || got.Longest != 1 {
		t.Errorf("first activity = %+v, want current 1 / longest 1", got)
	}
}

func TestUpdateStreakSameDayNoOp(t *testing.T) {
	morning := date(2026, time.March, 10, 8)
	evening := date(2026, time.March, 10, 23)

	got := UpdateStreak(4, 9, &morning, evening)
	if got.Current != 4 {
		t.Errorf("same-day activity changed streak: %d, want 4", got.Current)
	}
	if got.Longest != 9 {
		t.Errorf("same-day activity changed longest: %d, want 9", got.Longest)
	}
}

func TestUpdateStreakNextDayIncrements(t *testing.T) {
	// Calendar days, not 24-hour windows: 23:50 followed by 00:10 the next
	// day still counts as consecutive.
	lateNight := date(2026, time.March, 10, 23)
	earlyNext := time.Date(2026, time.March, 11, 0, 10, 0, 0, time.UTC)

	got := UpdateStreak(6, 6, &lateNight, earlyNext)
	if got.Current != 7 {
		t.Errorf("next-day activity: current = %d, want 7", got.Current)
	}
	if got.Longest != 7 {
		t.Errorf("next-day activity: longest = %d, want 7", got.Longest)
	}
}

func TestUpdateStreakGapResets(t *testing.T) {
	last := date(2026, time.March, 10, 12)

	got := UpdateStreak(14, 14, &last, date(2026, time.March, 13, 12))
	if got.Current != 1 {
		t.Errorf("after 3-day gap: current = %d, want 1", got.Current)
	}
	if got.Longest != 14 {
		t.Errorf("after 3-day gap: longest = %d, want 14 (preserved)", got.Longest)
	}
}

func TestUpdateStreakClockSkewResets(t *testing.T) {
	// Last-active in the future relative to now. Treat like a broken chain
	// rather than guessing at the real timeline.
	future := date(2026, time.March, 20, 12)

	got := UpdateStreak(8, 10, &future, date(2026, time.March, 10, 12))
	if got.Current != 1 {
		t.Errorf("clock skew: current = %d, want 1", got.Current)
	}
	if got.Longest != 10 {
		t.Errorf("clock skew: longest = %d, want 10", got.Longest)
	}
}

func TestUpdateStreakLongestTracksCurrent(t *testing.T) {
	last := date(2026, time.March, 10, 12)

	got := UpdateStreak(3, 3, &last, date(2026, time.March, 11, 12))
	if got.Longest != 4 {
		t.Errorf("longest = %d, want 4 after current overtakes it", got.Longest)
	}

	got = UpdateStreak(2, 30, &last, date(2026, time.March, 11, 12))
	if got.Longest != 30 {
		t.Errorf("longest = %d, want 30 when current is still behind", got.Longest)
	}
}

func TestUpdateStreakSameCivilDayAcrossZones(t *testing.T) {
	// The stored last-active value is a bare date read back as midnight UTC.
	// A replay later that same calendar day on a server west of UTC must
	// stay a no-op even though the two instants straddle UTC midnight.
	est := time.FixedZone("EST", -5*3600)
	stored := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	got := UpdateStreak(4, 9, &stored, time.Date(2026, time.March, 11, 20, 0, 0, 0, est))
	if got.Current != 4 {
		t.Errorf("same-day replay across zones: current = %d, want 4 (no-op)", got.Current)
	}

	got = UpdateStreak(4, 9, &stored, time.Date(2026, time.March, 12, 8, 0, 0, 0, est))
	if got.Current != 5 {
		t.Errorf("next civil day across zones: current = %d, want 5", got.Current)
	}
}

func TestUpdateStreakMonthBoundary(t *testing.T) {
	last := date(2026, time.February, 28, 22)

	got := UpdateStreak(5, 5, &last, date(2026, time.March, 1, 7))
	if got.Current != 6 {
		t.Errorf("month boundary: current = %d, want 6", got.Current)
	}
}
