package models

import "time"

// UserProfile is the per-account progression document. Counter fields (xp,
// coins, tickets, answer totals) are only ever mutated by atomic increments;
// level and rank are derived caches reconciled from the primary fields.
type UserProfile struct {
	UserID              int64      `json:"user_id"`
	XP                  int64      `json:"xp"`
	WeeklyXP            int64      `json:"weekly_xp"`
	Level               int        `json:"level"`
	Rank                string     `json:"rank"`
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	LastActiveDate      *time.Time `json:"last_active_date"`
	ExercisesAnswered   int        `json:"exercises_answered"`
	ExercisesCorrect    int        `json:"exercises_correct"`
	LessonsCompleted    int        `json:"lessons_completed"`
	PerfectLessons      int        `json:"perfect_lessons"`
	ChallengesCompleted int        `json:"challenges_completed"`
	Coins               int        `json:"coins"`
	Tickets             int        `json:"tickets"`
	Lives               int        `json:"lives"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Accuracy returns the all-time answer accuracy as a percentage in [0,100].
func (p *UserProfile) Accuracy() float64 {
	if p.ExercisesAnswered <= 0 {
		return 0
	}
	return float64(p.ExercisesCorrect) / float64(p.ExercisesAnswered) * 100
}

// ── Request Types ─────────────────────────────────────────

// ExerciseResult is one exercise outcome inside a completed session.
type ExerciseResult struct {
	ExerciseID       string  `json:"exercise_id"`
	Correct          bool    `json:"correct"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
}

type CompleteSessionRequest struct {
	Exercises []ExerciseResult `json:"exercises"`
}

// ── Response Types ────────────────────────────────────────

type LevelProgress struct {
	Level           int     `json:"level"`
	XPIntoLevel     int64   `json:"xp_into_level"`
	XPForNextLevel  int64   `json:"xp_for_next_level"`
	ProgressPercent float64 `json:"progress_percent"`
}

type RankInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ProfileResponse struct {
	Profile       UserProfile   `json:"profile"`
	LevelProgress LevelProgress `json:"level_progress"`
	RankInfo      RankInfo      `json:"rank_info"`
	AccuracyPct   float64       `json:"accuracy_pct"`
	Badges        []string      `json:"badges"`
	Achievements  []string      `json:"achievements"`
	UnreadNotices int           `json:"unread_notifications"`
}

type CompleteSessionResponse struct {
	XPEarned        int             `json:"xp_earned"`
	CoinsEarned     int             `json:"coins_earned"`
	TicketsEarned   int             `json:"tickets_earned"`
	Streak          int             `json:"streak"`
	LongestStreak   int             `json:"longest_streak"`
	LevelProgress   LevelProgress   `json:"level_progress"`
	Rank            RankInfo        `json:"rank"`
	LeveledUp       bool            `json:"leveled_up"`
	RankedUp        bool            `json:"ranked_up"`
	NewBadges       []UnlockedEntry `json:"new_badges"`
	NewAchievements []UnlockedEntry `json:"new_achievements"`
	Lives           int             `json:"lives"`
}

// UnlockedEntry is a badge or achievement freshly earned in one evaluation pass.
type UnlockedEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tier        string `json:"tier"`
	Coins       int    `json:"coins,omitempty"`
	Tickets     int    `json:"tickets,omitempty"`
}

type LeaderboardResponse struct {
	Period      string             `json:"period"`
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
}

type LeaderboardEntry struct {
	Position      int    `json:"position"`
	UserID        int64  `json:"user_id"`
	DisplayName   string `json:"display_name"`
	Username      string `json:"username"`
	WeeklyXP      int64  `json:"weekly_xp"`
	Rank          string `json:"rank"`
	CurrentStreak int    `json:"current_streak"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type BuyLivesResponse struct {
	CoinsRemaining int `json:"coins_remaining"`
	Lives          int `json:"lives"`
}
