package models

import "time"

// Notification types written by the progression service.
const (
	NoticeLevelUp         = "level_up"
	NoticeRankUp          = "rank_up"
	NoticeBadgeUnlock     = "badge_unlock"
	NoticeAchievement     = "achievement_unlock"
	NoticeStreakMilestone = "streak_milestone"
	NoticeSystemWarning   = "system_warning"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
