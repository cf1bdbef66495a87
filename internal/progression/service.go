package progression

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lingo-app/backend/internal/config"
	"github.com/lingo-app/backend/internal/models"
)

// SessionKind selects the XP parameter set and which counters a completed
// session bumps.
type SessionKind string

const (
	SessionLesson    SessionKind = "lesson"
	SessionPractice  SessionKind = "practice"
	SessionChallenge SessionKind = "challenge"
)

// Publisher pushes a committed profile document to live subscribers.
type Publisher interface {
	PublishProfile(userID int64, profile *models.UserProfile)
}

type Service struct {
	store     *Store
	cfg       *config.Config
	publisher Publisher
}

func NewService(store *Store, cfg *config.Config, publisher Publisher) *Service {
	return &Service{store: store, cfg: cfg, publisher: publisher}
}

func (s *Service) xpParams(kind SessionKind) config.XPParams {
	switch kind {
	case SessionChallenge:
		return s.cfg.XP.Challenge
	case SessionPractice:
		return s.cfg.XP.Practice
	default:
		return s.cfg.XP.Lesson
	}
}

// ── Session Completion ──────────────────────────────────

// CompleteSession is the single write path for lesson, practice and challenge
// completion: award XP, advance the streak, bump counters, reconcile derived
// level/rank, evaluate badge and achievement unlocks, and push the committed
// profile to live subscribers.
func (s *Service) CompleteSession(userID int64, kind SessionKind, baseXP, difficulty float64, exercises []models.ExerciseResult) (*models.CompleteSessionResponse, error) {
	if len(exercises) == 0 {
		return nil, fmt.Errorf("no exercises in session")
	}

	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if NormalizeProfile(profile, s.cfg.Lives.Max) {
		log.Printf("[progression] repaired malformed profile fields for user %d", userID)
	}

	if kind == SessionChallenge && profile.Lives <= 0 {
		return nil, fmt.Errorf("no lives left")
	}

	now := time.Now()
	streak := UpdateStreak(profile.CurrentStreak, profile.LongestStreak, profile.LastActiveDate, now)
	// Persisted unconditionally so lastActiveDate stays fresh even on
	// same-day replays.
	if err := s.store.UpdateStreakFields(userID, streak.Current, streak.Longest, now); err != nil {
		log.Printf("[progression] failed to persist streak for user %d: %v", userID, err)
	}
	if streak.Current > profile.CurrentStreak && IsStreakMilestone(streak.Current) {
		s.notify(userID, models.NoticeStreakMilestone,
			fmt.Sprintf("%d-day streak!", streak.Current),
			fmt.Sprintf("You have practiced %d days in a row. Keep it going!", streak.Current))
	}

	params := s.xpParams(kind)
	if baseXP <= 0 {
		baseXP = DefaultExerciseBaseXP
	}

	totalXP, correct := 0, 0
	for _, ex := range exercises {
		totalXP += ComputeXP(baseXP, ex.Correct, streak.Current, ex.TimeTakenSeconds, difficulty, params)
		if ex.Correct {
			correct++
		}
	}
	answered := len(exercises)
	isPerfect := correct == answered

	if err := s.store.AddXP(userID, totalXP); err != nil {
		// XP is a currency-adjacent balance: never swallow silently.
		log.Printf("[progression] AUDIT: failed to credit %d XP to user %d: %v", totalXP, userID, err)
	}
	if err := s.store.RecordSession(userID, answered, correct,
		kind == SessionLesson, isPerfect && kind == SessionLesson, kind == SessionChallenge); err != nil {
		log.Printf("[progression] failed to record session counters for user %d: %v", userID, err)
	}
	if err := s.store.LogXPEvent(userID, string(kind)+"_complete", totalXP, map[string]interface{}{
		"answered":   answered,
		"correct":    correct,
		"streak":     streak.Current,
		"difficulty": difficulty,
	}); err != nil {
		log.Printf("[progression] failed to log xp event for user %d: %v", userID, err)
	}

	if kind == SessionChallenge {
		if wrong := answered - correct; wrong > 0 {
			if err := s.store.LoseLives(userID, wrong); err != nil {
				log.Printf("[progression] failed to deduct lives for user %d: %v", userID, err)
			}
		}
	}

	// Re-read so reconciliation and unlock evaluation see the committed
	// counters, then compare against the last-observed derived fields.
	fresh, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	NormalizeProfile(fresh, s.cfg.Lives.Max)

	trans := DetectTransitions(fresh.Level, fresh.Rank, StatsOf(fresh))
	if trans.NeedsReconcile() {
		if err := s.store.ReconcileDerived(userID, trans.NewLevel, trans.NewRank); err != nil {
			log.Printf("[progression] failed to reconcile level/rank for user %d: %v", userID, err)
		} else {
			fresh.Level = trans.NewLevel
			fresh.Rank = trans.NewRank
		}
		if trans.LeveledUp {
			s.notify(userID, models.NoticeLevelUp, fmt.Sprintf("Level %d reached!", trans.NewLevel),
				fmt.Sprintf("You climbed from level %d to level %d.", trans.OldLevel, trans.NewLevel))
		}
		if trans.RankedUp {
			s.notify(userID, models.NoticeRankUp, fmt.Sprintf("Welcome to %s rank!", trans.NewRank),
				fmt.Sprintf("You advanced from %s to %s.", trans.OldRank, trans.NewRank))
		}
	}

	newBadges := s.awardUnlocks(userID, KindBadge, Badges, fresh)
	newAchievements := s.awardUnlocks(userID, KindAchievement, Achievements, fresh)

	coinsEarned, ticketsEarned := 0, 0
	for _, u := range append(append([]models.UnlockedEntry{}, newBadges...), newAchievements...) {
		coinsEarned += u.Coins
		ticketsEarned += u.Tickets
	}

	// Final reload picks up rewards and lives so the response and the live
	// push show what is actually stored.
	final, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		final = fresh
	} else {
		NormalizeProfile(final, s.cfg.Lives.Max)
	}
	if s.publisher != nil {
		s.publisher.PublishProfile(userID, final)
	}

	lvl := ResolveLevel(final.XP)
	rank := RankByName(final.Rank)

	return &models.CompleteSessionResponse{
		XPEarned:        totalXP,
		CoinsEarned:     coinsEarned,
		TicketsEarned:   ticketsEarned,
		Streak:          streak.Current,
		LongestStreak:   streak.Longest,
		LevelProgress:   lvl,
		Rank:            models.RankInfo{Name: rank.Name, Color: rank.Color},
		LeveledUp:       trans.LeveledUp,
		RankedUp:        trans.RankedUp,
		NewBadges:       newBadges,
		NewAchievements: newAchievements,
		Lives:           final.Lives,
	}, nil
}

// awardUnlocks evaluates one definition table against the snapshot and
// persists anything newly earned. The union write makes this idempotent; the
// reward is only applied when this call actually inserted the unlock.
func (s *Service) awardUnlocks(userID int64, kind string, defs []Definition, profile *models.UserProfile) []models.UnlockedEntry {
	unlocked, err := s.store.GetUnlocked(userID, kind)
	if err != nil {
		log.Printf("[progression] failed to load %s unlocks for user %d: %v", kind, userID, err)
		return []models.UnlockedEntry{}
	}

	entries := []models.UnlockedEntry{}
	for _, def := range FindNewlyEarned(defs, unlocked, profile) {
		inserted, err := s.store.Unlock(userID, kind, def.ID)
		if err != nil {
			log.Printf("[progression] failed to unlock %s %q for user %d: %v", kind, def.ID, userID, err)
			continue
		}
		if !inserted {
			continue
		}
		if err := s.store.ApplyReward(userID, def.Reward); err != nil {
			log.Printf("[progression] AUDIT: failed to credit reward (%d coins, %d tickets) for %s %q to user %d: %v",
				def.Reward.Coins, def.Reward.Tickets, kind, def.ID, userID, err)
		}
		title := def.Name
		if kind == KindBadge {
			s.notify(userID, models.NoticeBadgeUnlock, "Badge unlocked: "+title, def.Description)
		} else {
			s.notify(userID, models.NoticeAchievement, "Achievement unlocked: "+title, def.Description)
		}
		entries = append(entries, models.UnlockedEntry{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Tier:        def.Tier,
			Coins:       def.Reward.Coins,
			Tickets:     def.Reward.Tickets,
		})
	}
	return entries
}

// notify appends a notification, degrading to a log line when the user's log
// is at capacity; an unlock must never fail because the inbox is full.
func (s *Service) notify(userID int64, ntype, title, body string) {
	err := s.store.CreateNotification(userID, ntype, title, body,
		s.cfg.Notifications.Capacity, s.cfg.Notifications.WarnThreshold)
	if errors.Is(err, ErrNotificationCapacity) {
		log.Printf("[progression] notification dropped for user %d (inbox full): %s", userID, title)
		return
	}
	if err != nil {
		log.Printf("[progression] failed to create notification for user %d: %v", userID, err)
	}
}

// ── Profile ─────────────────────────────────────────────

func (s *Service) GetProfile(userID int64) (*models.ProfileResponse, error) {
	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}
	if NormalizeProfile(profile, s.cfg.Lives.Max) {
		log.Printf("[progression] repaired malformed profile fields for user %d", userID)
	}

	badges, err := s.store.ListUnlocked(userID, KindBadge)
	if err != nil {
		badges = []string{}
	}
	achievements, err := s.store.ListUnlocked(userID, KindAchievement)
	if err != nil {
		achievements = []string{}
	}
	unread, _ := s.store.CountUnreadNotifications(userID)

	lvl := ResolveLevel(profile.XP)
	rank := RankByName(profile.Rank)

	return &models.ProfileResponse{
		Profile:       *profile,
		LevelProgress: lvl,
		RankInfo:      models.RankInfo{Name: rank.Name, Color: rank.Color},
		AccuracyPct:   profile.Accuracy(),
		Badges:        badges,
		Achievements:  achievements,
		UnreadNotices: unread,
	}, nil
}

// ProfileSnapshot returns the normalized raw profile document, used for the
// initial push on a live subscription.
func (s *Service) ProfileSnapshot(userID int64) (*models.UserProfile, error) {
	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}
	NormalizeProfile(profile, s.cfg.Lives.Max)
	return profile, nil
}

// ── Shop ────────────────────────────────────────────────

func (s *Service) BuyLivesRefill(userID int64) (*models.BuyLivesResponse, error) {
	if err := s.store.BuyLivesRefill(userID, s.cfg.Lives.RefillCost, s.cfg.Lives.Max); err != nil {
		return nil, err
	}

	profile, err := s.store.GetOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		s.publisher.PublishProfile(userID, profile)
	}
	return &models.BuyLivesResponse{CoinsRemaining: profile.Coins, Lives: profile.Lives}, nil
}

// ── Notifications ───────────────────────────────────────

func (s *Service) GetNotifications(userID int64, unreadOnly bool) (*models.NotificationsResponse, error) {
	notices, err := s.store.GetNotifications(userID, unreadOnly, 50)
	if err != nil {
		return nil, err
	}
	unread, _ := s.store.CountUnreadNotifications(userID)
	return &models.NotificationsResponse{Notifications: notices, UnreadCount: unread}, nil
}

func (s *Service) MarkNotificationRead(userID int64, notificationID string) error {
	return s.store.MarkNotificationRead(notificationID, userID)
}

// ── Leaderboard ─────────────────────────────────────────

func (s *Service) GetLeaderboard(userID int64, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	entries, err := s.store.GetGlobalLeaderboard(limit)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range entries {
		if entries[i].UserID == userID {
			entries[i].IsCurrentUser = true
			found = true
		}
	}

	var currentUser *models.LeaderboardEntry
	if !found {
		if position, err := s.store.GetUserPosition(userID); err == nil && position > 0 {
			if profile, err := s.store.GetOrCreateProfile(userID); err == nil {
				currentUser = &models.LeaderboardEntry{
					Position:      position,
					UserID:        userID,
					WeeklyXP:      profile.WeeklyXP,
					Rank:          profile.Rank,
					CurrentStreak: profile.CurrentStreak,
					IsCurrentUser: true,
				}
			}
		}
	}

	now := time.Now().UTC()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()-time.Monday+7)%7)
	weekEnd := weekStart.AddDate(0, 0, 6)

	return &models.LeaderboardResponse{
		Period:      fmt.Sprintf("%s to %s", weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02")),
		Entries:     entries,
		CurrentUser: currentUser,
	}, nil
}

// ── Scheduled Work ──────────────────────────────────────

// RunWeeklyReset zeroes weekly XP. Invoked by the scheduler on Monday 00:00 UTC.
func (s *Service) RunWeeklyReset() {
	log.Println("[progression] running weekly leaderboard reset")
	if err := s.store.ResetWeeklyXP(); err != nil {
		log.Printf("[progression] weekly reset failed: %v", err)
	}
}

// RunLivesRegen grants one life to everyone below the cap.
func (s *Service) RunLivesRegen() {
	n, err := s.store.RegenerateLives(s.cfg.Lives.Max)
	if err != nil {
		log.Printf("[progression] lives regen failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[progression] regenerated lives for %d users", n)
	}
}
