package progression

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lingo-app/backend/internal/models"
)

// ErrNotificationCapacity is returned when a user's notification log is full.
// Callers treat it as a soft failure: the triggering unlock still succeeds.
var ErrNotificationCapacity = errors.New("notification capacity reached")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Profile CRUD ────────────────────────────────────────

const profileColumns = `user_id, xp, weekly_xp, level, rank,
	current_streak, longest_streak, last_active_date,
	exercises_answered, exercises_correct,
	lessons_completed, perfect_lessons, challenges_completed,
	coins, tickets, lives, created_at, updated_at`

func scanProfile(row *sql.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(&p.UserID, &p.XP, &p.WeeklyXP, &p.Level, &p.Rank,
		&p.CurrentStreak, &p.LongestStreak, &p.LastActiveDate,
		&p.ExercisesAnswered, &p.ExercisesCorrect,
		&p.LessonsCompleted, &p.PerfectLessons, &p.ChallengesCompleted,
		&p.Coins, &p.Tickets, &p.Lives, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetOrCreateProfile(userID int64) (*models.UserProfile, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_profiles (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	p, err := scanProfile(s.db.QueryRow(
		`SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// ── Counter Mutations (atomic increments) ───────────────

// AddXP adds to the cumulative and weekly XP totals. Field-level increment
// rather than read-then-overwrite, so concurrent sessions never lose XP.
func (s *Store) AddXP(userID int64, amount int) error {
	_, err := s.db.Exec(
		`UPDATE user_profiles SET
		    xp = xp + $2, weekly_xp = weekly_xp + $2, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, amount,
	)
	return err
}

// ApplyReward credits coins and tickets additively.
func (s *Store) ApplyReward(userID int64, r Reward) error {
	if r.Coins == 0 && r.Tickets == 0 {
		return nil
	}
	_, err := s.db.Exec(
		`UPDATE user_profiles SET
		    coins = coins + $2, tickets = tickets + $3, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, r.Coins, r.Tickets,
	)
	return err
}

// RecordSession bumps the session counters for one completed session.
func (s *Store) RecordSession(userID int64, answered, correct int, lessonDone, perfect, challenge bool) error {
	lessonInc, perfectInc, challengeInc := 0, 0, 0
	if lessonDone {
		lessonInc = 1
	}
	if perfect {
		perfectInc = 1
	}
	if challenge {
		challengeInc = 1
	}
	_, err := s.db.Exec(
		`UPDATE user_profiles SET
		    exercises_answered = exercises_answered + $2,
		    exercises_correct = exercises_correct + $3,
		    lessons_completed = lessons_completed + $4,
		    perfect_lessons = perfect_lessons + $5,
		    challenges_completed = challenges_completed + $6,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, answered, correct, lessonInc, perfectInc, challengeInc,
	)
	return err
}

// ── Reconciliation Overwrites (last resolver wins) ──────

func (s *Store) UpdateStreakFields(userID int64, current, longest int, lastActive time.Time) error {
	// Formatted explicitly so the DATE column records the caller's civil
	// date, not the date the instant lands on after a zone cast.
	_, err := s.db.Exec(
		`UPDATE user_profiles SET
		    current_streak = $2, longest_streak = $3, last_active_date = $4, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, current, longest, lastActive.Format("2006-01-02"),
	)
	return err
}

// ReconcileDerived persists freshly resolved level and rank. Idempotent:
// writing the same values twice is a no-op in observable state.
func (s *Store) ReconcileDerived(userID int64, level int, rank string) error {
	_, err := s.db.Exec(
		`UPDATE user_profiles SET level = $2, rank = $3, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, level, rank,
	)
	return err
}

// ── Currency & Lives ────────────────────────────────────

// BuyLivesRefill atomically spends coins for a full refill. The conditional
// WHERE clause is the balance check — no rows updated means it failed.
func (s *Store) BuyLivesRefill(userID int64, cost, maxLives int) error {
	result, err := s.db.Exec(
		`UPDATE user_profiles
		 SET coins = coins - $2, lives = $3, updated_at = NOW()
		 WHERE user_id = $1 AND coins >= $2 AND lives < $3`,
		userID, cost, maxLives,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("not enough coins or lives already full")
	}
	return nil
}

func (s *Store) LoseLives(userID int64, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := s.db.Exec(
		`UPDATE user_profiles SET lives = GREATEST(lives - $2, 0), updated_at = NOW()
		 WHERE user_id = $1`,
		userID, n,
	)
	return err
}

// RegenerateLives grants one life to every profile below the cap.
func (s *Store) RegenerateLives(maxLives int) (int64, error) {
	result, err := s.db.Exec(
		`UPDATE user_profiles SET lives = lives + 1, updated_at = NOW()
		 WHERE lives < $1`,
		maxLives,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ── Unlocks (set-union writes) ──────────────────────────

func (s *Store) GetUnlocked(userID int64, kind string) (map[string]bool, error) {
	rows, err := s.db.Query(
		`SELECT item_id FROM unlocks WHERE user_id = $1 AND kind = $2`,
		userID, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("get unlocks: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unlocked[id] = true
	}
	return unlocked, rows.Err()
}

func (s *Store) ListUnlocked(userID int64, kind string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT item_id FROM unlocks WHERE user_id = $1 AND kind = $2 ORDER BY earned_at`,
		userID, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Unlock adds an id to the user's unlocked set. The insert-if-absent is the
// union write: concurrent or repeated unlocks collapse to one row. Returns
// whether this call actually inserted it, so rewards are applied exactly once.
func (s *Store) Unlock(userID int64, kind, itemID string) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO unlocks (user_id, kind, item_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, kind, item_id) DO NOTHING`,
		userID, kind, itemID,
	)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ── Notifications ───────────────────────────────────────

// planNotification decides what a single append does given the current log
// size. The pending warning counts against the capacity, so the log never
// grows past it: near the cap the warning may take the last slot and the
// triggering notification is refused.
func planNotification(count, capacity, warnAt int, isWarning, alreadyWarned bool) (insertWarning, refuse bool) {
	if count >= capacity {
		return false, true
	}
	if count >= warnAt && !isWarning && !alreadyWarned {
		insertWarning = true
		count++
	}
	return insertWarning, count >= capacity
}

// CreateNotification appends to the user's notification log, enforcing the
// soft capacity. Crossing the warn threshold injects a one-time system
// warning; at capacity the insert is refused with ErrNotificationCapacity.
func (s *Store) CreateNotification(userID int64, ntype, title, body string, capacity, warnAt int) error {
	var count int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`,
		userID,
	).Scan(&count); err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}

	// Only consult the warning flag when it can matter; on a lookup error
	// assume warned rather than risk a duplicate warning.
	warned := true
	if count >= warnAt && count < capacity && ntype != models.NoticeSystemWarning {
		if err := s.db.QueryRow(
			`SELECT EXISTS(
			    SELECT 1 FROM notifications
			    WHERE user_id = $1 AND type = $2 AND read = false
			)`,
			userID, models.NoticeSystemWarning,
		).Scan(&warned); err != nil {
			warned = true
		}
	}

	insertWarning, refuse := planNotification(count, capacity, warnAt,
		ntype == models.NoticeSystemWarning, warned)
	if insertWarning {
		s.insertNotification(userID, models.NoticeSystemWarning,
			"Notification inbox almost full",
			"Older notifications will stop arriving once the inbox is full. Mark some as read.")
	}
	if refuse {
		return ErrNotificationCapacity
	}

	return s.insertNotification(userID, ntype, title, body)
}

func (s *Store) insertNotification(userID int64, ntype, title, body string) error {
	_, err := s.db.Exec(
		`INSERT INTO notifications (id, user_id, type, title, body)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), userID, ntype, title, body,
	)
	return err
}

func (s *Store) GetNotifications(userID int64, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := `SELECT id, type, title, COALESCE(body, ''), read, created_at
	          FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	defer rows.Close()

	notices := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.UserID = userID
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (s *Store) CountUnreadNotifications(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`,
		userID,
	).Scan(&count)
	return count, err
}

func (s *Store) MarkNotificationRead(notificationID string, userID int64) error {
	result, err := s.db.Exec(
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// ── Leaderboard ─────────────────────────────────────────

func (s *Store) GetGlobalLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, u.username, p.weekly_xp, p.rank, p.current_streak,
		        ROW_NUMBER() OVER (ORDER BY p.weekly_xp DESC) as position
		 FROM user_profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.weekly_xp > 0
		 ORDER BY p.weekly_xp DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		var fullName string
		if err := rows.Scan(&e.UserID, &fullName, &e.Username, &e.WeeklyXP, &e.Rank, &e.CurrentStreak, &e.Position); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.DisplayName = models.User{Name: fullName}.DisplayName()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetUserPosition(userID int64) (int, error) {
	var position int
	err := s.db.QueryRow(
		`SELECT COALESCE(
		    (SELECT position FROM (
		        SELECT user_id, ROW_NUMBER() OVER (ORDER BY weekly_xp DESC) as position
		        FROM user_profiles WHERE weekly_xp > 0
		    ) r WHERE r.user_id = $1),
		    0
		)`,
		userID,
	).Scan(&position)
	return position, err
}

func (s *Store) ResetWeeklyXP() error {
	_, err := s.db.Exec(`UPDATE user_profiles SET weekly_xp = 0, updated_at = NOW()`)
	return err
}

// ── XP Audit Log ────────────────────────────────────────

func (s *Store) LogXPEvent(userID int64, eventType string, xpAmount int, metadata map[string]interface{}) error {
	var metaJSON *string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			str := string(b)
			metaJSON = &str
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO xp_events (user_id, event_type, xp_amount, metadata)
		 VALUES ($1, $2, $3, $4)`,
		userID, eventType, xpAmount, metaJSON,
	)
	return err
}
