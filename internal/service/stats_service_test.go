package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/mindfulminutes/internal/db"
)

func seedSession(t *testing.T, userID uint, completedAt time.Time, sessionType string, duration int) {
	t.Helper()
	session := db.MeditationSession{
		UserID:      userID,
		Type:        sessionType,
		Duration:    duration,
		CompletedAt: completedAt,
	}
	if err := db.DB.Create(&session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

func TestStatsCalendarMarksSessionDays(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.Local)

	// 只在 1 天前和 5 天前各有一次练习
	seedSession(t, user.ID, now.AddDate(0, 0, -1), "timer", 600)
	seedSession(t, user.ID, now.AddDate(0, 0, -5), "breathing", 300)

	svc := NewStatsService(db.DB)
	stats, err := svc.getAt(user.ID, now)
	if err != nil {
		t.Fatalf("getAt returned error: %v", err)
	}

	if len(stats.SessionCalendar) != 30 {
		t.Fatalf("expected 30 calendar entries, got %d", len(stats.SessionCalendar))
	}

	// 从旧到新排列，最后一项是今天
	last := stats.SessionCalendar[len(stats.SessionCalendar)-1]
	if !last.Date.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("expected last entry to be today, got %v", last.Date)
	}

	completed := 0
	for i, day := range stats.SessionCalendar {
		if day.Completed {
			completed++
			daysAgo := len(stats.SessionCalendar) - 1 - i
			if daysAgo != 1 && daysAgo != 5 {
				t.Fatalf("unexpected completed day at -%d", daysAgo)
			}
		}
	}
	if completed != 2 {
		t.Fatalf("expected exactly 2 completed days, got %d", completed)
	}
}

func TestStatsSessionsByTypeAndRecent(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	now := time.Now()
	for i := 0; i < 4; i++ {
		seedSession(t, user.ID, now.Add(-time.Duration(i)*time.Hour), "timer", 600)
	}
	for i := 4; i < 7; i++ {
		seedSession(t, user.ID, now.Add(-time.Duration(i)*time.Hour), "breathing", 300)
	}

	svc := NewStatsService(db.DB)
	stats, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if stats.SessionsByType["timer"] != 4 || stats.SessionsByType["breathing"] != 3 {
		t.Fatalf("unexpected type breakdown: %v", stats.SessionsByType)
	}

	if len(stats.RecentSessions) != 5 {
		t.Fatalf("expected 5 recent sessions, got %d", len(stats.RecentSessions))
	}
	if stats.RecentSessions[0].CompletedAt.Before(stats.RecentSessions[1].CompletedAt) {
		t.Fatal("expected newest session first")
	}
}

func TestStatsTypeBreakdownCapsAtThirtySessions(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	now := time.Now()
	// 35 条记录，最早的 5 条是 guided，统计窗口应只剩 30 条 timer
	for i := 0; i < 35; i++ {
		sessionType := "timer"
		if i >= 30 {
			sessionType = "guided"
		}
		seedSession(t, user.ID, now.Add(-time.Duration(i)*time.Hour), sessionType, 60)
	}

	svc := NewStatsService(db.DB)
	stats, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if stats.SessionsByType["timer"] != 30 {
		t.Fatalf("expected 30 timer sessions in window, got %d", stats.SessionsByType["timer"])
	}
	if _, ok := stats.SessionsByType["guided"]; ok {
		t.Fatal("expected guided sessions to fall outside the 30-session window")
	}
}

func TestStatsZeroStreakForNewUser(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewStatsService(db.DB)
	stats, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if stats.Streak.CurrentStreak != 0 || stats.Streak.TotalSessions != 0 {
		t.Fatalf("expected zero streak, got %+v", stats.Streak)
	}
	if len(stats.RecentSessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(stats.RecentSessions))
	}
}

func TestStatsMoodTrend(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	for i := 0; i < 9; i++ {
		entry := db.MoodEntry{UserID: user.ID, Mood: (i % 5) + 1, Energy: 3, Notes: fmt.Sprintf("day %d", i)}
		if err := db.DB.Create(&entry).Error; err != nil {
			t.Fatalf("failed to seed mood: %v", err)
		}
	}

	svc := NewStatsService(db.DB)
	stats, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if len(stats.MoodTrend) != 7 {
		t.Fatalf("expected mood trend capped at 7, got %d", len(stats.MoodTrend))
	}
}

func TestStatsUnknownUser(t *testing.T) {
	_, cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewStatsService(db.DB)
	if _, err := svc.Get(9999); err == nil {
		t.Fatal("expected error for unknown user")
	}
}
