package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mindfulminutes/internal/db"
	"gorm.io/gorm"
)

const (
	calendarDays        = 30
	recentSessionsLimit = 30
	moodTrendLimit      = 7
)

// CalendarDay 表示日历中的一天是否完成过练习
type CalendarDay struct {
	Date      time.Time
	Completed bool
}

// MoodPoint 表示情绪趋势中的一个采样点
type MoodPoint struct {
	Date   time.Time
	Mood   int
	Energy int
}

// UserStats 汇总统计页所需的全部数据
type UserStats struct {
	Streak          db.Streak
	SessionCalendar []CalendarDay
	SessionsByType  map[string]int
	MoodTrend       []MoodPoint
	RecentSessions  []db.MeditationSession
}

// StatsService 提供只读的统计聚合，不做任何写入
type StatsService struct {
	db *gorm.DB
}

// NewStatsService 构造 StatsService
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// Get 返回用户的统计聚合。
// 日历固定 30 天、从旧到新，截止到"今天"（按用户时区）；
// 类型分布只统计最近 30 条练习。
func (s *StatsService) Get(userID uint) (*UserStats, error) {
	return s.getAt(userID, time.Now())
}

// getAt 以指定时间为"现在"计算统计，便于测试固定日期
func (s *StatsService) getAt(userID uint, now time.Time) (*UserStats, error) {
	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	stats := &UserStats{SessionsByType: make(map[string]int)}

	var streak db.Streak
	if err := s.db.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load streak: %w", err)
		}
		streak = db.Streak{UserID: userID}
	}
	stats.Streak = streak

	var sessions []db.MeditationSession
	if err := s.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(recentSessionsLimit).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	loc := resolveLocation(user.Timezone)
	today := normalizeToDate(now.In(loc))

	completedDays := make(map[string]struct{}, len(sessions))
	for _, session := range sessions {
		day := normalizeToDate(session.CompletedAt.In(loc))
		completedDays[day.Format("2006-01-02")] = struct{}{}
		stats.SessionsByType[session.Type]++
	}

	stats.SessionCalendar = make([]CalendarDay, 0, calendarDays)
	for i := calendarDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		_, completed := completedDays[day.Format("2006-01-02")]
		stats.SessionCalendar = append(stats.SessionCalendar, CalendarDay{Date: day, Completed: completed})
	}

	if len(sessions) > 5 {
		stats.RecentSessions = sessions[:5]
	} else {
		stats.RecentSessions = sessions
	}

	var moods []db.MoodEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(moodTrendLimit).
		Find(&moods).Error; err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}

	stats.MoodTrend = make([]MoodPoint, 0, len(moods))
	for _, mood := range moods {
		stats.MoodTrend = append(stats.MoodTrend, MoodPoint{
			Date:   normalizeToDate(mood.CreatedAt.In(loc)),
			Mood:   mood.Mood,
			Energy: mood.Energy,
		})
	}

	return stats, nil
}
