package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/db"
	"github.com/mindfulminutes/internal/service"
)

const dateFormat = "2006-01-02"

// GetStats 返回当前用户的统计聚合：
// 连续打卡、30 天完成日历（从旧到新）、类型分布、情绪趋势和最近练习
func (a *API) GetStats(c *gin.Context) {
	userID := currentUserID(c)

	stats, err := a.stats.Get(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "用户不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	c.JSON(http.StatusOK, statsToPayload(stats))
}

func statsToPayload(stats *service.UserStats) gin.H {
	calendar := make([]gin.H, 0, len(stats.SessionCalendar))
	for _, day := range stats.SessionCalendar {
		calendar = append(calendar, gin.H{
			"date":      day.Date.Format(dateFormat),
			"completed": day.Completed,
		})
	}

	trend := make([]gin.H, 0, len(stats.MoodTrend))
	for _, point := range stats.MoodTrend {
		trend = append(trend, gin.H{
			"date":   point.Date.Format(dateFormat),
			"mood":   point.Mood,
			"energy": point.Energy,
		})
	}

	recent := make([]gin.H, 0, len(stats.RecentSessions))
	for _, session := range stats.RecentSessions {
		recent = append(recent, sessionToPayload(session))
	}

	return gin.H{
		"streaks":          streakToPayload(stats.Streak),
		"session_calendar": calendar,
		"sessions_by_type": stats.SessionsByType,
		"mood_trend":       trend,
		"recent_sessions":  recent,
	}
}

func streakToPayload(streak db.Streak) gin.H {
	payload := gin.H{
		"current_streak": streak.CurrentStreak,
		"longest_streak": streak.LongestStreak,
		"total_sessions": streak.TotalSessions,
		"total_minutes":  streak.TotalMinutes,
	}
	if !streak.LastSessionDate.IsZero() {
		payload["last_session_date"] = streak.LastSessionDate.Format(dateFormat)
	}
	return payload
}
