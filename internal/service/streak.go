package service

import (
	"time"

	"github.com/mindfulminutes/internal/db"
)

// nextStreak 根据已有的连续打卡记录和本次完成时间计算新的聚合值。
// 日期按 loc 指定的时区截断到当天零点后比较：
// 同一天重复打卡不增加连续天数；相差一天则 +1；出现断档或时钟回拨则重置为 1。
func nextStreak(existing *db.Streak, completedAt time.Time, durationSeconds int, loc *time.Location) db.Streak {
	today := normalizeToDate(completedAt.In(loc))
	yesterday := today.AddDate(0, 0, -1)

	next := db.Streak{
		CurrentStreak:   1,
		LastSessionDate: completedAt,
		TotalSessions:   1,
		TotalMinutes:    minutesOf(durationSeconds),
	}

	if existing != nil {
		lastDate := normalizeToDate(existing.LastSessionDate.In(loc))

		switch {
		case lastDate.Equal(today):
			next.CurrentStreak = existing.CurrentStreak
		case lastDate.Equal(yesterday):
			next.CurrentStreak = existing.CurrentStreak + 1
		}

		next.TotalSessions = existing.TotalSessions + 1
		next.TotalMinutes = existing.TotalMinutes + minutesOf(durationSeconds)
		next.LongestStreak = existing.LongestStreak
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	return next
}

// minutesOf 将秒数向上取整为分钟数
func minutesOf(durationSeconds int) int {
	return (durationSeconds + 59) / 60
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// resolveLocation 解析用户时区配置，解析失败或未配置时退回服务器本地时区
func resolveLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
