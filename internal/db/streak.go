package db

import (
	"time"

	"gorm.io/gorm"
)

// Streak 是每个用户唯一的连续打卡聚合
// UserID 采用唯一索引，保证每用户一行，写入走 upsert
// 不变量：LongestStreak >= CurrentStreak；TotalSessions/TotalMinutes 单调不减
// LastSessionDate 仅用于日期边界比较，时间部分在计算时截断
type Streak struct {
	gorm.Model
	UserID          uint `gorm:"uniqueIndex"`
	User            User `gorm:"constraint:OnDelete:CASCADE"`
	CurrentStreak   int
	LongestStreak   int
	TotalSessions   int
	TotalMinutes    int
	LastSessionDate time.Time
}
