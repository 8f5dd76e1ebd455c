package db

import "gorm.io/gorm"

// MoodEntry 记录一次情绪打卡，Mood/Energy 取值 1-5
type MoodEntry struct {
	gorm.Model
	UserID uint `gorm:"index"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`
	Mood   int
	Energy int
	Notes  string
}
