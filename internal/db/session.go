package db

import (
	"time"

	"gorm.io/gorm"
)

// MeditationSession 记录一次已完成的练习
// Duration 以秒为单位；CompletedAt 由服务端在写入时打点，不接受客户端传入
// 记录创建后不再更新或删除
type MeditationSession struct {
	gorm.Model
	UserID      uint `gorm:"index"`
	User        User `gorm:"constraint:OnDelete:CASCADE"`
	Type        string
	Duration    int
	Notes       string
	CompletedAt time.Time `gorm:"index"`
}
