package db

import "gorm.io/gorm"

// Affirmation 保存为登录用户生成的肯定语
type Affirmation struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	User     User `gorm:"constraint:OnDelete:CASCADE"`
	Text     string
	Category string
}
