package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mindfulminutes/internal/db"
	"gorm.io/gorm"
)

// ErrTimezoneInvalid 在时区名无法解析时返回
var ErrTimezoneInvalid = errors.New("invalid timezone")

// ProfileService 负责用户资料的读取与更新
type ProfileService struct {
	db *gorm.DB
}

// ProfileInput 定义可更新的资料字段，Timezone 为空表示使用服务器本地时区
type ProfileInput struct {
	Name     string
	Timezone string
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// Get 根据 ID 获取用户
func (s *ProfileService) Get(userID uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpdateSettings 更新展示名与时区，时区必须是合法的 IANA 名称
func (s *ProfileService) UpdateSettings(userID uint, input ProfileInput) (*db.User, error) {
	timezone := strings.TrimSpace(input.Timezone)
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTimezoneInvalid, timezone)
		}
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Timezone = timezone

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// SetAvatarURL 更新用户头像地址
func (s *ProfileService) SetAvatarURL(userID uint, avatarURL string) (*db.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = strings.TrimSpace(avatarURL)

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	return user, nil
}
