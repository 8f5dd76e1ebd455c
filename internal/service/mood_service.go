package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mindfulminutes/internal/db"
	"gorm.io/gorm"
)

// ErrMoodInvalid 在情绪打卡数值越界时返回
var ErrMoodInvalid = errors.New("invalid mood input")

// MoodService 负责情绪打卡的写入与读取
type MoodService struct {
	db *gorm.DB
}

// MoodInput 定义情绪打卡输入，Mood/Energy 取值 1-5
type MoodInput struct {
	Mood   int
	Energy int
	Notes  string
}

// NewMoodService 构造 MoodService
func NewMoodService(gdb *gorm.DB) *MoodService {
	return &MoodService{db: gdb}
}

// Create 新增一条情绪打卡
func (s *MoodService) Create(userID uint, input MoodInput) (*db.MoodEntry, error) {
	if input.Mood < 1 || input.Mood > 5 {
		return nil, fmt.Errorf("%w: mood must be between 1 and 5", ErrMoodInvalid)
	}
	if input.Energy < 1 || input.Energy > 5 {
		return nil, fmt.Errorf("%w: energy must be between 1 and 5", ErrMoodInvalid)
	}

	entry := db.MoodEntry{
		UserID: userID,
		Mood:   input.Mood,
		Energy: input.Energy,
		Notes:  strings.TrimSpace(input.Notes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}

	return &entry, nil
}

// ListRecent 返回用户最近的情绪打卡，按创建时间倒序
func (s *MoodService) ListRecent(userID uint, limit int) ([]db.MoodEntry, error) {
	if limit <= 0 {
		limit = 30
	}

	var entries []db.MoodEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}

	return entries, nil
}
