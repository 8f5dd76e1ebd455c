package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mindfulminutes/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// maxSessionDuration 单次练习时长上限（24 小时），防御异常客户端
	maxSessionDuration = 24 * 60 * 60
	// maxSessionNoteRuneCount 备注长度上限
	maxSessionNoteRuneCount = 2000
)

var (
	// ErrSessionInvalid 在练习记录参数不合法时返回
	ErrSessionInvalid = errors.New("invalid session input")
	// ErrUserNotFound 在用户行缺失时返回（会话有效但数据不一致）
	ErrUserNotFound = errors.New("user not found")
)

// sessionTypes 固定的练习类型集合
var sessionTypes = map[string]struct{}{
	"timer":     {},
	"breathing": {},
	"guided":    {},
	"ambient":   {},
}

// SessionService 负责练习记录的写入与读取
// 写入时在同一事务内完成 Session 插入与 Streak upsert，二者同生共死
type SessionService struct {
	db *gorm.DB
}

// SessionInput 定义记录练习时的输入对象
type SessionInput struct {
	Type     string
	Duration int
	Notes    string
}

// NewSessionService 构造 SessionService
func NewSessionService(gdb *gorm.DB) *SessionService {
	return &SessionService{db: gdb}
}

// Record 记录一次已完成的练习并同步更新连续打卡聚合。
// CompletedAt 由服务端打点；任一写入失败则整体回滚，不会出现没有
// Streak 计入的孤立 Session。
func (s *SessionService) Record(userID uint, input SessionInput) (*db.MeditationSession, error) {
	if err := validateSessionInput(input); err != nil {
		return nil, err
	}

	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	session := db.MeditationSession{
		UserID:      userID,
		Type:        strings.TrimSpace(input.Type),
		Duration:    input.Duration,
		Notes:       strings.TrimSpace(input.Notes),
		CompletedAt: time.Now(),
	}

	loc := resolveLocation(user.Timezone)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		// Session 插入在前，事务此时已持有写锁：
		// 同一用户的并发提交被串行化，下面的读-算-写不会互相覆盖
		var existing db.Streak
		var prior *db.Streak
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case err == nil:
			prior = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 首次练习，惰性创建
		default:
			return fmt.Errorf("load streak: %w", err)
		}

		next := nextStreak(prior, session.CompletedAt, session.Duration, loc)
		next.UserID = userID

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_streak", "longest_streak", "last_session_date",
				"total_sessions", "total_minutes", "updated_at",
			}),
		}).Create(&next).Error; err != nil {
			return fmt.Errorf("upsert streak: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// ListRecent 返回用户最近的练习记录，按完成时间倒序
func (s *SessionService) ListRecent(userID uint, limit int) ([]db.MeditationSession, error) {
	if limit <= 0 {
		limit = 50
	}

	var sessions []db.MeditationSession
	if err := s.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

// Streak 返回用户的连续打卡聚合，无记录时返回全零值
func (s *SessionService) Streak(userID uint) (*db.Streak, error) {
	var streak db.Streak
	if err := s.db.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &db.Streak{UserID: userID}, nil
		}
		return nil, fmt.Errorf("load streak: %w", err)
	}
	return &streak, nil
}

func validateSessionInput(input SessionInput) error {
	if input.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrSessionInvalid)
	}
	if input.Duration > maxSessionDuration {
		return fmt.Errorf("%w: duration exceeds 24 hours", ErrSessionInvalid)
	}

	sessionType := strings.TrimSpace(input.Type)
	if _, ok := sessionTypes[sessionType]; !ok {
		return fmt.Errorf("%w: unsupported type %s", ErrSessionInvalid, sessionType)
	}

	if utf8.RuneCountInString(input.Notes) > maxSessionNoteRuneCount {
		return fmt.Errorf("%w: notes too long", ErrSessionInvalid)
	}

	return nil
}
