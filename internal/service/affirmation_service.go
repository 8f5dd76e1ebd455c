package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/mindfulminutes/internal/db"
	"gorm.io/gorm"
)

const (
	defaultAffirmationModel  = "gpt-4o-mini"
	defaultCategory          = "morning"
	affirmationSystemPrompt  = "You are a mindfulness and meditation expert. Generate short, powerful affirmations that are personal (using \"I\" statements), present tense, positive, and emotionally resonant. Keep responses to a single sentence."
	savedAffirmationsDefault = 20
)

// categoryPrompts 按类别选择生成提示词，未知类别回退到 morning
var categoryPrompts = map[string]string{
	"morning":    "Generate a single uplifting morning affirmation to start the day with positivity and energy.",
	"stress":     "Generate a single calming affirmation for stress relief and inner peace.",
	"confidence": "Generate a single empowering affirmation to boost self-confidence and self-worth.",
	"gratitude":  "Generate a single heartfelt gratitude affirmation to appreciate life.",
	"sleep":      "Generate a single soothing affirmation for peaceful sleep and relaxation.",
}

// fallbackAffirmations 在上游不可用时随机抽取的静态文案
var fallbackAffirmations = map[string][]string{
	"morning": {
		"Today is a new beginning filled with endless possibilities.",
		"I wake up grateful for this beautiful day ahead.",
		"I am energized and ready to embrace whatever comes my way.",
	},
	"stress": {
		"I release all tension and welcome peace into my mind.",
		"I am calm, centered, and in control of my thoughts.",
		"With each breath, I let go of stress and anxiety.",
	},
	"confidence": {
		"I believe in myself and my unique abilities.",
		"I am worthy of success and happiness.",
		"My confidence grows stronger with each passing day.",
	},
	"gratitude": {
		"I am grateful for the abundance that flows into my life.",
		"I appreciate the small moments that bring me joy.",
		"My heart is full of gratitude for all that I have.",
	},
	"sleep": {
		"I release the day and welcome peaceful rest.",
		"My mind is calm, my body is relaxed, and sleep comes easily.",
		"I am safe and at peace as I drift into restful sleep.",
	},
}

// AffirmationResult 返回生成的肯定语及其来源
type AffirmationResult struct {
	Text     string
	Category string
	// Generated 为 true 表示来自上游模型，false 表示静态兜底
	Generated bool
}

// AffirmationService 负责生成肯定语并为登录用户留存历史
type AffirmationService struct {
	db     *gorm.DB
	client *affirmationClient
}

// NewAffirmationService 构造 AffirmationService
func NewAffirmationService(gdb *gorm.DB, openAIAPIKey string) *AffirmationService {
	return &AffirmationService{
		db:     gdb,
		client: newAffirmationClient(openAIAPIKey, defaultAffirmationModel),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AffirmationService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetBaseURL 覆盖默认的 OpenAI API 地址。
func (s *AffirmationService) SetBaseURL(base string) {
	s.client.SetBaseURL(base)
}

// Generate 为指定类别生成一条肯定语。
// 上游调用失败时回退到静态文案，永远不向调用方返回上游错误；
// userID 非零时将生成结果持久化到该用户名下。
func (s *AffirmationService) Generate(ctx context.Context, userID uint, category string) (*AffirmationResult, error) {
	normalized := normalizeCategory(category)

	result := &AffirmationResult{Category: normalized}

	text, err := s.client.complete(ctx, affirmationSystemPrompt, categoryPrompts[normalized])
	if err == nil {
		result.Text = text
		result.Generated = true
	} else {
		options := fallbackAffirmations[normalized]
		result.Text = options[rand.Intn(len(options))]
	}

	if userID != 0 {
		record := db.Affirmation{UserID: userID, Text: result.Text, Category: normalized}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("save affirmation: %w", err)
		}
	}

	return result, nil
}

// ListRecent 返回用户留存的肯定语，按创建时间倒序
func (s *AffirmationService) ListRecent(userID uint, limit int) ([]db.Affirmation, error) {
	if limit <= 0 {
		limit = savedAffirmationsDefault
	}

	var affirmations []db.Affirmation
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&affirmations).Error; err != nil {
		return nil, fmt.Errorf("list affirmations: %w", err)
	}

	return affirmations, nil
}

// Categories 返回支持的肯定语类别，按字母序
func Categories() []string {
	categories := make([]string, 0, len(categoryPrompts))
	for category := range categoryPrompts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(strings.ToLower(category))
	if _, ok := categoryPrompts[category]; !ok {
		return defaultCategory
	}
	return category
}
