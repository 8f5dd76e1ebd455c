package main

import (
	"fmt"
	"log"
	"time"

	"github.com/mindfulminutes/internal/config"
	"github.com/mindfulminutes/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// 测试数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	user := createTestUser()
	if user == nil {
		return
	}

	createTestSessions(user)
	createTestMoods(user)
	createTestAffirmations(user)

	fmt.Println("测试数据生成完成！")
	fmt.Println("用户: demo@mindful.local (密码: demo123)")
}

// 创建测试用户
func createTestUser() *db.User {
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，跳过生成")
		return nil
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	user := db.User{
		Email:    "demo@mindful.local",
		Name:     "demo",
		Password: string(hashedPassword),
	}
	db.DB.Create(&user)

	fmt.Println("✅ 测试用户创建完成")
	return &user
}

// 创建最近三周的练习记录，并保持 Streak 聚合一致
func createTestSessions(user *db.User) {
	type seed struct {
		daysAgo  int
		duration int
		kind     string
		notes    string
	}

	seeds := []seed{
		{20, 600, "timer", "第一次尝试，走神比较多"},
		{19, 600, "timer", ""},
		{18, 300, "breathing", "4-7-8 呼吸法"},
		{15, 900, "guided", "睡前引导冥想"},
		{14, 600, "timer", ""},
		{13, 600, "timer", "**状态不错**，比昨天专注"},
		{12, 1200, "ambient", "雨声"},
		{11, 300, "breathing", ""},
		{4, 600, "timer", ""},
		{3, 900, "guided", ""},
		{2, 600, "timer", "工作间隙的小憩"},
		{1, 300, "breathing", ""},
		{0, 600, "timer", "今天的第一次"},
		{0, 120, "breathing", "今天的第二次"},
	}

	now := time.Now()
	var streak db.Streak
	streak.UserID = user.ID

	var lastDay time.Time
	for _, s := range seeds {
		completedAt := now.AddDate(0, 0, -s.daysAgo)
		session := db.MeditationSession{
			UserID:      user.ID,
			Type:        s.kind,
			Duration:    s.duration,
			Notes:       s.notes,
			CompletedAt: completedAt,
		}
		db.DB.Create(&session)

		day := time.Date(completedAt.Year(), completedAt.Month(), completedAt.Day(), 0, 0, 0, 0, completedAt.Location())
		switch {
		case lastDay.IsZero():
			streak.CurrentStreak = 1
		case day.Equal(lastDay):
			// 同一天重复练习不增加连续天数
		case day.Equal(lastDay.AddDate(0, 0, 1)):
			streak.CurrentStreak++
		default:
			streak.CurrentStreak = 1
		}
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
		streak.TotalSessions++
		streak.TotalMinutes += (s.duration + 59) / 60
		streak.LastSessionDate = completedAt
		lastDay = day
	}

	db.DB.Create(&streak)
	fmt.Printf("✅ 练习记录创建完成（%d 条）\n", len(seeds))
}

// 创建一周的情绪打卡
func createTestMoods(user *db.User) {
	now := time.Now()
	moods := []struct {
		daysAgo int
		mood    int
		energy  int
		notes   string
	}{
		{6, 3, 2, "有点累"},
		{5, 4, 3, ""},
		{4, 4, 4, "练习后感觉平静"},
		{3, 2, 2, "加班"},
		{2, 3, 3, ""},
		{1, 4, 4, ""},
		{0, 5, 4, "状态很好"},
	}

	for _, m := range moods {
		entry := db.MoodEntry{
			UserID: user.ID,
			Mood:   m.mood,
			Energy: m.energy,
			Notes:  m.notes,
		}
		entry.CreatedAt = now.AddDate(0, 0, -m.daysAgo)
		db.DB.Create(&entry)
	}

	fmt.Println("✅ 情绪记录创建完成")
}

// 创建几条留存的肯定语
func createTestAffirmations(user *db.User) {
	texts := map[string]string{
		"morning":   "Today is a new beginning filled with endless possibilities.",
		"stress":    "With each breath, I let go of stress and anxiety.",
		"gratitude": "I appreciate the small moments that bring me joy.",
	}

	for category, text := range texts {
		db.DB.Create(&db.Affirmation{UserID: user.ID, Text: text, Category: category})
	}

	fmt.Println("✅ 肯定语创建完成")
}
