package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mindfulminutes/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// historySession 用于历史页渲染，Notes 为 markdown 渲染并消毒后的 HTML
type historySession struct {
	Type        string
	Duration    int
	Minutes     int
	Notes       template.HTML
	CompletedAt string
}

// ShowLanding 渲染落地页，已登录用户直接进入面板
func ShowLanding(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "landing.html", gin.H{
		"title": "MindfulMinutes",
		"year":  time.Now().Year(),
	})
}

// ShowDashboard 渲染面板：连续打卡、30 天日历和最近练习
func (a *API) ShowDashboard(c *gin.Context) {
	userID := currentUserID(c)

	stats, err := a.stats.Get(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "我的面板",
			"error": "获取统计数据失败",
		})
		return
	}

	user, err := a.profiles.Get(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"title": "我的面板",
			"error": "加载用户失败",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":    "我的面板",
		"user":     user,
		"streak":   stats.Streak,
		"calendar": stats.SessionCalendar,
		"recent":   stats.RecentSessions,
	})
}

// ShowMeditate 渲染冥想计时页
func (a *API) ShowMeditate(c *gin.Context) {
	c.HTML(http.StatusOK, "meditate.html", gin.H{"title": "冥想"})
}

// ShowBreathe 渲染呼吸练习页
func (a *API) ShowBreathe(c *gin.Context) {
	c.HTML(http.StatusOK, "breathe.html", gin.H{"title": "呼吸练习"})
}

// ShowMood 渲染情绪打卡页
func (a *API) ShowMood(c *gin.Context) {
	userID := currentUserID(c)

	entries, err := a.moods.ListRecent(userID, 30)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "mood.html", gin.H{
			"title": "情绪打卡",
			"error": "获取情绪记录失败",
		})
		return
	}

	c.HTML(http.StatusOK, "mood.html", gin.H{
		"title": "情绪打卡",
		"moods": entries,
	})
}

// ShowStats 渲染统计页
func (a *API) ShowStats(c *gin.Context) {
	userID := currentUserID(c)

	stats, err := a.stats.Get(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "stats.html", gin.H{
			"title": "统计",
			"error": "获取统计数据失败",
		})
		return
	}

	c.HTML(http.StatusOK, "stats.html", gin.H{
		"title":     "统计",
		"streak":    stats.Streak,
		"calendar":  stats.SessionCalendar,
		"byType":    stats.SessionsByType,
		"moodTrend": stats.MoodTrend,
		"recent":    stats.RecentSessions,
	})
}

// ShowHistory 渲染练习历史，练习备注按 markdown 渲染
func (a *API) ShowHistory(c *gin.Context) {
	userID := currentUserID(c)

	sessions, err := a.sessions.ListRecent(userID, 50)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "history.html", gin.H{
			"title": "练习历史",
			"error": "获取练习记录失败",
		})
		return
	}

	items := make([]historySession, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, historySession{
			Type:        session.Type,
			Duration:    session.Duration,
			Minutes:     (session.Duration + 59) / 60,
			Notes:       renderMarkdown(session.Notes),
			CompletedAt: session.CompletedAt.Format("2006-01-02 15:04"),
		})
	}

	c.HTML(http.StatusOK, "history.html", gin.H{
		"title":    "练习历史",
		"sessions": items,
	})
}

// ShowAffirmations 渲染肯定语页
func (a *API) ShowAffirmations(c *gin.Context) {
	userID := currentUserID(c)

	affirmations, err := a.affirmations.ListRecent(userID, 20)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "affirmations.html", gin.H{
			"title": "每日肯定",
			"error": "获取肯定语失败",
		})
		return
	}

	c.HTML(http.StatusOK, "affirmations.html", gin.H{
		"title":        "每日肯定",
		"categories":   service.Categories(),
		"affirmations": affirmations,
	})
}

// ShowSounds 渲染环境音页，播放逻辑完全在客户端
func (a *API) ShowSounds(c *gin.Context) {
	c.HTML(http.StatusOK, "sounds.html", gin.H{"title": "环境音"})
}

// ShowSubscription 渲染订阅页
func (a *API) ShowSubscription(c *gin.Context) {
	c.HTML(http.StatusOK, "subscription.html", gin.H{
		"title":  "订阅",
		"plan":   planViewModel(),
		"status": c.Query("status"),
	})
}

// ShowSettings 渲染设置页
func (a *API) ShowSettings(c *gin.Context) {
	userID := currentUserID(c)

	user, err := a.profiles.Get(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "settings.html", gin.H{
			"title": "设置",
			"error": "加载用户失败",
		})
		return
	}

	c.HTML(http.StatusOK, "settings.html", gin.H{
		"title": "设置",
		"user":  user,
	})
}

func renderMarkdown(source string) template.HTML {
	if source == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}

	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

func planViewModel() gin.H {
	return gin.H{
		"name":     service.PremiumPlanName,
		"price":    service.PremiumPlanPrice,
		"features": service.PremiumPlanFeatures,
	}
}
