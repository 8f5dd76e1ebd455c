package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/db"
	"github.com/mindfulminutes/internal/service"
)

type moodPayload struct {
	Mood   int    `json:"mood"`
	Energy int    `json:"energy"`
	Notes  string `json:"notes"`
}

// ListMoods 返回当前用户最近的情绪打卡
func (a *API) ListMoods(c *gin.Context) {
	userID := currentUserID(c)

	entries, err := a.moods.ListRecent(userID, 30)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取情绪记录失败")
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, moodToPayload(entry))
	}

	c.JSON(http.StatusOK, gin.H{"moods": items})
}

// CreateMood 新增一条情绪打卡
func (a *API) CreateMood(c *gin.Context) {
	userID := currentUserID(c)

	var payload moodPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	entry, err := a.moods.Create(userID, service.MoodInput{
		Mood:   payload.Mood,
		Energy: payload.Energy,
		Notes:  payload.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrMoodInvalid) {
			respondError(c, http.StatusBadRequest, "情绪和精力取值应在 1-5 之间")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存情绪记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"mood": moodToPayload(*entry)})
}

func moodToPayload(entry db.MoodEntry) gin.H {
	return gin.H{
		"id":         entry.ID,
		"mood":       entry.Mood,
		"energy":     entry.Energy,
		"notes":      entry.Notes,
		"created_at": entry.CreatedAt.Format(time.RFC3339),
	}
}
