package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/db"
	"github.com/mindfulminutes/internal/service"
)

type sessionPayload struct {
	Duration int    `json:"duration"`
	Type     string `json:"type"`
	Notes    string `json:"notes"`
}

// ListSessions 返回当前用户最近的练习记录
func (a *API) ListSessions(c *gin.Context) {
	userID := currentUserID(c)

	sessions, err := a.sessions.ListRecent(userID, 50)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取练习记录失败")
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, sessionToPayload(session))
	}

	c.JSON(http.StatusOK, gin.H{"sessions": items})
}

// CreateSession 记录一次已完成的练习并返回创建的记录。
// 完成时间由服务端打点，客户端只提交时长、类型和可选备注。
func (a *API) CreateSession(c *gin.Context) {
	userID := currentUserID(c)

	var payload sessionPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	session, err := a.sessions.Record(userID, service.SessionInput{
		Type:     payload.Type,
		Duration: payload.Duration,
		Notes:    payload.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionInvalid):
			respondError(c, http.StatusBadRequest, "无效的练习时长或类型")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "用户不存在")
		default:
			respondError(c, http.StatusInternalServerError, "保存练习记录失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sessionToPayload(*session)})
}

func sessionToPayload(session db.MeditationSession) gin.H {
	return gin.H{
		"id":           session.ID,
		"type":         session.Type,
		"duration":     session.Duration,
		"notes":        session.Notes,
		"completed_at": session.CompletedAt.Format(time.RFC3339),
	}
}
