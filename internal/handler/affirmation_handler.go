package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/db"
)

type affirmationPayload struct {
	Category string `json:"category"`
}

// GenerateAffirmation 生成一条肯定语。
// 不要求登录；已登录用户的生成结果会自动留存到历史。
// 上游模型不可用时由服务层回退到静态文案，因此这里只会因参数或存储失败报错。
func (a *API) GenerateAffirmation(c *gin.Context) {
	var payload affirmationPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	result, err := a.affirmations.Generate(c.Request.Context(), currentUserID(c), payload.Category)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "生成肯定语失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"affirmation": result.Text,
		"category":    result.Category,
		"generated":   result.Generated,
	})
}

// ListAffirmations 返回当前用户留存的肯定语
func (a *API) ListAffirmations(c *gin.Context) {
	userID := currentUserID(c)

	affirmations, err := a.affirmations.ListRecent(userID, 20)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取肯定语失败")
		return
	}

	items := make([]gin.H, 0, len(affirmations))
	for _, affirmation := range affirmations {
		items = append(items, affirmationToPayload(affirmation))
	}

	c.JSON(http.StatusOK, gin.H{"affirmations": items})
}

func affirmationToPayload(affirmation db.Affirmation) gin.H {
	return gin.H{
		"id":         affirmation.ID,
		"text":       affirmation.Text,
		"category":   affirmation.Category,
		"created_at": affirmation.CreatedAt.Format(time.RFC3339),
	}
}
