package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateCheckout 创建订阅结账会话并返回跳转地址。
// 支付上游的具体失败原因不透出给客户端。
func (a *API) CreateCheckout(c *gin.Context) {
	userID := currentUserID(c)

	checkoutURL, err := a.billing.CreateCheckout(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "创建支付会话失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": checkoutURL})
}
