package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ShowSignInPage 渲染登录页面
func ShowSignInPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signin.html", gin.H{
		"title": "登录",
	})
}

// SignIn 处理登录请求。
// 首次使用某邮箱登录时直接创建账号（沿用邮箱前缀作为展示名），
// 已有账号则校验 bcrypt 密码。
func SignIn(c *gin.Context) {
	email := strings.TrimSpace(strings.ToLower(c.PostForm("email")))
	password := c.PostForm("password")

	if email == "" || !strings.Contains(email, "@") || password == "" {
		c.HTML(http.StatusBadRequest, "signin.html", gin.H{"title": "登录", "error": "请输入有效的邮箱和密码"})
		return
	}

	var user db.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			c.HTML(http.StatusUnauthorized, "signin.html", gin.H{"title": "登录", "error": "邮箱或密码错误"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			c.HTML(http.StatusInternalServerError, "signin.html", gin.H{"title": "登录", "error": "创建账号失败"})
			return
		}

		user = db.User{
			Email:    email,
			Name:     email[:strings.Index(email, "@")],
			Password: string(hashed),
		}
		if err := db.DB.Create(&user).Error; err != nil {
			c.HTML(http.StatusInternalServerError, "signin.html", gin.H{"title": "登录", "error": "创建账号失败"})
			return
		}
	default:
		c.HTML(http.StatusInternalServerError, "signin.html", gin.H{"title": "登录", "error": "登录失败"})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("email", user.Email)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "signin.html", gin.H{"title": "登录", "error": "会话保存失败"})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// SignOut 处理登出
func SignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/auth/signin")
}

// AuthRequired 页面认证中间件，未登录时跳转到登录页
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/auth/signin")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthRequired API 认证中间件，未登录时返回 401 JSON
func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUserID(c) == 0 {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID 从会话中取出登录用户 ID，未登录返回 0
func currentUserID(c *gin.Context) uint {
	session := sessions.Default(c)
	raw := session.Get("user_id")
	if raw == nil {
		return 0
	}
	if id, ok := raw.(uint); ok {
		return id
	}
	return 0
}
