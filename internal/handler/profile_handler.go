package handler

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mindfulminutes/internal/db"
	"github.com/mindfulminutes/internal/service"
	"golang.org/x/image/draw"
)

// maxAvatarEdge 头像最长边像素数，超出时等比缩小
const maxAvatarEdge = 512

type settingsPayload struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// UpdateSettings 更新展示名与时区
func (a *API) UpdateSettings(c *gin.Context) {
	userID := currentUserID(c)

	var payload settingsPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	user, err := a.profiles.UpdateSettings(userID, service.ProfileInput{
		Name:     payload.Name,
		Timezone: payload.Timezone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTimezoneInvalid):
			respondError(c, http.StatusBadRequest, "无效的时区名称")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "用户不存在")
		default:
			respondError(c, http.StatusInternalServerError, "保存设置失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToPayload(user)})
}

// UploadAvatar 处理头像上传：解码、按需缩小到 512px、统一存为 PNG
func (a *API) UploadAvatar(c *gin.Context) {
	userID := currentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "读取上传文件失败")
		return
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}

	resized := shrinkToFit(src, maxAvatarEdge)

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "创建上传目录失败")
		return
	}

	// 生成唯一文件名
	filename := fmt.Sprintf("%s-%s.png", time.Now().Format("20060102"), uuid.New().String())
	filePath := filepath.Join(a.uploadDir, filename)

	out, err := os.Create(filePath)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}
	defer out.Close()

	if err := png.Encode(out, resized); err != nil {
		respondError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	avatarURL := fmt.Sprintf("%s/%s", a.uploadURL, filename)
	user, err := a.profiles.SetAvatarURL(userID, avatarURL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "更新头像失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToPayload(user)})
}

// shrinkToFit 将图片等比缩小到最长边不超过 limit，已经足够小时原样返回
func shrinkToFit(src image.Image, limit int) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= limit && height <= limit {
		return src
	}

	if width >= height {
		height = height * limit / width
		width = limit
	} else {
		width = width * limit / height
		height = limit
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

func userToPayload(user *db.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"avatar_url": user.AvatarURL,
		"timezone":   user.Timezone,
	}
}
