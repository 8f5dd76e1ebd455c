package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了用户模型
// Timezone 存储 IANA 时区名（如 Asia/Shanghai），为空时使用服务器本地时区；
// 连续打卡天数的日期边界按该时区计算
type User struct {
	gorm.Model
	Email     string `gorm:"unique;not null"`
	Name      string
	Password  string `gorm:"not null"`
	AvatarURL string
	Timezone  string
}

// EnsureUser 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
func EnsureUser(email, password string) error {
	trimmedEmail := strings.TrimSpace(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		name := trimmedEmail
		if at := strings.Index(trimmedEmail, "@"); at > 0 {
			name = trimmedEmail[:at]
		}

		return DB.Create(&User{Email: trimmedEmail, Name: name, Password: string(hashed)}).Error
	}

	return nil
}
