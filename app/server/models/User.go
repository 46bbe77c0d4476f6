package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

type User struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"` // 由仓库在创建时分配，不可变

	// 基础信息
	Name     string `gorm:"column:name;not null" json:"name"`                      // 显示名称
	Username string `gorm:"column:username;not null;uniqueIndex" json:"username"` // 用户名，小写储存，全局唯一
	Email    string `gorm:"column:email;not null;uniqueIndex" json:"email"`       // 邮箱，小写储存，全局唯一

	// 登录认证相关
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"` // 密码哈希，任何响应中都不出现

	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// PublicColumns 是默认读取时选择的列（不包含密码哈希）
var PublicColumns = []string{"id", "name", "username", "email", "created_at"}

// Validate 检查持久化前的字段约束，返回所有字段错误的组合
func (u *User) Validate() error {
	var err error
	if len(strings.TrimSpace(u.Name)) < 2 {
		err = multierr.Append(err, errors.New("name must have at least 2 characters"))
	}
	if u.Username == "" {
		err = multierr.Append(err, errors.New("username is required"))
	}
	if u.Email == "" {
		err = multierr.Append(err, errors.New("email is required"))
	}
	if u.PasswordHash == "" {
		err = multierr.Append(err, errors.New("password hash is required"))
	}
	return err
}
