package handlers

import (
	"time"
	"user-directory/app/server/jwt"
	"user-directory/app/server/password"
	"user-directory/app/server/repository"

	"go.uber.org/zap"
)

type App struct {
	l       *zap.Logger      // 日志
	users   repository.Users // 用户仓库
	jwt     *jwt.JWT         // JWT ，用于无状态验证
	pw      *password.Hasher // 密码哈希
	started time.Time        // 启动时间，用于健康检查中的 uptime
}

func NewApp(l *zap.Logger, users repository.Users, j *jwt.JWT, pw *password.Hasher) *App {
	return &App{
		l:       l,
		users:   users,
		jwt:     j,
		pw:      pw,
		started: time.Now(),
	}
}
