package inits

import (
	"fmt"
	"strings"
	"user-directory/app/server/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const sqlitePrefix = "sqlite:"

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接： sqlite:<path> 用于本地开发，其他都视为 postgres DSN
	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(conn, sqlitePrefix); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(conn)
	}

	if db, err = gorm.Open(dialector, &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
	)
}
