package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"user-directory/app/server/apidocs"
	"user-directory/app/server/handlers"
	"user-directory/app/server/inits"
	"user-directory/app/server/jwt"
	"user-directory/app/server/password"
	"user-directory/app/server/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd())
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化 JWT ，缺少密钥时拒绝启动
	j, err := jwt.New(cfg.Security.SignatureSecretKey, cfg.Security.TokenExpires)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化密码哈希
	pw, err := password.New(cfg.Security.PasswordHash, cfg.Security.BcryptCost)
	if err != nil {
		l.Fatal("error initializing password hasher", zap.Error(err))
	}

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}
	var users repository.Users = repository.NewGormUsers(db)

	// 初始化 redis 连接（可选）
	if cfg.Cache.RedisConnectionString != "" {
		rdb, err := inits.Redis(cfg.Cache.RedisConnectionString)
		if err != nil {
			l.Fatal("error initializing Redis connection", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		users = repository.NewCached(users, rdb, cfg.Cache.TTL, l)
		l.Info("user cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, users, j, pw)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.System.CORSOrigins,
	}))

	// 绑定 echo 服务
	handlerApp.RegisterHandlers(e)

	// 添加 API 文档，生产环境仅对内网开放
	if specJSON, err := apidocs.SpecJSON(); err != nil {
		l.Error("error initializing api docs", zap.Error(err))
	} else {
		docOpts := []apidocs.Opts{apidocs.WithTitle("User Directory API")}
		if cfg.System.IsProd() {
			docOpts = append(docOpts, apidocs.WithAuthorizer(apidocs.InternalOnly))
		}
		e.Pre(apidocs.Doc("/api", specJSON, docOpts...))
	}

	// 启动 echo 服务
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(":" + strconv.Itoa(cfg.System.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("error shutting down the server", zap.Error(err))
	}
}
