package handlers

import (
	"net/http"
	"user-directory/app/server/errs"
	"user-directory/app/server/models"
	"user-directory/app/server/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Username *string          `json:"username"`
	Name     validation.Field `json:"name"`
	Email    validation.Field `json:"email"`
	Password *string          `json:"password"`
}

type RegisterResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return errs.Validation(msgInvalidBody)
	}

	// 校验用户名与密码
	username, err := validation.Username(deref(req.Username))
	if err != nil {
		return err
	}
	if err = validation.Password(deref(req.Password)); err != nil {
		return err
	}

	// 校验名称与邮箱
	fields, err := validation.ValidateUserPayload(validation.UserPayload{
		Name:  req.Name,
		Email: req.Email,
	}, false)
	if err != nil {
		return err
	}

	// 处理密码
	passwordHash, err := a.pw.Hash(*req.Password)
	if err != nil {
		return errs.Internal(err)
	}

	// 创建用户
	user := models.User{
		Name:         *fields.Name,
		Username:     username,
		Email:        *fields.Email,
		PasswordHash: passwordHash,
	}
	if err = a.users.Create(rctx, &user); err != nil {
		return duplicateError(storeError("create user", err))
	}

	a.l.Info("user registered", zap.Stringer("id", user.ID), zap.String("username", user.Username))

	return c.JSON(http.StatusCreated, &RegisterResponse{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
