package handlers

import (
	"net/http"
	"user-directory/app/server/errs"
	"user-directory/app/server/jwt"
	"user-directory/app/server/models"
	"user-directory/app/server/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Identifier *string `json:"identifier"` // 用户名或邮箱
	Password   *string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return errs.Validation(msgInvalidBody)
	}

	identifier, err := validation.Identifier(deref(req.Identifier))
	if err != nil {
		return err
	}
	if err = validation.Password(deref(req.Password)); err != nil {
		return err
	}

	// 按格式区分邮箱与用户名
	var email, username string
	if validation.IsEmail(identifier) {
		email = identifier
	} else {
		username = identifier
	}

	user, err := a.users.FindByIdentifier(rctx, email, username)
	if err != nil {
		return storeError("find user", err)
	}

	// 用户不存在与密码错误返回同样的结果
	if user == nil || !a.pw.Verify(*req.Password, user.PasswordHash) {
		return errs.Unauthorized(msgInvalidCredentials, nil)
	}

	// 签出 JWT
	token, err := a.jwt.SignToken(&jwt.User{
		ID:       user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return errs.Internal(err)
	}

	// 返回， PasswordHash 不会被序列化
	return c.JSON(http.StatusOK, &LoginResponse{
		Token: token,
		User:  user,
	})
}
