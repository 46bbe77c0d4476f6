package handlers

import (
	"user-directory/app/server/middlewares"

	"github.com/labstack/echo/v4"
)

func (a *App) RegisterHandlers(e *echo.Echo) {
	e.HTTPErrorHandler = a.HTTPErrorHandler

	e.GET("/health", a.HealthCheck)

	e.POST("/auth/register", a.AuthRegister)
	e.POST("/auth/login", a.AuthLogin)

	e.GET("/users", a.UserList)
	e.GET("/users/:id", a.UserInfoGet)
	e.PUT("/users/:id", a.UserInfoUpdate)
	e.DELETE("/users/:id", a.UserDelete)

	e.GET("/me", a.UserInfoGetSelf, middlewares.Auth(a.jwt, a.l))
}
