package handlers

import (
	"net/http"
	"time"
	"user-directory/app/server/errs"
	"user-directory/app/server/middlewares"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type MeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserInfoGetSelf must be mounted behind middlewares.Auth.
func (a *App) UserInfoGetSelf(c echo.Context) error {
	claims := middlewares.Claims(c)
	if claims == nil {
		return errs.Unauthorized("Not authorized.", nil)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return errs.Unauthorized("Not authorized.", err)
	}

	user, err := a.users.FindByID(c.Request().Context(), id)
	if err != nil {
		return storeError("get self", err)
	}
	if user == nil {
		return errs.NotFound(msgUserNotFound)
	}

	return c.JSON(http.StatusOK, &MeResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
