package handlers

import (
	"net/http"
	"user-directory/app/server/errs"
	"user-directory/app/server/models"
	"user-directory/app/server/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ListMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type UserListResponse struct {
	Data []models.User `json:"data"`
	Meta ListMeta      `json:"meta"`
}

type UserDeleteResponse struct {
	Deleted *models.User `json:"deleted"`
}

func (a *App) UserList(c echo.Context) error {
	limit, offset := validation.Pagination(c.QueryParam("limit"), c.QueryParam("offset"))

	var (
		users      []models.User
		usersCount int64
	)

	// 同时查询当前页与总数，任一失败则整个请求失败
	g, gctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		users, err = a.users.List(gctx, limit, offset)
		return err
	})
	g.Go(func() (err error) {
		usersCount, err = a.users.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return storeError("list users", err)
	}

	if users == nil {
		users = []models.User{}
	}

	return c.JSON(http.StatusOK, &UserListResponse{
		Data: users,
		Meta: ListMeta{
			Total:  usersCount,
			Limit:  limit,
			Offset: offset,
		},
	})
}

func (a *App) UserInfoGet(c echo.Context) error {
	id, err := validation.ObjectID(c.Param("id"))
	if err != nil {
		return err
	}

	// 从数据库中获得指定的用户
	user, err := a.users.FindByID(c.Request().Context(), id)
	if err != nil {
		return storeError("get user", err)
	}
	if user == nil {
		return errs.NotFound(msgUserNotFound)
	}

	return c.JSON(http.StatusOK, user)
}

func (a *App) UserInfoUpdate(c echo.Context) error {
	id, err := validation.ObjectID(c.Param("id"))
	if err != nil {
		return err
	}

	// 绑定请求体，用户名与密码在创建后不可修改，请求中的这两个字段会被忽略
	var req validation.UserPayload
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return errs.Validation(msgInvalidBody)
	}

	fields, err := validation.ValidateUserPayload(req, true)
	if err != nil {
		return err
	}

	user, err := a.users.UpdatePartial(c.Request().Context(), id, fields)
	if err != nil {
		return duplicateError(storeError("update user", err))
	}
	if user == nil {
		return errs.NotFound(msgUserNotFound)
	}

	return c.JSON(http.StatusOK, user)
}

func (a *App) UserDelete(c echo.Context) error {
	id, err := validation.ObjectID(c.Param("id"))
	if err != nil {
		return err
	}

	deleted, err := a.users.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return storeError("delete user", err)
	}
	if deleted == nil {
		return errs.NotFound(msgUserNotFound)
	}

	a.l.Info("user deleted", zap.Stringer("id", id))

	return c.JSON(http.StatusOK, &UserDeleteResponse{Deleted: deleted})
}
