package middlewares

import (
	"errors"
	"user-directory/app/server/constants"
	"user-directory/app/server/errs"
	"user-directory/app/server/jwt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Auth requires "Authorization: Bearer <token>" and stores the verified claims in the echo context.
func Auth(j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  constants.ContextKeyClaims,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l.Debug("rejected bearer token", zap.String("URI", c.Request().RequestURI), zap.Error(err))

			// 不区分缺失、格式错误、过期或签名错误
			var e *errs.Error
			if errors.As(err, &e) && e.Kind == errs.KindAuth {
				return e
			}
			return errs.Unauthorized("Not authorized.", err)
		},
	})
}

// Claims returns the claims stored by Auth, or nil on routes without it.
func Claims(c echo.Context) *jwt.Claims {
	claims, _ := c.Get(constants.ContextKeyClaims).(*jwt.Claims)
	return claims
}
