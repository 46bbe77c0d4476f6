package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"user-directory/app/server/errs"
	"user-directory/app/server/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ErrorMessage struct {
	Error string `json:"error"`
}

const (
	msgUserNotFound       = "User not found."
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidBody        = "Invalid request body."
)

// HTTPErrorHandler is the only place mapping errors to status codes. Internal errors are logged in full and
// rendered with a generic message.
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		statusCode int
		message    string
		de         *errs.Error
		he         *echo.HTTPError
	)
	switch {
	case errors.As(err, &de):
		statusCode, message = de.StatusCode(), de.Message
		if de.Kind == errs.KindInternal {
			a.l.Error("internal error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
		}
	case errors.As(err, &he):
		statusCode = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(statusCode)
		}
		if statusCode >= http.StatusInternalServerError {
			a.l.Error("http error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
		}
	default:
		a.l.Error("unexpected error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
		statusCode, message = http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(statusCode)
	} else {
		respErr = c.JSON(statusCode, &ErrorMessage{Error: message})
	}
	if respErr != nil {
		a.l.Error("failed to write error response", zap.Error(respErr))
	}
}

// duplicateError turns a repository conflict into the message shown to the caller.
func duplicateError(err error) error {
	var de *errs.Error
	if !errors.As(err, &de) || de.Kind != errs.KindConflict {
		return err
	}

	msg := "Data duplicated."
	switch de.Field {
	case repository.FieldEmail:
		msg = "Email is already registered."
	case repository.FieldUsername:
		msg = "Username is already registered."
	}
	return &errs.Error{Kind: errs.KindConflict, Message: msg, Field: de.Field, Err: de.Err}
}

// storeError keeps domain errors and marks everything else internal.
func storeError(op string, err error) error {
	var de *errs.Error
	if errors.As(err, &de) {
		return err
	}
	return errs.Internal(fmt.Errorf("%s: %w", op, err))
}
