package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"` // 秒
}

func (a *App) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
		Uptime: time.Since(a.started).Seconds(),
	})
}
