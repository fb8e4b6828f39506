// File: internal/handler/ping.go
package handler

import (
	"context"
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/cache"
	"taskboard/internal/database"
	"taskboard/internal/logging"

	"github.com/labstack/echo/v4"
)

const healthKey = "health:ping"

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查（需通過認證）
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	checks := []struct {
		name  string
		check func(ctx context.Context) error
	}{
		{"database", db.Ping},
		{"cache", func(ctx context.Context) error { return cache.HealthCheck(ctx, cch, healthKey) }},
	}
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		for _, hc := range checks {
			if err := hc.check(ctx); err != nil {
				logging.FromContext(c).WithField("component", hc.name).WithError(err).Warn("health check failed")
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
					Message: hc.name + " unhealthy",
					Code:    string(apperr.Internal),
				})
			}
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
