// File: internal/handler/auth/session.go
package auth

import (
	"errors"
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 清除 token cookie
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Router      /logout [post]
func LogoutHandler(ck handler.Cookie) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck.Clear(c)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
	}
}

// VerifyTokenHandler 檢查請求中的令牌是否仍有效，不檢查帳號啟用狀態
// @Summary     驗證令牌
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /verify [get]
func VerifyTokenHandler(db database.DB, tokens service.Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		tok := middleware.ExtractToken(c)
		if tok == "" {
			return handler.Error(c, apperr.New(apperr.Unauthorized, "unauthorized"))
		}
		claims, err := tokens.Verify(tok)
		if err != nil {
			return handler.Error(c, apperr.New(apperr.Unauthorized, "unauthorized"))
		}
		user, err := getUserByID(c.Request().Context(), db, claims.ID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Error(c, apperr.New(apperr.Unauthorized, "unauthorized"))
		}
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// RefreshTokenHandler 以目前身份重新簽發令牌
// @Summary     刷新令牌
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.AuthResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /refresh-token [post]
func RefreshTokenHandler(db database.DB, tokens service.Tokens, ck handler.Cookie) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		user, err := getUserByID(c.Request().Context(), db, id.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		return issueSession(c, tokens, ck, user)
	}
}
