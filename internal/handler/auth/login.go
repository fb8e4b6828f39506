// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，設定 token cookie 並回傳令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse "使用者不存在或密碼錯誤"
// @Failure     403  {object} api.ErrorResponse "帳號已停用"
// @Failure     500  {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, tokens service.Tokens, ck handler.Cookie) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}

		// 撈使用者資料
		user, err := getUserByEmail(c.Request().Context(), db, strings.TrimSpace(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			return handler.Error(c, apperr.WithStatus(apperr.NotFound, http.StatusBadRequest, "user not found"))
		}
		if err != nil {
			return handler.Error(c, err)
		}
		if !user.IsActive {
			return handler.Error(c, apperr.New(apperr.Forbidden, "account is locked"))
		}

		// 驗證密碼
		if err := comparePassword(user.PasswordHash, req.Password); err != nil {
			return handler.Error(c, apperr.New(apperr.BadCredentials, "invalid credentials"))
		}

		return issueSession(c, tokens, ck, user)
	}
}
