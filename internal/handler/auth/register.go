// File: internal/handler/auth/register.go
package auth

import (
	"net/http"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立一般使用者並直接登入
// @Summary     註冊使用者
// @Description 建立 role=user 的帳號，成功後設定 token cookie 並回傳令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /register [post]
func RegisterHandler(db database.DB, tokens service.Tokens, ck handler.Cookie) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		ctx := c.Request().Context()
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		taken, err := emailTaken(ctx, db, req.Email, "")
		if err != nil {
			return handler.Error(c, err)
		}
		if taken {
			return handler.Error(c, apperr.New(apperr.Conflict, "email already in use"))
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return handler.Error(c, err)
		}

		user, err := createUser(ctx, db, &model.User{
			Username:     strings.TrimSpace(req.Username),
			Email:        req.Email,
			PasswordHash: hash,
			Role:         model.RoleUser,
			IsActive:     true,
		})
		if err != nil {
			return handler.Error(c, err)
		}

		return issueSession(c, tokens, ck, user)
	}
}

// issueSession 簽發令牌、寫入 cookie 並回傳使用者與令牌
func issueSession(c echo.Context, tokens service.Tokens, ck handler.Cookie, user *model.User) error {
	token, expiresAt, err := tokens.Issue(user.ID)
	if err != nil {
		return handler.Error(c, err)
	}
	ck.Set(c, token, expiresAt)
	return c.JSON(http.StatusOK, api.AuthResponse{
		User:      api.NewUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
