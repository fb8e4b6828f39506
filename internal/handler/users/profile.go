// File: internal/handler/users/profile.go
package users

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

// @Summary     Get current user profile
// @Description 取得當前使用者資料
// @Tags        profile
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse "使用者不存在"
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /profile [get]
func GetProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		user, err := getUserByID(c.Request().Context(), db, id.ID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Error(c, apperr.WithStatus(apperr.NotFound, http.StatusBadRequest, "user not found"))
		}
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Update current user profile
// @Description 更新當前使用者的 username 與 email，兩者皆不可與其他使用者重複
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateProfileRequest true "個人資料"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /profile [put]
func UpdateProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateProfileRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		ctx := c.Request().Context()
		email := strings.ToLower(strings.TrimSpace(req.Email))
		username := strings.TrimSpace(req.Username)

		taken, err := emailTaken(ctx, db, email, id.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		if taken {
			return handler.Error(c, apperr.New(apperr.Conflict, "email already in use"))
		}
		taken, err = usernameTaken(ctx, db, username, id.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		if taken {
			return handler.Error(c, apperr.New(apperr.Conflict, "username already in use"))
		}

		user, err := updateUserProfile(ctx, db, id.ID, username, email)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Change own password
// @Description 驗證目前密碼並更新為新密碼
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       body body     api.ChangePasswordRequest true "密碼資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /change-password [put]
func ChangePasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ChangePasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		ctx := c.Request().Context()

		user, err := getUserByID(ctx, db, id.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		if err := comparePassword(user.PasswordHash, req.CurrentPassword); err != nil {
			return handler.Error(c, apperr.New(apperr.BadCredentials, "current password is incorrect"))
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return handler.Error(c, err)
		}
		if err := updateUserPassword(ctx, db, user.ID, hash); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated"})
	}
}

// @Summary     Delete own account
// @Description 驗證密碼後刪除帳號與所有任務，並清除 cookie
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       body body     api.DeleteAccountRequest true "確認資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /account [delete]
func DeleteAccountHandler(db database.DB, ck handler.Cookie) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.DeleteAccountRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		ctx := c.Request().Context()

		user, err := getUserByID(ctx, db, id.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		if err := service.CheckDeleteAccount(user); err != nil {
			return handler.Error(c, err)
		}
		if err := comparePassword(user.PasswordHash, req.Password); err != nil {
			return handler.Error(c, apperr.New(apperr.BadCredentials, "password is incorrect"))
		}
		if err := deleteUser(ctx, db, user.ID); err != nil {
			return handler.Error(c, err)
		}
		ck.Clear(c)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "account deleted"})
	}
}
