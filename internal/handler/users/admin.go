// File: internal/handler/users/admin.go
package users

import (
	"net/http"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/labstack/echo/v4"
)

// @Summary     List users
// @Description 列出所有使用者（新到舊）
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponses(users))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id  path     string true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := getUserByID(c.Request().Context(), db, c.Param("id"))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Activate or deactivate a user
// @Description super_admin 不可停用；非 super_admin 不可變更 super_admin；不可變更自己
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     string                  true "使用者 ID"
// @Param       body body     api.ToggleStatusRequest true "啟用狀態"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /users/{id}/toggle-status [put]
func ToggleStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ToggleStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		caller, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		ctx := c.Request().Context()

		target, err := getUserByID(ctx, db, c.Param("id"))
		if err != nil {
			return handler.Error(c, err)
		}
		active := *req.IsActive
		if err := service.CheckToggleStatus(caller, target, active); err != nil {
			return handler.Error(c, err)
		}

		user, err := setUserActive(ctx, db, target.ID, active)
		if err != nil {
			return handler.Error(c, err)
		}
		resp := api.NewUserResponse(user)
		resp.Message = "user deactivated"
		if active {
			resp.Message = "user activated"
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Delete a user by ID
// @Description super_admin 不可刪除；不可刪除自己
// @Tags        users
// @Produce     json
// @Param       id  path     string true "使用者 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		ctx := c.Request().Context()

		target, err := getUserByID(ctx, db, c.Param("id"))
		if err != nil {
			return handler.Error(c, err)
		}
		if err := service.CheckDeleteUser(caller, target); err != nil {
			return handler.Error(c, err)
		}
		if err := deleteUser(ctx, db, target.ID); err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "user deleted"})
	}
}

// @Summary     Change a user's role
// @Description 僅 super_admin；系統中最多一位 super_admin
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "使用者 ID"
// @Param       body body     api.ChangeRoleRequest true "新角色"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /users/{id}/change-role [put]
func ChangeRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ChangeRoleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		caller, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		ctx := c.Request().Context()
		targetID := c.Param("id")
		role := model.Role(strings.TrimSpace(req.Role))

		if err := service.CheckChangeRole(caller, targetID, role); err != nil {
			return handler.Error(c, err)
		}
		target, err := getUserByID(ctx, db, targetID)
		if err != nil {
			return handler.Error(c, err)
		}
		if role == model.RoleSuperAdmin && target.Role != model.RoleSuperAdmin {
			exists, err := superAdminExists(ctx, db, target.ID)
			if err != nil {
				return handler.Error(c, err)
			}
			if exists {
				return handler.Error(c, apperr.New(apperr.Conflict, "a super_admin already exists"))
			}
		}

		user, err := setUserRole(ctx, db, target.ID, role)
		if err != nil {
			return handler.Error(c, err)
		}
		resp := api.NewUserResponse(user)
		resp.Message = "role updated to " + string(role)
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Create an admin user
// @Description 建立 admin 或 super_admin 帳號（不發行令牌）；role 預設 admin
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateAdminRequest true "管理員資料"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /create-admin [post]
func CreateAdminHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateAdminRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body", Code: string(apperr.BadRequest)})
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err)
		}
		caller, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		ctx := c.Request().Context()

		role := model.RoleAdmin
		if r := strings.TrimSpace(req.Role); r != "" {
			role = model.Role(r)
		}
		if err := service.CheckCreateAdmin(caller.Role, role); err != nil {
			return handler.Error(c, err)
		}
		if role == model.RoleSuperAdmin {
			exists, err := superAdminExists(ctx, db, "")
			if err != nil {
				return handler.Error(c, err)
			}
			if exists {
				return handler.Error(c, apperr.New(apperr.Conflict, "a super_admin already exists"))
			}
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		taken, err := emailTaken(ctx, db, email, "")
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
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			IsActive:     true,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		resp := api.NewUserResponse(user)
		resp.Message = string(role) + " user created"
		return c.JSON(http.StatusOK, resp)
	}
}
