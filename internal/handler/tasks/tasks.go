// File: internal/handler/tasks/tasks.go
package tasks

import (
	"net/http"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listTasksByUser = store.ListTasksByUser
	getTaskByID     = store.GetTaskByID
	createTask      = store.CreateTask
	updateTask      = store.UpdateTask
	deleteTask      = store.DeleteTask
)

// @Summary     List my tasks
// @Description 列出當前使用者的任務（依到期日排序）
// @Tags        tasks
// @Produce     json
// @Success     200 {array}  model.Task
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /tasks [get]
func ListTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		tasks, err := listTasksByUser(c.Request().Context(), db, id.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

// @Summary     Create a task
// @Description 建立任務，date 可為 RFC3339 或 YYYY-MM-DD，未提供時為目前時間
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateTaskRequest true "任務資料"
// @Success     200  {object} model.Task
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /tasks [post]
func CreateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateTaskRequest
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

		t := &model.Task{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Completed:   req.Completed,
			UserID:      id.ID,
		}
		if req.Date != nil {
			t.Date = req.Date.Time
		}
		created, err := createTask(c.Request().Context(), db, t)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, created)
	}
}

// @Summary     Get a task
// @Description 只能讀取自己的任務，他人任務視為不存在
// @Tags        tasks
// @Produce     json
// @Param       id  path     string true "任務 ID"
// @Success     200 {object} model.Task
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /tasks/{id} [get]
func GetTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		t, err := getTaskByID(c.Request().Context(), db, c.Param("id"), id.ID)
		if err != nil {
			return handler.Error(c, notFound(err))
		}
		return c.JSON(http.StatusOK, t)
	}
}

// @Summary     Update a task
// @Description 部分更新，未帶的欄位維持原值
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "任務 ID"
// @Param       body body     api.UpdateTaskRequest true "更新欄位"
// @Success     200  {object} model.Task
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /tasks/{id} [put]
func UpdateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateTaskRequest
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

		patch := model.TaskPatch{
			Title:       req.Title,
			Description: req.Description,
			Date:        req.Date.TimePtr(),
			Completed:   req.Completed,
		}
		t, err := updateTask(c.Request().Context(), db, c.Param("id"), id.ID, patch)
		if err != nil {
			return handler.Error(c, notFound(err))
		}
		return c.JSON(http.StatusOK, t)
	}
}

// @Summary     Delete a task
// @Tags        tasks
// @Param       id  path string true "任務 ID"
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /tasks/{id} [delete]
func DeleteTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		if err := deleteTask(c.Request().Context(), db, c.Param("id"), id.ID); err != nil {
			return handler.Error(c, notFound(err))
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// notFound 任務不存在時回傳固定訊息
func notFound(err error) error {
	if handler.Classify(err).Kind == apperr.NotFound {
		return apperr.New(apperr.NotFound, "task not found")
	}
	return err
}
