package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type structValidator struct{ v *validator.Validate }

func (s structValidator) Validate(i any) error { return s.v.Struct(i) }

func restore() {
	listTasksByUser = store.ListTasksByUser
	getTaskByID = store.GetTaskByID
	createTask = store.CreateTask
	updateTask = store.UpdateTask
	deleteTask = store.DeleteTask
}

var now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

// memTasks 以擁有者隔離的記憶體任務表
type memTasks map[string]*model.Task

func install(t *testing.T, m memTasks) {
	t.Cleanup(restore)
	seq := 0
	listTasksByUser = func(_ context.Context, _ database.DB, owner string) ([]*model.Task, error) {
		out := []*model.Task{}
		for _, task := range m {
			if task.UserID == owner {
				out = append(out, task)
			}
		}
		return out, nil
	}
	getTaskByID = func(_ context.Context, _ database.DB, id, owner string) (*model.Task, error) {
		task, ok := m[id]
		if !ok || task.UserID != owner {
			return nil, fmt.Errorf("GetTaskByID: %w", store.ErrNotFound)
		}
		return task, nil
	}
	createTask = func(_ context.Context, _ database.DB, task *model.Task) (*model.Task, error) {
		seq++
		task.ID = fmt.Sprintf("t%d", seq)
		if task.Date.IsZero() {
			task.Date = now
		}
		m[task.ID] = task
		return task, nil
	}
	updateTask = func(_ context.Context, _ database.DB, id, owner string, p model.TaskPatch) (*model.Task, error) {
		task, ok := m[id]
		if !ok || task.UserID != owner {
			return nil, store.ErrNotFound
		}
		if p.Title != nil {
			task.Title = *p.Title
		}
		if p.Description != nil {
			task.Description = *p.Description
		}
		if p.Date != nil {
			task.Date = *p.Date
		}
		if p.Completed != nil {
			task.Completed = *p.Completed
		}
		return task, nil
	}
	deleteTask = func(_ context.Context, _ database.DB, id, owner string) error {
		task, ok := m[id]
		if !ok || task.UserID != owner {
			return store.ErrNotFound
		}
		delete(m, id)
		return nil
	}
}

func call(h echo.HandlerFunc, owner, method, id, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.Validator = structValidator{v: validator.New()}
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if owner != "" {
		c.Set(middleware.ContextUserKey, &model.Identity{ID: owner, Role: model.RoleUser})
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCreateTaskHandler(t *testing.T) {
	m := memTasks{}
	install(t, m)

	rec := call(CreateTaskHandler(nil), "u1", http.MethodPost, "", `{"description":"no title"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(CreateTaskHandler(nil), "", http.MethodPost, "", `{"title":"x"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(CreateTaskHandler(nil), "u1", http.MethodPost, "", `{"title":"  Write report "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Write report", m["t1"].Title)
	require.Equal(t, now, m["t1"].Date)
	require.False(t, m["t1"].Completed)
	require.Equal(t, "u1", m["t1"].UserID)

	rec = call(CreateTaskHandler(nil), "u1", http.MethodPost, "", `{"title":"Ship","date":"2024-06-11T00:00:00Z","completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), m["t2"].Date.UTC())
	require.True(t, m["t2"].Completed)

	rec = call(CreateTaskHandler(nil), "u1", http.MethodPost, "", `{"title":"Pick","date":"2024-06-11"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), m["t3"].Date)

	rec = call(CreateTaskHandler(nil), "u1", http.MethodPost, "", `{"title":"Bad","date":"11/06/2024"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	createTask = func(context.Context, database.DB, *model.Task) (*model.Task, error) { return nil, errors.New("db") }
	rec = call(CreateTaskHandler(nil), "u1", http.MethodPost, "", `{"title":"x"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListTasksHandler(t *testing.T) {
	install(t, memTasks{
		"t1": {ID: "t1", Title: "mine", UserID: "u1"},
		"t2": {ID: "t2", Title: "theirs", UserID: "u2"},
	})
	rec := call(ListTasksHandler(nil), "u1", http.MethodGet, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "mine")
	require.NotContains(t, rec.Body.String(), "theirs")

	listTasksByUser = func(context.Context, database.DB, string) ([]*model.Task, error) { return nil, errors.New("db") }
	rec = call(ListTasksHandler(nil), "u1", http.MethodGet, "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetTaskHandler(t *testing.T) {
	install(t, memTasks{"t1": {ID: "t1", Title: "mine", UserID: "u1"}})

	rec := call(GetTaskHandler(nil), "u1", http.MethodGet, "t1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(GetTaskHandler(nil), "u2", http.MethodGet, "t1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "task not found")

	rec = call(GetTaskHandler(nil), "u1", http.MethodGet, "missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskHandler(t *testing.T) {
	m := memTasks{"t1": {ID: "t1", Title: "old", Description: "keep", UserID: "u1"}}
	install(t, m)

	rec := call(UpdateTaskHandler(nil), "u1", http.MethodPut, "t1", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, m["t1"].Completed)
	require.Equal(t, "old", m["t1"].Title)
	require.Equal(t, "keep", m["t1"].Description)

	rec = call(UpdateTaskHandler(nil), "u1", http.MethodPut, "t1", `{"date":"2024-06-12"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), m["t1"].Date)
	require.Equal(t, "old", m["t1"].Title)

	rec = call(UpdateTaskHandler(nil), "u1", http.MethodPut, "t1", `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(UpdateTaskHandler(nil), "u2", http.MethodPut, "t1", `{"title":"stolen"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "old", m["t1"].Title)

	updateTask = func(context.Context, database.DB, string, string, model.TaskPatch) (*model.Task, error) {
		return nil, errors.New("db")
	}
	rec = call(UpdateTaskHandler(nil), "u1", http.MethodPut, "t1", `{"title":"x"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteTaskHandler(t *testing.T) {
	m := memTasks{"t1": {ID: "t1", UserID: "u1"}}
	install(t, m)

	rec := call(DeleteTaskHandler(nil), "u2", http.MethodDelete, "t1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, m, "t1")

	rec = call(DeleteTaskHandler(nil), "u1", http.MethodDelete, "t1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, m)

	// 第二次刪除應回傳 404
	rec = call(DeleteTaskHandler(nil), "u1", http.MethodDelete, "t1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
