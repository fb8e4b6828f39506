// File: internal/handler/notifications/notifications.go
package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/cache"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/logging"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/notify"
	"taskboard/internal/store"
	"taskboard/internal/worker"

	"github.com/labstack/echo/v4"
)

// ReportCacheTTL 管理員報表在 Redis 中保留的時間
const ReportCacheTTL = 30 * time.Second

var (
	listTasksByUser = store.ListTasksByUser
	listAllTasks    = store.ListAllTasks
	listUsers       = store.ListUsers
	timeNow         = time.Now
)

func reportKey(l *notify.Localizer) string {
	return "notifications:admin:" + l.Tag.String()
}

// @Summary     My notifications
// @Description 依到期日產生未完成任務的提醒，訊息語系依 Accept-Language
// @Tags        notifications
// @Produce     json
// @Param       Accept-Language header   string false "en 或 es"
// @Success     200             {array}  notify.Notification
// @Failure     401             {object} api.ErrorResponse
// @Failure     500             {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /notifications [get]
func UserNotificationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		tasks, err := listTasksByUser(c.Request().Context(), db, id.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		l := notify.FromAcceptLanguage(c.Request().Header.Get(notify.HeaderAcceptLanguage))
		return c.JSON(http.StatusOK, notify.UserFeed(tasks, timeNow(), l))
	}
}

// @Summary     Admin notifications
// @Description 系統統計與警示，僅限 admin 角色
// @Tags        notifications
// @Produce     json
// @Param       Accept-Language header   string false "en 或 es"
// @Success     200             {object} notify.Report
// @Failure     401             {object} api.ErrorResponse
// @Failure     403             {object} api.ErrorResponse
// @Failure     500             {object} api.ErrorResponse
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /admin/notifications [get]
func AdminNotificationsHandler(db database.DB, pool worker.Pool, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := middleware.MustIdentity(c)
		if err != nil {
			return handler.Error(c, err)
		}
		if id.Role != model.RoleAdmin {
			return handler.Error(c, apperr.New(apperr.Forbidden, "not authorized"))
		}

		ctx := c.Request().Context()
		l := notify.FromAcceptLanguage(c.Request().Header.Get(notify.HeaderAcceptLanguage))
		log := logging.FromContext(c)

		if cch != nil {
			raw, err := cch.Get(ctx, reportKey(l)).Bytes()
			switch {
			case err == nil:
				var cached notify.Report
				if err := json.Unmarshal(raw, &cached); err == nil {
					return c.JSON(http.StatusOK, cached)
				}
				log.Warn("discarding malformed cached admin report")
			case !cache.IsMiss(err):
				log.WithError(err).Warn("admin report cache read failed")
			}
		}

		var (
			users []*model.User
			tasks []*model.Task
		)
		err = worker.RunAll(ctx, pool,
			func(ctx context.Context) (err error) {
				users, err = listUsers(ctx, db)
				return err
			},
			func(ctx context.Context) (err error) {
				tasks, err = listAllTasks(ctx, db)
				return err
			},
		)
		if err != nil {
			return handler.Error(c, err)
		}

		report := notify.AdminReport(users, tasks, timeNow(), l)
		if cch != nil {
			if raw, err := json.Marshal(report); err == nil {
				if err := cch.Set(ctx, reportKey(l), raw, ReportCacheTTL).Err(); err != nil {
					log.WithError(err).Warn("admin report cache write failed")
				}
			}
		}
		return c.JSON(http.StatusOK, report)
	}
}
