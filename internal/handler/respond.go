// File: internal/handler/respond.go
package handler

import (
	"errors"

	"taskboard/internal/api"
	"taskboard/internal/apperr"
	"taskboard/internal/logging"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

// storeErrors store 錯誤對應的業務錯誤
var storeErrors = []struct {
	err  error
	kind apperr.Kind
}{
	{store.ErrNotFound, apperr.NotFound},
	{store.ErrEmailTaken, apperr.Conflict},
	{store.ErrUsernameTaken, apperr.Conflict},
	{store.ErrSuperAdminExists, apperr.Conflict},
	{store.ErrDuplicate, apperr.Conflict},
}

// Classify 將任意錯誤轉為 *apperr.Error
func Classify(err error) *apperr.Error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	for _, se := range storeErrors {
		if errors.Is(err, se.err) {
			return &apperr.Error{Kind: se.kind, Message: se.err.Error(), Err: err}
		}
	}
	return apperr.Wrap(err)
}

// Error 依錯誤分類輸出 JSON，500 類錯誤另外寫入日誌
func Error(c echo.Context, err error) error {
	ae := Classify(err)
	if ae.Kind == apperr.Internal {
		logging.FromContext(c).WithError(err).Error("internal error")
	}
	return c.JSON(ae.HTTPStatus(), api.ErrorResponse{Message: ae.Error(), Code: string(ae.Kind)})
}

// BadRequest 綁定或驗證失敗
func BadRequest(c echo.Context, err error) error {
	return Error(c, apperr.New(apperr.BadRequest, err.Error()))
}
