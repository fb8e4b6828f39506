// Package apperr 定義業務層錯誤分類，handler 依 Kind 決定 HTTP 狀態碼
package apperr

import (
	"errors"
	"net/http"
)

// Kind 錯誤分類
type Kind string

const (
	Unauthorized   Kind = "unauthorized"
	Forbidden      Kind = "forbidden"
	Conflict       Kind = "conflict"
	NotFound       Kind = "not_found"
	BadCredentials Kind = "bad_credentials"
	BadRequest     Kind = "bad_request"
	Internal       Kind = "internal"
)

// Status 對應的 HTTP 狀態碼
func (k Kind) Status() int {
	switch k {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict, BadCredentials, BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Internal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Error 帶分類的業務錯誤；Status 非零時覆寫 Kind 的預設狀態碼
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

// HTTPStatus 回應使用的狀態碼
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.Status()
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New 建立指定分類的錯誤
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithStatus 建立指定分類但狀態碼不同的錯誤
func WithStatus(kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Status: status}
}

// Wrap 以 Internal 包裝底層錯誤，訊息沿用底層錯誤內容
func Wrap(err error) *Error {
	return &Error{Kind: Internal, Message: err.Error(), Err: err}
}

// KindOf 取出錯誤分類，非 *Error 一律視為 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is 判斷錯誤是否屬於指定分類
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
