// file: services/errors.go
package services

import (
	"net/http"
)

// 错误分类，controllers 通过 kind 映射 HTTP 状态码
const (
	KindNotFound        = "not_found"
	KindInvalidState    = "invalid_state"
	KindForbidden       = "forbidden"
	KindInvalidArgument = "invalid_argument"
	KindConflict        = "conflict"
	KindInternal        = "internal"
)

// Error 业务错误，携带机器可读的分类
type Error struct {
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState, KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}
