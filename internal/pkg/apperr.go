package pkg

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCode 业务错误码，handler 层统一映射为 HTTP 状态码
type ErrCode string

const (
	CodeInvalidArgument  ErrCode = "INVALID_ARGUMENT"
	CodeUnauthenticated  ErrCode = "UNAUTHENTICATED"
	CodePermissionDenied ErrCode = "PERMISSION_DENIED"
	CodeNotFound         ErrCode = "NOT_FOUND"
	CodeConflict         ErrCode = "CONFLICT"
	CodeInternal         ErrCode = "INTERNAL"
)

type AppError struct {
	Code    ErrCode `json:"code"`
	Message string  `json:"message"`
	Cause   error   `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrCode, message string) error {
	return &AppError{Code: code, Message: message}
}

func WrapAppError(code ErrCode, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Invalid(msg string) error         { return NewAppError(CodeInvalidArgument, msg) }
func Unauthenticated(msg string) error { return NewAppError(CodeUnauthenticated, msg) }
func Forbidden(msg string) error       { return NewAppError(CodePermissionDenied, msg) }
func NotFound(msg string) error        { return NewAppError(CodeNotFound, msg) }
func Conflict(msg string) error        { return NewAppError(CodeConflict, msg) }
func Internal(msg string, cause error) error {
	return WrapAppError(CodeInternal, msg, cause)
}

// CodeOf 非 AppError 一律按 INTERNAL 处理
func CodeOf(err error) ErrCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// HTTPStatus 错误码到状态码：400 / 401 / 403 / 404 / 409 / 500
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
