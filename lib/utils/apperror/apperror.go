package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind — класс ошибки, определяет HTTP статус ответа.
type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindDependency
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Auth(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Dependency — сбой БД или внешнего шлюза, причина сохраняется для лога.
func Dependency(cause error, message string) error {
	return &Error{Kind: KindDependency, Message: message, Cause: cause}
}

// KindOf возвращает класс ошибки. Необёрнутые ошибки считаются Dependency.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDependency
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// HTTPStatus — маппинг класса ошибки на статус ответа.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
