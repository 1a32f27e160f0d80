// Package apperr defines the error taxonomy shared by the lifecycle core
// and the HTTP layer. Handlers map each kind to a status code and render
// validation failures as per-field message maps.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindNotFound
	KindInvalidState
	KindConflict
)

// FieldErrors maps an input field to the human-readable messages rendered
// next to it.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

type Error struct {
	Kind    Kind
	Message string
	Fields  FieldErrors
}

func (e *Error) Error() string { return e.Message }

func Validation(fields FieldErrors) *Error {
	return &Error{Kind: KindValidation, Message: "validation error", Fields: fields}
}

func ValidationMsg(field, msg string) *Error {
	fields := FieldErrors{}
	fields.Add(field, msg)
	return Validation(fields)
}

func Authorization(msg string) *Error {
	if msg == "" {
		msg = "not permitted"
	}
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func InvalidStatef(format string, args ...interface{}) *Error {
	return InvalidState(fmt.Sprintf(format, args...))
}

// As unwraps err into *Error when it carries a taxonomy kind.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HTTPStatus maps an error to the status code the handlers respond with.
// Unknown errors are internal faults.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindInvalidState:
		return fiber.StatusUnprocessableEntity
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
