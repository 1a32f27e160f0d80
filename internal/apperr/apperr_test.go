package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ValidationMsg("title", "required"), fiber.StatusBadRequest},
		{Authorization(""), fiber.StatusForbidden},
		{NotFound("post"), fiber.StatusNotFound},
		{InvalidState("post is closed"), fiber.StatusUnprocessableEntity},
		{Conflict("already submitted"), fiber.StatusConflict},
		{errors.New("disk on fire"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "for %v", tt.err)
	}
}

func TestAsUnwrapsWrapped(t *testing.T) {
	inner := Conflict("payment already captured")
	wrapped := fmt.Errorf("capture failed: %w", inner)

	e, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindConflict, e.Kind)
}

func TestFieldErrorsAdd(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("budget", "must be positive")
	fields.Add("budget", "must fit your plan")
	fields.Add("title", "required")

	assert.Len(t, fields["budget"], 2)
	assert.Len(t, fields["title"], 1)
}

func TestAuthorizationDefaultMessage(t *testing.T) {
	assert.Equal(t, "not permitted", Authorization("").Error())
	assert.Equal(t, "custom", Authorization("custom").Error())
}
