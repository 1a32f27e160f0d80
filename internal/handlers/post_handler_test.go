package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/models"
)

func newPostTestApp() *fiber.App {
	app := fiber.New()
	h := NewPostHandler(lifecycle.NewService(nil, nil, nil, nil))
	app.Post("/posts", func(c *fiber.Ctx) error {
		c.Locals("principal", models.Principal{ID: uuid.New(), Role: models.RoleCustomer})
		return c.Next()
	}, h.Create)
	return app
}

func TestCreatePostRejectsUnparsableDeadline(t *testing.T) {
	app := newPostTestApp()

	body := `{"category_id":"` + uuid.NewString() + `","title":"Edit my thesis","budget":500,"duration":30,"deadline":"31-02-2026"}`
	req := httptest.NewRequest("POST", "/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Success bool                `json:"success"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Errors, "deadline")
}

func TestCreatePostRejectsMalformedBody(t *testing.T) {
	app := newPostTestApp()

	req := httptest.NewRequest("POST", "/posts", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
