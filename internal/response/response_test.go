package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return OK(c, fiber.Map{"value": 42})
	})
	app.Get("/created", func(c *fiber.Ctx) error {
		return Created(c, fiber.Map{"id": "abc"})
	})
	app.Get("/message", func(c *fiber.Ctx) error {
		return Message(c, "done")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return gorm.ErrRecordNotFound
	})
	app.Get("/duplicate", func(c *fiber.Ctx) error {
		return gorm.ErrDuplicatedKey
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestSuccessEnvelopes(t *testing.T) {
	app := newTestApp()

	resp, body := get(t, app, "/ok")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"value": float64(42)}, body["data"])

	resp, body = get(t, app, "/created")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = get(t, app, "/message")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "done", body["message"])
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	resp, body := get(t, newTestApp(), "/teapot")
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "short and stout", body["message"])
}

func TestErrorHandlerMapsRecordNotFound(t *testing.T) {
	resp, body := get(t, newTestApp(), "/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", body["message"])
}

func TestErrorHandlerMapsDuplicateKey(t *testing.T) {
	resp, body := get(t, newTestApp(), "/duplicate")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "resource already exists", body["message"])
}

func TestErrorHandlerHidesInternals(t *testing.T) {
	resp, body := get(t, newTestApp(), "/boom")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, body["message"], "pq")
}
