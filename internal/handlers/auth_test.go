package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stylemart/internal/config"
	"github.com/example/stylemart/internal/otp"
	"github.com/example/stylemart/internal/response"
)

type mockSMSSender struct {
	lastPhone string
	lastCode  string
	calls     int
	sendErr   error
}

func (m *mockSMSSender) SendOTP(_ context.Context, phone, code string) error {
	m.calls++
	m.lastPhone = phone
	m.lastCode = code
	return m.sendErr
}

func newAuthTestApp(env string, sender *mockSMSSender, codes otp.Store) *fiber.App {
	cfg := &config.Config{
		Environment:  env,
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}

	h := NewAuthHandler(nil, cfg, codes, sender)

	app := fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler})
	app.Post("/api/auth/send-otp", h.SendOTP)
	app.Post("/api/auth/verify-otp", h.VerifyOTP)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestSendOTPRejectsBadPhones(t *testing.T) {
	sender := &mockSMSSender{}
	app := newAuthTestApp("development", sender, otp.NewMemoryStore())

	for _, phone := range []string{"", "12345", "98765432101", "abcdefghij"} {
		resp, body := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phone": phone})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "phone %q", phone)
		assert.Equal(t, false, body["success"])
	}
	assert.Equal(t, 0, sender.calls)
}

func TestSendOTPNormalizesPhone(t *testing.T) {
	sender := &mockSMSSender{}
	codes := otp.NewMemoryStore()
	app := newAuthTestApp("development", sender, codes)

	resp, body := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phone": "(987) 654-3210"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "9876543210", sender.lastPhone)
	require.Len(t, sender.lastCode, 6)

	// The stored code is the one that was dispatched.
	require.NoError(t, codes.Verify(context.Background(), "9876543210", sender.lastCode))
}

func TestSendOTPSwallowsDeliveryFailureOutsideProduction(t *testing.T) {
	sender := &mockSMSSender{sendErr: errors.New("gateway down")}
	app := newAuthTestApp("development", sender, otp.NewMemoryStore())

	resp, body := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phone": "9876543210"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	// Development responses surface the code for testing.
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, data["otp"], 6)
}

func TestSendOTPFailsHardInProduction(t *testing.T) {
	sender := &mockSMSSender{sendErr: errors.New("gateway down")}
	app := newAuthTestApp("production", sender, otp.NewMemoryStore())

	resp, body := postJSON(t, app, "/api/auth/send-otp", fiber.Map{"phone": "9876543210"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestVerifyOTPUnknownPhone(t *testing.T) {
	app := newAuthTestApp("development", &mockSMSSender{}, otp.NewMemoryStore())

	resp, body := postJSON(t, app, "/api/auth/verify-otp", fiber.Map{
		"phone": "9876543210",
		"otp":   "123456",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestVerifyOTPWrongCode(t *testing.T) {
	codes := otp.NewMemoryStore()
	require.NoError(t, codes.Save(context.Background(), "9876543210", "123456"))

	app := newAuthTestApp("development", &mockSMSSender{}, codes)

	resp, body := postJSON(t, app, "/api/auth/verify-otp", fiber.Map{
		"phone": "9876543210",
		"otp":   "000000",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid OTP", body["message"])
}

func TestVerifyOTPMissingFields(t *testing.T) {
	app := newAuthTestApp("development", &mockSMSSender{}, otp.NewMemoryStore())

	resp, _ := postJSON(t, app, "/api/auth/verify-otp", fiber.Map{"phone": "9876543210"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":       "9876543210",
		"(987) 654-3210":   "9876543210",
		"+91 98765 43210":  "919876543210",
		"98-76-54-32-10":   "9876543210",
		"":                 "",
		"no digits at all": "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePhone(in), "input %q", in)
	}
}
