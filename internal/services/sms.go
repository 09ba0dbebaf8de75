package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/example/stylemart/internal/logger"
)

// SMSSender delivers one-time codes to phones.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

const fast2smsURL = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMSSender sends codes through the Fast2SMS OTP route.
type Fast2SMSSender struct {
	apiKey string
	client *http.Client
}

// NewFast2SMSSender builds a sender with the given API key.
func NewFast2SMSSender(apiKey string) *Fast2SMSSender {
	return &Fast2SMSSender{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type fast2smsResponse struct {
	Return    bool   `json:"return"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

// SendOTP delivers the code to a 10-digit phone number.
func (s *Fast2SMSSender) SendOTP(ctx context.Context, phone, code string) error {
	if s.apiKey == "" {
		return fmt.Errorf("fast2sms: api key not configured")
	}

	params := url.Values{}
	params.Set("authorization", s.apiKey)
	params.Set("route", "otp")
	params.Set("variables_values", code)
	params.Set("numbers", phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fast2smsURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fast2sms: %w", err)
	}
	defer resp.Body.Close()

	var body fast2smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("fast2sms: decoding response: %w", err)
	}

	if !body.Return {
		if body.Message != "" {
			return fmt.Errorf("fast2sms: %s", body.Message)
		}
		return fmt.Errorf("fast2sms: delivery rejected with status %d", resp.StatusCode)
	}

	logger.Info("otp sms dispatched",
		zap.String("phone", phone),
		zap.String("request_id", body.RequestID),
	)
	return nil
}

// LogSMSSender is the development sender: it logs the code instead of
// delivering it.
type LogSMSSender struct{}

// SendOTP logs the code.
func (LogSMSSender) SendOTP(_ context.Context, phone, code string) error {
	logger.Info("otp sms (dev mode, not delivered)",
		zap.String("phone", phone),
		zap.String("code", code),
	)
	return nil
}
