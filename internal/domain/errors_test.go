package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_Error(t *testing.T) {
	err := &ConfigurationError{Missing: []string{"META_ACCESS_TOKEN", "SLACK_WEBHOOK_URL"}}
	assert.Equal(t, "missing required configuration: META_ACCESS_TOKEN, SLACK_WEBHOOK_URL", err.Error())

	err = &ConfigurationError{Invalid: []string{"REPORT_PERIOD: unknown"}}
	assert.Equal(t, "invalid configuration: REPORT_PERIOD: unknown", err.Error())
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{
		Endpoint:   "/v19.0/act_123/ads",
		StatusCode: 400,
		Code:       190,
		Subcode:    463,
		Message:    "Error validating access token",
		FBTraceID:  "AbC",
	}

	msg := err.Error()
	assert.Contains(t, msg, "/v19.0/act_123/ads")
	assert.Contains(t, msg, "status 400")
	assert.Contains(t, msg, "code 190/463")
	assert.Contains(t, msg, "META_ACCESS_TOKEN")
	assert.Contains(t, msg, "fbtrace_id=AbC")
	assert.True(t, err.TokenExpired())
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&APIError{Endpoint: "/v19.0/1/insights", Err: cause})

	assert.ErrorIs(t, err, cause)

	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.False(t, apiErr.TokenExpired())
}

func TestNotificationError_Error(t *testing.T) {
	err := &NotificationError{StatusCode: 500, Body: "internal_error"}
	assert.Equal(t, "webhook: status 500: internal_error", err.Error())

	cause := errors.New("timeout")
	err = &NotificationError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
}
