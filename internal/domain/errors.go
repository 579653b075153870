package domain

import (
	"fmt"
	"strings"
)

// Graph API error codes
const (
	GraphCodeTokenExpired = 190
)

// ConfigurationError lista os valores obrigatórios ausentes e os inválidos
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required configuration: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid configuration: "+strings.Join(e.Invalid, "; "))
	}
	if len(parts) == 0 {
		return "configuration error"
	}

	return strings.Join(parts, "; ")
}

// APIError é uma falha ao chamar a Graph API. Endpoint nunca contém o access token.
type APIError struct {
	Endpoint   string
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
	FBTraceID  string
	Retryable  bool
	Err        error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "meta api: %s", e.Endpoint)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, ": code %d", e.Code)
		if e.Subcode != 0 {
			fmt.Fprintf(&b, "/%d", e.Subcode)
		}
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.TokenExpired() {
		b.WriteString(" (access token expired or revoked, generate a new META_ACCESS_TOKEN)")
	}
	if e.FBTraceID != "" {
		fmt.Fprintf(&b, " [fbtrace_id=%s]", e.FBTraceID)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) TokenExpired() bool {
	return e.Code == GraphCodeTokenExpired
}

// NotificationError é uma resposta não-2xx do webhook ou falha de transporte ao enviá-lo
type NotificationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *NotificationError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("webhook: request failed: %v", e.Err)
	}

	return fmt.Sprintf("webhook: status %d: %s", e.StatusCode, e.Body)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
