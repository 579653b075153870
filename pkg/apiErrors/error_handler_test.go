package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-report/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{name: "Sem erro", err: nil, expected: ExitOK, code: ErrInternalServer},
		{name: "Configuração", err: &domain.ConfigurationError{Missing: []string{"META_ACCESS_TOKEN"}}, expected: ExitConfig, code: ErrConfiguration},
		{name: "Graph API", err: errors.Wrap(&domain.APIError{Endpoint: "/v19.0/act_1/ads", StatusCode: 500}, "reporting"), expected: ExitAPI, code: ErrMetaAPI},
		{name: "Token expirado", err: &domain.APIError{Endpoint: "/v19.0/act_1/ads", Code: 190}, expected: ExitAPI, code: ErrMetaTokenExpired},
		{name: "Webhook", err: errors.Wrap(&domain.NotificationError{StatusCode: 500}, "reporting"), expected: ExitNotification, code: ErrNotification},
		{name: "Erro genérico", err: errors.New("boom"), expected: ExitFailure, code: ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.code, CodeFromError(tt.err))
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrReportRunning, "report already running", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrReportRunning, body.Code)
	assert.Equal(t, "report already running", body.Message)
}

func TestFromError(t *testing.T) {
	apiErr := FromError(&domain.NotificationError{StatusCode: 404, Body: "no_service"})
	assert.Equal(t, ErrNotification, apiErr.Code)
	assert.Contains(t, apiErr.Message, "404")

	assert.Equal(t, ErrInternalServer, FromError(nil).Code)
}
