package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-report/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro
const (
	// Erros de configuração
	ErrConfiguration = "CFG_001" // Configuração ausente ou inválida

	// Erros da Graph API
	ErrMetaAPI          = "API_001" // Falha ao consultar a Graph API
	ErrMetaTokenExpired = "API_002" // Access token expirado ou revogado

	// Erros de notificação
	ErrNotification = "NTF_001" // Webhook recusou ou não recebeu a mensagem

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno
	ErrReportRunning  = "SRV_002" // Já existe uma execução em andamento

	// Erros de roteamento
	ErrNotFound         = "RTE_001" // Rota não encontrada
	ErrMethodNotAllowed = "RTE_002" // Método não permitido
)

// Códigos de saída do processo
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitConfig       = 2
	ExitAPI          = 3
	ExitNotification = 4
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrConfiguration:    http.StatusInternalServerError,
	ErrMetaAPI:          http.StatusBadGateway,
	ErrMetaTokenExpired: http.StatusBadGateway,
	ErrNotification:     http.StatusBadGateway,
	ErrInternalServer:   http.StatusInternalServerError,
	ErrReportRunning:    http.StatusConflict,
	ErrNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed: http.StatusMethodNotAllowed,
}

// Mapeamento de códigos de erro para código de saída
var exitCodeMap = map[string]int{
	ErrConfiguration:    ExitConfig,
	ErrMetaAPI:          ExitAPI,
	ErrMetaTokenExpired: ExitAPI,
	ErrNotification:     ExitNotification,
	ErrInternalServer:   ExitFailure,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFromError classifica um erro do relatório pelo seu tipo
func CodeFromError(err error) string {
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ErrConfiguration
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.TokenExpired() {
			return ErrMetaTokenExpired
		}
		return ErrMetaAPI
	}

	var notifyErr *domain.NotificationError
	if errors.As(err, &notifyErr) {
		return ErrNotification
	}

	return ErrInternalServer
}

// ExitCode traduz um erro no código de saída do processo
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if code, ok := exitCodeMap[CodeFromError(err)]; ok {
		return code
	}

	return ExitFailure
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    CodeFromError(err),
		Message: err.Error(),
	}
}
