package metadomain

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// Códigos da Graph API tratados como falhas temporárias (rate limit e indisponibilidade)
var transientCodes = map[int]struct{}{
	1:   {}, // API Unknown
	2:   {}, // API Service
	4:   {}, // Application request limit reached
	17:  {}, // User request limit reached
	32:  {}, // Page request limit reached
	613: {}, // Calls within one hour exceeded
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

func (e *ErrorResponse) IsTransient() bool {
	_, ok := transientCodes[e.Error.Code]
	return ok
}
