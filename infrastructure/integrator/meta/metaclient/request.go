package metaclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-report/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-report/internal/domain"
)

const (
	maxBackoff   = 10 * time.Second
	maxErrorBody = 4 << 10
)

// get executa um GET na Graph API e decodifica o corpo em out.
// Falhas temporárias são repetidas até Meta.MaxRetries vezes com backoff exponencial.
func (c *MetaClient) get(ctx context.Context, rawURL string, out any) error {
	signedURL, endpoint, err := c.sign(rawURL)
	if err != nil {
		return &domain.APIError{Endpoint: endpoint, Message: "invalid request url", Err: err}
	}

	backoff := c.Cfg.Meta.RetryBackoff
	for attempt := 0; ; attempt++ {
		err := c.getOnce(ctx, signedURL, endpoint, out)
		if err == nil {
			return nil
		}

		var apiErr *domain.APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable || attempt >= c.Cfg.Meta.MaxRetries {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"endpoint":    endpoint,
			"status_code": apiErr.StatusCode,
			"code":        apiErr.Code,
			"attempt":     attempt + 1,
			"backoff":     backoff.String(),
		}).Warn("meta: transient failure, retrying")

		if err := sleep(ctx, backoff); err != nil {
			return &domain.APIError{Endpoint: endpoint, Message: "request cancelled while waiting to retry", Err: err}
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *MetaClient) getOnce(ctx context.Context, signedURL, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return &domain.APIError{Endpoint: endpoint, Message: "failed to create request", Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &domain.APIError{
			Endpoint:  endpoint,
			Message:   "request failed",
			Retryable: ctx.Err() == nil,
			Err:       stripURL(err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response body",
			Retryable:  ctx.Err() == nil,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(endpoint, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    "malformed response",
			Err:        err,
		}
	}

	return nil
}

// newAPIError converte uma resposta de erro da Graph API em *domain.APIError
func newAPIError(endpoint string, statusCode int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Retryable:  statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests,
	}

	errorResp, err := ParseErrorResponse(body)
	if err != nil || errorResp.Error.Message == "" {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		apiErr.Message = string(body)
		return apiErr
	}

	apiErr.Code = errorResp.Error.Code
	apiErr.Subcode = errorResp.Error.ErrorSubcode
	apiErr.Type = errorResp.Error.Type
	apiErr.Message = errorResp.Error.Message
	apiErr.FBTraceID = errorResp.Error.FBTraceID
	if errorResp.IsTokenExpired() {
		apiErr.Code = domain.GraphCodeTokenExpired
		apiErr.Retryable = false
	} else if errorResp.IsTransient() {
		apiErr.Retryable = true
	}

	return apiErr
}

func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// sign define o access token da configuração na URL. Um token presente na URL recebida,
// como em paging.next, é descartado. O endpoint devolvido não contém query string.
func (c *MetaClient) sign(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}

	query := u.Query()
	query.Set("access_token", c.Cfg.Meta.AccessToken)
	u.RawQuery = query.Encode()

	return u.String(), u.Path, nil
}

// stripURL remove a URL, que contém o access token, de erros do net/http
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
