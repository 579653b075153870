package slackclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	slackdomain "github.com/vfg2006/ads-report/infrastructure/integrator/slack/domain"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBody = 1 << 10

type Client interface {
	Send(ctx context.Context, message slackdomain.Message) error
}

type SlackClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &SlackClient{
		httpClient: &http.Client{
			Timeout: cfg.Slack.Timeout,
		},
		config: cfg,
	}
}

// Send faz um único POST do payload no webhook.
// Não há nova tentativa: repetir o POST pode duplicar a mensagem no canal.
func (c *SlackClient) Send(ctx context.Context, message slackdomain.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return errors.Wrap(err, "slack: failed to encode message")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Slack.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Slack.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return &domain.NotificationError{Err: errors.Wrap(err, "invalid webhook url")}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NotificationError{Err: stripURL(err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.NotificationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	logrus.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"blocks":      len(message.Blocks),
	}).Info("slack: report delivered")

	return nil
}

// stripURL remove a URL do webhook, que é um segredo, de erros do net/http
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
