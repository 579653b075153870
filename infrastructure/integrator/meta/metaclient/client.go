package metaclient

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/ads-report/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetAdsByAccountID(ctx context.Context, accountID string) ([]metadomain.Ad, error)
	GetAdInsightsByID(ctx context.Context, adID string, dateRange domain.DateRange) (*metadomain.AdInsight, error)
}

// HTTPDoer é satisfeito por *http.Client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient HTTPDoer
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
		},
	}
}
