package reporting

import (
	"context"

	slackdomain "github.com/vfg2006/ads-report/infrastructure/integrator/slack/domain"
	"github.com/vfg2006/ads-report/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// AdLister define a interface para enumerar os anúncios ativos de uma conta
type AdLister interface {
	// ListActiveAds retorna os anúncios ativos na ordem devolvida pela API
	ListActiveAds(ctx context.Context, accountID string) ([]domain.Ad, error)
}

// MetricsFetcher define a interface para obter as métricas de um anúncio
type MetricsFetcher interface {
	// GetAdMetrics retorna as métricas do anúncio no intervalo; sem entrega retorna zeros
	GetAdMetrics(ctx context.Context, adID string, dateRange domain.DateRange) (domain.AdMetrics, error)
}

// Notifier define a interface para entregar a mensagem do relatório
type Notifier interface {
	Send(ctx context.Context, message slackdomain.Message) error
}

// Reporter é implementado por Service e consumido pelo agendador e pela API
type Reporter interface {
	Run(ctx context.Context) (*domain.Report, error)
}
