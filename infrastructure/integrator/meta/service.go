package meta

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-report/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-report/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/domain"
	"github.com/vfg2006/ads-report/pkg/utils"
)

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// ListActiveAds retorna os anúncios ativos da conta na ordem devolvida pela API.
// Uma lista vazia é válida: todas as campanhas podem estar pausadas.
func (s *MetaIntegrator) ListActiveAds(ctx context.Context, accountID string) ([]domain.Ad, error) {
	resp, err := s.Client.GetAdsByAccountID(ctx, accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insights: failed to list ads from API")
		return nil, err
	}

	ads := make([]domain.Ad, 0, len(resp))
	for _, metaAd := range resp {
		ad := FactoryAd(metaAd)
		if !ad.IsActive() {
			logrus.WithFields(logrus.Fields{
				"ad_id":  ad.ID,
				"status": ad.Status,
			}).Debug("insights: ignoring ad that is not active")
			continue
		}
		ads = append(ads, ad)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"listed":     len(resp),
		"active":     len(ads),
	}).Info("insights: active ads listed")

	return ads, nil
}

// GetAdMetrics retorna as métricas do anúncio no intervalo. Sem insight, as métricas são zero.
func (s *MetaIntegrator) GetAdMetrics(ctx context.Context, adID string, dateRange domain.DateRange) (domain.AdMetrics, error) {
	resp, err := s.Client.GetAdInsightsByID(ctx, adID, dateRange)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id": adID,
			"since": dateRange.SinceString(),
			"until": dateRange.UntilString(),
			"error": err.Error(),
		}).Error("insights: failed to get ad insights from API")
		return domain.AdMetrics{}, err
	}

	if resp == nil {
		logrus.WithField("ad_id", adID).Debug("insights: no delivery in period, using zero metrics")
		return domain.NewAdMetrics(0, 0, 0, 0), nil
	}

	return FactoryAdMetrics(resp), nil
}

func FactoryAd(ad metadomain.Ad) domain.Ad {
	campaignName := ad.CampaignName()
	if campaignName == "" {
		campaignName = domain.UnknownName
	}

	adSetName := ad.AdSetName()
	if adSetName == "" {
		adSetName = domain.UnknownName
	}

	return domain.Ad{
		ID:           ad.ID,
		Name:         ad.Name,
		CampaignName: campaignName,
		AdSetName:    adSetName,
		Status:       domain.AdStatus(ad.DeliveryStatus()),
	}
}

// FactoryAdMetrics converte os valores textuais da Graph API; valores inválidos contam como zero
func FactoryAdMetrics(insight *metadomain.AdInsight) domain.AdMetrics {
	spend := parseFloat(insight.AdID, "spend", insight.Spend)
	impressions := parseInt(insight.AdID, "impressions", insight.Impressions)
	clicks := parseInt(insight.AdID, "clicks", insight.Clicks)

	return domain.NewAdMetrics(utils.RoundWithTwoDecimalPlace(spend), impressions, clicks, insight.GetLeads())
}

func parseFloat(adID, field, value string) float64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id": adID,
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("insights: error converting value to float")
		return 0
	}

	return parsed
}

func parseInt(adID, field, value string) int {
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id": adID,
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("insights: error converting value to integer")
		return 0
	}

	return parsed
}
