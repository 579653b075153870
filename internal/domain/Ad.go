package domain

import (
	"strings"

	"github.com/vfg2006/ads-report/pkg/utils"
)

type AdStatus string

const (
	AdStatusActive AdStatus = "ACTIVE"
	AdStatusPaused AdStatus = "PAUSED"
)

// UnknownName é usado quando a Graph API não devolve o nome da campanha ou do conjunto
const UnknownName = "Unknown"

type Ad struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CampaignName string   `json:"campaign_name"`
	AdSetName    string   `json:"adset_name"`
	Status       AdStatus `json:"status"`
}

func (a Ad) IsActive() bool {
	return strings.EqualFold(string(a.Status), string(AdStatusActive))
}

// AdMetrics são as métricas de um anúncio em um período.
// CTR e CPC são derivados e nunca NaN ou infinitos.
type AdMetrics struct {
	Spend       float64 `json:"spend"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	Leads       int     `json:"leads"`
}

func NewAdMetrics(spend float64, impressions, clicks, leads int) AdMetrics {
	return AdMetrics{
		Spend:       spend,
		Impressions: impressions,
		Clicks:      clicks,
		CTR:         CTR(clicks, impressions),
		CPC:         CPC(spend, clicks),
		Leads:       leads,
	}
}

// CTR é clicks/impressions em percentual, 0 quando não há impressões
func CTR(clicks, impressions int) float64 {
	return utils.SafeDivide(float64(clicks), float64(impressions)) * 100
}

// CPC é spend/clicks, 0 quando não há cliques
func CPC(spend float64, clicks int) float64 {
	return utils.SafeDivide(spend, float64(clicks))
}

// IsEmpty indica um anúncio sem entrega no período
func (m AdMetrics) IsEmpty() bool {
	return m.Spend == 0 && m.Impressions == 0 && m.Clicks == 0 && m.Leads == 0
}
