package domain

import (
	"sort"
	"time"

	"github.com/vfg2006/ads-report/pkg/utils"
)

type AdReport struct {
	Ad       Ad         `json:"ad"`
	Metrics  AdMetrics  `json:"metrics"`
	Previous *AdMetrics `json:"previous,omitempty"`
}

// SkippedAd é um anúncio cujas métricas não puderam ser obtidas quando a política é skip
type SkippedAd struct {
	Ad     Ad     `json:"ad"`
	Reason string `json:"reason"`
}

// AccountTotals soma as métricas de todos os anúncios do relatório.
// CostPerLead só é válido quando HasCostPerLead é verdadeiro.
type AccountTotals struct {
	Spend          float64 `json:"spend"`
	Impressions    int     `json:"impressions"`
	Clicks         int     `json:"clicks"`
	Leads          int     `json:"leads"`
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	CostPerLead    float64 `json:"cost_per_lead"`
	HasCostPerLead bool    `json:"has_cost_per_lead"`
}

// Aggregate calcula os totais da conta a partir das métricas atuais de cada anúncio
func Aggregate(items []AdReport) AccountTotals {
	metrics := make([]AdMetrics, 0, len(items))
	for _, item := range items {
		metrics = append(metrics, item.Metrics)
	}

	return AggregateMetrics(metrics)
}

func AggregateMetrics(metrics []AdMetrics) AccountTotals {
	var totals AccountTotals
	for _, m := range metrics {
		totals.Spend += m.Spend
		totals.Impressions += m.Impressions
		totals.Clicks += m.Clicks
		totals.Leads += m.Leads
	}

	totals.CTR = CTR(totals.Clicks, totals.Impressions)
	totals.CPC = CPC(totals.Spend, totals.Clicks)

	if totals.Leads > 0 {
		totals.CostPerLead = utils.SafeDivide(totals.Spend, float64(totals.Leads))
		totals.HasCostPerLead = true
	}

	return totals
}

// aggregatePrevious soma as métricas do período anterior. Anúncios sem dados anteriores contam como zero.
func aggregatePrevious(items []AdReport) *AccountTotals {
	metrics := make([]AdMetrics, 0, len(items))
	for _, item := range items {
		if item.Previous != nil {
			metrics = append(metrics, *item.Previous)
		}
	}

	totals := AggregateMetrics(metrics)
	return &totals
}

// SortBySpend devolve uma cópia ordenada por spend decrescente; empates mantêm a ordem de entrada
func SortBySpend(items []AdReport) []AdReport {
	sorted := make([]AdReport, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Metrics.Spend > sorted[j].Metrics.Spend
	})

	return sorted
}

type Report struct {
	RunID          string         `json:"run_id"`
	AccountID      string         `json:"account_id"`
	Kind           ReportPeriod   `json:"kind"`
	Period         DateRange      `json:"period"`
	Ads            []AdReport     `json:"ads"`
	Totals         AccountTotals  `json:"totals"`
	PreviousTotals *AccountTotals `json:"previous_totals,omitempty"`
	SkippedAds     []SkippedAd    `json:"skipped_ads,omitempty"`
	NoActiveAds    bool           `json:"no_active_ads"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// NewReport monta o relatório com os anúncios ordenados e os totais calculados.
// compared indica que o período anterior foi buscado.
func NewReport(kind ReportPeriod, period DateRange, ads []AdReport, skipped []SkippedAd, compared bool) *Report {
	report := &Report{
		Kind:        kind,
		Period:      period,
		Ads:         SortBySpend(ads),
		Totals:      Aggregate(ads),
		SkippedAds:  skipped,
		NoActiveAds: len(ads) == 0 && len(skipped) == 0,
	}

	if compared && len(ads) > 0 {
		report.PreviousTotals = aggregatePrevious(ads)
	}

	return report
}

// NoDeliveryAds conta os anúncios reportados sem nenhuma entrega no período
func (r *Report) NoDeliveryAds() int {
	count := 0
	for _, item := range r.Ads {
		if item.Metrics.IsEmpty() {
			count++
		}
	}
	return count
}

func (r *Report) Compared() bool {
	return r.PreviousTotals != nil
}
