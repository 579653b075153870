package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	slackdomain "github.com/vfg2006/ads-report/infrastructure/integrator/slack/domain"
	"github.com/vfg2006/ads-report/internal/domain"
	"github.com/vfg2006/ads-report/pkg/utils"
)

const (
	NoActiveAdsMessage = "⚠️ No active ads found. All campaigns may be paused."
	NotAvailable       = "N/A"

	// O Slack aceita no máximo 50 blocos por mensagem
	maxAdBlocks = 40
)

// Marcadores de tendência em relação ao período anterior
const (
	trendUp      = "🟢 ↑"
	trendDown    = "🔴 ↓"
	trendUpBad   = "🔴 ↑"
	trendDownOK  = "🟢 ↓"
	trendFlat    = "➖"
	trendNewData = "🆕"
)

type FormatOptions struct {
	CurrencySymbol string
}

// BuildMessage monta o payload Block Kit do relatório. Função pura: a mesma entrada sempre
// gera a mesma mensagem, com anúncios ordenados por spend decrescente.
func BuildMessage(report *domain.Report, opts FormatOptions) slackdomain.Message {
	title := fmt.Sprintf("%s (%s)", reportTitle(report.Kind), report.Period.Label())

	blocks := []slackdomain.Block{
		slackdomain.Header(title),
		slackdomain.Divider(),
	}

	if report.NoActiveAds {
		blocks = append(blocks, slackdomain.Section(NoActiveAdsMessage))
		return slackdomain.Message{Text: title, Blocks: blocks}
	}

	f := formatter{symbol: opts.CurrencySymbol, compare: report.Compared()}

	ads := domain.SortBySpend(report.Ads)
	shown := ads
	if len(shown) > maxAdBlocks {
		shown = shown[:maxAdBlocks]
	}

	for _, item := range shown {
		blocks = append(blocks, slackdomain.Section(f.adSection(item)))
	}

	if hidden := len(ads) - len(shown); hidden > 0 {
		blocks = append(blocks, slackdomain.Context(
			fmt.Sprintf("➕ %d more ad(s) with lower spend not shown, included in the totals.", hidden),
		))
	}

	if len(report.SkippedAds) > 0 {
		blocks = append(blocks, slackdomain.Context(skippedLine(report.SkippedAds)))
	}

	blocks = append(blocks,
		slackdomain.Divider(),
		slackdomain.Section(f.totalsSection(report.Kind, report.Totals, report.PreviousTotals)),
	)

	if f.compare {
		blocks = append(blocks, slackdomain.Context(
			fmt.Sprintf("Compared with %s", report.Period.Previous().Label()),
		))
	}

	return slackdomain.Message{Text: title, Blocks: blocks}
}

func reportTitle(kind domain.ReportPeriod) string {
	if kind == domain.ReportPeriodWeekly {
		return "Ads Weekly Report"
	}
	return "Ads Daily Report"
}

func totalsTitle(kind domain.ReportPeriod) string {
	if kind == domain.ReportPeriodWeekly {
		return "*📊 Weekly Totals*"
	}
	return "*📊 Totals*"
}

type formatter struct {
	symbol  string
	compare bool
}

func (f formatter) adSection(item domain.AdReport) string {
	m := item.Metrics
	prev := item.Previous
	withTrend := f.compare && prev != nil

	var p domain.AdMetrics
	if prev != nil {
		p = *prev
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*📣 %s*\n", escape(item.Ad.Name))
	fmt.Fprintf(&b, "_%s › %s_\n", escape(item.Ad.CampaignName), escape(item.Ad.AdSetName))

	b.WriteString(strings.Join([]string{
		metric("Spend", f.money(m.Spend), withTrend, m.Spend, p.Spend, false),
		metric("Impressions", count(m.Impressions), withTrend, float64(m.Impressions), float64(p.Impressions), false),
		metric("Clicks", count(m.Clicks), withTrend, float64(m.Clicks), float64(p.Clicks), false),
	}, "  |  "))
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		metric("CTR", percent(m.CTR), withTrend, m.CTR, p.CTR, false),
		metric("CPC", f.money(m.CPC), withTrend, m.CPC, p.CPC, true),
		metric("Leads", count(m.Leads), withTrend, float64(m.Leads), float64(p.Leads), false),
	}, "  |  "))

	return b.String()
}

func (f formatter) totalsSection(kind domain.ReportPeriod, totals domain.AccountTotals, previous *domain.AccountTotals) string {
	withTrend := f.compare && previous != nil

	var p domain.AccountTotals
	if previous != nil {
		p = *previous
	}

	cpl := NotAvailable
	if totals.HasCostPerLead {
		cpl = f.money(totals.CostPerLead)
	}

	var b strings.Builder
	b.WriteString(totalsTitle(kind))
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		metric("Spend", f.money(totals.Spend), withTrend, totals.Spend, p.Spend, false),
		metric("Impressions", count(totals.Impressions), withTrend, float64(totals.Impressions), float64(p.Impressions), false),
		metric("Clicks", count(totals.Clicks), withTrend, float64(totals.Clicks), float64(p.Clicks), false),
	}, "  |  "))
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		metric("CTR", percent(totals.CTR), withTrend, totals.CTR, p.CTR, false),
		metric("CPC", f.money(totals.CPC), withTrend, totals.CPC, p.CPC, true),
		metric("Leads", count(totals.Leads), withTrend, float64(totals.Leads), float64(p.Leads), false),
		metric("CPL", cpl, withTrend && totals.HasCostPerLead, totals.CostPerLead, p.CostPerLead, true),
	}, "  |  "))

	return b.String()
}

func metric(label, value string, withTrend bool, current, previous float64, lowerIsBetter bool) string {
	text := fmt.Sprintf("%s: *%s*", label, value)
	if !withTrend {
		return text
	}

	return fmt.Sprintf("%s %s%s", text, trend(current, previous, lowerIsBetter), pctChange(current, previous))
}

func trend(current, previous float64, lowerIsBetter bool) string {
	switch {
	case previous == 0 && current == 0:
		return trendFlat
	case previous == 0:
		return trendNewData
	case current > previous:
		if lowerIsBetter {
			return trendUpBad
		}
		return trendUp
	case current < previous:
		if lowerIsBetter {
			return trendDownOK
		}
		return trendDown
	}

	return trendFlat
}

func pctChange(current, previous float64) string {
	change, ok := utils.PercentChange(current, previous)
	if !ok {
		return ""
	}

	change = math.Round(change)
	if change > 0 {
		return fmt.Sprintf(" (+%.0f%%)", change)
	}
	// evita "-0%"
	if change == 0 {
		return " (0%)"
	}

	return fmt.Sprintf(" (%.0f%%)", change)
}

func (f formatter) money(amount float64) string {
	return f.symbol + humanize.FormatFloat("#,###.##", amount)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// Caracteres de controle do mrkdwn do Slack
var mrkdwnEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(text string) string {
	return mrkdwnEscaper.Replace(text)
}

func skippedLine(skipped []domain.SkippedAd) string {
	names := make([]string, 0, len(skipped))
	for _, s := range skipped {
		names = append(names, escape(s.Ad.Name))
	}

	return fmt.Sprintf("⚠️ Metrics unavailable for %d ad(s), not included in the totals: %s",
		len(skipped), strings.Join(names, ", "))
}
