package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	slackdomain "github.com/vfg2006/ads-report/infrastructure/integrator/slack/domain"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/domain"
	"github.com/vfg2006/ads-report/internal/usecases/reporting/mocks"
	"github.com/vfg2006/ads-report/pkg/apiErrors"
	"github.com/vfg2006/ads-report/pkg/log"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	goleak.VerifyTestMain(m)
}

// 18 Oct 2026 08:00 UTC: o relatório diário cobre 17 Oct 2026
func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
}

func testConfig() *config.Config {
	return &config.Config{
		Meta: config.Meta{AdAccountID: "123"},
		Report: config.Report{
			Kind:           domain.ReportPeriodDaily,
			Location:       time.UTC,
			MaxConcurrent:  2,
			PartialFailure: config.PartialFailureAbort,
			CurrencySymbol: "$",
		},
	}
}

type serviceMocks struct {
	ads      *mocks.MockAdLister
	metrics  *mocks.MockMetricsFetcher
	notifier *mocks.MockNotifier
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		ads:      mocks.NewMockAdLister(ctrl),
		metrics:  mocks.NewMockMetricsFetcher(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
	}

	return NewService(cfg, m.ads, m.metrics, m.notifier).WithClock(fixedNow), m
}

var (
	adSmall = domain.Ad{ID: "1", Name: "Ad Small", CampaignName: "Camp A", AdSetName: "Set A", Status: domain.AdStatusActive}
	adBig   = domain.Ad{ID: "2", Name: "Ad Big", CampaignName: "Camp B", AdSetName: "Set B", Status: domain.AdStatusActive}
)

func TestService_Run_DoisAnuncios(t *testing.T) {
	service, m := newTestService(t, testConfig())
	yesterday := domain.SingleDay(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adSmall, adBig}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "1", yesterday).Return(domain.NewAdMetrics(50, 1000, 20, 2), nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "2", yesterday).Return(domain.NewAdMetrics(120, 3000, 40, 4), nil)

	var sent slackdomain.Message
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, message slackdomain.Message) error {
			sent = message
			return nil
		},
	)

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	require.Len(t, report.Ads, 2)
	assert.Equal(t, "2", report.Ads[0].Ad.ID)
	assert.Equal(t, "1", report.Ads[1].Ad.ID)
	assert.Equal(t, 170.0, report.Totals.Spend)
	assert.Equal(t, 6, report.Totals.Leads)
	assert.Equal(t, "123", report.AccountID)
	assert.Len(t, report.RunID, 10)
	assert.Equal(t, fixedNow(), report.GeneratedAt)

	sections := sectionTexts(sent)
	require.Len(t, sections, 3)
	assert.Contains(t, sections[0], "Ad Big")
	assert.Contains(t, sections[1], "Ad Small")
	assert.Contains(t, sections[2], "Spend: *$170.00*")
	assert.Equal(t, "Ads Daily Report (17 Oct 2026)", sent.Text)
}

func TestService_Run_AnuncioSemEntrega(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adSmall, adBig}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "1", gomock.Any()).Return(domain.NewAdMetrics(50, 1000, 20, 2), nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "2", gomock.Any()).Return(domain.NewAdMetrics(0, 0, 0, 0), nil)
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	report, err := service.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1", report.Ads[0].Ad.ID)
	assert.Equal(t, 0.0, report.Ads[1].Metrics.CTR)
	assert.Equal(t, 0.0, report.Ads[1].Metrics.CPC)
	assert.Equal(t, 50.0, report.Totals.Spend)
	assert.Equal(t, 1000, report.Totals.Impressions)
}

func TestService_Run_SemAnunciosAtivos(t *testing.T) {
	service, m := newTestService(t, testConfig())

	expected := slackdomain.Message{
		Text: "Ads Daily Report (17 Oct 2026)",
		Blocks: []slackdomain.Block{
			slackdomain.Header("Ads Daily Report (17 Oct 2026)"),
			slackdomain.Divider(),
			slackdomain.Section(NoActiveAdsMessage),
		},
	}

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{}, nil)
	m.notifier.EXPECT().Send(gomock.Any(), expected).Return(nil)

	report, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.NoActiveAds)
	assert.Empty(t, report.Ads)
}

func TestService_Run_FalhaNoWebhook(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adSmall}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "1", gomock.Any()).Return(domain.NewAdMetrics(50, 1000, 20, 2), nil)
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(&domain.NotificationError{StatusCode: 500, Body: "internal_error"})

	report, err := service.Run(context.Background())
	require.Error(t, err)

	var notifyErr *domain.NotificationError
	require.True(t, errors.As(err, &notifyErr))
	assert.Equal(t, 500, notifyErr.StatusCode)
	assert.Equal(t, apiErrors.ExitNotification, apiErrors.ExitCode(err))

	require.NotNil(t, report, "o relatório calculado é retornado mesmo com falha no envio")
	assert.Equal(t, 50.0, report.Totals.Spend)
}

func TestService_Run_FalhaAoListarAnuncios(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return(nil, &domain.APIError{Endpoint: "/v19.0/act_123/ads", StatusCode: 400, Code: 100})

	report, err := service.Run(context.Background())
	assert.Nil(t, report)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apiErrors.ExitAPI, apiErrors.ExitCode(err))
}

func TestService_Run_PoliticaAbort(t *testing.T) {
	cfg := testConfig()
	cfg.Report.MaxConcurrent = 1
	service, m := newTestService(t, cfg)

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adSmall, adBig}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "1", gomock.Any()).Return(domain.AdMetrics{}, &domain.APIError{Endpoint: "/v19.0/1/insights", StatusCode: 500})

	report, err := service.Run(context.Background())
	assert.Nil(t, report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ad 1")
	assert.Equal(t, apiErrors.ExitAPI, apiErrors.ExitCode(err))
}

func TestService_Run_PoliticaSkip(t *testing.T) {
	cfg := testConfig()
	cfg.Report.PartialFailure = config.PartialFailureSkip
	service, m := newTestService(t, cfg)

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adSmall, adBig}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "1", gomock.Any()).Return(domain.AdMetrics{}, &domain.APIError{Endpoint: "/v19.0/1/insights", StatusCode: 500})
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "2", gomock.Any()).Return(domain.NewAdMetrics(120, 3000, 40, 4), nil)
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	report, err := service.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Ads, 1)
	assert.Equal(t, "2", report.Ads[0].Ad.ID)
	require.Len(t, report.SkippedAds, 1)
	assert.Equal(t, "1", report.SkippedAds[0].Ad.ID)
	assert.Contains(t, report.SkippedAds[0].Reason, "status 500")
	assert.Equal(t, 120.0, report.Totals.Spend)
	assert.False(t, report.NoActiveAds)
}

func TestService_Run_ComparacaoComPeriodoAnterior(t *testing.T) {
	cfg := testConfig()
	cfg.Report.ComparePrevious = true
	service, m := newTestService(t, cfg)

	yesterday := domain.SingleDay(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))
	dayBefore := yesterday.Previous()

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adBig}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "2", yesterday).Return(domain.NewAdMetrics(120, 3000, 40, 4), nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "2", dayBefore).Return(domain.NewAdMetrics(100, 3000, 50, 2), nil)

	var sent slackdomain.Message
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, message slackdomain.Message) error {
			sent = message
			return nil
		},
	)

	report, err := service.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, report.Ads[0].Previous)
	assert.Equal(t, 100.0, report.Ads[0].Previous.Spend)
	require.NotNil(t, report.PreviousTotals)
	assert.Equal(t, 2, report.PreviousTotals.Leads)

	sections := sectionTexts(sent)
	assert.Contains(t, sections[0], "Spend: *$120.00* 🟢 ↑ (+20%)")
	assert.Contains(t, sections[1], "Leads: *4* 🟢 ↑ (+100%)")
}

func TestService_Build_NaoEnvia(t *testing.T) {
	service, m := newTestService(t, testConfig())

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adSmall}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "1", gomock.Any()).Return(domain.NewAdMetrics(50, 1000, 20, 2), nil)

	report, message, err := service.Build(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Ads, 1)
	assert.Equal(t, "Ads Daily Report (17 Oct 2026)", message.Text)
}

func TestService_RunFor_PeriodoExplicito(t *testing.T) {
	service, m := newTestService(t, testConfig())
	day := domain.SingleDay(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	m.ads.EXPECT().ListActiveAds(gomock.Any(), "123").Return([]domain.Ad{adSmall}, nil)
	m.metrics.EXPECT().GetAdMetrics(gomock.Any(), "1", day).Return(domain.NewAdMetrics(50, 1000, 20, 2), nil)
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	report, err := service.RunFor(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", report.Period.SinceString())
}

func TestService_CurrentPeriod_Semanal(t *testing.T) {
	cfg := testConfig()
	cfg.Report.Kind = domain.ReportPeriodWeekly
	service, _ := newTestService(t, cfg)

	period := service.CurrentPeriod()
	assert.Equal(t, "2026-10-05", period.SinceString())
	assert.Equal(t, "2026-10-11", period.UntilString())
}
