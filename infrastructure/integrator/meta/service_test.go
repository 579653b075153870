package meta

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ads-report/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/domain"
)

type stubClient struct {
	ads      []metadomain.Ad
	insights map[string]*metadomain.AdInsight
	err      error
}

func (s *stubClient) GetAdsByAccountID(ctx context.Context, accountID string) ([]metadomain.Ad, error) {
	return s.ads, s.err
}

func (s *stubClient) GetAdInsightsByID(ctx context.Context, adID string, dateRange domain.DateRange) (*metadomain.AdInsight, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.insights[adID], nil
}

func TestListActiveAds(t *testing.T) {
	client := &stubClient{
		ads: []metadomain.Ad{
			{ID: "1", Name: "Ad 1", Status: "ACTIVE", EffectiveStatus: "ACTIVE", Campaign: &metadomain.NamedNode{Name: "Camp"}, AdSet: &metadomain.NamedNode{Name: "Set"}},
			{ID: "2", Name: "Ad 2", Status: "ACTIVE", EffectiveStatus: "CAMPAIGN_PAUSED"},
			{ID: "3", Name: "Ad 3", Status: "active"},
			{ID: "4", Name: "Ad 4", Status: "PAUSED"},
		},
	}

	integrator := New(&config.Config{}, client)
	ads, err := integrator.ListActiveAds(context.Background(), "123")
	require.NoError(t, err)

	require.Len(t, ads, 2)
	assert.Equal(t, domain.Ad{ID: "1", Name: "Ad 1", CampaignName: "Camp", AdSetName: "Set", Status: "ACTIVE"}, ads[0])
	assert.Equal(t, "3", ads[1].ID)
	assert.Equal(t, domain.UnknownName, ads[1].CampaignName)
	assert.Equal(t, domain.UnknownName, ads[1].AdSetName)
}

func TestListActiveAds_Erro(t *testing.T) {
	apiErr := &domain.APIError{Endpoint: "/v19.0/act_123/ads", StatusCode: 500}
	integrator := New(&config.Config{}, &stubClient{err: apiErr})

	ads, err := integrator.ListActiveAds(context.Background(), "123")
	assert.Nil(t, ads)
	assert.Same(t, apiErr, err)
}

func TestGetAdMetrics(t *testing.T) {
	dateRange := domain.SingleDay(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))

	client := &stubClient{
		insights: map[string]*metadomain.AdInsight{
			"1": {AdID: "1", Spend: "50", Impressions: "1000", Clicks: "20"},
		},
	}
	integrator := New(&config.Config{}, client)

	t.Run("Com insight", func(t *testing.T) {
		metrics, err := integrator.GetAdMetrics(context.Background(), "1", dateRange)
		require.NoError(t, err)
		assert.Equal(t, domain.NewAdMetrics(50, 1000, 20, 0), metrics)
	})

	t.Run("Sem insight retorna zeros", func(t *testing.T) {
		metrics, err := integrator.GetAdMetrics(context.Background(), "2", dateRange)
		require.NoError(t, err)
		assert.Equal(t, domain.AdMetrics{}, metrics)
	})
}

func TestFactoryAdMetrics(t *testing.T) {
	tests := []struct {
		name     string
		insight  *metadomain.AdInsight
		expected domain.AdMetrics
	}{
		{
			name: "Valores completos",
			insight: &metadomain.AdInsight{
				AdID: "1", Spend: "120.456", Impressions: "3000", Clicks: "40",
				Actions: []metadomain.Action{
					{ActionType: "link_click", Value: "40"},
					{ActionType: "lead", Value: "3"},
					{ActionType: "onsite_conversion.lead_grouped", Value: "4"},
					{ActionType: "offsite_conversion.fb_pixel_lead", Value: "2"},
				},
			},
			expected: domain.NewAdMetrics(120.46, 3000, 40, 4),
		},
		{
			name:     "Campos ausentes contam como zero",
			insight:  &metadomain.AdInsight{AdID: "2"},
			expected: domain.NewAdMetrics(0, 0, 0, 0),
		},
		{
			name: "Valores inválidos contam como zero",
			insight: &metadomain.AdInsight{
				AdID: "3", Spend: "abc", Impressions: "1e3", Clicks: "7",
				Actions: []metadomain.Action{{ActionType: "lead", Value: "x"}},
			},
			expected: domain.NewAdMetrics(0, 0, 7, 0),
		},
		{
			name: "Ações que não são leads são ignoradas",
			insight: &metadomain.AdInsight{
				AdID: "4", Spend: "10", Impressions: "100", Clicks: "5",
				Actions: []metadomain.Action{{ActionType: "post_engagement", Value: "50"}},
			},
			expected: domain.NewAdMetrics(10, 100, 5, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FactoryAdMetrics(tt.insight))
		})
	}
}
