package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/ads-report/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-report/internal/domain"
)

const insightFields = "ad_id,spend,impressions,clicks,actions,date_start,date_stop"

type ResponseAdInsight struct {
	Data   []metadomain.AdInsight `json:"data"`
	Paging metadomain.Paging      `json:"paging"`
}

// GetAdInsightsByID retorna o insight do anúncio no intervalo, ou nil quando não houve entrega
func (c *MetaClient) GetAdInsightsByID(ctx context.Context, adID string, dateRange domain.DateRange) (*metadomain.AdInsight, error) {
	baseURL := fmt.Sprintf("%s/%s/insights", c.Cfg.Meta.URL, adID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", dateRange.SinceString(), dateRange.UntilString())

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("time_range", timeRange)

	var response ResponseAdInsight
	if err := c.get(ctx, baseURL+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	// "data": [] é um anúncio sem entrega; sem o campo data a resposta é inválida
	if response.Data == nil {
		return nil, &domain.APIError{
			Endpoint:   fmt.Sprintf("/%s/%s/insights", c.Cfg.Meta.Version, adID),
			StatusCode: 200,
			Message:    "malformed response: missing data field",
		}
	}

	if len(response.Data) == 0 {
		return nil, nil
	}

	return &response.Data[0], nil
}
