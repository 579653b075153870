package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-report/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-report/internal/domain"
)

const adFields = "id,name,status,effective_status,campaign{name},adset{name}"

type ResponseAds struct {
	Data   []metadomain.Ad   `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// GetAdsByAccountID lista os anúncios ativos da conta seguindo paging.next até a última página
func (c *MetaClient) GetAdsByAccountID(ctx context.Context, accountID string) ([]metadomain.Ad, error) {
	baseURL := fmt.Sprintf("%s/act_%s/ads", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", adFields)
	params.Add("effective_status", `["ACTIVE"]`)
	params.Add("limit", strconv.Itoa(c.Cfg.Meta.PageSize))

	next := baseURL + "?" + params.Encode()
	seen := make(map[string]struct{})
	ads := make([]metadomain.Ad, 0)

	for page := 1; next != ""; page++ {
		if _, ok := seen[next]; ok {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"page":       page,
			}).Warn("meta: paging cursor repeated, stopping pagination")
			break
		}
		seen[next] = struct{}{}

		var response ResponseAds
		if err := c.get(ctx, next, &response); err != nil {
			return nil, err
		}

		if response.Data == nil {
			return nil, &domain.APIError{
				Endpoint:   fmt.Sprintf("/%s/act_%s/ads", c.Cfg.Meta.Version, accountID),
				StatusCode: 200,
				Message:    "malformed response: missing data field",
			}
		}

		ads = append(ads, response.Data...)

		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"page":       page,
			"page_size":  len(response.Data),
		}).Debug("meta: ads page fetched")

		next = response.Paging.Next
	}

	return ads, nil
}
