package handler

import (
	"net/http"

	"github.com/vfg2006/ads-report/internal/api/handler/router"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Report(job ReportJob) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/report/run",
			Method:  http.MethodPost,
			Handler: RunReport(job),
		},
		{
			Path:    "/v1/report/status",
			Method:  http.MethodGet,
			Handler: GetReportStatus(job),
		},
	}
}
