package handler

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-report/internal/scheduler"
	"github.com/vfg2006/ads-report/pkg/apiErrors"
	"github.com/vfg2006/ads-report/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReportJob dispara e consulta as execuções do relatório
type ReportJob interface {
	TriggerManualRun(ctx context.Context) error
	GetStatus() map[string]any
}

// RunReport dispara manualmente uma execução do relatório
func RunReport(job ReportJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - RunReport")

		err := job.TriggerManualRun(r.Context())
		if errors.Is(err, scheduler.ErrReportRunning) {
			apiErrors.WriteError(w, apiErrors.ErrReportRunning, "Já existe uma execução do relatório em andamento", nil)
			return
		}
		if err != nil {
			logger.WithError(err).Error("Erro ao disparar o relatório")
			apiErrors.WriteError(w, apiErrors.FromError(err).Code, "Não foi possível disparar o relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Relatório iniciado com sucesso",
		})
	}
}

// GetReportStatus retorna o status do agendador e da última execução
func GetReportStatus(job ReportJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(job.GetStatus())
	}
}
