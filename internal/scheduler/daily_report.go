package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/usecases/reporting"
	"github.com/vfg2006/ads-report/pkg/apiErrors"
)

// ErrReportRunning é retornado quando já existe uma execução do relatório em andamento
var ErrReportRunning = errors.New("scheduler: report already running")

// DailyReportConfig representa a configuração do agendador do relatório
type DailyReportConfig struct {
	CronSchedule string
	Location     *time.Location
	Enabled      bool
}

// DailyReportService agenda e executa o relatório de anúncios
type DailyReportService struct {
	scheduler *gocron.Scheduler
	config    DailyReportConfig
	reporter  reporting.Reporter
	now       func() time.Time

	runMutex        sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastError       string
	lastErrorCode   string
	lastAdsReported int
	lastSkippedAds  int
	lastRunID       string

	runs sync.WaitGroup
}

// NewDailyReportService cria o agendador a partir da configuração do relatório
func NewDailyReportService(reporter reporting.Reporter, appConfig *config.Config) *DailyReportService {
	location := appConfig.Report.Location
	if location == nil {
		location = time.UTC
	}

	reportConfig := DailyReportConfig{
		CronSchedule: appConfig.Report.CronSchedule,
		Location:     location,
		Enabled:      appConfig.Report.ScheduleEnabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":    reportConfig.CronSchedule,
		"timezone":         location.String(),
		"schedule_enabled": reportConfig.Enabled,
	}).Info("Configuração do agendador do relatório carregada")

	return &DailyReportService{
		scheduler: gocron.NewScheduler(location),
		config:    reportConfig,
		reporter:  reporter,
		now:       time.Now,
	}
}

// Start agenda o relatório e para o agendador quando ctx for cancelado
func (s *DailyReportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Agendamento do relatório desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do relatório")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return errors.Wrap(err, "scheduler: failed to schedule report")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do relatório")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualRun dispara uma execução em background.
// A execução não é cancelada quando ctx termina, mas mantém os seus valores.
func (s *DailyReportService) TriggerManualRun(ctx context.Context) error {
	if !s.tryAcquire() {
		logrus.Info("Relatório já em andamento, ignorando solicitação manual")
		return ErrReportRunning
	}

	logrus.Info("Iniciando execução manual do relatório")

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.execute(context.WithoutCancel(ctx))
	}()

	return nil
}

// Wait aguarda as execuções manuais em andamento
func (s *DailyReportService) Wait() {
	s.runs.Wait()
}

// GetStatus retorna o status atual do agendador e da última execução
func (s *DailyReportService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"schedule_enabled":  s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"timezone":          s.config.Location.String(),
		"running":           s.running,
		"last_run_id":       s.lastRunID,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
		"last_error":        s.lastError,
		"last_error_code":   s.lastErrorCode,
		"last_ads_reported": s.lastAdsReported,
		"last_skipped_ads":  s.lastSkippedAds,
	}
}

func (s *DailyReportService) runScheduled(ctx context.Context) {
	if !s.tryAcquire() {
		logrus.Info("Relatório já em andamento, ignorando execução agendada")
		return
	}

	s.execute(ctx)
}

func (s *DailyReportService) tryAcquire() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.running {
		return false
	}

	s.running = true
	s.lastStartedAt = s.now()

	return true
}

// execute roda o relatório; o chamador deve ter adquirido a execução com tryAcquire
func (s *DailyReportService) execute(ctx context.Context) {
	startTime := s.now()

	report, err := s.reporter.Run(ctx)

	s.runMutex.Lock()
	s.running = false
	s.lastCompletedAt = s.now()
	s.lastError = ""
	s.lastErrorCode = ""
	s.lastAdsReported = 0
	s.lastSkippedAds = 0
	s.lastRunID = ""
	if err != nil {
		s.lastError = err.Error()
		s.lastErrorCode = apiErrors.CodeFromError(err)
	}
	if report != nil {
		s.lastAdsReported = len(report.Ads)
		s.lastSkippedAds = len(report.SkippedAds)
		s.lastRunID = report.RunID
	}
	s.runMutex.Unlock()

	fields := logrus.Fields{
		"duration": s.now().Sub(startTime).String(),
	}
	if report != nil {
		fields["run_id"] = report.RunID
		fields["ads"] = len(report.Ads)
	}

	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("Erro ao executar o relatório")
		return
	}

	logrus.WithFields(fields).Info("Relatório executado com sucesso")
}
