package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	slackdomain "github.com/vfg2006/ads-report/infrastructure/integrator/slack/domain"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/domain"
	"github.com/vfg2006/ads-report/pkg/log"
	"github.com/vfg2006/ads-report/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	cfg      *config.Config
	ads      AdLister
	metrics  MetricsFetcher
	notifier Notifier
	now      func() time.Time
}

type fetchResult struct {
	metrics domain.AdMetrics
	err     error
}

func NewService(cfg *config.Config, ads AdLister, metrics MetricsFetcher, notifier Notifier) *Service {
	return &Service{
		cfg:      cfg,
		ads:      ads,
		metrics:  metrics,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock substitui o relógio usado para calcular o período do relatório
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CurrentPeriod é ontem, ou a última semana completa, no fuso do relatório
func (s *Service) CurrentPeriod() domain.DateRange {
	return domain.RangeFor(s.cfg.Report.Kind, s.now(), s.cfg.Report.Location)
}

// Run gera o relatório do período atual e envia ao webhook.
// Se o envio falhar, o relatório gerado é retornado junto com o erro.
func (s *Service) Run(ctx context.Context) (*domain.Report, error) {
	return s.RunFor(ctx, s.CurrentPeriod())
}

func (s *Service) RunFor(ctx context.Context, period domain.DateRange) (*domain.Report, error) {
	ctx = withRunID(ctx)

	report, message, err := s.BuildFor(ctx, period)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx)
	if err := s.notifier.Send(ctx, message); err != nil {
		logger.WithError(err).Error("reporting: failed to deliver report")
		return report, errors.Wrap(err, "reporting: failed to deliver report")
	}

	logger.WithFields(log.Fields{
		"ads":     len(report.Ads),
		"skipped": len(report.SkippedAds),
	}).Info("reporting: report delivered")

	return report, nil
}

// Build gera o relatório e a mensagem sem enviá-la
func (s *Service) Build(ctx context.Context) (*domain.Report, slackdomain.Message, error) {
	return s.BuildFor(ctx, s.CurrentPeriod())
}

func (s *Service) BuildFor(ctx context.Context, period domain.DateRange) (*domain.Report, slackdomain.Message, error) {
	ctx = withRunID(ctx)
	accountID := s.cfg.Meta.AdAccountID

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": accountID,
		"since":      period.SinceString(),
		"until":      period.UntilString(),
	})
	logger.Info("reporting: building report")

	ads, err := s.ads.ListActiveAds(ctx, accountID)
	if err != nil {
		return nil, slackdomain.Message{}, errors.Wrap(err, "reporting: failed to list active ads")
	}

	var items []domain.AdReport
	var skipped []domain.SkippedAd
	if len(ads) == 0 {
		logger.Warn("reporting: no active ads found")
	} else {
		items, skipped, err = s.collect(ctx, ads, period)
		if err != nil {
			return nil, slackdomain.Message{}, err
		}
	}

	report := domain.NewReport(s.cfg.Report.Kind, period, items, skipped, s.cfg.Report.ComparePrevious)
	report.RunID = log.GetRunID(ctx)
	report.AccountID = accountID
	report.GeneratedAt = s.now()

	message := BuildMessage(report, FormatOptions{CurrencySymbol: s.cfg.Report.CurrencySymbol})

	logger.WithFields(log.Fields{
		"ads":         len(report.Ads),
		"skipped":     len(report.SkippedAds),
		"no_delivery": report.NoDeliveryAds(),
		"spend":       report.Totals.Spend,
	}).Info("reporting: report built")

	return report, message, nil
}

// collect busca as métricas de cada anúncio e, se habilitado, as do período anterior
func (s *Service) collect(ctx context.Context, ads []domain.Ad, period domain.DateRange) ([]domain.AdReport, []domain.SkippedAd, error) {
	current, err := s.fetchAll(ctx, ads, period)
	if err != nil {
		return nil, nil, err
	}

	items := make([]domain.AdReport, 0, len(ads))
	var skipped []domain.SkippedAd
	for i, ad := range ads {
		if current[i].err != nil {
			skipped = append(skipped, domain.SkippedAd{Ad: ad, Reason: current[i].err.Error()})
			continue
		}
		items = append(items, domain.AdReport{Ad: ad, Metrics: current[i].metrics})
	}

	if !s.cfg.Report.ComparePrevious || len(items) == 0 {
		return items, skipped, nil
	}

	reported := make([]domain.Ad, 0, len(items))
	for _, item := range items {
		reported = append(reported, item.Ad)
	}

	previous, err := s.fetchAll(ctx, reported, period.Previous())
	if err != nil {
		return nil, nil, err
	}

	for i := range items {
		if previous[i].err != nil {
			continue
		}
		metrics := previous[i].metrics
		items[i].Previous = &metrics
	}

	return items, skipped, nil
}

// fetchAll busca as métricas em paralelo, limitado por REPORT_MAX_CONCURRENT.
// Cada goroutine escreve apenas no seu índice de results.
// Com a política abort o primeiro erro cancela as demais buscas e é retornado;
// com skip o erro fica registrado no resultado do anúncio.
func (s *Service) fetchAll(ctx context.Context, ads []domain.Ad, period domain.DateRange) ([]fetchResult, error) {
	results := make([]fetchResult, len(ads))
	skip := s.cfg.SkipFailedAds()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.cfg.Report.MaxConcurrent))

	for i, ad := range ads {
		i, ad := i, ad
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			metrics, err := s.metrics.GetAdMetrics(gctx, ad.ID, period)
			if err == nil {
				results[i].metrics = metrics
				return nil
			}

			if skip && ctx.Err() == nil {
				log.ForContext(ctx).WithFields(log.Fields{
					"ad_id": ad.ID,
					"since": period.SinceString(),
				}).WithError(err).Warn("reporting: skipping ad without metrics")
				results[i].err = err
				return nil
			}

			return errors.Wrapf(err, "reporting: failed to fetch metrics for ad %s", ad.ID)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func withRunID(ctx context.Context) context.Context {
	if log.GetRunID(ctx) != "" {
		return ctx
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return ctx
	}

	return log.WithRunID(ctx, runID)
}
