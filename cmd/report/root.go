package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/ads-report/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-report/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-report/infrastructure/integrator/slack/slackclient"
	"github.com/vfg2006/ads-report/internal/config"
	"github.com/vfg2006/ads-report/internal/domain"
	"github.com/vfg2006/ads-report/internal/usecases/reporting"
	"github.com/vfg2006/ads-report/pkg/utils"
)

type rootFlags struct {
	DryRun bool
	Date   string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "report",
		Short:         "Relatório diário de anúncios do Meta Ads no Slack",
		Long:          "Busca os anúncios ativos da conta, agrega as métricas do período e publica o resumo no webhook do Slack.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Imprime o payload do Slack em vez de enviá-lo")
	cmd.Flags().StringVar(&flags.Date, "date", "", "Gera o relatório de um dia específico (YYYY-MM-DD)")

	cmd.AddCommand(newServeCommand())

	return cmd
}

func runReport(ctx context.Context, out io.Writer, flags *rootFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service := newReportService(cfg)

	period, err := resolvePeriod(service, cfg, flags.Date)
	if err != nil {
		return err
	}

	if flags.DryRun {
		report, message, err := service.BuildFor(ctx, period)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"run_id": report.RunID,
			"ads":    len(report.Ads),
		}).Info("Dry run: mensagem não enviada")

		_, err = fmt.Fprintln(out, utils.PrettyJson(message))
		return err
	}

	_, err = service.RunFor(ctx, period)
	return err
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	setLogLevel(cfg.App.LogLevel)

	return cfg, nil
}

func newReportService(cfg *config.Config) *reporting.Service {
	metaIntegrator := meta.New(cfg, metaclient.NewClient(cfg))
	notifier := slackclient.NewClient(cfg)

	return reporting.NewService(cfg, metaIntegrator, metaIntegrator, notifier)
}

// resolvePeriod usa --date quando informado; caso contrário ontem ou a última semana
func resolvePeriod(service *reporting.Service, cfg *config.Config, date string) (domain.DateRange, error) {
	if date == "" {
		return service.CurrentPeriod(), nil
	}

	day, err := utils.ParseDate(date, cfg.Report.Location)
	if err != nil {
		return domain.DateRange{}, &domain.ConfigurationError{
			Invalid: []string{errors.Wrap(err, "--date").Error()},
		}
	}

	return domain.SingleDay(*day), nil
}
