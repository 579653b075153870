package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/ads-report/internal/api"
	"github.com/vfg2006/ads-report/internal/scheduler"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Agenda o relatório e expõe a API administrativa até receber SIGINT/SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reportJob := scheduler.NewDailyReportService(newReportService(cfg), cfg)

	if err := reportJob.Start(ctx); err != nil {
		return err
	}
	logrus.Info("Agendador do relatório iniciado com sucesso")

	server, err := api.New(cfg, reportJob)
	if err != nil {
		return err
	}

	err = server.Run(ctx)

	// Aguarda execuções manuais disparadas pela API
	reportJob.Wait()

	return err
}
