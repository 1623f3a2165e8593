package main

import (
	"fmt"
	"os"
	"time"

	"autostream-assistant/internal/config"
	"autostream-assistant/internal/dto"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/repository/unitofwork"
	"autostream-assistant/internal/service"
	"autostream-assistant/pkg/database"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	out      string
	plan     string
	platform string
	since    string
	limit    int
	newest   bool
}

func newExportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:          "export_leads",
		Short:        "Write captured leads to an Excel workbook",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			return runExport(cmd, req, flags.out)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "leads.xlsx", "output workbook")
	cmd.Flags().StringVar(&flags.plan, "plan", "", "only leads for this plan (basic|pro)")
	cmd.Flags().StringVar(&flags.platform, "platform", "", "only leads from this platform")
	cmd.Flags().StringVar(&flags.since, "since", "", "only leads captured on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "maximum rows, 0 = all")
	cmd.Flags().BoolVar(&flags.newest, "newest", false, "newest leads first")
	return cmd
}

func (f *exportFlags) request() (dto.ExportLeadsRequest, error) {
	req := dto.ExportLeadsRequest{
		Plan:     f.plan,
		Platform: f.platform,
		Limit:    f.limit,
		Newest:   f.newest,
	}
	if f.since != "" {
		from, err := time.Parse(time.DateOnly, f.since)
		if err != nil {
			return req, fmt.Errorf("invalid --since %q: %w", f.since, err)
		}
		req.From = from
	}
	return req, nil
}

func runExport(cmd *cobra.Command, req dto.ExportLeadsRequest, out string) error {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	svc := service.NewLeadExportService(unitofwork.NewRepositoryFactory(db), sysLogger)
	res, err := svc.Export(cmd.Context(), req, out)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d leads to %s\n", res.Count, res.Path)
	return nil
}

func main() {
	if err := newExportCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
