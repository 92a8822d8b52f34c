package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"NoticeScanner/internal/app"
	"NoticeScanner/internal/config"
	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/infrastructure/scheduler"
	"NoticeScanner/internal/logging"
	"NoticeScanner/internal/usecase"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		region    string
		dateRange string
		testMode  bool
		legacy    bool
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "noticescanner",
		Short: "Scans court and municipal bulletins for real-estate opportunities",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cfg, logger, testMode)
			if err != nil {
				return err
			}
			defer application.Close()

			req := usecase.RunRequest{
				Region:   region,
				Range:    domain.DateRange(dateRange),
				TestMode: testMode,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if interval > 0 {
				return runPeriodic(ctx, application, req, interval)
			}

			result := application.Run(ctx, req)
			return printResult(result, legacy)
		},
	}

	cmd.Flags().StringVar(&region, "region", "ontario", "region whose sources to scan")
	cmd.Flags().StringVar(&dateRange, "range", string(domain.RangeWeek), "date range: today, week, or month")
	cmd.Flags().BoolVar(&testMode, "test-mode", false, "skip persistence and courtesy delays")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "print the legacy {filings:[...]} shape")
	cmd.Flags().DurationVar(&interval, "interval", 0, "run periodically at this interval instead of once")

	return cmd
}

func runPeriodic(ctx context.Context, application *app.Application, req usecase.RunRequest, interval time.Duration) error {
	driver := scheduler.NewIntervalScheduler(interval)
	sched := usecase.NewScheduler(driver, application.Pipeline(), req)

	if err := sched.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return sched.Stop(context.Background())
}

func printResult(result domain.RunResult, legacy bool) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if legacy {
		return enc.Encode(usecase.LegacyFilings(result))
	}
	return enc.Encode(result)
}
