package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kinetic-table/internal/monitoring"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation headless in real time",
	Long: `Runs the pattern -> targets -> step loop at the configured tick rate and
logs table statistics. Stops on Ctrl+C or after --duration.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Duration("duration", 0, "stop after this long (0 runs until interrupted)")
	runCmd.Flags().Duration("report", time.Second, "interval between status lines (0 disables)")
	runCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	metrics := monitoring.NewMetrics()
	runner, err := buildRunner(cfg, log, metrics)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d, _ := cmd.Flags().GetDuration("duration"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("serving metrics", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	report, _ := cmd.Flags().GetDuration("report")
	err = runner.Run(ctx, report)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
