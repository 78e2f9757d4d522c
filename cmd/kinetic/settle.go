package main

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kinetic-table/internal/sim"
)

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Sweep motor speeds and report how quickly the table settles",
	Long: `For each --speeds value, drives a fresh table from rest to a frozen frame of
the configured pattern and counts the ticks until every pin arrives, then
follows the live pattern for --track ticks and reports the mean worst-pin lag.`,
	RunE: runSettle,
}

func init() {
	settleCmd.Flags().Float64Slice("speeds", []float64{10, 25, 50, 100, 200}, "max speeds to evaluate (mm/s)")
	settleCmd.Flags().Float64("at", 0, "pattern time of the frozen frame (s)")
	settleCmd.Flags().Int("max-ticks", 10000, "give up after this many ticks")
	settleCmd.Flags().Int("track", 600, "ticks to follow the live pattern (0 skips)")
	settleCmd.Flags().Int("workers", runtime.NumCPU(), "parallel evaluations")
	rootCmd.AddCommand(settleCmd)
}

func runSettle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	speeds, _ := cmd.Flags().GetFloat64Slice("speeds")
	at, _ := cmd.Flags().GetFloat64("at")
	maxTicks, _ := cmd.Flags().GetInt("max-ticks")
	track, _ := cmd.Flags().GetInt("track")
	workers, _ := cmd.Flags().GetInt("workers")

	base := sim.SettleJob{
		Table:      cfg.HAL(),
		Pattern:    cfg.Pattern.Name,
		Params:     cfg.Pattern.Params,
		At:         at,
		TPS:        cfg.Sim.TPS,
		MaxTicks:   maxTicks,
		TrackTicks: track,
	}
	results, err := sim.SettleSweep(cmd.Context(), base, speeds, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "speed (mm/s)\tticks\tseconds\tsettled\ttracking lag (mm)\n")
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%.2f\t%v\t%.2f\n", r.MaxSpeed, r.Ticks, r.Seconds, r.Settled, r.TrackingError)
	}
	return w.Flush()
}
