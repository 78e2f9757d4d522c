package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"kinetic-table/internal/config"
	"kinetic-table/internal/logging"
	"kinetic-table/internal/monitoring"
	"kinetic-table/internal/sim"
	"kinetic-table/pkg/core"
	"kinetic-table/pkg/hal"
	"kinetic-table/pkg/patterns"
)

var rootCmd = &cobra.Command{
	Use:   "kinetic",
	Short: "Kinetic table simulator",
	Long: `kinetic drives a simulated grid of motorized pins. A pattern generator
commands target heights and every pin chases its target at a bounded speed.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringArray("set", nil, "configuration override in key=value form (repeatable)")
	rootCmd.PersistentFlags().String("pattern", "", "pattern to run (overrides config)")
}

// loadConfig resolves the configuration from file, --set overrides and
// --pattern, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	overrides, err := config.ParseOverrides(sets)
	if err != nil {
		return cfg, err
	}
	if name, _ := cmd.Flags().GetString("pattern"); name != "" {
		overrides["pattern"] = name
	}
	cfg = cfg.FromMap(overrides)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	s, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(s)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// buildRunner constructs the grid, pattern engine and runner described by cfg.
func buildRunner(cfg config.Config, log *slog.Logger, metrics *monitoring.Metrics) (*sim.Runner, error) {
	grid, err := hal.NewWithConfig(cfg.HAL())
	if err != nil {
		return nil, err
	}
	engine := patterns.NewEngine(grid.Size(), core.Range{Min: cfg.Table.MinHeight, Max: cfg.Table.MaxHeight})
	if err := engine.SetPattern(cfg.Pattern.Name, cfg.Pattern.Params); err != nil {
		return nil, err
	}
	return sim.NewRunner(grid, engine, sim.Options{
		TPS:        cfg.Sim.TPS,
		MaxCatchUp: cfg.Sim.MaxCatchUp,
		Logger:     log,
		Metrics:    metrics,
	}), nil
}
