//go:build ebiten

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"kinetic-table/internal/app"
	"kinetic-table/internal/monitoring"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open an interactive top-down view of the table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		runner, err := buildRunner(cfg, log, monitoring.NewMetrics())
		if err != nil {
			return err
		}
		scale, _ := cmd.Flags().GetInt("scale")
		game := app.New(runner, scale)

		ebiten.SetWindowTitle("kinetic: " + runner.Engine().Current())
		ebiten.SetTPS(cfg.Sim.TPS)
		w, h := game.Layout(0, 0)
		ebiten.SetWindowSize(w, h)

		if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
			return err
		}
		return nil
	},
}

func init() {
	viewCmd.Flags().Int("scale", 16, "pixels per pin")
	rootCmd.AddCommand(viewCmd)
}
