package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kinetic-table/internal/logging"
	"kinetic-table/internal/render"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Simulate a number of ticks offline and write images of the table",
	Long: `Runs the loop for --ticks ticks as fast as possible, then writes a heat map
of the current pin heights to --out. --raw writes a one-pixel-per-pin PNG and
--trace plots the height of the pin given by --pin over the run.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().Int("ticks", 120, "number of ticks to simulate")
	snapshotCmd.Flags().String("out", "table.png", "heat map output file (png, svg or pdf)")
	snapshotCmd.Flags().String("raw", "", "optional one-pixel-per-pin PNG output file")
	snapshotCmd.Flags().String("trace", "", "optional pin trace output file")
	snapshotCmd.Flags().IntSlice("pin", []int{0, 0}, "row,col of the traced pin")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runner, err := buildRunner(cfg, logging.NewNop(), nil)
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	out, _ := cmd.Flags().GetString("out")
	raw, _ := cmd.Flags().GetString("raw")
	tracePath, _ := cmd.Flags().GetString("trace")
	pin, _ := cmd.Flags().GetIntSlice("pin")
	if len(pin) != 2 {
		return fmt.Errorf("--pin wants row,col, got %v", pin)
	}

	grid := runner.Grid()
	rows, cols := grid.Dims()
	if tracePath != "" && (pin[0] < 0 || pin[0] >= rows || pin[1] < 0 || pin[1] >= cols) {
		return fmt.Errorf("--pin %d,%d outside %dx%d table", pin[0], pin[1], rows, cols)
	}

	var samples []render.Sample
	for i := 0; i < ticks; i++ {
		if err := runner.Step(); err != nil {
			return err
		}
		if tracePath != "" {
			samples = append(samples, render.Sample{
				Time:    runner.Elapsed(),
				Current: grid.CurrentHeights().At(pin[0], pin[1]),
				Target:  grid.Targets().At(pin[0], pin[1]),
			})
		}
	}

	lo, hi := grid.Bounds()
	title := fmt.Sprintf("%s t=%.2fs", runner.Engine().Current(), runner.Elapsed())
	if err := render.WriteHeatmap(out, title, grid.CurrentHeights(), lo, hi); err != nil {
		return err
	}
	written := []string{out}

	if raw != "" {
		heights := make([]float64, rows*cols)
		if err := grid.CurrentInto(heights); err != nil {
			return err
		}
		img, err := render.HeightImage(heights, rows, cols, lo, hi, render.Terrain)
		if err != nil {
			return err
		}
		if err := render.WritePNG(raw, img); err != nil {
			return err
		}
		written = append(written, raw)
	}
	if tracePath != "" {
		if err := render.WriteTrace(tracePath, fmt.Sprintf("pin (%d,%d)", pin[0], pin[1]), samples); err != nil {
			return err
		}
		written = append(written, tracePath)
	}

	st := grid.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "%d ticks, %d pins moving, max error %.2f mm; wrote %s\n",
		runner.Ticks(), st.Moving, st.MaxError, strings.Join(written, ", "))
	return nil
}
