//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open an interactive top-down view of the table (needs -tags ebiten)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("the viewer requires the ebiten build tag; re-run with `go run -tags ebiten ./cmd/kinetic view`")
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
