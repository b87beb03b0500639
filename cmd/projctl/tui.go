package main

import (
	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/project-tracker/internal/board"
	"github.com/GoSim-25-26J-441/project-tracker/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive project board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			return tui.Run(board.New(a.client), a.cfg.Timeout)
		},
	}
}
