package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skyscenes/game"
	"skyscenes/internal/observability"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Play a scene in a window",
		Long: `Play a scene in a window.

Fireworks: click to launch a shell at the pointer, mouse wheel or +/- to change the ambient launch rate.
Hero: move the pointer to leave a trail.
Sandbox: WASD or arrows steer the controlled drone, space fires.
F1 toggles the FPS overlay, Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := opts.newScene()
			if err != nil {
				return err
			}
			logger := observability.GetLogger()
			logger.Info("Starting window", zap.String("scene", sc.Name()))
			return game.NewGame(opts.cfg.Window, sc, logger).Run()
		},
	}
}
