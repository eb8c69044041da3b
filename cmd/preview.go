package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skyscenes/internal/observability"
	"skyscenes/termview"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var fps float64
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play a scene in the terminal",
		Long: `Play a scene in the terminal using half-block characters.

Mouse clicks launch fireworks, WASD or arrows steer the sandbox drone, space fires,
+/- change the fireworks launch rate and q or Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg.Preview
			if cmd.Flags().Changed("fps") {
				cfg.FPS = fps
			}
			sc, err := opts.newScene()
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initialise terminal: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := observability.GetLogger()
			v := termview.New(cfg, screen, sc, logger)
			err = v.Run(ctx)
			if errors.Is(err, termview.ErrQuit) {
				err = nil
			}
			logger.Info("Preview finished", zap.Float64("fps", v.FPS()))
			return err
		},
	}
	cmd.Flags().Float64Var(&fps, "fps", termview.DefaultConfig().FPS, "terminal frame rate")
	return cmd
}
