package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skyscenes/internal/config"
	"skyscenes/internal/observability"
	"skyscenes/scene"
)

type rootOptions struct {
	cfgFile string
	scene   string
	seed    uint64

	cfg *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "skyscenes",
		Short:         "Animated sky scenes: fireworks, a pointer trail and a drone sandbox.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./skyscenes.yaml)")
	flags.StringVarP(&opts.scene, "scene", "s", "", "scene to play: "+strings.Join(scene.Names(), ", "))
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (overrides the config)")

	root.AddCommand(newRunCmd(opts), newSnapshotCmd(opts), newPreviewCmd(opts), newVersionCmd())
	return root
}

// load reads the configuration, applies flag overrides and starts logging
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		observability.InitializeLogger(config.Default().Logger)
		return err
	}
	if cmd.Flags().Changed("scene") {
		cfg.Scene = o.scene
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = o.seed
	}
	o.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	observability.GetLogger().Debug("Configuration loaded",
		zap.String("version", Version),
		zap.String("scene", cfg.Scene),
		zap.Uint64("seed", cfg.Seed),
	)
	return nil
}

// newScene builds the configured scene
func (o *rootOptions) newScene() (scene.Scene, error) {
	sc, err := scene.New(o.cfg.Scene, o.cfg.SceneOptions())
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}
	return sc, nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	defer observability.Sync()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		observability.Sync()
		os.Exit(1)
	}
}
