package main

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/logger"
)

// options are the persistent flags. Zero values fall back to config.
type options struct {
	scenario string
	seed     uint64
	wrap     int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "adventure",
		Short:         "Play event-sourced text adventures",
		Long:          "A text adventure engine. Every turn is an event; rooms, items and NPC positions are derived from the event log.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.scenario, "scenario", "s", "", "Scenario file or built-in name (default: $ADVENTURE_SCENARIO or garden)")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "Seed for NPC movement (default: $ADVENTURE_SEED or the clock)")
	root.PersistentFlags().IntVar(&opts.wrap, "wrap", -1, "Wrap text at this many columns, 0 to disable (default: $ADVENTURE_WRAP or 80)")

	root.AddCommand(
		newPlayCmd(opts),
		newValidateCmd(),
		newScenariosCmd(),
		newWatchCmd(),
	)
	return root
}

// load reads config and applies flag overrides.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.scenario != "" {
		cfg.Scenario = o.scenario
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.wrap >= 0 {
		cfg.Wrap = o.wrap
	}
	return cfg, nil
}

// setupLogger sends logs to LOG_FILE, or to fallback when none is set.
func setupLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return logger.Setup(cfg, fallback), func() error { return nil }, nil
	}
	w, closeFn, err := logger.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger.Setup(cfg, w), closeFn, nil
}

func newRNG(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}
