package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/adventure-engine/internal/broadcast"
	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/console"
	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
)

func newPlayCmd(opts *options) *cobra.Command {
	var plain, choose bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return play(ctx, cfg, plain, choose, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Use a line-based terminal instead of the full-screen UI")
	cmd.Flags().BoolVar(&choose, "choose", false, "Pick a built-in scenario from a menu (full-screen UI only)")
	return cmd
}

// session holds what a running game needs besides the game itself.
type session struct {
	cfg   *config.Config
	log   *slog.Logger
	redis *broadcast.Client
}

func play(ctx context.Context, cfg *config.Config, plain, choose bool, in io.Reader, out io.Writer) error {
	// The full-screen UI owns the terminal, so without a log file logs are dropped.
	fallback := io.Writer(os.Stderr)
	if !plain {
		fallback = io.Discard
	}
	log, closeLog, err := setupLogger(cfg, fallback)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	s := &session{cfg: cfg, log: log}
	if cfg.RedisURL != "" {
		s.redis, err = broadcast.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := s.redis.Close(); err != nil {
				log.Error("Error closing redis client", "error", err)
			}
		}()
	}

	if choose && !plain {
		ui := console.NewSelectUI(scenario.BuiltinNames(), s.start, cfg.Wrap)
		return runUI(ctx, ui, in, out)
	}

	g, err := s.start(cfg.Scenario)
	if err != nil {
		return err
	}
	if plain {
		return game.Run(ctx, g, console.NewTerminal(in, out, cfg.Wrap))
	}
	return runUI(ctx, console.NewUI(g, cfg.Wrap), in, out)
}

// start loads a scenario and creates a game for it, broadcasting its events
// when Redis is configured.
func (s *session) start(name string) (*game.Game, error) {
	rng, seed := newRNG(s.cfg.Seed)
	def, err := scenario.Open(name, rng)
	if err != nil {
		return nil, err
	}

	opts := []game.Option{game.WithLogger(s.log)}
	g, err := game.New(def, append(opts, s.observe()...)...)
	if err != nil {
		return nil, err
	}
	s.log.Info("Starting game",
		"game_id", g.ID.String(),
		"scenario", name,
		"seed", seed,
		"broadcast", s.redis != nil)
	return g, nil
}

// observe returns the options that broadcast the game's events, if enabled.
func (s *session) observe() []game.Option {
	if s.redis == nil {
		return nil
	}
	id := uuid.New()
	b := broadcast.NewBroadcaster(s.redis, id.String(), s.log)
	return []game.Option{game.WithID(id), game.WithObserver(b)}
}

func runUI(ctx context.Context, ui console.UI, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(ui,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
