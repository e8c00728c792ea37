package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/adventure-engine/internal/broadcast"
	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/logger"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <game-id>",
		Short: "Follow another player's game as it happens (needs REDIS_URL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid game id %q: %w", args[0], err)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.RedisURL == "" {
				return errors.New("REDIS_URL is not set")
			}
			w, closeLog, err := logger.Open(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			log := logger.WithGame(logger.Setup(cfg, w), id.String())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := broadcast.NewClient(ctx, cfg.RedisURL, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.WithError(log, err).Error("Error closing redis client")
				}
			}()

			out := cmd.OutOrStdout()
			return client.Watch(ctx, id.String(), func(m broadcast.Message) {
				fmt.Fprintln(out, m.String())
			})
		},
	}
}
