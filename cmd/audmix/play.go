// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/mixer"
)

const pollInterval = 100 * time.Millisecond

func (a *app) newPlayCmd() *cobra.Command {
	var (
		wait    bool
		loop    bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "play [sound|file]...",
		Short: "Play sounds on the configured device",
		Long: `Play loads every configured sound, starts the autoplay ones and then
each argument, given either as a configured sound name or as a file path.

It runs until interrupted, or with --wait until every started voice has
finished.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}

			eng, voices, err := openSession(cmd.Context(), cfg, args, loop, workers, log)
			if err != nil {
				return err
			}
			defer eng.Close()

			if len(voices) == 0 {
				log.Warn("nothing to play")
				if wait {
					return nil
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = runPlayback(ctx, eng, voices, wait, log)
			log.Info("shutting down", slog.Any("stats", eng.Stats()))
			return err
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "exit once every started voice has finished")
	cmd.Flags().BoolVarP(&loop, "loop", "l", false, "loop sounds given as file arguments")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent decoders used for preloading")
	return cmd
}

// runPlayback drives a headless device in real time and watches the engine
// until ctx is done or, with wait set, until voices have finished.
func runPlayback(ctx context.Context, eng *audmix.Engine, voices []*mixer.Playback, wait bool, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if h, ok := eng.Device().(*device.Headless); ok {
		g.Go(func() error {
			return h.Render(ctx, io.Discard, 0, true)
		})
	}

	g.Go(func() error {
		defer cancel()
		return watch(ctx, eng, voices, wait, log)
	})

	return g.Wait()
}

type errDevice interface {
	Err() error
}

func watch(ctx context.Context, eng *audmix.Engine, voices []*mixer.Playback, wait bool, log *slog.Logger) error {
	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}

		if d, ok := eng.Device().(errDevice); ok {
			if err := d.Err(); err != nil {
				return fmt.Errorf("device %s: %w", eng.Device().Name(), err)
			}
		}
		if wait && !playing(voices) {
			log.Debug("all voices finished")
			return nil
		}
	}
}
