// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

var errUnboundedRender = errors.New("looping sounds need --duration or --buffers")

func (a *app) newRenderCmd() *cobra.Command {
	var (
		output   string
		duration time.Duration
		buffers  int
		loop     bool
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "render [sound|file]... -o out.wav",
		Short: "Render a mix offline into a WAV file",
		Long: `Render runs the mixer against the headless device as fast as possible
and writes every buffer to a WAV file, or as raw PCM to stdout when the
output is "-".

Without --duration or --buffers it stops once every started voice has
finished.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.v.Set("device.backend", string(device.BackendHeadless))

			cfg, log, err := a.setup()
			if err != nil {
				return err
			}

			eng, voices, err := openSession(cmd.Context(), cfg, args, loop, workers, log)
			if err != nil {
				return err
			}
			defer eng.Close()

			h, ok := eng.Device().(*device.Headless)
			if !ok {
				return fmt.Errorf("render needs the %s backend, got %s", device.BackendHeadless, eng.Device().Name())
			}

			if duration > 0 {
				buffers = buffersFor(duration, cfg.Device.SampleRate, cfg.Device.Samples)
			}
			if buffers <= 0 && looping(voices) {
				return errUnboundedRender
			}

			w, closeOut, err := openOutput(cmd, output, h)
			if err != nil {
				return err
			}

			err = render(cmd.Context(), h, w, voices, buffers)
			err = errors.Join(err, closeOut())
			if err != nil {
				return err
			}

			log.Info("render complete",
				slog.String("output", output),
				slog.Int64("bytes", h.Rendered()),
				slog.Duration("length", eng.Spec().Duration(int(h.Rendered()))),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output WAV file, or "-" for raw PCM on stdout`)
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "length of the render")
	cmd.Flags().IntVar(&buffers, "buffers", 0, "number of device buffers to render")
	cmd.Flags().BoolVarP(&loop, "loop", "l", false, "loop sounds given as file arguments")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent decoders used for preloading")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// buffersFor returns the number of buffers of samples frames needed to
// cover d at rate.
func buffersFor(d time.Duration, rate, samples int) int {
	frames := int64(d) * int64(rate) / int64(time.Second)
	return int((frames + int64(samples) - 1) / int64(samples))
}

func openOutput(cmd *cobra.Command, output string, h *device.Headless) (io.Writer, func() error, error) {
	if output == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}

	w, err := wav.NewPCMWriter(f, h.Spec())
	if err != nil {
		return nil, nil, errors.Join(err, f.Close(), os.Remove(output))
	}

	return w, func() error {
		return errors.Join(w.Close(), f.Close())
	}, nil
}

// render writes the given number of buffers, or with buffers <= 0 keeps
// going until no voice is playing.
func render(ctx context.Context, h *device.Headless, w io.Writer, voices []*mixer.Playback, buffers int) error {
	if buffers > 0 {
		return h.Render(ctx, w, buffers, false)
	}

	for playing(voices) {
		if err := h.Render(ctx, w, 1, false); err != nil {
			return err
		}
	}
	return nil
}
