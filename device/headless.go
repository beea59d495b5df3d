// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/audmix/audio"
)

// Headless is a device with no sound card behind it. Buffers are produced
// on demand by Pull or streamed to a writer by Render.
type Headless struct {
	spec     audio.Spec
	gate     sync.Mutex
	cb       Callback
	buf      []byte
	started  bool
	closed   bool
	period   time.Duration
	logger   *slog.Logger
	rendered int64
}

// NewHeadless opens a headless device. The backend field of cfg is ignored.
func NewHeadless(cfg Config, logger *slog.Logger) (*Headless, error) {
	cfg.Backend = BackendHeadless
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	spec, _ := cfg.Spec()
	h := &Headless{
		spec:   spec,
		buf:    make([]byte, spec.BufferBytes(cfg.Samples)),
		period: cfg.BufferDuration(),
		logger: logger.With("component", "device", "backend", BackendHeadless),
	}
	h.logger.Debug("device opened", "spec", spec.String(), "buffer_bytes", len(h.buf))
	return h, nil
}

// Name implements Device.
func (h *Headless) Name() string { return string(BackendHeadless) }

// Spec implements Device. Headless always grants what was asked for.
func (h *Headless) Spec() audio.Spec { return h.spec }

// Gate implements Device.
func (h *Headless) Gate() sync.Locker { return &h.gate }

// BufferBytes is the size of one buffer produced by Render.
func (h *Headless) BufferBytes() int { return len(h.buf) }

// Start implements Device.
func (h *Headless) Start(cb Callback) error {
	if cb == nil {
		return fmt.Errorf("nil callback: %w", ErrInvalidConfig)
	}

	h.gate.Lock()
	defer h.gate.Unlock()

	switch {
	case h.closed:
		return ErrClosed
	case h.started:
		return ErrAlreadyStarted
	}
	h.cb = cb
	h.started = true
	return nil
}

// Pull runs the callback once over out while holding the gate, the way a
// real device thread would.
func (h *Headless) Pull(out []byte) error {
	h.gate.Lock()
	defer h.gate.Unlock()

	switch {
	case h.closed:
		return ErrClosed
	case !h.started:
		return ErrNotStarted
	}
	h.cb(out)
	h.rendered += int64(len(out))
	return nil
}

// Render pulls buffers and writes them to w. It stops after the given
// number of buffers, or when ctx is done if buffers <= 0. With realtime set
// each buffer is paced to its playback duration.
func (h *Headless) Render(ctx context.Context, w io.Writer, buffers int, realtime bool) error {
	var tick <-chan time.Time
	if realtime && h.period > 0 {
		t := time.NewTicker(h.period)
		defer t.Stop()
		tick = t.C
	}

	for i := 0; buffers <= 0 || i < buffers; i++ {
		if err := ctx.Err(); err != nil {
			if buffers <= 0 {
				return nil
			}
			return err
		}

		if err := h.Pull(h.buf); err != nil {
			return err
		}
		if _, err := w.Write(h.buf); err != nil {
			return fmt.Errorf("headless render: %w", err)
		}

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}
	return nil
}

// Rendered returns the number of bytes produced so far.
func (h *Headless) Rendered() int64 {
	h.gate.Lock()
	defer h.gate.Unlock()
	return h.rendered
}

// Close implements Device.
func (h *Headless) Close() error {
	h.gate.Lock()
	defer h.gate.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.cb = nil
	h.logger.Debug("device closed", "rendered_bytes", h.rendered)
	return nil
}
