//go:build headless

// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/device"
)

// OpenDevice opens the backend selected by cfg.Backend. Only the headless
// backend is compiled in.
func OpenDevice(cfg device.Config, logger *slog.Logger) (device.Device, error) {
	if cfg.Backend != device.BackendHeadless {
		return nil, fmt.Errorf("%q (built with the headless tag): %w", cfg.Backend, device.ErrUnknownBackend)
	}
	h, err := device.NewHeadless(cfg, logger)
	if err != nil {
		return nil, err
	}
	return h, nil
}
