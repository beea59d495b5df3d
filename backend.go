//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/device/beepdev"
	"github.com/ik5/audmix/device/otodev"
)

// OpenDevice opens the backend selected by cfg.Backend.
func OpenDevice(cfg device.Config, logger *slog.Logger) (device.Device, error) {
	var (
		dev device.Device
		err error
	)

	switch cfg.Backend {
	case device.BackendOto:
		dev, err = otodev.Open(cfg, logger)
	case device.BackendBeep:
		dev, err = beepdev.Open(cfg, logger)
	case device.BackendHeadless:
		dev, err = device.NewHeadless(cfg, logger)
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Backend, device.ErrUnknownBackend)
	}
	if err != nil {
		return nil, err
	}
	return dev, nil
}
