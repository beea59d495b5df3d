// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"time"

	"github.com/ik5/audmix/audio"
)

// Backend names an output implementation.
type Backend string

const (
	BackendOto      Backend = "oto"
	BackendBeep     Backend = "beep"
	BackendHeadless Backend = "headless"
)

// SilenceAuto selects the zero line of the configured format.
const SilenceAuto = -1

// Config holds the properties requested when opening a device.
type Config struct {
	// Backend selects the output implementation.
	// Default: "oto"
	Backend Backend `mapstructure:"backend"`

	// SampleRate in Hz.
	// Default: 48000
	SampleRate int `mapstructure:"sample_rate"`

	// Channels is the interleaved channel count.
	// Default: 2
	Channels int `mapstructure:"channels"`

	// Format is the sample encoding ("u8", "s8", "s16le", "s32le", "f32le").
	// Default: "s16le"
	Format string `mapstructure:"format"`

	// Silence is the byte written when nothing plays; SilenceAuto picks the
	// format's zero line.
	Silence int `mapstructure:"silence"`

	// Samples is the number of frames per callback.
	// Default: 4096
	Samples int `mapstructure:"samples"`
}

// DefaultConfig returns 48kHz stereo s16le with 4096-frame buffers.
func DefaultConfig() Config {
	return Config{
		Backend:    BackendOto,
		SampleRate: 48000,
		Channels:   2,
		Format:     audio.FormatS16LE.String(),
		Silence:    SilenceAuto,
		Samples:    4096,
	}
}

// Validate checks that the configuration describes a usable device.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOto, BackendBeep, BackendHeadless:
	default:
		return fmt.Errorf("%q: %w", c.Backend, ErrUnknownBackend)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d: %w", c.Samples, ErrInvalidConfig)
	}
	if c.Silence < SilenceAuto || c.Silence > 0xFF {
		return fmt.Errorf("silence must be -1 or a byte value, got %d: %w", c.Silence, ErrInvalidConfig)
	}
	if _, err := c.Spec(); err != nil {
		return err
	}
	return nil
}

// Spec converts the configuration into the sample format descriptor.
func (c *Config) Spec() (audio.Spec, error) {
	f, err := audio.ParseFormat(c.Format)
	if err != nil {
		return audio.Spec{}, fmt.Errorf("device format: %w", err)
	}

	silence := f.Silence()
	if c.Silence != SilenceAuto {
		silence = byte(c.Silence)
	}

	spec := audio.Spec{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		Format:     f,
		Silence:    silence,
	}
	if err := spec.Validate(); err != nil {
		return audio.Spec{}, fmt.Errorf("device: %w", err)
	}
	return spec, nil
}

// BufferDuration is the playback time covered by one callback.
func (c *Config) BufferDuration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(int64(c.Samples) * int64(time.Second) / int64(c.SampleRate))
}
