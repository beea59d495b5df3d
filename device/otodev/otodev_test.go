// SPDX-License-Identifier: EPL-2.0

package otodev

import (
	"errors"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
)

func TestOtoFormat(t *testing.T) {
	t.Parallel()

	supported := []audio.Format{audio.FormatU8, audio.FormatS16LE, audio.FormatF32LE}
	for _, f := range supported {
		if _, err := otoFormat(f); err != nil {
			t.Errorf("%s: unexpected error %v", f, err)
		}
	}

	unsupported := []audio.Format{audio.FormatS8, audio.FormatS32LE, audio.FormatUnknown}
	for _, f := range unsupported {
		if _, err := otoFormat(f); !errors.Is(err, device.ErrUnsupportedFormat) {
			t.Errorf("%s: err = %v, want ErrUnsupportedFormat", f, err)
		}
	}
}

// Read is exercised without an oto context: it only touches the gate and
// the callback.
func TestReadFillsSilenceUntilStarted(t *testing.T) {
	t.Parallel()

	d := &Device{spec: audio.Spec{SampleRate: 8000, Channels: 1, Format: audio.FormatU8, Silence: 0x80}}
	p := make([]byte, 4)

	n, err := d.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read = %d, %v", n, err)
	}
	for i, b := range p {
		if b != 0x80 {
			t.Fatalf("p[%d] = %#x, want 0x80", i, b)
		}
	}

	var held bool
	d.cb = func(out []byte) {
		held = !d.gate.TryLock()
		if !held {
			d.gate.Unlock()
		}
		out[0] = 1
	}
	if _, err := d.Read(p); err != nil {
		t.Fatal(err)
	}
	if !held {
		t.Error("gate not held during callback")
	}
	if p[0] != 1 {
		t.Errorf("callback output not written")
	}
}

func TestOpenRejectsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	for name, mutate := range map[string]func(*device.Config){
		"s32le":      func(c *device.Config) { c.Format = "s32le" },
		"6 channels": func(c *device.Config) { c.Channels = 6 },
	} {
		cfg := device.DefaultConfig()
		mutate(&cfg)
		if _, err := Open(cfg, nil); !errors.Is(err, device.ErrUnsupportedFormat) {
			t.Errorf("%s: err = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}
