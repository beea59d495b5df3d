// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/internal/logger"
)

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "audmix",
		Short: "Mix preloaded sounds into an audio device",
		Long: `audmix decodes WAV, MP3, Ogg Vorbis and AIFF files into the output
device's sample format once, then mixes any number of overlapping voices
into the device buffer on every callback.

Settings come from audmix.yaml, AUDMIX_* environment variables and flags.`,
		SilenceUsage: true,
	}

	d := device.DefaultConfig()
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./audmix.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	pf.String("backend", string(d.Backend), "output backend (oto, beep, headless)")
	pf.Int("rate", d.SampleRate, "sample rate in Hz")
	pf.Int("channels", d.Channels, "interleaved channel count")
	pf.String("format", d.Format, "sample format (u8, s8, s16le, s32le, f32le)")
	pf.Int("samples", d.Samples, "frames per device callback")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	if err := bindFlags(a.v, pf, map[string]string{
		"device.backend":     "backend",
		"device.sample_rate": "rate",
		"device.channels":    "channels",
		"device.format":      "format",
		"device.samples":     "samples",
		"logging.level":      "log-level",
		"logging.format":     "log-format",
	}); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.newPlayCmd(),
		a.newRenderCmd(),
		a.newConvertCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// bindFlags binds each viper key to the named flag of fs.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("no flag %q for %s", name, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}

// loadConfig reads and validates the configuration.
func (a *app) loadConfig() (*config.Config, error) {
	if a.verbose {
		a.v.Set("logging.level", "debug")
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and installs the logger it describes.
func (a *app) setup() (*config.Config, *slog.Logger, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return cfg, log, nil
}
