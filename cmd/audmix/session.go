// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/loader"
	"github.com/ik5/audmix/mixer"
)

// soundEntries lists every configured sound plus any argument that is not a
// configured name; such arguments are treated as file paths.
func soundEntries(cfg *config.Config, args []string) []loader.Entry {
	seen := make(map[string]bool, len(cfg.Sounds)+len(args))
	entries := make([]loader.Entry, 0, len(cfg.Sounds)+len(args))

	for _, s := range cfg.Sounds {
		seen[s.Name] = true
		entries = append(entries, loader.Entry{Name: s.Name, Path: s.Path})
	}
	for _, arg := range args {
		if seen[arg] {
			continue
		}
		seen[arg] = true
		entries = append(entries, loader.Entry{Name: arg, Path: arg})
	}
	return entries
}

// startSounds plays the autoplay sounds and then every argument. Loop comes
// from the configuration, or from loopArgs for plain files.
func startSounds(eng *audmix.Engine, cfg *config.Config, args []string, loopArgs bool, log *slog.Logger) ([]*mixer.Playback, error) {
	var voices []*mixer.Playback

	play := func(name string, loop bool) error {
		p, err := eng.Play(name, loop)
		if err != nil {
			return fmt.Errorf("playing %q: %w", name, err)
		}
		log.Info("playing", slog.String("sound", name), slog.Bool("loop", loop))
		voices = append(voices, p)
		return nil
	}

	for _, s := range cfg.Sounds {
		if !s.Autoplay {
			continue
		}
		if err := play(s.Name, s.Loop); err != nil {
			return voices, err
		}
	}

	for _, arg := range args {
		loop := loopArgs
		if s, ok := cfg.Sound(arg); ok {
			loop = s.Loop
		}
		if err := play(arg, loop); err != nil {
			return voices, err
		}
	}
	return voices, nil
}

// openSession opens the engine, loads every sound and starts the requested
// voices. On error the engine is already closed.
func openSession(ctx context.Context, cfg *config.Config, args []string, loopArgs bool, workers int, log *slog.Logger) (*audmix.Engine, []*mixer.Playback, error) {
	eng, err := audmix.Open(cfg.Device, log)
	if err != nil {
		return nil, nil, err
	}

	entries := soundEntries(cfg, args)
	if err := eng.LoadAll(ctx, entries, workers); err != nil {
		_ = eng.Close()
		return nil, nil, fmt.Errorf("loading sounds: %w", err)
	}
	log.Debug("sounds loaded", slog.Int("count", eng.Library().Len()))

	voices, err := startSounds(eng, cfg, args, loopArgs, log)
	if err != nil {
		_ = eng.Close()
		return nil, nil, err
	}
	return eng, voices, nil
}

// playing reports whether any of voices is still producing sound.
func playing(voices []*mixer.Playback) bool {
	for _, p := range voices {
		if p.State() == mixer.Playing {
			return true
		}
	}
	return false
}

func looping(voices []*mixer.Playback) bool {
	for _, p := range voices {
		if p.Looping() {
			return true
		}
	}
	return false
}
