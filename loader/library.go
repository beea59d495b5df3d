// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

// DefaultCodecs returns a registry with every built-in decoder.
func DefaultCodecs() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}

// Entry names a file to load.
type Entry struct {
	Name string
	Path string
}

// Library is a named set of assets, all in one device format. It is safe
// for concurrent use.
type Library struct {
	spec   audio.Spec
	codecs *audio.Registry
	logger *slog.Logger

	mu     sync.RWMutex
	assets map[string]*mixer.Asset
	closed bool
}

// NewLibrary creates an empty library producing assets for spec. A nil
// codecs registry selects DefaultCodecs.
func NewLibrary(spec audio.Spec, codecs *audio.Registry, logger *slog.Logger) (*Library, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if codecs == nil {
		codecs = DefaultCodecs()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Library{
		spec:   spec,
		codecs: codecs,
		logger: logger.With("component", "loader"),
		assets: make(map[string]*mixer.Asset),
	}, nil
}

// Spec returns the format assets are converted to.
func (l *Library) Spec() audio.Spec { return l.spec }

// Codecs returns the decoder registry; decoders may be added at any time.
func (l *Library) Codecs() *audio.Registry { return l.codecs }

// Load decodes the file at path, picking a decoder by extension, and stores
// the result as name.
func (l *Library) Load(name, path string) (*mixer.Asset, error) {
	if err := l.reserve(name); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	defer f.Close()

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	return l.LoadReader(name, format, f)
}

// LoadReader decodes r with the decoder registered for format and stores
// the result as name.
func (l *Library) LoadReader(name, format string, r io.Reader) (*mixer.Asset, error) {
	if err := l.reserve(name); err != nil {
		return nil, err
	}

	dec, ok := l.codecs.Get(format)
	if !ok {
		return nil, fmt.Errorf("load %q: %q: %w", name, format, ErrUnknownFormat)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	defer src.Close()

	srcRate, srcChannels := src.SampleRate(), src.Channels()
	data, err := Convert(src, l.spec)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	a := mixer.NewAsset(data)
	if err := l.store(name, a); err != nil {
		a.Release()
		return nil, err
	}

	l.logger.Debug("sound loaded",
		"name", name,
		"format", format,
		"source_rate", srcRate,
		"source_channels", srcChannels,
		"bytes", len(data),
		"duration", l.spec.Duration(len(data)),
	)
	return a, nil
}

// Add stores already-encoded PCM as name. data must be in the library's
// format and is not copied.
func (l *Library) Add(name string, data []byte) (*mixer.Asset, error) {
	if err := l.reserve(name); err != nil {
		return nil, err
	}
	if len(data)%l.spec.FrameSize() != 0 {
		return nil, fmt.Errorf("add %q: %d bytes is not whole frames: %w", name, len(data), audio.ErrInvalidDstSize)
	}

	a := mixer.NewAsset(data)
	if err := l.store(name, a); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

// LoadAll loads entries concurrently. On the first failure the remaining
// loads are abandoned and that error is returned; assets already stored
// stay in the library.
func (l *Library) LoadAll(ctx context.Context, entries []Entry, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := l.Load(e.Name, e.Path)
			return err
		})
	}
	return g.Wait()
}

// Get returns the asset stored as name.
func (l *Library) Get(name string) (*mixer.Asset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.assets[name]
	return a, ok
}

// MustGet is Get returning ErrNotFound for unknown names.
func (l *Library) MustGet(name string) (*mixer.Asset, error) {
	if a, ok := l.Get(name); ok {
		return a, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// Remove forgets name and drops the library's reference to it.
func (l *Library) Remove(name string) bool {
	l.mu.Lock()
	a, ok := l.assets[name]
	delete(l.assets, name)
	l.mu.Unlock()

	if ok {
		a.Release()
	}
	return ok
}

// Names lists the stored names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.assets))
	for n := range l.assets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len is the number of stored assets.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.assets)
}

// Close releases every asset. Loads after Close fail with ErrClosed.
func (l *Library) Close() error {
	l.mu.Lock()
	assets := l.assets
	l.assets = make(map[string]*mixer.Asset)
	l.closed = true
	l.mu.Unlock()

	for _, a := range assets {
		a.Release()
	}
	l.logger.Debug("library closed", "released", len(assets))
	return nil
}

// reserve checks name before any decoding work is done.
func (l *Library) reserve(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return ErrClosed
	}
	if _, ok := l.assets[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicateName)
	}
	return nil
}

func (l *Library) store(name string, a *mixer.Asset) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if _, ok := l.assets[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicateName)
	}
	l.assets[name] = a
	return nil
}
