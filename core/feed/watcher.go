package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"musicbridge/core/snapshot"
	"musicbridge/logger"
	"musicbridge/model"

	"github.com/fsnotify/fsnotify"
)

// Source takes one typed snapshot of the player.
type Source func(ctx context.Context) (*model.Application, error)

// FromBuilder polls the builder's lightweight player state request.
func FromBuilder(b *snapshot.Builder) Source {
	req := model.Request{ParamType: model.ParamPlayerState, Strategy: snapshot.Explicit.String()}
	return func(ctx context.Context) (*model.Application, error) {
		v, err := b.Build(ctx, req)
		if err != nil {
			return nil, err
		}
		data, err := snapshot.Encode(v, false)
		if err != nil {
			return nil, err
		}
		var app model.Application
		if err := json.Unmarshal(data, &app); err != nil {
			return nil, fmt.Errorf("decode player state: %w", err)
		}
		return &app, nil
	}
}

// Watcher polls the player and publishes an event whenever the now-playing
// summary changes. With LibraryPath set it also reports file changes there.
type Watcher struct {
	LibraryPath string

	source   Source
	interval time.Duration
	sinks    []Sink

	last    *model.NowPlaying
	lastErr string
}

// NewWatcher creates a watcher polling source every interval.
func NewWatcher(source Source, interval time.Duration, sinks ...Sink) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{source: source, interval: interval, sinks: sinks}
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	var library <-chan fsnotify.Event
	var libraryErrs <-chan error
	if w.LibraryPath != "" {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create library watcher: %w", err)
		}
		defer fw.Close()
		if err := fw.Add(w.LibraryPath); err != nil {
			return fmt.Errorf("watch %s: %w", w.LibraryPath, err)
		}
		library, libraryErrs = fw.Events, fw.Errors
		logger.Info("watching library", logger.String("path", w.LibraryPath))
	}

	logger.Info("player watcher started", logger.Duration("interval", w.interval))
	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("player watcher stopped")
			return nil
		case <-ticker.C:
			w.Poll(ctx)
		case ev, ok := <-library:
			if !ok {
				library = nil
				continue
			}
			w.libraryChanged(ctx, ev)
		case err, ok := <-libraryErrs:
			if !ok {
				libraryErrs = nil
				continue
			}
			logger.Warn("library watcher error", logger.ErrorField(err))
		}
	}
}

// Poll takes one snapshot and publishes it if it differs from the last one.
// It reports whether an event was published.
func (w *Watcher) Poll(ctx context.Context) bool {
	app, err := w.source(ctx)
	if err != nil {
		// Report a failure once, not on every tick.
		if err.Error() == w.lastErr {
			return false
		}
		w.lastErr = err.Error()
		logger.Warn("player poll failed", logger.ErrorField(err))
		ev := newEvent(EventError)
		ev.Error = err.Error()
		w.emit(ctx, ev)
		return true
	}
	w.lastErr = ""

	np := model.NewNowPlaying(app)
	if w.last != nil && !np.Changed(*w.last) {
		return false
	}
	w.last = &np

	logger.Debug("now playing changed", logger.String("now_playing", np.String()))
	ev := newEvent(EventNowPlaying)
	ev.NowPlaying = &np
	w.emit(ctx, ev)
	return true
}

// Last returns the most recently published summary.
func (w *Watcher) Last() (model.NowPlaying, bool) {
	if w.last == nil {
		return model.NowPlaying{}, false
	}
	return *w.last, true
}

func (w *Watcher) libraryChanged(ctx context.Context, fe fsnotify.Event) {
	if !fe.Has(fsnotify.Create) && !fe.Has(fsnotify.Write) && !fe.Has(fsnotify.Remove) && !fe.Has(fsnotify.Rename) {
		return
	}
	ev := newEvent(EventLibrary)
	ev.Path = fe.Name
	ev.Op = fe.Op.String()
	w.emit(ctx, ev)
}

func (w *Watcher) emit(ctx context.Context, ev Event) {
	for _, sink := range w.sinks {
		if err := sink.Publish(ctx, ev); err != nil {
			logger.Warn("failed to publish event",
				logger.String("type", string(ev.Type)),
				logger.ErrorField(err))
		}
	}
}
