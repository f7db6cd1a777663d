package feed

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"musicbridge/core/bridge/bridgetest"
	"musicbridge/core/snapshot"
	"musicbridge/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func playing(state model.PlayerState, name string, position float64) *model.Application {
	app := &model.Application{PlayerState: &state, PlayerPosition: &position}
	if name != "" {
		app.CurrentTrack = &model.Track{Name: &name}
	}
	return app
}

func TestWatcherPoll(t *testing.T) {
	states := []*model.Application{
		playing(model.PlayerPlaying, "Come Together", 1),
		playing(model.PlayerPlaying, "Come Together", 3), // position only
		playing(model.PlayerPaused, "Come Together", 3),
		playing(model.PlayerPlaying, "Something", 0),
	}
	i := 0
	source := func(context.Context) (*model.Application, error) {
		app := states[i]
		i++
		return app, nil
	}

	rec := &recorder{}
	w := NewWatcher(source, time.Second, rec)

	var published []bool
	for range states {
		published = append(published, w.Poll(context.Background()))
	}
	assert.Equal(t, []bool{true, false, true, true}, published)

	events := rec.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, EventNowPlaying, events[0].Type)
	assert.Equal(t, model.PlayerPaused, events[1].NowPlaying.State)
	assert.Equal(t, "Something", events[2].NowPlaying.Title)

	last, ok := w.Last()
	require.True(t, ok)
	assert.Equal(t, "Something", last.Title)
}

func TestWatcherPollErrors(t *testing.T) {
	var err error
	source := func(context.Context) (*model.Application, error) {
		if err != nil {
			return nil, err
		}
		return playing(model.PlayerStopped, "", 0), nil
	}

	rec := &recorder{}
	w := NewWatcher(source, time.Second, rec)

	err = errors.New("player not running")
	assert.True(t, w.Poll(context.Background()))
	assert.False(t, w.Poll(context.Background()))

	err = nil
	assert.True(t, w.Poll(context.Background()))

	events := rec.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, EventError, events[0].Type)
	assert.Equal(t, "player not running", events[0].Error)
	assert.Equal(t, EventNowPlaying, events[1].Type)
}

func TestFromBuilder(t *testing.T) {
	track := bridgetest.NewTrack(101, "Come Together", "Abbey Road")
	app := bridgetest.NewApplication(nil, []*bridgetest.Node{track})
	app.Refs["currentTrack"] = track

	// The watcher always polls explicitly, whatever the engine default.
	b := snapshot.NewBuilder(app, snapshot.New(snapshot.WithStrategy(snapshot.Passthrough)))

	got, err := FromBuilder(b)(context.Background())
	require.NoError(t, err)

	np := model.NewNowPlaying(got)
	assert.Equal(t, model.PlayerPlaying, np.State)
	assert.Equal(t, "The Beatles - Come Together", np.Title)
	assert.Equal(t, "Abbey Road", np.Album)
	assert.Equal(t, int64(65), np.Volume)
	assert.Zero(t, app.Calls["playlists"])
}

func TestHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a, b := hub.Subscribe(), hub.Subscribe()
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 10*time.Millisecond)

	np := model.NowPlaying{State: model.PlayerPlaying, Title: "Something"}
	ev := newEvent(EventNowPlaying)
	ev.NowPlaying = &np
	require.NoError(t, hub.Publish(context.Background(), ev))

	for _, sub := range []*Subscriber{a, b} {
		select {
		case msg := <-sub.Send:
			var got Event
			require.NoError(t, json.Unmarshal(msg, &got))
			assert.Equal(t, EventNowPlaying, got.Type)
			assert.Equal(t, "Something", got.NowPlaying.Title)
		case <-time.After(time.Second):
			t.Fatal("no event delivered")
		}
	}

	hub.Unsubscribe(a)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)
	_, open := <-a.Send
	assert.False(t, open)
}

func TestWatcherLibrary(t *testing.T) {
	dir := t.TempDir()
	source := func(context.Context) (*model.Application, error) {
		return playing(model.PlayerStopped, "", 0), nil
	}

	rec := &recorder{}
	w := NewWatcher(source, time.Hour, rec)
	w.LibraryPath = dir

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Wait for the initial poll, which happens after the watch is set up.
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 10*time.Millisecond)

	path := filepath.Join(dir, "Music Library.musiclibrary")
	require.NoError(t, os.WriteFile(path, []byte("library"), 0o644))

	require.Eventually(t, func() bool {
		for _, ev := range rec.snapshot() {
			if ev.Type == EventLibrary && ev.Path == path {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
