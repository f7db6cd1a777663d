// Package feed turns periodic player snapshots and library file changes
// into a stream of change events for websocket clients and Redis.
package feed

import (
	"context"
	"encoding/json"
	"time"

	"musicbridge/model"
)

// EventType names the kind of change an Event carries.
type EventType string

const (
	EventNowPlaying EventType = "now_playing" // player state or current track changed
	EventLibrary    EventType = "library"     // a file under the library path changed
	EventError      EventType = "error"       // the player could not be polled
)

// Event is one change notification.
type Event struct {
	Type       EventType         `json:"type"`
	NowPlaying *model.NowPlaying `json:"now_playing,omitempty"`
	Path       string            `json:"path,omitempty"`
	Op         string            `json:"op,omitempty"`
	Error      string            `json:"error,omitempty"`
	Timestamp  int64             `json:"timestamp"` // unix millis
}

func newEvent(t EventType) Event {
	return Event{Type: t, Timestamp: time.Now().UnixMilli()}
}

// Encode renders the event as JSON.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Sink receives events. Publish must not block for long; the watcher calls
// sinks sequentially from its own goroutine.
type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Publish(ctx context.Context, ev Event) error { return f(ctx, ev) }
