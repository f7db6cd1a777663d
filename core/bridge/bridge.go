// Package bridge defines the read-only view of the player's live object
// graph that the snapshot engine walks. Every call may fail independently:
// an attribute may be unsupported for an entity's subtype, a reference may
// have gone stale, or the automation round trip itself may break.
package bridge

import (
	"context"
	"errors"
)

var (
	// ErrNotFound reports a reference that does not resolve to a live object,
	// e.g. a playlist without a parent or an unknown id.
	ErrNotFound = errors.New("bridge: object not found")
	// ErrUnsupported reports an attribute the object does not expose.
	ErrUnsupported = errors.New("bridge: attribute not supported")
	// ErrScriptFailed reports a failed automation round trip.
	ErrScriptFailed = errors.New("bridge: script execution failed")
)

// Object is an opaque handle to one live entity (the application, a track,
// a playlist, an artwork, a device ...).
type Object interface {
	// Properties reads the entity's whole attribute bag in one round trip.
	Properties(ctx context.Context) (map[string]any, error)
	// Get reads a single named attribute.
	Get(ctx context.Context, name string) (any, error)
	// Data reads a binary attribute that is never part of the bag.
	Data(ctx context.Context, name string) ([]byte, error)
	// Object resolves a single reference attribute such as parent or currentTrack.
	Object(ctx context.Context, name string) (Object, error)
	// Elements enumerates a collection in the order reported by the player.
	Elements(ctx context.Context, name string) ([]Object, error)
	// ByID looks a member of a collection up by its session id.
	ByID(ctx context.Context, collection string, id int64) (Object, error)
	// Search runs the player's native search predicate over a playlist.
	Search(ctx context.Context, query string) ([]Object, error)
}
