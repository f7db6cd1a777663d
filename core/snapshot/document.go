// Package snapshot turns the player's live, lazily evaluated and
// individually failing object graph into flat, JSON-safe, cycle-free
// documents. Failures degrade by omission: a field that cannot be read is
// absent, a collection member that cannot be read is skipped, a nested
// structure that cannot be read is absent (or null where documented).
package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownRequest reports a param_type the builder does not serve.
	ErrUnknownRequest = errors.New("snapshot: unknown request kind")
	// ErrMissingID reports a request kind that needs an id but got none.
	ErrMissingID = errors.New("snapshot: request needs an id")
	// ErrMissingQuery reports a search request without a query.
	ErrMissingQuery = errors.New("snapshot: request needs a query")
	// ErrInvalidStrategy reports an unknown strategy name.
	ErrInvalidStrategy = errors.New("snapshot: invalid strategy")
	// ErrUnreadable reports an entity none of whose attributes could be read.
	ErrUnreadable = errors.New("snapshot: entity unreadable")

	errCycle = errors.New("snapshot: playlist already in chain")
)

// Document is one entity snapshot. It only ever holds values that were
// successfully read, so its key set is a subset of the nominal schema.
type Document map[string]any

// Strategy selects how an entity's field set is produced.
type Strategy int

const (
	// Explicit reads a fixed allow-list of attributes one by one and emits
	// snake_case keys plus raw_properties.
	Explicit Strategy = iota
	// Passthrough takes the raw attribute bag as the base document, keeping
	// the player's property names, and overlays derived fields.
	Passthrough
)

// ParseStrategy parses "explicit" or "passthrough".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "explicit", "":
		return Explicit, nil
	case "passthrough", "raw":
		return Passthrough, nil
	default:
		return Explicit, fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
	}
}

func (s Strategy) String() string {
	if s == Passthrough {
		return "passthrough"
	}
	return "explicit"
}

// Field pairs a document key with the bridge property it is read from.
type Field struct {
	Key      string
	Property string
}

// key returns the document key a field is written under.
func (s Strategy) key(f Field) string {
	if s == Passthrough {
		return f.Property
	}
	return f.Key
}
