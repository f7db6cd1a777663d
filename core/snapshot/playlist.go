package snapshot

import (
	"context"
	"fmt"

	"musicbridge/core/bridge"
	"musicbridge/logger"
)

// Playlist extracts a playlist and embeds its parent chain by value.
// Without a parent the explicit strategy writes parent: null and the
// passthrough strategy leaves the key out.
func (e *Engine) Playlist(ctx context.Context, obj bridge.Object) (Document, error) {
	return e.playlist(ctx, obj, make(map[string]bool), 0)
}

func (e *Engine) playlist(ctx context.Context, obj bridge.Object, seen map[string]bool, depth int) (Document, error) {
	doc, bag, err := e.extract(ctx, obj, playlistSchema)
	if err != nil {
		return nil, err
	}

	if id, ok := identity(doc, bag); ok {
		if seen[id] {
			return nil, fmt.Errorf("%w: id %s", errCycle, id)
		}
		seen[id] = true
	}

	parent, ok := e.parent(ctx, obj, seen, depth)
	switch {
	case ok:
		doc[e.strategy.key(fieldParent)] = parent
	case e.strategy == Explicit:
		doc[fieldParent.Key] = nil
	default:
		delete(doc, fieldParent.Property)
	}
	return doc, nil
}

// parent always asks the direct accessor. The bag never carries
// specifier-valued attributes, so a missing parent key decides nothing.
func (e *Engine) parent(ctx context.Context, obj bridge.Object, seen map[string]bool, depth int) (Document, bool) {
	ref, err := obj.Object(ctx, fieldParent.Property)
	if err != nil {
		logger.Debug("playlist has no readable parent", logger.ErrorField(err))
		return nil, false
	}

	if e.maxDepth > 0 && depth+1 > e.maxDepth {
		logger.Warn("playlist parent chain truncated", logger.Int("max_depth", e.maxDepth))
		return nil, false
	}

	doc, err := e.playlist(ctx, ref, seen, depth+1)
	if err != nil {
		logger.Warn("playlist parent dropped", logger.Int("depth", depth+1), logger.ErrorField(err))
		return nil, false
	}
	return doc, true
}

func identity(doc Document, bag map[string]any) (string, bool) {
	if v, ok := bag["id"]; ok && v != nil {
		return fmt.Sprint(v), true
	}
	if v, ok := doc["id"]; ok && v != nil {
		return fmt.Sprint(v), true
	}
	return "", false
}
