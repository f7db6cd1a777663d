package snapshot

import (
	"context"

	"musicbridge/core/bridge"
)

// Track extracts one track under the engine's strategy and attaches its
// artworks. Artwork failures never fail the track.
func (e *Engine) Track(ctx context.Context, obj bridge.Object) (Document, error) {
	doc, _, err := e.extract(ctx, obj, trackSchema)
	if err != nil {
		return nil, err
	}
	arts, ok := e.artworks(ctx, obj)
	e.set(doc, fieldArtworks, arts, ok)
	return doc, nil
}
