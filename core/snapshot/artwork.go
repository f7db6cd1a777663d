package snapshot

import (
	"context"
	"fmt"

	"musicbridge/core/bridge"
	"musicbridge/logger"

	"github.com/gabriel-vasile/mimetype"
)

// Artworks extracts the artwork list of a track in bridge order. Unreadable
// members are skipped; an error is returned only when the collection itself
// cannot be enumerated.
func (e *Engine) Artworks(ctx context.Context, track bridge.Object) ([]Document, error) {
	members, err := track.Elements(ctx, "artworks")
	if err != nil {
		return nil, err
	}
	return e.walk(ctx, members, e.artwork, false), nil
}

// artworks reports false when there is nothing to attach, so the track
// document carries no artworks key rather than an empty list.
func (e *Engine) artworks(ctx context.Context, track bridge.Object) ([]Document, bool) {
	docs, err := e.Artworks(ctx, track)
	if err != nil {
		logger.Debug("artworks unreadable", logger.ErrorField(err))
		return nil, false
	}
	return docs, len(docs) > 0
}

func (e *Engine) artwork(ctx context.Context, obj bridge.Object) (Document, error) {
	bag, err := obj.Properties(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, artworkSchema.entity, err)
	}
	doc := Document(bag)

	data, err := obj.Data(ctx, fieldRawData.Property)
	if err != nil {
		logger.Debug("artwork payload unreadable", logger.ErrorField(err))
		return doc, nil
	}
	doc[e.strategy.key(fieldRawData)] = data

	if mt := mimetype.Detect(data); !mt.Is("application/octet-stream") {
		doc[e.strategy.key(fieldMimeType)] = mt.String()
	}
	return doc, nil
}
