package snapshot

import (
	"context"

	"musicbridge/core/bridge"
	"musicbridge/logger"
)

// PlayerState extracts the application's scalar state and the current
// track, without any collection.
func (e *Engine) PlayerState(ctx context.Context, app bridge.Object) (Document, error) {
	doc, _, err := e.extract(ctx, app, applicationSchema)
	if err != nil {
		return nil, err
	}
	track, ok := e.reference(ctx, app, fieldCurrentTrack, e.Track)
	e.set(doc, fieldCurrentTrack, track, ok)
	return doc, nil
}

// Application extracts the full application aggregate. current_playlist is
// written as null when it cannot be read; other nested structures that
// cannot be read are left out.
func (e *Engine) Application(ctx context.Context, app bridge.Object) (Document, error) {
	doc, err := e.PlayerState(ctx, app)
	if err != nil {
		return nil, err
	}

	devices, ok := e.collection(ctx, app, fieldAirplayDevices.Property, e.entity(deviceSchema))
	e.set(doc, fieldAirplayDevices, devices, ok)

	presets, ok := e.collection(ctx, app, fieldEqPresets.Property, e.entity(eqPresetSchema))
	e.set(doc, fieldEqPresets, presets, ok)

	if current, ok := e.reference(ctx, app, fieldCurrentPlaylist, e.Playlist); ok {
		doc[e.strategy.key(fieldCurrentPlaylist)] = current
	} else {
		doc[e.strategy.key(fieldCurrentPlaylist)] = nil
	}

	selection, ok := e.collection(ctx, app, fieldSelection.Property, e.Track)
	e.set(doc, fieldSelection, selection, ok)

	encoder, ok := e.reference(ctx, app, fieldCurrentEncoder, e.entity(encoderSchema))
	e.set(doc, fieldCurrentEncoder, encoder, ok)

	playlists, ok := e.collection(ctx, app, fieldPlaylists.Property, e.Playlist)
	e.set(doc, fieldPlaylists, playlists, ok)

	visual, ok := e.reference(ctx, app, fieldCurrentVisual, e.entity(visualSchema))
	e.set(doc, fieldCurrentVisual, visual, ok)

	visuals, ok := e.collection(ctx, app, fieldVisuals.Property, e.entity(visualSchema))
	e.set(doc, fieldVisuals, visuals, ok)

	return doc, nil
}

// entity returns an extractor for flat entities without nested structures.
func (e *Engine) entity(s schema) Extractor {
	return func(ctx context.Context, obj bridge.Object) (Document, error) {
		doc, _, err := e.extract(ctx, obj, s)
		return doc, err
	}
}

// reference resolves a single reference attribute and extracts it.
func (e *Engine) reference(ctx context.Context, obj bridge.Object, f Field, extract Extractor) (Document, bool) {
	ref, err := obj.Object(ctx, f.Property)
	if err != nil {
		logger.Debug("reference unreadable", logger.String("field", f.Property), logger.ErrorField(err))
		return nil, false
	}
	doc, err := extract(ctx, ref)
	if err != nil {
		logger.Debug("reference unreadable", logger.String("field", f.Property), logger.ErrorField(err))
		return nil, false
	}
	return doc, true
}
