package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"musicbridge/core/bridge"
	"musicbridge/logger"
	"musicbridge/model"

	"github.com/google/uuid"
)

// Builder answers dispatcher requests against one application root.
type Builder struct {
	app    bridge.Object
	engine *Engine
}

// NewBuilder creates a Builder over the player's application object.
func NewBuilder(app bridge.Object, engine *Engine) *Builder {
	return &Builder{app: app, engine: engine}
}

// Engine returns the builder's default engine.
func (b *Builder) Engine() *Engine { return b.engine }

// WithEngine returns a builder sharing b's application root.
func (b *Builder) WithEngine(e *Engine) *Builder {
	return &Builder{app: b.app, engine: e}
}

// Execute runs req and serializes the result as its terminal step.
func (b *Builder) Execute(ctx context.Context, req model.Request) ([]byte, error) {
	v, err := b.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return Encode(v, false)
}

// Build runs req and returns a Document or a []Document.
func (b *Builder) Build(ctx context.Context, req model.Request) (any, error) {
	engine := b.engine
	if req.Strategy != "" {
		s, err := ParseStrategy(req.Strategy)
		if err != nil {
			return nil, err
		}
		engine = engine.WithStrategy(s)
	}

	requestID := uuid.NewString()
	start := time.Now()
	logger.Debug("dispatching request",
		logger.String("request_id", requestID),
		logger.String("param_type", string(req.ParamType)),
		logger.String("strategy", engine.Strategy().String()))

	v, err := b.dispatch(ctx, engine, req)
	if err != nil {
		logger.Warn("request failed",
			logger.String("request_id", requestID),
			logger.String("param_type", string(req.ParamType)),
			logger.ErrorField(err))
		return nil, err
	}

	logger.Info("request served",
		logger.String("request_id", requestID),
		logger.String("param_type", string(req.ParamType)),
		logger.Duration("elapsed", time.Since(start)))
	return v, nil
}

func (b *Builder) dispatch(ctx context.Context, e *Engine, req model.Request) (any, error) {
	switch req.ParamType {
	case model.ParamCurrentTrack:
		track, err := b.app.Object(ctx, fieldCurrentTrack.Property)
		if err != nil {
			return nil, fmt.Errorf("current track: %w", err)
		}
		return e.Track(ctx, track)

	case model.ParamTrackByID:
		track, err := b.byID(ctx, req, "tracks")
		if err != nil {
			return nil, err
		}
		return e.Track(ctx, track)

	case model.ParamPlaylistByID:
		playlist, err := b.byID(ctx, req, "playlists")
		if err != nil {
			return nil, err
		}
		return e.Playlist(ctx, playlist)

	case model.ParamPlaylistTracks:
		playlist, err := b.byID(ctx, req, "playlists")
		if err != nil {
			return nil, err
		}
		members, err := playlist.Elements(ctx, "tracks")
		if err != nil {
			return nil, fmt.Errorf("playlist tracks: %w", err)
		}
		return e.Tracks(ctx, members), nil

	case model.ParamAllTracks:
		members, err := b.app.Elements(ctx, "tracks")
		if err != nil {
			return nil, fmt.Errorf("library tracks: %w", err)
		}
		return e.Tracks(ctx, members), nil

	case model.ParamSearchInPlaylist:
		if req.Query == "" {
			return nil, ErrMissingQuery
		}
		playlist, err := b.byID(ctx, req, "playlists")
		if err != nil {
			return nil, err
		}
		members, err := playlist.Search(ctx, req.Query)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", req.Query, err)
		}
		return e.Tracks(ctx, members), nil

	case model.ParamApplicationData:
		return e.Application(ctx, b.app)

	case model.ParamPlayerState:
		return e.PlayerState(ctx, b.app)

	case model.ParamArtworks:
		var (
			track bridge.Object
			err   error
		)
		if req.HasID() {
			track, err = b.byID(ctx, req, "tracks")
		} else {
			track, err = b.app.Object(ctx, fieldCurrentTrack.Property)
		}
		if err != nil {
			return nil, err
		}
		return e.Artworks(ctx, track)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequest, req.ParamType)
	}
}

func (b *Builder) byID(ctx context.Context, req model.Request, collection string) (bridge.Object, error) {
	if !req.HasID() {
		return nil, fmt.Errorf("%w: %s", ErrMissingID, req.ParamType)
	}
	id, err := req.Int64ID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingID, err)
	}
	logger.Debug("resolving by id", logger.String("collection", collection), logger.Int64("id", id))
	obj, err := b.app.ByID(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", collection, id, err)
	}
	return obj, nil
}

// Encode serializes a snapshot without HTML escaping.
func Encode(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
