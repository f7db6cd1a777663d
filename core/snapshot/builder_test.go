package snapshot

import (
	"context"
	"encoding/json"
	"testing"

	"musicbridge/core/bridge"
	"musicbridge/core/bridge/bridgetest"
	"musicbridge/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app     *bridgetest.Node
	library *bridgetest.Node
	folder  *bridgetest.Node
	mix     *bridgetest.Node
	tracks  []*bridgetest.Node
	builder *Builder
}

func newFixture() *fixture {
	tracks := []*bridgetest.Node{
		bridgetest.NewTrack(101, "Come Together", "Abbey Road"),
		bridgetest.NewTrack(102, "Something", "Abbey Road"),
		bridgetest.NewTrack(103, "Abbey Road Medley", "Live at the BBC"),
		bridgetest.NewTrack(104, "Help!", "Help!"),
	}
	tracks[0].Lists["artworks"] = []*bridgetest.Node{bridgetest.NewArtwork("JPEG", jpegPayload)}

	library := bridgetest.NewPlaylist(41554, "Library", nil, tracks...)
	library.Props["specialKind"] = "Library"
	library.Results["Abbey Road"] = []*bridgetest.Node{tracks[0], tracks[1], tracks[2]}

	folder := bridgetest.NewPlaylist(500, "Beatles", nil)
	folder.Props["class"] = "folderPlaylist"
	mix := bridgetest.NewPlaylist(501, "Sixties Mix", folder, tracks[1], tracks[3])

	app := bridgetest.NewApplication([]*bridgetest.Node{library, folder, mix}, tracks)
	app.Refs["currentTrack"] = tracks[0]
	app.Refs["currentPlaylist"] = mix
	app.Lists["selection"] = []*bridgetest.Node{tracks[2]}
	app.Lists["currentAirPlayDevices"] = []*bridgetest.Node{{
		Props: map[string]any{
			"class":          "AirPlayDevice",
			"id":             1,
			"name":           "Computer",
			"kind":           "computer",
			"networkAddress": "00:00:00:00:00:00",
			"active":         true,
		},
	}}
	app.Lists["eqPresets"] = []*bridgetest.Node{{
		Props: map[string]any{"class": "EQPreset", "id": 1, "name": "Flat", "preamp": 0.0, "modifiable": false},
	}}

	return &fixture{
		app:     app,
		library: library,
		folder:  folder,
		mix:     mix,
		tracks:  tracks,
		builder: NewBuilder(app, New()),
	}
}

func TestBuildPlaylistByID(t *testing.T) {
	f := newFixture()

	out, err := f.builder.Execute(context.Background(), model.Request{
		ParamType: model.ParamPlaylistByID,
		ID:        "41554",
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, float64(41554), got["id"])
	assert.Equal(t, "Library", got["name"])
	v, has := got["parent"]
	assert.True(t, has)
	assert.Nil(t, v)
	assert.Contains(t, string(out), `"parent":null`)
}

func TestBuildSearchInPlaylist(t *testing.T) {
	f := newFixture()

	v, err := f.builder.Build(context.Background(), model.Request{
		ParamType: model.ParamSearchInPlaylist,
		ID:        "41554",
		Query:     "abbey road",
	})
	require.NoError(t, err)

	docs, ok := v.([]Document)
	require.True(t, ok)
	require.Len(t, docs, 3)
	for _, doc := range docs {
		matched := doc["album"] == "Abbey Road" || doc["name"] == "Abbey Road Medley"
		assert.True(t, matched, "unexpected match %v", doc["name"])
	}
}

func TestBuildSearchNoResults(t *testing.T) {
	f := newFixture()

	out, err := f.builder.Execute(context.Background(), model.Request{
		ParamType: model.ParamSearchInPlaylist,
		ID:        "41554",
		Query:     "Revolver",
	})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestBuildRequests(t *testing.T) {
	tests := []struct {
		name  string
		req   model.Request
		check func(t *testing.T, f *fixture, v any)
	}{
		{
			name: "current track",
			req:  model.Request{ParamType: model.ParamCurrentTrack},
			check: func(t *testing.T, _ *fixture, v any) {
				doc := v.(Document)
				assert.Equal(t, "Come Together", doc["name"])
				assert.Len(t, doc["artworks"], 1)
			},
		},
		{
			name: "track by id",
			req:  model.Request{ParamType: model.ParamTrackByID, ID: "104"},
			check: func(t *testing.T, _ *fixture, v any) {
				assert.Equal(t, "Help!", v.(Document)["name"])
			},
		},
		{
			name: "playlist tracks",
			req:  model.Request{ParamType: model.ParamPlaylistTracks, ID: "501"},
			check: func(t *testing.T, _ *fixture, v any) {
				docs := v.([]Document)
				require.Len(t, docs, 2)
				assert.Equal(t, "Something", docs[0]["name"])
				assert.Equal(t, "Help!", docs[1]["name"])
			},
		},
		{
			name: "all tracks",
			req:  model.Request{ParamType: model.ParamAllTracks},
			check: func(t *testing.T, f *fixture, v any) {
				assert.Len(t, v.([]Document), len(f.tracks))
			},
		},
		{
			name: "artworks of current track",
			req:  model.Request{ParamType: model.ParamArtworks},
			check: func(t *testing.T, _ *fixture, v any) {
				docs := v.([]Document)
				require.Len(t, docs, 1)
				assert.Equal(t, "image/jpeg", docs[0]["mime_type"])
			},
		},
		{
			name: "artworks of track without any",
			req:  model.Request{ParamType: model.ParamArtworks, ID: "102"},
			check: func(t *testing.T, _ *fixture, v any) {
				assert.Empty(t, v.([]Document))
			},
		},
		{
			name: "player state",
			req:  model.Request{ParamType: model.ParamPlayerState},
			check: func(t *testing.T, _ *fixture, v any) {
				doc := v.(Document)
				assert.Equal(t, "playing", doc["player_state"])
				assert.Contains(t, doc, "current_track")
				assert.NotContains(t, doc, "playlists")
			},
		},
		{
			name: "passthrough override",
			req:  model.Request{ParamType: model.ParamTrackByID, ID: "101", Strategy: "passthrough"},
			check: func(t *testing.T, _ *fixture, v any) {
				doc := v.(Document)
				assert.Contains(t, doc, "persistentID")
				assert.NotContains(t, doc, "persistent_id")
				arts := doc["artworks"].([]Document)
				assert.Contains(t, arts[0], "rawData")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			v, err := f.builder.Build(context.Background(), tt.req)
			require.NoError(t, err)
			tt.check(t, f, v)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		req  model.Request
		want error
	}{
		{name: "unknown kind", req: model.Request{ParamType: "lyricsById"}, want: ErrUnknownRequest},
		{name: "empty kind", req: model.Request{}, want: ErrUnknownRequest},
		{name: "missing id", req: model.Request{ParamType: model.ParamTrackByID}, want: ErrMissingID},
		{name: "malformed id", req: model.Request{ParamType: model.ParamPlaylistByID, ID: "4x"}, want: ErrMissingID},
		{name: "missing query", req: model.Request{ParamType: model.ParamSearchInPlaylist, ID: "41554"}, want: ErrMissingQuery},
		{name: "invalid strategy", req: model.Request{ParamType: model.ParamAllTracks, Strategy: "typed"}, want: ErrInvalidStrategy},
		{name: "track not found", req: model.Request{ParamType: model.ParamTrackByID, ID: "9"}, want: bridge.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFixture().builder.Build(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildApplication(t *testing.T) {
	f := newFixture()

	v, err := f.builder.Build(context.Background(), model.Request{ParamType: model.ParamApplicationData})
	require.NoError(t, err)
	doc := v.(Document)

	assert.Equal(t, "Music", doc["name"])
	assert.Len(t, doc["playlists"], 3)
	assert.Len(t, doc["current_airplay_devices"], 1)
	assert.Len(t, doc["eq_presets"], 1)
	assert.Len(t, doc["selection"], 1)

	current := doc["current_playlist"].(Document)
	assert.Equal(t, "Sixties Mix", current["name"])
	assert.Equal(t, "Beatles", current["parent"].(Document)["name"])

	// Unresolvable references are absent; empty collections are present.
	assert.NotContains(t, doc, "current_encoder")
	assert.NotContains(t, doc, "current_visual")
	assert.Equal(t, []Document{}, doc["visuals"])
}

func TestBuildApplicationDegrades(t *testing.T) {
	f := newFixture()
	f.app.Fail = map[string]bool{"currentPlaylist": true, "eqPresets": true, "currentTrack": true}
	f.library.Fail = map[string]bool{"*": true}

	v, err := f.builder.Build(context.Background(), model.Request{ParamType: model.ParamApplicationData})
	require.NoError(t, err)
	doc := v.(Document)

	cp, has := doc["current_playlist"]
	assert.True(t, has)
	assert.Nil(t, cp)
	assert.NotContains(t, doc, "eq_presets")
	assert.NotContains(t, doc, "current_track")
	assert.Len(t, doc["playlists"], 2)

	out, err := Encode(doc, false)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"current_playlist":null`)
}

func TestBuildApplicationPassthrough(t *testing.T) {
	f := newFixture()
	f.app.Fail = map[string]bool{"currentPlaylist": true}

	v, err := f.builder.WithEngine(New(WithStrategy(Passthrough))).Build(context.Background(),
		model.Request{ParamType: model.ParamApplicationData})
	require.NoError(t, err)
	doc := v.(Document)

	assert.Contains(t, doc, "playerState")
	assert.Contains(t, doc, "currentAirPlayDevices")
	assert.Contains(t, doc, "currentTrack")
	cp, has := doc["currentPlaylist"]
	assert.True(t, has)
	assert.Nil(t, cp)
	assert.NotContains(t, doc, "current_playlist")
}

func TestBuildIdempotent(t *testing.T) {
	f := newFixture()
	req := model.Request{ParamType: model.ParamApplicationData}

	first, err := f.builder.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := f.builder.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestBuildDecodesIntoModel(t *testing.T) {
	f := newFixture()

	out, err := f.builder.Execute(context.Background(), model.Request{ParamType: model.ParamApplicationData})
	require.NoError(t, err)

	var app model.Application
	require.NoError(t, json.Unmarshal(out, &app))
	require.Len(t, app.Playlists, 3)
	require.NotNil(t, app.CurrentPlaylist)
	assert.Equal(t, 1, app.CurrentPlaylist.Depth())
	require.NotNil(t, app.CurrentTrack)
	assert.Equal(t, "The Beatles - Come Together", app.CurrentTrack.Title())
	require.Len(t, app.CurrentTrack.Artworks, 1)
	assert.Equal(t, jpegPayload, app.CurrentTrack.Artworks[0].RawData)
}
