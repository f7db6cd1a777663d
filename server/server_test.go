package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"musicbridge/config"
	"musicbridge/core/auth"
	"musicbridge/core/bridge/bridgetest"
	"musicbridge/core/feed"
	"musicbridge/core/snapshot"
	"musicbridge/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHelper struct {
	server *httptest.Server
	hub    *feed.Hub
	cfg    *config.Config
}

func newTestHelper(t *testing.T, secret string) *testHelper {
	t.Helper()

	tracks := []*bridgetest.Node{
		bridgetest.NewTrack(101, "Come Together", "Abbey Road"),
		bridgetest.NewTrack(102, "Something", "Abbey Road"),
	}
	library := bridgetest.NewPlaylist(41554, "Library", nil, tracks...)
	library.Results["Abbey Road"] = tracks
	app := bridgetest.NewApplication([]*bridgetest.Node{library}, tracks)
	app.Refs["currentTrack"] = tracks[0]

	cfg := &config.Config{ServerAddr: "127.0.0.1:0", APISecret: secret}
	hub := feed.NewHub()
	go hub.Run()

	s := New(cfg, snapshot.NewBuilder(app, snapshot.New()), hub, nil)
	h := &testHelper{server: httptest.NewServer(s.Handler()), hub: hub, cfg: cfg}
	t.Cleanup(func() {
		h.server.Close()
		hub.Stop()
	})
	return h
}

func (h *testHelper) do(t *testing.T, method, path, body, token string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, h.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestSnapshotRoutes(t *testing.T) {
	h := newTestHelper(t, "")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		check  func(t *testing.T, body []byte)
	}{
		{
			name: "playlist by id", method: http.MethodGet, path: "/api/playlists/41554", status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"parent":null`)
				assert.Contains(t, string(body), `"name":"Library"`)
			},
		},
		{
			name: "query", method: http.MethodPost, path: "/api/query", status: http.StatusOK,
			body: `{"param_type":"searchInPlaylist","id":41554,"query":"Abbey Road"}`,
			check: func(t *testing.T, body []byte) {
				var docs []map[string]any
				require.NoError(t, json.Unmarshal(body, &docs))
				assert.Len(t, docs, 2)
			},
		},
		{
			name: "search", method: http.MethodGet, path: "/api/playlists/41554/search?q=abbey%20road", status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.True(t, strings.HasPrefix(string(body), "[{"))
			},
		},
		{
			name: "passthrough", method: http.MethodGet, path: "/api/tracks/current?strategy=passthrough", status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"persistentID"`)
			},
		},
		{name: "unknown param type", method: http.MethodPost, path: "/api/query", body: `{"param_type":"lyrics"}`, status: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, path: "/api/query", body: `{`, status: http.StatusBadRequest},
		{name: "missing query", method: http.MethodGet, path: "/api/playlists/41554/search", status: http.StatusBadRequest},
		{name: "unknown track", method: http.MethodGet, path: "/api/tracks/9", status: http.StatusNotFound},
		{name: "invalid strategy", method: http.MethodGet, path: "/api/player?strategy=typed", status: http.StatusBadRequest},
		{
			name: "player", method: http.MethodGet, path: "/api/player", status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var app model.Application
				require.NoError(t, json.Unmarshal(body, &app))
				require.NotNil(t, app.PlayerState)
				assert.Equal(t, model.PlayerPlaying, *app.PlayerState)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := h.do(t, tt.method, tt.path, tt.body, "")
			assert.Equal(t, tt.status, resp.StatusCode, string(body))
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	h := newTestHelper(t, "secret")

	resp, body := h.do(t, http.MethodGet, "/api/status", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status statusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "explicit", status.Strategy)
	assert.Equal(t, snapshot.AllowListVersion, status.AllowListVersion)
}

func TestAuth(t *testing.T) {
	h := newTestHelper(t, "secret")

	resp, _ := h.do(t, http.MethodGet, "/api/player", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	bad, err := auth.GenerateToken("other", "cli", time.Hour)
	require.NoError(t, err)
	resp, _ = h.do(t, http.MethodGet, "/api/player", "", bad)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := auth.GenerateToken("secret", "cli", time.Hour)
	require.NoError(t, err)
	resp, _ = h.do(t, http.MethodGet, "/api/player", "", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/api/player?token="+token, "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPlayerFeed(t *testing.T) {
	h := newTestHelper(t, "")

	url := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/api/ws/player"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	np := model.NowPlaying{State: model.PlayerPaused, Title: "The Beatles - Something"}
	require.NoError(t, h.hub.Publish(context.Background(), feed.Event{
		Type:       feed.EventNowPlaying,
		NowPlaying: &np,
		Timestamp:  time.Now().UnixMilli(),
	}))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	messageType, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)

	var ev feed.Event
	require.NoError(t, json.Unmarshal(message, &ev))
	assert.Equal(t, feed.EventNowPlaying, ev.Type)
	assert.Equal(t, model.PlayerPaused, ev.NowPlaying.State)

	conn.Close()
	require.Eventually(t, func() bool { return h.hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
