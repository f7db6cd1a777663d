package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ParamType names one extraction the dispatcher can run.
type ParamType string

const (
	ParamAllTracks        ParamType = "allTracks"
	ParamCurrentTrack     ParamType = "currentTrack"
	ParamTrackByID        ParamType = "trackById"
	ParamPlaylistByID     ParamType = "playlistById"
	ParamPlaylistTracks   ParamType = "playlistTracks"
	ParamApplicationData  ParamType = "applicationData"
	ParamSearchInPlaylist ParamType = "searchInPlaylist"
	ParamArtworks         ParamType = "artworks"
	ParamPlayerState      ParamType = "playerState"
)

// Request is the inbound dispatcher request. ID accepts both a JSON number
// and a numeric string.
type Request struct {
	ParamType ParamType   `json:"param_type"`
	ID        json.Number `json:"id,omitempty"`
	Query     string      `json:"query,omitempty"`
	Strategy  string      `json:"strategy,omitempty"` // explicit or passthrough; empty uses the default
}

// ParseRequest decodes a request. Unknown fields are ignored.
func ParseRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(bytes.TrimSpace(data), &req); err != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// HasID reports whether the request carries an id.
func (r Request) HasID() bool {
	return r.ID != ""
}

// Int64ID parses the request id.
func (r Request) Int64ID() (int64, error) {
	id, err := strconv.ParseInt(r.ID.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", r.ID, err)
	}
	return id, nil
}
