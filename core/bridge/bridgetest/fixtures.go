package bridgetest

import "fmt"

// NewTrack returns a file track node with a plausible attribute bag.
func NewTrack(id int, name, album string) *Node {
	return &Node{
		Props: map[string]any{
			"class":        "fileTrack",
			"id":           id,
			"index":        id % 100,
			"name":         name,
			"persistentID": fmt.Sprintf("%016X", id),
			"databaseID":   id * 10,
			"album":        album,
			"artist":       "The Beatles",
			"albumArtist":  "The Beatles",
			"duration":     259.5,
			"rating":       80,
			"playedCount":  3,
			"year":         1969,
			"mediaKind":    "song",
		},
		Lists: map[string][]*Node{},
	}
}

// NewArtwork returns an artwork node carrying a raw payload.
func NewArtwork(format string, payload []byte) *Node {
	return &Node{
		Props: map[string]any{
			"class":       "artwork",
			"description": "",
			"downloaded":  false,
			"format":      format,
			"kind":        1,
		},
		Payloads: map[string][]byte{"rawData": payload},
	}
}

// NewPlaylist returns a user playlist node, optionally nested under parent.
// Like the player's own bag, Props never carries the parent reference; it
// is only reachable through Object.
func NewPlaylist(id int, name string, parent *Node, tracks ...*Node) *Node {
	n := &Node{
		Props: map[string]any{
			"class":        "userPlaylist",
			"id":           id,
			"index":        1,
			"name":         name,
			"persistentID": fmt.Sprintf("%016X", id),
			"description":  "",
			"disliked":     false,
			"loved":        false,
			"duration":     len(tracks) * 200,
			"size":         len(tracks) * 1024,
			"specialKind":  "none",
			"time":         "3:20",
			"visible":      true,
		},
		Refs:    map[string]*Node{},
		Lists:   map[string][]*Node{"tracks": tracks},
		Results: map[string][]*Node{},
	}
	if parent != nil {
		n.Refs["parent"] = parent
	}
	return n
}

// NewApplication returns an application node with scalar player state and
// the given playlists and library tracks.
func NewApplication(playlists []*Node, tracks []*Node) *Node {
	return &Node{
		Props: map[string]any{
			"class":              "application",
			"name":               "Music",
			"version":            "1.4.5",
			"airplayEnabled":     true,
			"converting":         false,
			"currentStreamTitle": nil,
			"currentStreamURL":   nil,
			"eqEnabled":          false,
			"fixedIndexing":      false,
			"frontmost":          false,
			"fullScreen":         false,
			"mute":               false,
			"playerPosition":     12.5,
			"playerState":        "playing",
			"shuffleEnabled":     false,
			"shuffleMode":        "songs",
			"songRepeat":         "off",
			"soundVolume":        65,
			"visualsEnabled":     false,
		},
		Refs: map[string]*Node{},
		Lists: map[string][]*Node{
			"playlists": playlists,
			"tracks":    tracks,
		},
	}
}
