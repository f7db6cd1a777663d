package model

import (
	"fmt"
	"time"
)

// NowPlaying is a compact summary of the player state used for change
// events.
type NowPlaying struct {
	State        PlayerState `json:"state,omitempty"`
	Title        string      `json:"title,omitempty"`
	Album        string      `json:"album,omitempty"`
	PersistentID string      `json:"persistent_id,omitempty"`
	Position     float64     `json:"position"`
	Volume       int64       `json:"volume"`
	Muted        bool        `json:"muted"`
	Shuffle      bool        `json:"shuffle"`
	Repeat       SongRepeat  `json:"repeat,omitempty"`
}

// NewNowPlaying summarizes an application snapshot.
func NewNowPlaying(app *Application) NowPlaying {
	np := NowPlaying{
		State:    deref(app.PlayerState),
		Position: deref(app.PlayerPosition),
		Volume:   deref(app.SoundVolume),
		Muted:    deref(app.Mute),
		Shuffle:  deref(app.ShuffleEnabled),
		Repeat:   deref(app.SongRepeat),
	}
	if t := app.CurrentTrack; t != nil {
		np.Title = t.Title()
		np.Album = deref(t.Album)
		np.PersistentID = deref(t.PersistentID)
	}
	return np
}

// Changed reports whether n differs from prev in anything but the playback
// position, which moves on every poll.
func (n NowPlaying) Changed(prev NowPlaying) bool {
	prev.Position = n.Position
	return n != prev
}

// String renders a one-line status, e.g. "playing The Beatles - Come Together [1:05]".
func (n NowPlaying) String() string {
	if n.Title == "" {
		return string(n.State)
	}
	pos := time.Duration(n.Position * float64(time.Second)).Truncate(time.Second)
	return fmt.Sprintf("%s %s [%d:%02d]", n.State, n.Title, int(pos.Minutes()), int(pos.Seconds())%60)
}
