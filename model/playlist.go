package model

// Playlist is the typed view of an explicit playlist snapshot. Parent is
// the full parent playlist, nil at the root of the hierarchy.
type Playlist struct {
	Class         *string   `json:"class,omitempty"`
	ID            *int64    `json:"id,omitempty"`
	Index         *int64    `json:"index,omitempty"`
	Name          *string   `json:"name,omitempty"`
	PersistentID  *string   `json:"persistent_id,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Disliked      *bool     `json:"disliked,omitempty"`
	Duration      *float64  `json:"duration,omitempty"` // seconds, all tracks
	Loved         *bool     `json:"loved,omitempty"`
	Parent        *Playlist `json:"parent"`
	Size          *int64    `json:"size,omitempty"` // bytes, all tracks
	SpecialKind   *string   `json:"special_kind,omitempty"`
	Time          *string   `json:"time,omitempty"`
	Visible       *bool     `json:"visible,omitempty"`
	RawProperties *string   `json:"raw_properties,omitempty"`
}

// Depth is the number of ancestors above p.
func (p *Playlist) Depth() int {
	d := 0
	for q := p.Parent; q != nil; q = q.Parent {
		d++
	}
	return d
}
