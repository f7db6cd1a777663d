package model

// TrackKind is the class of a track.
type TrackKind string

const (
	FileTrack   TrackKind = "fileTrack"
	SharedTrack TrackKind = "sharedTrack"
	URLTrack    TrackKind = "URLTrack"
)

// MediaKind is the media type of a track.
type MediaKind string

const (
	MediaSong       MediaKind = "song"
	MediaMusicVideo MediaKind = "music video"
	MediaUnknown    MediaKind = "unknown"
)

// CloudStatus is the iCloud status of a track.
type CloudStatus string

const (
	CloudUnknown           CloudStatus = "unknown"
	CloudPurchased         CloudStatus = "purchased"
	CloudMatched           CloudStatus = "matched"
	CloudUploaded          CloudStatus = "uploaded"
	CloudIneligible        CloudStatus = "ineligible"
	CloudRemoved           CloudStatus = "removed"
	CloudError             CloudStatus = "error"
	CloudDuplicate         CloudStatus = "duplicate"
	CloudSubscription      CloudStatus = "subscription"
	CloudPrerelease        CloudStatus = "prerelease"
	CloudNoLongerAvailable CloudStatus = "no longer available"
	CloudNotUploaded       CloudStatus = "not uploaded"
)

// RatingKind tells a rating set by the user from one computed by the player.
type RatingKind string

const (
	RatingUser     RatingKind = "user"
	RatingComputed RatingKind = "computed"
)

// Track is the typed view of an explicit track snapshot. Every field is
// optional: a nil pointer means the attribute could not be read.
type Track struct {
	Class        *TrackKind `json:"class,omitempty"`
	ID           *int64     `json:"id,omitempty"`
	Index        *int64     `json:"index,omitempty"`
	Name         *string    `json:"name,omitempty"`
	PersistentID *string    `json:"persistent_id,omitempty"` // stable across sessions
	DatabaseID   *int64     `json:"database_id,omitempty"`   // shared by copies of the same track

	Album           *string      `json:"album,omitempty"`
	AlbumArtist     *string      `json:"album_artist,omitempty"`
	AlbumDisliked   *bool        `json:"album_disliked,omitempty"`
	AlbumLoved      *bool        `json:"album_loved,omitempty"`
	AlbumRating     *int64       `json:"album_rating,omitempty"` // 0 to 100
	AlbumRatingKind *RatingKind  `json:"album_rating_kind,omitempty"`
	Artist          *string      `json:"artist,omitempty"`
	BitRate         *int64       `json:"bit_rate,omitempty"` // kbps
	Bookmark        *float64     `json:"bookmark,omitempty"`
	Bookmarkable    *bool        `json:"bookmarkable,omitempty"`
	BPM             *int64       `json:"bpm,omitempty"`
	Category        *string      `json:"category,omitempty"`
	CloudStatus     *CloudStatus `json:"cloud_status,omitempty"`
	Comment         *string      `json:"comment,omitempty"`
	Compilation     *bool        `json:"compilation,omitempty"`
	Composer        *string      `json:"composer,omitempty"`
	DateAdded       *string      `json:"date_added,omitempty"`
	Description     *string      `json:"description,omitempty"`
	DiscCount       *int64       `json:"disc_count,omitempty"`
	DiscNumber      *int64       `json:"disc_number,omitempty"`
	Disliked        *bool        `json:"disliked,omitempty"`

	DownloaderAppleID *string     `json:"downloader_apple_id,omitempty"`
	DownloaderName    *string     `json:"downloader_name,omitempty"`
	Duration          *float64    `json:"duration,omitempty"` // seconds
	Enabled           *bool       `json:"enabled,omitempty"`
	EpisodeID         *string     `json:"episode_id,omitempty"`
	EpisodeNumber     *int64      `json:"episode_number,omitempty"`
	EQ                *string     `json:"eq,omitempty"`
	Finish            *float64    `json:"finish,omitempty"`
	Gapless           *bool       `json:"gapless,omitempty"`
	Genre             *string     `json:"genre,omitempty"`
	Grouping          *string     `json:"grouping,omitempty"`
	Kind              *string     `json:"kind,omitempty"`
	LongDescription   *string     `json:"long_description,omitempty"`
	Loved             *bool       `json:"loved,omitempty"`
	Lyrics            *string     `json:"lyrics,omitempty"`
	MediaKind         *MediaKind  `json:"media_kind,omitempty"`
	ModificationDate  *string     `json:"modification_date,omitempty"`
	Movement          *string     `json:"movement,omitempty"`
	MovementCount     *int64      `json:"movement_count,omitempty"`
	MovementNumber    *int64      `json:"movement_number,omitempty"`
	PlayedCount       *int64      `json:"played_count,omitempty"`
	PlayedDate        *string     `json:"played_date,omitempty"`
	PurchaserAppleID  *string     `json:"purchaser_apple_id,omitempty"`
	PurchaserName     *string     `json:"purchaser_name,omitempty"`
	Rating            *int64      `json:"rating,omitempty"` // 0 to 100
	RatingKind        *RatingKind `json:"rating_kind,omitempty"`
	ReleaseDate       *string     `json:"release_date,omitempty"`
	SampleRate        *int64      `json:"sample_rate,omitempty"` // Hz
	SeasonNumber      *int64      `json:"season_number,omitempty"`
	Shufflable        *bool       `json:"shufflable,omitempty"`
	SkippedCount      *int64      `json:"skipped_count,omitempty"`
	SkippedDate       *string     `json:"skipped_date,omitempty"`
	Show              *string     `json:"show,omitempty"`
	SortAlbum         *string     `json:"sort_album,omitempty"`
	SortArtist        *string     `json:"sort_artist,omitempty"`
	SortAlbumArtist   *string     `json:"sort_album_artist,omitempty"`
	SortName          *string     `json:"sort_name,omitempty"`
	SortComposer      *string     `json:"sort_composer,omitempty"`
	SortShow          *string     `json:"sort_show,omitempty"`
	Size              *int64      `json:"size,omitempty"` // bytes
	Start             *float64    `json:"start,omitempty"`
	Time              *string     `json:"time,omitempty"` // MM:SS
	TrackCount        *int64      `json:"track_count,omitempty"`
	TrackNumber       *int64      `json:"track_number,omitempty"`
	Unplayed          *bool       `json:"unplayed,omitempty"`
	VolumeAdjustment  *int64      `json:"volume_adjustment,omitempty"`
	Work              *string     `json:"work,omitempty"`
	Year              *int64      `json:"year,omitempty"`

	RawProperties *string   `json:"raw_properties,omitempty"`
	Artworks      []Artwork `json:"artworks,omitempty"`
}

// Artwork is the typed view of an artwork snapshot. Artworks keep the
// player's own property names; only the derived keys are snake_case.
type Artwork struct {
	Class       *string `json:"class,omitempty"`
	Description *string `json:"description,omitempty"`
	Downloaded  *bool   `json:"downloaded,omitempty"`
	Format      *string `json:"format,omitempty"`
	Kind        *int64  `json:"kind,omitempty"`
	RawData     []byte  `json:"raw_data,omitempty"`
	MimeType    *string `json:"mime_type,omitempty"`
}

// Title renders "artist - name" from whatever is available.
func (t *Track) Title() string {
	name, artist := deref(t.Name), deref(t.Artist)
	switch {
	case artist == "":
		return name
	case name == "":
		return artist
	default:
		return artist + " - " + name
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
