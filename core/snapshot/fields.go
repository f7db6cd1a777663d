package snapshot

// AllowListVersion identifies the set of attributes the explicit strategy
// reads. Bump it whenever a schema below changes.
const AllowListVersion = 1

type schema struct {
	entity string
	fields []Field
	raw    bool // emit raw_properties under the explicit strategy
}

var (
	fieldArtworks      = Field{"artworks", "artworks"}
	fieldRawData       = Field{"raw_data", "rawData"}
	fieldMimeType      = Field{"mime_type", "mimeType"}
	fieldParent        = Field{"parent", "parent"}
	fieldRawProperties = Field{"raw_properties", "properties"}

	fieldAirplayDevices  = Field{"current_airplay_devices", "currentAirPlayDevices"}
	fieldEqPresets       = Field{"eq_presets", "eqPresets"}
	fieldCurrentPlaylist = Field{"current_playlist", "currentPlaylist"}
	fieldCurrentTrack    = Field{"current_track", "currentTrack"}
	fieldSelection       = Field{"selection", "selection"}
	fieldCurrentEncoder  = Field{"current_encoder", "currentEncoder"}
	fieldPlaylists       = Field{"playlists", "playlists"}
	fieldCurrentVisual   = Field{"current_visual", "currentVisual"}
	fieldVisuals         = Field{"visuals", "visuals"}
)

// item fields shared by every named element of the player.
var itemFields = []Field{
	{"class", "class"},
	{"id", "id"},
	{"index", "index"},
	{"name", "name"},
}

func withItem(fields ...Field) []Field {
	out := make([]Field, 0, len(itemFields)+len(fields))
	out = append(out, itemFields...)
	return append(out, fields...)
}

var trackSchema = schema{
	entity: "track",
	raw:    true,
	fields: withItem(
		Field{"persistent_id", "persistentID"},
		Field{"database_id", "databaseID"},
		Field{"album", "album"},
		Field{"album_artist", "albumArtist"},
		Field{"album_disliked", "albumDisliked"},
		Field{"album_loved", "albumLoved"},
		Field{"album_rating", "albumRating"},
		Field{"album_rating_kind", "albumRatingKind"},
		Field{"artist", "artist"},
		Field{"bit_rate", "bitRate"},
		Field{"bookmark", "bookmark"},
		Field{"bookmarkable", "bookmarkable"},
		Field{"bpm", "bpm"},
		Field{"category", "category"},
		Field{"cloud_status", "cloudStatus"},
		Field{"comment", "comment"},
		Field{"compilation", "compilation"},
		Field{"composer", "composer"},
		Field{"date_added", "dateAdded"},
		Field{"description", "description"},
		Field{"disc_count", "discCount"},
		Field{"disc_number", "discNumber"},
		Field{"disliked", "disliked"},
		Field{"downloader_apple_id", "downloaderAppleID"},
		Field{"downloader_name", "downloaderName"},
		Field{"duration", "duration"},
		Field{"enabled", "enabled"},
		Field{"episode_id", "episodeID"},
		Field{"episode_number", "episodeNumber"},
		Field{"eq", "eq"},
		Field{"finish", "finish"},
		Field{"gapless", "gapless"},
		Field{"genre", "genre"},
		Field{"grouping", "grouping"},
		Field{"kind", "kind"},
		Field{"long_description", "longDescription"},
		Field{"loved", "loved"},
		Field{"lyrics", "lyrics"},
		Field{"media_kind", "mediaKind"},
		Field{"modification_date", "modificationDate"},
		Field{"movement", "movement"},
		Field{"movement_count", "movementCount"},
		Field{"movement_number", "movementNumber"},
		Field{"played_count", "playedCount"},
		Field{"played_date", "playedDate"},
		Field{"purchaser_apple_id", "purchaserAppleID"},
		Field{"purchaser_name", "purchaserName"},
		Field{"rating", "rating"},
		Field{"rating_kind", "ratingKind"},
		Field{"release_date", "releaseDate"},
		Field{"sample_rate", "sampleRate"},
		Field{"season_number", "seasonNumber"},
		Field{"shufflable", "shufflable"},
		Field{"skipped_count", "skippedCount"},
		Field{"skipped_date", "skippedDate"},
		Field{"show", "show"},
		Field{"sort_album", "sortAlbum"},
		Field{"sort_artist", "sortArtist"},
		Field{"sort_album_artist", "sortAlbumArtist"},
		Field{"sort_name", "sortName"},
		Field{"sort_composer", "sortComposer"},
		Field{"sort_show", "sortShow"},
		Field{"size", "size"},
		Field{"start", "start"},
		Field{"time", "time"},
		Field{"track_count", "trackCount"},
		Field{"track_number", "trackNumber"},
		Field{"unplayed", "unplayed"},
		Field{"volume_adjustment", "volumeAdjustment"},
		Field{"work", "work"},
		Field{"year", "year"},
	),
}

// parent is resolved separately by the chain resolver.
var playlistSchema = schema{
	entity: "playlist",
	raw:    true,
	fields: withItem(
		Field{"persistent_id", "persistentID"},
		Field{"description", "description"},
		Field{"disliked", "disliked"},
		Field{"duration", "duration"},
		Field{"loved", "loved"},
		Field{"size", "size"},
		Field{"special_kind", "specialKind"},
		Field{"time", "time"},
		Field{"visible", "visible"},
	),
}

// artworkSchema only names the entity: artworks are always bag based.
var artworkSchema = schema{entity: "artwork"}

var deviceSchema = schema{
	entity: "airplay device",
	raw:    true,
	fields: withItem(
		Field{"persistent_id", "persistentID"},
		Field{"active", "active"},
		Field{"available", "available"},
		Field{"kind", "kind"},
		Field{"network_address", "networkAddress"},
		Field{"protected", "protected"},
		Field{"selected", "selected"},
		Field{"supports_audio", "supportsAudio"},
		Field{"supports_video", "supportsVideo"},
		Field{"sound_volume", "soundVolume"},
	),
}

var eqPresetSchema = schema{
	entity: "eq preset",
	raw:    true,
	fields: withItem(
		Field{"band1", "band1"},
		Field{"band2", "band2"},
		Field{"band3", "band3"},
		Field{"band4", "band4"},
		Field{"band5", "band5"},
		Field{"band6", "band6"},
		Field{"band7", "band7"},
		Field{"band8", "band8"},
		Field{"band9", "band9"},
		Field{"band10", "band10"},
		Field{"modifiable", "modifiable"},
		Field{"preamp", "preamp"},
		Field{"update_tracks", "updateTracks"},
	),
}

var visualSchema = schema{
	entity: "visual",
	raw:    true,
	fields: withItem(),
}

var encoderSchema = schema{
	entity: "encoder",
	raw:    true,
	fields: withItem(Field{"format", "format"}),
}

var applicationSchema = schema{
	entity: "application",
	fields: []Field{
		{"airplay_enabled", "airplayEnabled"},
		{"converting", "converting"},
		{"current_stream_title", "currentStreamTitle"},
		{"current_stream_url", "currentStreamURL"},
		{"eq_enabled", "eqEnabled"},
		{"fixed_indexing", "fixedIndexing"},
		{"frontmost", "frontmost"},
		{"full_screen", "fullScreen"},
		{"name", "name"},
		{"mute", "mute"},
		{"player_position", "playerPosition"},
		{"player_state", "playerState"},
		{"shuffle_enabled", "shuffleEnabled"},
		{"shuffle_mode", "shuffleMode"},
		{"song_repeat", "songRepeat"},
		{"sound_volume", "soundVolume"},
		{"version", "version"},
		{"visuals_enabled", "visualsEnabled"},
	},
}
