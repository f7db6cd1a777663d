package model

// PlayerState is the player's transport state.
type PlayerState string

const (
	PlayerStopped        PlayerState = "stopped"
	PlayerPlaying        PlayerState = "playing"
	PlayerPaused         PlayerState = "paused"
	PlayerFastForwarding PlayerState = "fast forwarding"
	PlayerRewinding      PlayerState = "rewinding"
)

// ShuffleMode is the unit shuffled when shuffle is on.
type ShuffleMode string

const (
	ShuffleSongs     ShuffleMode = "songs"
	ShuffleAlbums    ShuffleMode = "albums"
	ShuffleGroupings ShuffleMode = "groupings"
)

// SongRepeat is the playback repeat mode.
type SongRepeat string

const (
	RepeatOff SongRepeat = "off"
	RepeatOne SongRepeat = "one"
	RepeatAll SongRepeat = "all"
)

// AirplayDeviceKind is the kind of an AirPlay device.
type AirplayDeviceKind string

const (
	DeviceComputer       AirplayDeviceKind = "computer"
	DeviceAirPortExpress AirplayDeviceKind = "AirPort Express"
	DeviceAppleTV        AirplayDeviceKind = "Apple TV"
	DeviceAirPlay        AirplayDeviceKind = "AirPlay device"
	DeviceBluetooth      AirplayDeviceKind = "Bluetooth device"
	DeviceHomePod        AirplayDeviceKind = "HomePod"
	DeviceUnknown        AirplayDeviceKind = "unknown"
)

// Application is the typed view of an explicit application snapshot.
// CurrentPlaylist is nil both when there is none and when it was unreadable.
type Application struct {
	AirplayEnabled     *bool        `json:"airplay_enabled,omitempty"`
	Converting         *bool        `json:"converting,omitempty"`
	CurrentStreamTitle *string      `json:"current_stream_title,omitempty"`
	CurrentStreamURL   *string      `json:"current_stream_url,omitempty"`
	EQEnabled          *bool        `json:"eq_enabled,omitempty"`
	FixedIndexing      *bool        `json:"fixed_indexing,omitempty"`
	Frontmost          *bool        `json:"frontmost,omitempty"`
	FullScreen         *bool        `json:"full_screen,omitempty"`
	Name               *string      `json:"name,omitempty"`
	Mute               *bool        `json:"mute,omitempty"`
	PlayerPosition     *float64     `json:"player_position,omitempty"` // seconds into the current track
	PlayerState        *PlayerState `json:"player_state,omitempty"`
	ShuffleEnabled     *bool        `json:"shuffle_enabled,omitempty"`
	ShuffleMode        *ShuffleMode `json:"shuffle_mode,omitempty"`
	SongRepeat         *SongRepeat  `json:"song_repeat,omitempty"`
	SoundVolume        *int64       `json:"sound_volume,omitempty"` // 0 to 100
	Version            *string      `json:"version,omitempty"`
	VisualsEnabled     *bool        `json:"visuals_enabled,omitempty"`

	CurrentTrack          *Track          `json:"current_track,omitempty"`
	CurrentPlaylist       *Playlist       `json:"current_playlist"`
	CurrentAirplayDevices []AirplayDevice `json:"current_airplay_devices,omitempty"`
	EQPresets             []EQPreset      `json:"eq_presets,omitempty"`
	Selection             []Track         `json:"selection,omitempty"`
	CurrentEncoder        *Encoder        `json:"current_encoder,omitempty"`
	Playlists             []Playlist      `json:"playlists,omitempty"`
	CurrentVisual         *Visual         `json:"current_visual,omitempty"`
	Visuals               []Visual        `json:"visuals,omitempty"`
}

// AirplayDevice is a device connected through AirPlay.
type AirplayDevice struct {
	Class          *string            `json:"class,omitempty"`
	ID             *int64             `json:"id,omitempty"`
	Index          *int64             `json:"index,omitempty"`
	Name           *string            `json:"name,omitempty"`
	PersistentID   *string            `json:"persistent_id,omitempty"`
	Active         *bool              `json:"active,omitempty"`
	Available      *bool              `json:"available,omitempty"`
	Kind           *AirplayDeviceKind `json:"kind,omitempty"`
	NetworkAddress *string            `json:"network_address,omitempty"` // MAC address
	Protected      *bool              `json:"protected,omitempty"`
	Selected       *bool              `json:"selected,omitempty"`
	SupportsAudio  *bool              `json:"supports_audio,omitempty"`
	SupportsVideo  *bool              `json:"supports_video,omitempty"`
	SoundVolume    *int64             `json:"sound_volume,omitempty"`
	RawProperties  *string            `json:"raw_properties,omitempty"`
}

// EQPreset is an equalizer preset. Bands are in dB, -12.0 to +12.0.
type EQPreset struct {
	Class         *string  `json:"class,omitempty"`
	ID            *int64   `json:"id,omitempty"`
	Index         *int64   `json:"index,omitempty"`
	Name          *string  `json:"name,omitempty"`
	Band1         *float64 `json:"band1,omitempty"`
	Band2         *float64 `json:"band2,omitempty"`
	Band3         *float64 `json:"band3,omitempty"`
	Band4         *float64 `json:"band4,omitempty"`
	Band5         *float64 `json:"band5,omitempty"`
	Band6         *float64 `json:"band6,omitempty"`
	Band7         *float64 `json:"band7,omitempty"`
	Band8         *float64 `json:"band8,omitempty"`
	Band9         *float64 `json:"band9,omitempty"`
	Band10        *float64 `json:"band10,omitempty"`
	Modifiable    *bool    `json:"modifiable,omitempty"`
	Preamp        *float64 `json:"preamp,omitempty"`
	UpdateTracks  *bool    `json:"update_tracks,omitempty"`
	RawProperties *string  `json:"raw_properties,omitempty"`
}

type Visual struct {
	Class         *string `json:"class,omitempty"`
	ID            *int64  `json:"id,omitempty"`
	Index         *int64  `json:"index,omitempty"`
	Name          *string `json:"name,omitempty"`
	RawProperties *string `json:"raw_properties,omitempty"`
}

type Encoder struct {
	Class         *string `json:"class,omitempty"`
	ID            *int64  `json:"id,omitempty"`
	Index         *int64  `json:"index,omitempty"`
	Name          *string `json:"name,omitempty"`
	Format        *string `json:"format,omitempty"` // data format created by the encoder
	RawProperties *string `json:"raw_properties,omitempty"`
}
