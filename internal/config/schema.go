package config

// Config is the root configuration structure.
type Config struct {
	Playback PlaybackConfig `toml:"playback"`
	TUI      TUIConfig      `toml:"tui"`
	Server   ServerConfig   `toml:"server"`
	Watch    WatchConfig    `toml:"watch"`
	Log      LogConfig      `toml:"log"`
}

// PlaybackConfig holds scheduler settings.
type PlaybackConfig struct {
	FPS          int     `toml:"fps" validate:"gte=0,lte=240"`
	DefaultSpeed float64 `toml:"default_speed" validate:"gte=0,lte=1000"`
	MaxSpeed     float64 `toml:"max_speed" validate:"gte=0"`
	Autoplay     *bool   `toml:"autoplay"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme" validate:"omitempty,oneof=auto dark light"`
	RefreshInterval int    `toml:"refresh_interval" validate:"gte=0,lte=1000"`
	ShowDebug       bool   `toml:"show_debug"`
	Charset         string `toml:"charset" validate:"omitempty,oneof=ascii cp437"`
}

// ServerConfig holds settings for fetching replays from a game server.
type ServerConfig struct {
	BaseURL string `toml:"base_url" validate:"omitempty,url"`
	Timeout int    `toml:"timeout" validate:"gte=0"`
}

// WatchConfig holds settings for reloading replay files on change.
type WatchConfig struct {
	Enabled  bool `toml:"enabled"`
	Debounce int  `toml:"debounce" validate:"gte=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `toml:"file"`
}

// AutoplayEnabled reports whether a freshly loaded replay starts playing.
func (c *PlaybackConfig) AutoplayEnabled() bool {
	return c.Autoplay == nil || *c.Autoplay
}
