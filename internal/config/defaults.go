package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	autoplay := true
	return &Config{
		Playback: PlaybackConfig{
			FPS:          10,
			DefaultSpeed: 0.5,
			Autoplay:     &autoplay,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 16,
			Charset:         "ascii",
		},
		Server: ServerConfig{
			Timeout: 10,
		},
		Watch: WatchConfig{
			Debounce: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Playback
	if c.Playback.FPS == 0 {
		c.Playback.FPS = d.Playback.FPS
	}
	if c.Playback.DefaultSpeed == 0 {
		c.Playback.DefaultSpeed = d.Playback.DefaultSpeed
	}
	if c.Playback.Autoplay == nil {
		c.Playback.Autoplay = d.Playback.Autoplay
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}
	if c.TUI.Charset == "" {
		c.TUI.Charset = d.TUI.Charset
	}

	// Server
	if c.Server.Timeout == 0 {
		c.Server.Timeout = d.Server.Timeout
	}

	// Watch
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = d.Watch.Debounce
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
