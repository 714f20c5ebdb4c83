// Package config holds the application configuration: the Discord
// transport credentials, data-file locations, and game tuning knobs.
// The config file is JSON5 so operators can keep comments in it.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Discord DiscordConfig `json:"discord"`
	Data    DataConfig    `json:"data"`
	Games   GamesConfig   `json:"games"`
	Engine  EngineConfig  `json:"engine"`
}

// DiscordConfig configures the Discord transport.
type DiscordConfig struct {
	Token    string `json:"token"`
	Presence string `json:"presence,omitempty"` // "watching" activity text

	// SendRate caps outbound messages per second (burst 5). Zero means
	// the default of 5/s, well under Discord's global limit.
	SendRate float64 `json:"send_rate,omitempty"`
}

// DataConfig locates the persisted documents. Paths are relative to Dir
// unless absolute.
type DataConfig struct {
	Dir                 string `json:"dir"`
	ActiveChannelsFile  string `json:"active_channels_file"`
	ChannelSettingsFile string `json:"channel_settings_file"`

	// ResponsesFile optionally overrides the built-in response tables.
	// Watched for changes and hot-reloaded when set.
	ResponsesFile string `json:"responses_file,omitempty"`
}

// GamesConfig tunes the interactive game sessions.
type GamesConfig struct {
	GuessLow       int `json:"guess_low"`
	GuessHigh      int `json:"guess_high"`
	GuessAttempts  int `json:"guess_attempts"`
	TimeoutSeconds int `json:"timeout_seconds"`
}

// EngineConfig tunes the dispatcher.
type EngineConfig struct {
	CommandPrefix string `json:"command_prefix"`
}

// Timeout returns the session timeout as a duration.
func (g GamesConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}
