package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/titanous/json5"
)

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Discord: DiscordConfig{
			Presence: "الرسائل العربية 👀",
			SendRate: 5,
		},
		Data: DataConfig{
			Dir:                 "~/.marhaba",
			ActiveChannelsFile:  "active_channels.json",
			ChannelSettingsFile: "channel_settings.json",
		},
		Games: GamesConfig{
			GuessLow:       1,
			GuessHigh:      10,
			GuessAttempts:  3,
			TimeoutSeconds: 30,
		},
		Engine: EngineConfig{
			CommandPrefix: "!",
		},
	}
}

// Load reads config from a JSON5 file, then overlays env vars.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envStr("MARHABA_DISCORD_TOKEN", &c.Discord.Token)
	envStr("MARHABA_PRESENCE", &c.Discord.Presence)
	envStr("MARHABA_DATA_DIR", &c.Data.Dir)
	envStr("MARHABA_RESPONSES_FILE", &c.Data.ResponsesFile)
	envStr("MARHABA_COMMAND_PREFIX", &c.Engine.CommandPrefix)

	if v := os.Getenv("MARHABA_GAME_TIMEOUT_SECONDS"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			c.Games.TimeoutSeconds = sec
		}
	}
}

// DataDir returns the expanded data directory path.
func (c *Config) DataDir() string {
	return ExpandHome(c.Data.Dir)
}

// ActiveChannelsPath returns the absolute path of the activation document.
func (c *Config) ActiveChannelsPath() string {
	return c.resolveDataPath(c.Data.ActiveChannelsFile)
}

// ChannelSettingsPath returns the absolute path of the settings document.
func (c *Config) ChannelSettingsPath() string {
	return c.resolveDataPath(c.Data.ChannelSettingsFile)
}

// ResponsesPath returns the path of the response-overrides document,
// or "" when none is configured.
func (c *Config) ResponsesPath() string {
	if c.Data.ResponsesFile == "" {
		return ""
	}
	return c.resolveDataPath(c.Data.ResponsesFile)
}

func (c *Config) resolveDataPath(name string) string {
	name = ExpandHome(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir(), name)
}

// ExpandHome replaces leading ~ with the user home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	if len(path) > 1 && path[1] == '/' {
		return home + path[1:]
	}
	return home
}
