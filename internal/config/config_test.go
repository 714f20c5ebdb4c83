package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load(missing) error: %v", err)
	}

	if cfg.Engine.CommandPrefix != "!" {
		t.Errorf("CommandPrefix = %q, want !", cfg.Engine.CommandPrefix)
	}
	if cfg.Games.GuessLow != 1 || cfg.Games.GuessHigh != 10 || cfg.Games.GuessAttempts != 3 {
		t.Errorf("game defaults = %+v", cfg.Games)
	}
	if got := cfg.Games.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", got)
	}
}

func TestLoad_JSON5File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	doc := `{
  // comments are allowed
  discord: {token: "tok-123", presence: "قراءة الرسائل"},
  games: {guess_low: 1, guess_high: 100, guess_attempts: 5, timeout_seconds: 60},
  engine: {command_prefix: "?"},
}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Discord.Token != "tok-123" {
		t.Errorf("Token = %q", cfg.Discord.Token)
	}
	if cfg.Games.GuessHigh != 100 || cfg.Games.Timeout() != time.Minute {
		t.Errorf("games = %+v", cfg.Games)
	}
	if cfg.Engine.CommandPrefix != "?" {
		t.Errorf("CommandPrefix = %q, want ?", cfg.Engine.CommandPrefix)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MARHABA_DISCORD_TOKEN", "env-token")
	t.Setenv("MARHABA_COMMAND_PREFIX", ".")
	t.Setenv("MARHABA_GAME_TIMEOUT_SECONDS", "45")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Discord.Token != "env-token" {
		t.Errorf("Token = %q, want env override", cfg.Discord.Token)
	}
	if cfg.Engine.CommandPrefix != "." {
		t.Errorf("CommandPrefix = %q, want env override", cfg.Engine.CommandPrefix)
	}
	if cfg.Games.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", cfg.Games.TimeoutSeconds)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(malformed) should fail")
	}
}

func TestDataPaths(t *testing.T) {
	cfg := Default()
	cfg.Data.Dir = "/var/lib/marhaba"

	if got := cfg.ActiveChannelsPath(); got != "/var/lib/marhaba/active_channels.json" {
		t.Errorf("ActiveChannelsPath() = %q", got)
	}
	if got := cfg.ChannelSettingsPath(); got != "/var/lib/marhaba/channel_settings.json" {
		t.Errorf("ChannelSettingsPath() = %q", got)
	}
	if got := cfg.ResponsesPath(); got != "" {
		t.Errorf("ResponsesPath() = %q, want empty when unset", got)
	}

	cfg.Data.ResponsesFile = "/etc/marhaba/responses.json5"
	if got := cfg.ResponsesPath(); got != "/etc/marhaba/responses.json5" {
		t.Errorf("ResponsesPath() = %q, absolute paths must pass through", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := ExpandHome("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("ExpandHome(~/data) = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
	if got := ExpandHome(""); got != "" {
		t.Errorf("ExpandHome(\"\") = %q", got)
	}
}
