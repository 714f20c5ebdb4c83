package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTempStore(t *testing.T) (*ChannelStore, string) {
	t.Helper()
	dir := t.TempDir()
	s := Open(filepath.Join(dir, "active.json"), filepath.Join(dir, "settings.json"))
	return s, dir
}

func TestIsActive_OpenWorldDefault(t *testing.T) {
	s, _ := openTempStore(t)

	if !s.IsActive("g1", "c1") {
		t.Error("guild with no allow-list should be active everywhere")
	}
}

func TestActivateDeactivate(t *testing.T) {
	s, _ := openTempStore(t)

	changed, err := s.Activate("g1", "c1")
	if err != nil || !changed {
		t.Fatalf("Activate() = %v, %v, want true, nil", changed, err)
	}

	if !s.IsActive("g1", "c1") {
		t.Error("activated channel should be active")
	}
	if s.IsActive("g1", "c2") {
		t.Error("non-listed channel should be inactive once a list exists")
	}

	// Idempotent
	changed, err = s.Activate("g1", "c1")
	if err != nil || changed {
		t.Errorf("second Activate() = %v, %v, want false, nil", changed, err)
	}

	changed, err = s.Deactivate("g1", "c1")
	if err != nil || !changed {
		t.Fatalf("Deactivate() = %v, %v, want true, nil", changed, err)
	}

	// Empty list again means everything is active
	if !s.IsActive("g1", "c2") {
		t.Error("empty allow-list should fall back to all-active")
	}

	changed, err = s.Deactivate("g1", "c1")
	if err != nil || changed {
		t.Errorf("second Deactivate() = %v, %v, want false, nil", changed, err)
	}
}

func TestListActive_InsertionOrder(t *testing.T) {
	s, _ := openTempStore(t)

	for _, c := range []string{"c3", "c1", "c2"} {
		if _, err := s.Activate("g1", c); err != nil {
			t.Fatal(err)
		}
	}

	got := s.ListActive("g1")
	want := []string{"c3", "c1", "c2"}
	if len(got) != len(want) {
		t.Fatalf("ListActive() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ListActive() = %v, want %v", got, want)
		}
	}
}

func TestSettings_Defaults(t *testing.T) {
	s, _ := openTempStore(t)

	cs := s.Settings("g1", "c1")
	if !cs.AutoReact || cs.ResponseChance != 30 || !cs.WelcomeMessages || !cs.TimeGreetings || !cs.GamesEnabled {
		t.Errorf("Settings() for untouched channel = %+v, want defaults", cs)
	}
}

func TestSetSetting_Booleans(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"نعم", true},
		{"مفعل", true},
		{"TRUE", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"off", false},
		{"لا", false},
		{"معطل", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, _ := openTempStore(t)
			if _, err := s.SetSetting("g1", "c1", SettingAutoReact, tt.raw); err != nil {
				t.Fatalf("SetSetting(%q) error: %v", tt.raw, err)
			}
			if got := s.Settings("g1", "c1").AutoReact; got != tt.want {
				t.Errorf("AutoReact after %q = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSetSetting_InvalidBoolToken(t *testing.T) {
	s, _ := openTempStore(t)

	_, err := s.SetSetting("g1", "c1", SettingGamesEnabled, "maybe")
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("SetSetting(maybe) error = %v, want ErrInvalidValue", err)
	}
}

func TestSetSetting_ResponseChanceBounds(t *testing.T) {
	s, _ := openTempStore(t)

	for _, raw := range []string{"0", "101", "-5", "abc"} {
		if _, err := s.SetSetting("g1", "c1", SettingResponseChance, raw); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("SetSetting(chance=%q) error = %v, want ErrInvalidValue", raw, err)
		}
	}

	// Rejections must not materialize a record
	if got := s.Settings("g1", "c1").ResponseChance; got != 30 {
		t.Errorf("ResponseChance after rejections = %d, want default 30", got)
	}

	if _, err := s.SetSetting("g1", "c1", SettingResponseChance, "75"); err != nil {
		t.Fatal(err)
	}
	if got := s.Settings("g1", "c1").ResponseChance; got != 75 {
		t.Errorf("ResponseChance = %d, want 75", got)
	}
}

func TestSetSetting_UnknownKey(t *testing.T) {
	s, _ := openTempStore(t)

	_, err := s.SetSetting("g1", "c1", "volume", "11")
	if !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("SetSetting(volume) error = %v, want ErrUnknownSetting", err)
	}
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	activePath := filepath.Join(dir, "active.json")
	settingsPath := filepath.Join(dir, "settings.json")

	s := Open(activePath, settingsPath)
	if _, err := s.Activate("g1", "c1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetSetting("g1", "c1", SettingResponseChance, "80"); err != nil {
		t.Fatal(err)
	}

	s2 := Open(activePath, settingsPath)
	if !s2.IsActive("g1", "c1") || s2.IsActive("g1", "c2") {
		t.Error("allow-list not restored after reopen")
	}
	if got := s2.Settings("g1", "c1").ResponseChance; got != 80 {
		t.Errorf("ResponseChance after reopen = %d, want 80", got)
	}
	// Untouched fields keep their defaults through the round trip
	if !s2.Settings("g1", "c1").GamesEnabled {
		t.Error("GamesEnabled should remain default true after reopen")
	}
}

func TestResetGuild(t *testing.T) {
	s, _ := openTempStore(t)

	if _, err := s.Activate("g1", "c1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetSetting("g1", "c1", SettingAutoReact, "false"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Activate("g2", "c9"); err != nil {
		t.Fatal(err)
	}

	if err := s.ResetGuild("g1"); err != nil {
		t.Fatal(err)
	}

	if !s.IsActive("g1", "c2") {
		t.Error("reset guild should return to all-active")
	}
	if !s.Settings("g1", "c1").AutoReact {
		t.Error("reset guild should drop customized settings")
	}
	if s.IsActive("g2", "c1") {
		t.Error("reset must not touch other guilds")
	}

	// Idempotent on an empty guild
	if err := s.ResetGuild("g1"); err != nil {
		t.Errorf("second ResetGuild() error: %v", err)
	}
}

func TestOpen_CorruptDocumentStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	activePath := filepath.Join(dir, "active.json")
	if err := os.WriteFile(activePath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := Open(activePath, filepath.Join(dir, "settings.json"))
	if !s.IsActive("g1", "c1") {
		t.Error("corrupt document should fall back to the open-world default")
	}

	// The store must still accept writes afterwards
	if _, err := s.Activate("g1", "c1"); err != nil {
		t.Errorf("Activate after corrupt load: %v", err)
	}
}
