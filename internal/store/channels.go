// Package store owns the persisted room configuration: which channels the
// engine reacts in, and the per-channel behavior settings. It is the sole
// writer of the two JSON documents on disk; every mutation flushes.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// ChannelStore holds room activation allow-lists and per-channel settings.
// Reads take a shared lock; mutations serialize, then rewrite the backing
// document. Safe for concurrent use.
type ChannelStore struct {
	mu sync.RWMutex

	// guildID → ordered channel allow-list. Absent guild or empty list
	// means every channel in the guild is active.
	active map[string][]string

	// guildID → channelID → settings. Entries exist only for channels
	// that were customized at least once.
	settings map[string]map[string]ChannelSettings

	activePath   string
	settingsPath string
}

// Open loads both documents from disk. Missing files start empty;
// unreadable or corrupt files are logged and treated as empty rather
// than failing startup.
func Open(activePath, settingsPath string) *ChannelStore {
	s := &ChannelStore{
		active:       make(map[string][]string),
		settings:     make(map[string]map[string]ChannelSettings),
		activePath:   activePath,
		settingsPath: settingsPath,
	}
	loadJSON(activePath, &s.active)
	loadJSON(settingsPath, &s.settings)
	return s
}

// loadJSON reads path into dst, leaving dst untouched on any failure.
func loadJSON(path string, dst any) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("config document unreadable, starting empty", "path", path, "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("config document corrupt, starting empty", "path", path, "error", err)
	}
}

// IsActive reports whether the engine reacts in the given room.
// No allow-list (or an empty one) means every channel is active.
func (s *ChannelStore) IsActive(guildID, channelID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.active[guildID]
	if !ok || len(list) == 0 {
		return true
	}
	return slices.Contains(list, channelID)
}

// Activate appends channelID to the guild's allow-list.
// Returns false when the channel was already active; idempotent.
func (s *ChannelStore) Activate(guildID, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.active[guildID], channelID) {
		return false, nil
	}
	s.active[guildID] = append(s.active[guildID], channelID)
	return true, s.saveActiveLocked()
}

// Deactivate removes channelID from the guild's allow-list.
// Returns false when the channel was not on the list; idempotent.
func (s *ChannelStore) Deactivate(guildID, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.active[guildID]
	idx := slices.Index(list, channelID)
	if idx < 0 {
		return false, nil
	}
	s.active[guildID] = slices.Delete(list, idx, idx+1)
	return true, s.saveActiveLocked()
}

// ListActive returns the guild's allow-list in insertion order.
// An empty result means every channel is active (open-world default).
func (s *ChannelStore) ListActive(guildID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.active[guildID])
}

// Settings returns the stored settings for a room, or the defaults when
// the room was never customized. Never returns a zero value.
func (s *ChannelStore) Settings(guildID, channelID string) ChannelSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if byChannel, ok := s.settings[guildID]; ok {
		if cs, ok := byChannel[channelID]; ok {
			return cs
		}
	}
	return DefaultSettings()
}

// SetSetting validates key/raw against the settings schema and persists
// the updated record. The record is materialized from defaults on first
// customization. On rejection the store is left unmodified.
func (s *ChannelStore) SetSetting(guildID, channelID, key, raw string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := DefaultSettings()
	if byChannel, ok := s.settings[guildID]; ok {
		if existing, ok := byChannel[channelID]; ok {
			cs = existing
		}
	}

	applied, err := cs.apply(key, raw)
	if err != nil {
		return "", err
	}

	if s.settings[guildID] == nil {
		s.settings[guildID] = make(map[string]ChannelSettings)
	}
	s.settings[guildID][channelID] = cs
	return applied, s.saveSettingsLocked()
}

// ResetGuild drops the guild's allow-list and all of its channel
// settings. No-op when nothing is stored for the guild.
func (s *ChannelStore) ResetGuild(guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, hadActive := s.active[guildID]
	_, hadSettings := s.settings[guildID]
	if !hadActive && !hadSettings {
		return nil
	}

	delete(s.active, guildID)
	delete(s.settings, guildID)

	if hadActive {
		if err := s.saveActiveLocked(); err != nil {
			return err
		}
	}
	if hadSettings {
		return s.saveSettingsLocked()
	}
	return nil
}

func (s *ChannelStore) saveActiveLocked() error {
	return writeJSON(s.activePath, s.active)
}

func (s *ChannelStore) saveSettingsLocked() error {
	return writeJSON(s.settingsPath, s.settings)
}

// writeJSON serializes v pretty-printed and replaces path atomically
// (temp file → rename), so readers never observe a partial document.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	tmpFile.Close()

	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	cleanup = false
	return nil
}
