package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Setting validation errors, surfaced to the command layer.
var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid setting value")
)

// ChannelSettings holds the per-channel behavior switches. The zero value
// is NOT the default; use DefaultSettings.
type ChannelSettings struct {
	AutoReact       bool `json:"auto_react"`
	ResponseChance  int  `json:"response_chance"` // percentage, 1-100
	WelcomeMessages bool `json:"welcome_messages"`
	TimeGreetings   bool `json:"time_greetings"`
	GamesEnabled    bool `json:"games_enabled"`
}

// DefaultSettings returns the documented defaults applied to any channel
// that was never customized.
func DefaultSettings() ChannelSettings {
	return ChannelSettings{
		AutoReact:       true,
		ResponseChance:  30,
		WelcomeMessages: true,
		TimeGreetings:   true,
		GamesEnabled:    true,
	}
}

// Setting keys accepted by SetSetting. The schema is closed: anything
// else is rejected with ErrUnknownSetting.
const (
	SettingAutoReact       = "auto_react"
	SettingResponseChance  = "response_chance"
	SettingWelcomeMessages = "welcome_messages"
	SettingTimeGreetings   = "time_greetings"
	SettingGamesEnabled    = "games_enabled"
)

// boolean value vocabulary, case-insensitive, Arabic and English.
var (
	truthyTokens = []string{"true", "1", "yes", "on", "نعم", "مفعل"}
	falsyTokens  = []string{"false", "0", "no", "off", "لا", "معطل"}
)

// parseBoolToken maps an affirmative/negative word to a bool.
func parseBoolToken(raw string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range truthyTokens {
		if v == t {
			return true, nil
		}
	}
	for _, t := range falsyTokens {
		if v == t {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %q is not a yes/no value", ErrInvalidValue, raw)
}

// apply validates raw against the schema for key and mutates s.
// Returns the normalized applied value for display.
func (s *ChannelSettings) apply(key, raw string) (string, error) {
	switch key {
	case SettingAutoReact, SettingWelcomeMessages, SettingTimeGreetings, SettingGamesEnabled:
		v, err := parseBoolToken(raw)
		if err != nil {
			return "", err
		}
		switch key {
		case SettingAutoReact:
			s.AutoReact = v
		case SettingWelcomeMessages:
			s.WelcomeMessages = v
		case SettingTimeGreetings:
			s.TimeGreetings = v
		case SettingGamesEnabled:
			s.GamesEnabled = v
		}
		return strconv.FormatBool(v), nil

	case SettingResponseChance:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return "", fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
		}
		if n < 1 || n > 100 {
			return "", fmt.Errorf("%w: chance must be between 1 and 100", ErrInvalidValue)
		}
		s.ResponseChance = n
		return strconv.Itoa(n), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
}
