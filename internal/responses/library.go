// Package responses holds the static Arabic response data (keyword
// taxonomies, canned responses, emoji tables, trivia bank) and the
// keyword classifier over it. The data is read-only for the rest of the
// engine; an optional overrides document can replace sections at runtime.
package responses

import (
	"strings"
	"sync"
	"time"
)

// Fallbacks when a table is empty or a key is unknown.
const (
	fallbackResponse = "أهلاً بك! 😊"
	fallbackEmotion  = "أفهم مشاعرك 💙"
	fallbackEmoji    = "😊"
)

// Library serves classified lookups over the response tables.
// Safe for concurrent use; Reload swaps the whole table set at once.
type Library struct {
	mu  sync.RWMutex
	tab *Tables
	rnd Rand
}

// NewLibrary creates a Library over the built-in tables.
func NewLibrary(rnd Rand) *Library {
	return &Library{tab: builtin(), rnd: rnd}
}

// Classify maps message text to a response category. Categories are
// tested in declared precedence order, keywords in declared order within
// a category; the first keyword contained in the folded text wins.
func (l *Library) Classify(text string) (Category, bool) {
	folded := strings.ToLower(text)

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, set := range l.tab.Keywords {
		for _, kw := range set.Keywords {
			if strings.Contains(folded, kw) {
				return set.Category, true
			}
		}
	}
	return "", false
}

// Pick returns a random canned response for a category.
func (l *Library) Pick(cat Category) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.Responses[cat], fallbackResponse)
}

// Interactive returns a random line from an interactive table
// (compliments, motivation, wisdom, fun).
func (l *Library) Interactive(kind string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.Interactive[kind], fallbackResponse)
}

// Emotion returns a random reply for a mood (happy, sad, excited, tired).
func (l *Library) Emotion(kind string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.Emotions[kind], fallbackEmotion)
}

// Emoji returns a random emoji from a category table.
func (l *Library) Emoji(category string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.Emojis[category], fallbackEmoji)
}

// Question returns a random interactive question.
func (l *Library) Question() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.Questions, fallbackResponse)
}

// Luck returns a random luck line.
func (l *Library) Luck() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.Luck, fallbackResponse)
}

// Prayer returns a random prayer.
func (l *Library) Prayer() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.Prayers, fallbackResponse)
}

// Trivia returns a random trivia question. ok is false when the bank
// is empty.
func (l *Library) Trivia() (TriviaQuestion, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bank := l.tab.Trivia
	if len(bank) == 0 {
		return TriviaQuestion{}, false
	}
	return bank[l.rnd.IntN(len(bank))], true
}

// TimeGreeting returns a greeting fitting the hour of t.
// Buckets: morning 5-11, afternoon 12-16, evening 17-21, night otherwise.
func (l *Library) TimeGreeting(t time.Time) string {
	var bucket string
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		bucket = "morning"
	case h >= 12 && h < 17:
		bucket = "afternoon"
	case h >= 17 && h < 22:
		bucket = "evening"
	default:
		bucket = "night"
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pickLocked(l.tab.TimeOfDay[bucket], fallbackResponse)
}

func (l *Library) pickLocked(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[l.rnd.IntN(len(list))]
}
