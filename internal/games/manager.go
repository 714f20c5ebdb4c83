// Package games runs the interactive game sessions: the number-guessing
// game and the trivia question. A room holds at most one live session at
// a time; the session listens only to its starter and dies on a correct
// answer, exhausted attempts, invalid input, or its deadline.
package games

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marhaba-bot/marhaba/internal/responses"
)

// Kind identifies the game type of a session.
type Kind string

const (
	KindGuess  Kind = "guess"
	KindTrivia Kind = "trivia"
)

// Outcome is the terminal state of a resolved session.
type Outcome string

const (
	OutcomeWon      Outcome = "won"
	OutcomeLost     Outcome = "lost"
	OutcomeTimedOut Outcome = "timed_out"
	OutcomeInvalid  Outcome = "invalid"
)

// Start errors.
var (
	ErrSessionActive = errors.New("a game is already active in this room")
	ErrNoQuestions   = errors.New("trivia bank is empty")
)

// Room is the unit of session ownership: one guild+channel pair.
type Room struct {
	GuildID   string
	ChannelID string
}

// Key returns the map key for this room.
func (r Room) Key() string { return r.GuildID + ":" + r.ChannelID }

// Handle correlates log lines and later feeds with one started session.
type Handle struct {
	ID       string
	Kind     Kind
	Deadline time.Time
}

// FeedResult reports what a session did with a message. Consumed is
// false when no live session wanted the message (it should flow on to
// classification). Outcome is empty while the session keeps waiting.
type FeedResult struct {
	Consumed bool
	Outcome  Outcome
}

// Sender delivers a game notice to a channel. Fire-and-forget.
type Sender func(channelID, content string)

// Config tunes the guessing game and the shared session timeout.
type Config struct {
	GuessLow      int
	GuessHigh     int
	GuessAttempts int
	Timeout       time.Duration
}

// User-visible notices. Formats match the guessing/trivia exchange the
// bot has always spoken.
const (
	msgGuessPrompt  = "🎯 خمن رقماً بين %d و %d! لديك %d محاولات"
	msgGuessWon     = "🎉 أحسنت! الرقم كان %d"
	msgGuessHigher  = "📈 أعلى! المحاولات المتبقية: %d"
	msgGuessLower   = "📉 أقل! المحاولات المتبقية: %d"
	msgGuessLost    = "😔 انتهت المحاولات! الرقم كان %d"
	msgGuessInvalid = "❌ يرجى إدخال رقم صحيح! الرقم كان %d"
	msgGuessTimeout = "⏰ انتهت المهلة الزمنية! الرقم كان %d"
	msgTriviaPrompt = "❓ %s"
	msgTriviaWon    = "🎉 إجابة صحيحة! أحسنت"
	msgTriviaLost   = "❌ إجابة خاطئة. الإجابة الصحيحة: %s"
	msgTriviaExpire = "⏰ انتهى الوقت! الإجابة كانت: %s"
)

type session struct {
	id        string
	room      Room
	userID    string
	kind      Kind
	target    int    // guess only
	answer    string // trivia only
	remaining int    // guess only
	created   time.Time
	deadline  time.Time
	timer     *time.Timer
}

// Manager owns the live sessions, partitioned by room. One mutex guards
// the room map; the message path and the expiry timer both resolve a
// session through it, so each session resolves exactly once. Whichever
// path loses finds the session already gone and does nothing.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	lib  *responses.Library
	rnd  responses.Rand
	send Sender
	cfg  Config
}

// NewManager creates a session manager.
func NewManager(lib *responses.Library, rnd responses.Rand, send Sender, cfg Config) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		lib:      lib,
		rnd:      rnd,
		send:     send,
		cfg:      cfg,
	}
}

// Active reports whether the room currently has a live session.
func (m *Manager) Active(room Room) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[room.Key()]
	return ok
}

// StartGuess starts a number-guessing session in the room. The target is
// uniform in [GuessLow, GuessHigh], both ends inclusive. Fails with
// ErrSessionActive when the room already has a live session; the running
// game is never cancelled by a new start.
func (m *Manager) StartGuess(room Room, userID string) (Handle, error) {
	span := m.cfg.GuessHigh - m.cfg.GuessLow + 1

	m.mu.Lock()
	key := room.Key()
	if _, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		return Handle{}, ErrSessionActive
	}

	now := time.Now()
	s := &session{
		id:        uuid.NewString(),
		room:      room,
		userID:    userID,
		kind:      KindGuess,
		target:    m.cfg.GuessLow + m.rnd.IntN(span),
		remaining: m.cfg.GuessAttempts,
		created:   now,
		deadline:  now.Add(m.cfg.Timeout),
	}
	m.sessions[key] = s
	s.timer = time.AfterFunc(m.cfg.Timeout, func() { m.expire(key, s.id) })
	m.mu.Unlock()

	slog.Info("guess session started",
		"session_id", s.id, "guild_id", room.GuildID, "channel_id", room.ChannelID,
		"user_id", userID, "attempts", s.remaining)

	m.send(room.ChannelID, fmt.Sprintf(msgGuessPrompt, m.cfg.GuessLow, m.cfg.GuessHigh, m.cfg.GuessAttempts))
	return Handle{ID: s.id, Kind: KindGuess, Deadline: s.deadline}, nil
}

// StartTrivia starts a trivia session: one random question, exactly one
// reply from the starter, then the session ends either way.
func (m *Manager) StartTrivia(room Room, userID string) (Handle, error) {
	q, ok := m.lib.Trivia()
	if !ok {
		return Handle{}, ErrNoQuestions
	}

	m.mu.Lock()
	key := room.Key()
	if _, exists := m.sessions[key]; exists {
		m.mu.Unlock()
		return Handle{}, ErrSessionActive
	}

	now := time.Now()
	s := &session{
		id:       uuid.NewString(),
		room:     room,
		userID:   userID,
		kind:     KindTrivia,
		answer:   q.Answer,
		created:  now,
		deadline: now.Add(m.cfg.Timeout),
	}
	m.sessions[key] = s
	s.timer = time.AfterFunc(m.cfg.Timeout, func() { m.expire(key, s.id) })
	m.mu.Unlock()

	slog.Info("trivia session started",
		"session_id", s.id, "guild_id", room.GuildID, "channel_id", room.ChannelID,
		"user_id", userID)

	m.send(room.ChannelID, fmt.Sprintf(msgTriviaPrompt, q.Question))
	return Handle{ID: s.id, Kind: KindTrivia, Deadline: s.deadline}, nil
}

// Feed offers an inbound message to the room's live session. The message
// is not consumed when there is no session, or when the sender is not the
// session's starter; it then flows on untouched. arrivalTime past the
// deadline resolves the session as timed out even before the timer fires.
func (m *Manager) Feed(room Room, userID, text string, arrivalTime time.Time) FeedResult {
	key := room.Key()

	m.mu.Lock()
	s, ok := m.sessions[key]
	if !ok || s.userID != userID {
		m.mu.Unlock()
		return FeedResult{}
	}

	if arrivalTime.After(s.deadline) {
		m.removeLocked(key, s)
		m.mu.Unlock()
		m.resolveTimeout(s)
		return FeedResult{Consumed: true, Outcome: OutcomeTimedOut}
	}

	var (
		res     FeedResult
		notices []string
	)
	switch s.kind {
	case KindGuess:
		res, notices = m.feedGuessLocked(key, s, text)
	default:
		res, notices = m.feedTriviaLocked(key, s, text)
	}
	m.mu.Unlock()

	if res.Outcome != "" {
		slog.Info("session resolved",
			"session_id", s.id, "guild_id", room.GuildID, "channel_id", room.ChannelID,
			"outcome", string(res.Outcome))
	}
	for _, notice := range notices {
		m.send(s.room.ChannelID, notice)
	}
	return res
}

// feedGuessLocked applies one guess. Equality wins regardless of
// remaining attempts; a malformed guess is terminal, unlike a wrong one.
// Every wrong guess gets its directional hint, including the last: the
// zero-remaining hint goes out ahead of the loss notice.
func (m *Manager) feedGuessLocked(key string, s *session, text string) (FeedResult, []string) {
	n, err := strconv.Atoi(normalizeDigits(strings.TrimSpace(text)))
	switch {
	case err != nil:
		m.removeLocked(key, s)
		return FeedResult{Consumed: true, Outcome: OutcomeInvalid}, []string{fmt.Sprintf(msgGuessInvalid, s.target)}

	case n == s.target:
		m.removeLocked(key, s)
		return FeedResult{Consumed: true, Outcome: OutcomeWon}, []string{fmt.Sprintf(msgGuessWon, s.target)}

	default:
		s.remaining--
		hint := fmt.Sprintf(msgGuessLower, s.remaining)
		if n < s.target {
			hint = fmt.Sprintf(msgGuessHigher, s.remaining)
		}
		if s.remaining <= 0 {
			m.removeLocked(key, s)
			return FeedResult{Consumed: true, Outcome: OutcomeLost}, []string{hint, fmt.Sprintf(msgGuessLost, s.target)}
		}
		return FeedResult{Consumed: true}, []string{hint}
	}
}

// normalizeDigits maps Eastern Arabic and Persian digits to their ASCII
// equivalents so strconv accepts guesses typed as "٧" or "۷".
func normalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		}
		return r
	}, s)
}

// feedTriviaLocked checks the one reply a trivia session waits for.
// The accepted answer need only appear within the reply, case-folded.
// Deliberately over-broad ("7" matches inside "17").
func (m *Manager) feedTriviaLocked(key string, s *session, text string) (FeedResult, []string) {
	m.removeLocked(key, s)
	if strings.Contains(strings.ToLower(text), strings.ToLower(s.answer)) {
		return FeedResult{Consumed: true, Outcome: OutcomeWon}, []string{msgTriviaWon}
	}
	return FeedResult{Consumed: true, Outcome: OutcomeLost}, []string{fmt.Sprintf(msgTriviaLost, s.answer)}
}

// expire is the timer path. It loses to any message that resolved the
// session first: the session is then already gone, or replaced by a
// newer one with a different id.
func (m *Manager) expire(key, id string) {
	m.mu.Lock()
	s, ok := m.sessions[key]
	if !ok || s.id != id {
		m.mu.Unlock()
		return
	}
	delete(m.sessions, key)
	m.mu.Unlock()

	slog.Info("session timed out",
		"session_id", s.id, "guild_id", s.room.GuildID, "channel_id", s.room.ChannelID)
	m.resolveTimeout(s)
}

func (m *Manager) resolveTimeout(s *session) {
	if s.kind == KindGuess {
		m.send(s.room.ChannelID, fmt.Sprintf(msgGuessTimeout, s.target))
		return
	}
	m.send(s.room.ChannelID, fmt.Sprintf(msgTriviaExpire, s.answer))
}

// removeLocked detaches a resolved session and disarms its timer.
func (m *Manager) removeLocked(key string, s *session) {
	delete(m.sessions, key)
	if s.timer != nil {
		s.timer.Stop()
	}
}
