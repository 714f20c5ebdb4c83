package games

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/marhaba-bot/marhaba/internal/responses"
)

// scriptRand replays a fixed sequence of values, wrapping around.
type scriptRand struct {
	vals []int
	i    int
}

func (r *scriptRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// recorder collects sent notices. The expiry timer sends from its own
// goroutine, so access is guarded.
type recorder struct {
	mu    sync.Mutex
	sends []string
}

func (r *recorder) send(_, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = append(r.sends, content)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sends...)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sends) == 0 {
		return ""
	}
	return r.sends[len(r.sends)-1]
}

var testRoom = Room{GuildID: "g1", ChannelID: "c1"}

func defaultCfg() Config {
	return Config{GuessLow: 1, GuessHigh: 10, GuessAttempts: 3, Timeout: time.Minute}
}

// newGuessManager returns a manager whose next guess target is 7.
func newGuessManager(t *testing.T, rec *recorder) *Manager {
	t.Helper()
	lib := responses.NewLibrary(&scriptRand{vals: []int{0}})
	// target = GuessLow + IntN(10) = 1 + 6 = 7
	return NewManager(lib, &scriptRand{vals: []int{6}}, rec.send, defaultCfg())
}

func TestGuess_HintsThenWin(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessPrompt, 1, 10, 3); got != want {
		t.Fatalf("prompt = %q, want %q", got, want)
	}

	now := time.Now()

	res := m.Feed(testRoom, "u1", "3", now)
	if !res.Consumed || res.Outcome != "" {
		t.Fatalf("feed(3) = %+v, want consumed, no outcome", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessHigher, 2); got != want {
		t.Errorf("hint = %q, want %q", got, want)
	}

	res = m.Feed(testRoom, "u1", "9", now)
	if !res.Consumed || res.Outcome != "" {
		t.Fatalf("feed(9) = %+v, want consumed, no outcome", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessLower, 1); got != want {
		t.Errorf("hint = %q, want %q", got, want)
	}

	res = m.Feed(testRoom, "u1", "7", now)
	if !res.Consumed || res.Outcome != OutcomeWon {
		t.Fatalf("feed(7) = %+v, want won", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessWon, 7); got != want {
		t.Errorf("win notice = %q, want %q", got, want)
	}

	if m.Active(testRoom) {
		t.Error("room should be idle after a win")
	}
	// A finished room accepts a fresh game
	if _, err := m.StartGuess(testRoom, "u2"); err != nil {
		t.Errorf("restart after win: %v", err)
	}
}

func TestGuess_AttemptsExhausted(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	m.Feed(testRoom, "u1", "1", now)
	m.Feed(testRoom, "u1", "2", now)
	res := m.Feed(testRoom, "u1", "3", now)
	if res.Outcome != OutcomeLost {
		t.Fatalf("third wrong guess = %+v, want lost", res)
	}

	// The last wrong guess still gets its directional hint, with zero
	// remaining, before the loss notice.
	all := rec.all()
	if len(all) < 2 {
		t.Fatalf("got %d notices, want hint + loss", len(all))
	}
	if got, want := all[len(all)-2], fmt.Sprintf(msgGuessHigher, 0); got != want {
		t.Errorf("final hint = %q, want %q", got, want)
	}
	if got, want := all[len(all)-1], fmt.Sprintf(msgGuessLost, 7); got != want {
		t.Errorf("loss notice = %q, want %q", got, want)
	}
	if m.Active(testRoom) {
		t.Error("room should be idle after a loss")
	}
}

func TestGuess_EasternArabicDigits(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	res := m.Feed(testRoom, "u1", "٣", now)
	if !res.Consumed || res.Outcome != "" {
		t.Fatalf("feed(٣) = %+v, want a regular wrong guess", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessHigher, 2); got != want {
		t.Errorf("hint = %q, want %q", got, want)
	}

	res = m.Feed(testRoom, "u1", "٧", now)
	if res.Outcome != OutcomeWon {
		t.Fatalf("feed(٧) = %+v, want won", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessWon, 7); got != want {
		t.Errorf("win notice = %q, want %q", got, want)
	}
}

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"٧", "7"},
		{"١٠", "10"},
		{"۷", "7"},
		{"7", "7"},
		{"سبعة", "سبعة"},
	}

	for _, tt := range tests {
		if got := normalizeDigits(tt.in); got != tt.want {
			t.Errorf("normalizeDigits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGuess_WinOnLastAttempt(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	m.Feed(testRoom, "u1", "1", now)
	m.Feed(testRoom, "u1", "2", now)
	res := m.Feed(testRoom, "u1", "7", now)
	if res.Outcome != OutcomeWon {
		t.Errorf("correct final guess = %+v, want won", res)
	}
}

func TestGuess_InvalidInputIsTerminal(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}

	res := m.Feed(testRoom, "u1", "سبعة", time.Now())
	if !res.Consumed || res.Outcome != OutcomeInvalid {
		t.Fatalf("feed(non-number) = %+v, want invalid", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessInvalid, 7); got != want {
		t.Errorf("invalid notice = %q, want %q", got, want)
	}
	if m.Active(testRoom) {
		t.Error("room should be idle after invalid input")
	}
}

func TestStart_SecondGameRejected(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}
	m.Feed(testRoom, "u1", "1", time.Now()) // 2 attempts left

	if _, err := m.StartGuess(testRoom, "u2"); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("second start error = %v, want ErrSessionActive", err)
	}
	if _, err := m.StartTrivia(testRoom, "u2"); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("trivia over guess error = %v, want ErrSessionActive", err)
	}

	// The running game kept its state
	res := m.Feed(testRoom, "u1", "2", time.Now())
	if res.Outcome != "" {
		t.Fatalf("feed after rejected start = %+v, want game still live", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessHigher, 1); got != want {
		t.Errorf("hint = %q, want %q (remaining untouched by rejected start)", got, want)
	}
}

func TestFeed_IgnoresOtherUsersAndIdleRooms(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	if res := m.Feed(testRoom, "u1", "5", time.Now()); res.Consumed {
		t.Error("idle room must not consume messages")
	}

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}
	if res := m.Feed(testRoom, "u2", "7", time.Now()); res.Consumed {
		t.Error("another user's message must not be consumed")
	}
	// Also scoped per room
	other := Room{GuildID: "g1", ChannelID: "c2"}
	if res := m.Feed(other, "u1", "7", time.Now()); res.Consumed {
		t.Error("another room's message must not be consumed")
	}
}

func TestFeed_LateArrivalTimesOut(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	h, err := m.StartGuess(testRoom, "u1")
	if err != nil {
		t.Fatal(err)
	}

	res := m.Feed(testRoom, "u1", "7", h.Deadline.Add(time.Second))
	if !res.Consumed || res.Outcome != OutcomeTimedOut {
		t.Fatalf("late feed = %+v, want timed out", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgGuessTimeout, 7); got != want {
		t.Errorf("timeout notice = %q, want %q", got, want)
	}
	if m.Active(testRoom) {
		t.Error("room should be idle after timeout")
	}
}

func TestTimer_ExpiresOnce(t *testing.T) {
	rec := &recorder{}
	lib := responses.NewLibrary(&scriptRand{vals: []int{0}})
	cfg := defaultCfg()
	cfg.Timeout = 20 * time.Millisecond
	m := NewManager(lib, &scriptRand{vals: []int{6}}, rec.send, cfg)

	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(time.Second)
	for m.Active(testRoom) {
		if time.Now().After(deadline) {
			t.Fatal("session did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	want := fmt.Sprintf(msgGuessTimeout, 7)
	count := 0
	for _, s := range rec.all() {
		if s == want {
			count++
		}
	}
	if count != 1 {
		t.Errorf("timeout notice sent %d times, want exactly once", count)
	}

	// The dead session consumes nothing
	if res := m.Feed(testRoom, "u1", "7", time.Now()); res.Consumed {
		t.Error("feed after expiry must not be consumed")
	}
}

func TestTrivia_SubstringMatch(t *testing.T) {
	rec := &recorder{}
	// Question index 4 has answer "7"
	lib := responses.NewLibrary(&scriptRand{vals: []int{4}})
	m := NewManager(lib, &scriptRand{vals: []int{0}}, rec.send, defaultCfg())

	if _, err := m.StartTrivia(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.last(), "قوس قزح") {
		t.Fatalf("prompt = %q, want the rainbow question", rec.last())
	}

	// Containment is enough, even embedded in a larger number
	res := m.Feed(testRoom, "u1", "17", time.Now())
	if res.Outcome != OutcomeWon {
		t.Fatalf("feed(17) = %+v, want won by substring", res)
	}
	if rec.last() != msgTriviaWon {
		t.Errorf("win notice = %q, want %q", rec.last(), msgTriviaWon)
	}
	if m.Active(testRoom) {
		t.Error("trivia should end after one reply")
	}
}

func TestTrivia_WrongAnswerEndsSession(t *testing.T) {
	rec := &recorder{}
	// Question index 0: capital of Saudi Arabia, answer الرياض
	lib := responses.NewLibrary(&scriptRand{vals: []int{0}})
	m := NewManager(lib, &scriptRand{vals: []int{0}}, rec.send, defaultCfg())

	if _, err := m.StartTrivia(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}

	res := m.Feed(testRoom, "u1", "جدة", time.Now())
	if res.Outcome != OutcomeLost {
		t.Fatalf("wrong answer = %+v, want lost", res)
	}
	if got, want := rec.last(), fmt.Sprintf(msgTriviaLost, "الرياض"); got != want {
		t.Errorf("loss notice = %q, want %q", got, want)
	}
	if m.Active(testRoom) {
		t.Error("trivia should end after one reply either way")
	}
}

func TestRooms_AreIndependent(t *testing.T) {
	rec := &recorder{}
	m := newGuessManager(t, rec)

	other := Room{GuildID: "g2", ChannelID: "c1"}
	if _, err := m.StartGuess(testRoom, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.StartGuess(other, "u1"); err != nil {
		t.Fatalf("start in a second room: %v", err)
	}

	if res := m.Feed(testRoom, "u1", "7", time.Now()); res.Outcome != OutcomeWon {
		t.Errorf("room one win = %+v", res)
	}
	if !m.Active(other) {
		t.Error("second room's session must survive the first room's win")
	}
}
