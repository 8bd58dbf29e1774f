// Package reqid issues per-request tokens for the "latest request wins"
// convention: every asynchronous operation captures a fresh Token before it
// starts, and a result is applied only if its token is still the newest one
// the owning controller has issued. Tokens are ULIDs, so recency is a plain
// lexicographic comparison.
package reqid

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type Token string

// Zero is the zero-value token. A controller that has never issued a
// request holds Zero; every real token supersedes it.
const Zero Token = ""

// ErrInvalid reports a malformed token string.
var ErrInvalid = errors.New("reqid: invalid token")

var (
	globalOnce sync.Once
	global     *generator
)

// generator produces ULIDs safely across goroutines using a monotonic
// entropy source, so tokens issued in the same millisecond still order.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) New() Token {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), g.entropy)
	return Token(u.String())
}

func initGlobal() {
	global = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New issues a fresh token that supersedes every previously issued one.
func New() Token {
	globalOnce.Do(initGlobal)
	return global.New()
}

// Parse validates a token string.
func Parse(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return Token(s), nil
}

// IsZero reports whether t is the zero token.
func (t Token) IsZero() bool { return t == Zero }

// String returns the canonical string form.
func (t Token) String() string { return string(t) }

// Supersedes reports whether t was issued after other. The zero token is
// superseded by every real token.
func (t Token) Supersedes(other Token) bool { return t > other }

// Time extracts the embedded UTC timestamp, or the zero time if t is
// invalid or zero.
func (t Token) Time() time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	u, err := ulid.ParseStrict(t.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
