package stub

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

const (
	// otpReuseWindow matches the backend contract: a resend within this
	// window re-delivers the same code instead of minting a new one.
	otpReuseWindow = 60 * time.Second
	// otpTTL is how long an issued code stays verifiable.
	otpTTL = 10 * time.Minute
)

var (
	errOTPUnknown = errors.New("no code issued for this address")
	errOTPExpired = errors.New("code expired")
	errOTPWrong   = errors.New("code does not match")
)

type issuedCode struct {
	code     string
	issuedAt time.Time
}

// OTPIssuer mints 6-digit email codes from an HOTP sequence. The counter
// only advances once the reuse window has passed, so rapid resends hand
// out the same code deterministically.
type OTPIssuer struct {
	mu      sync.Mutex
	secret  string
	counter uint64
	now     func() time.Time
	issued  map[string]issuedCode
}

// NewOTPIssuer creates an issuer with a fresh random secret. now may be
// nil, defaulting to time.Now.
func NewOTPIssuer(now func() time.Time) (*OTPIssuer, error) {
	if now == nil {
		now = time.Now
	}
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	return &OTPIssuer{
		secret: base32.StdEncoding.EncodeToString(raw),
		now:    now,
		issued: make(map[string]issuedCode),
	}, nil
}

// Issue returns the current code for the address, minting a new one only
// when no live code exists inside the reuse window.
func (i *OTPIssuer) Issue(email string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if entry, ok := i.issued[email]; ok && now.Sub(entry.issuedAt) < otpReuseWindow {
		return entry.code, nil
	}

	i.counter++
	code, err := hotp.GenerateCodeCustom(i.secret, i.counter, hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}
	i.issued[email] = issuedCode{code: code, issuedAt: now}
	return code, nil
}

// Verify checks a submitted code. Codes stay valid until expiry so a flow
// can re-present the same code at its final step.
func (i *OTPIssuer) Verify(email, code string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	entry, ok := i.issued[email]
	if !ok {
		return errOTPUnknown
	}
	if i.now().Sub(entry.issuedAt) > otpTTL {
		delete(i.issued, email)
		return errOTPExpired
	}
	if entry.code != code {
		return errOTPWrong
	}
	return nil
}

// Invalidate drops any live code for the address, ending its flow.
func (i *OTPIssuer) Invalidate(email string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.issued, email)
}

// Mail is one recorded outbox entry.
type Mail struct {
	To      string
	Subject string
	Code    string
}

// Outbox records "sent" emails for tests to read instead of a mailbox.
type Outbox struct {
	mu    sync.Mutex
	mails []Mail
}

func (o *Outbox) Send(to, subject, code string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mails = append(o.mails, Mail{To: to, Subject: subject, Code: code})
}

// Last returns the most recent mail sent to an address.
func (o *Outbox) Last(to string) (Mail, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.mails) - 1; i >= 0; i-- {
		if o.mails[i].To == to {
			return o.mails[i], true
		}
	}
	return Mail{}, false
}

// All returns a copy of every recorded mail.
func (o *Outbox) All() []Mail {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Mail, len(o.mails))
	copy(out, o.mails)
	return out
}
