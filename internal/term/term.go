package term

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/propertyplus/propclient/internal/flow"
	"github.com/propertyplus/propclient/pkg/propsdk"
)

// Term drives the interactive flows over a UI and the API client.
type Term struct {
	ui     *UI
	client *propsdk.Client
	log    *slog.Logger

	session *propsdk.Session
	// listings are the ids published or opened this session; the
	// dashboard pages over them.
	listings []int64
}

func New(ui *UI, client *propsdk.Client, log *slog.Logger) *Term {
	if log == nil {
		log = slog.Default()
	}
	return &Term{ui: ui, client: client, log: log}
}

// Run is the top-level menu loop. It returns when the user quits or input
// ends.
func (t *Term) Run(ctx context.Context) {
	for {
		var choice string
		if t.session == nil {
			t.ui.Say("\n[1] Log in  [2] Sign up  [3] Forgot password  [q] Quit")
			choice = t.ui.Prompt("Choose")
			switch choice {
			case "1":
				t.login(ctx)
			case "2":
				t.signup(ctx)
			case "3":
				t.forgotPassword(ctx)
			case "q", "":
				return
			}
			continue
		}

		t.ui.Sayf("\nLogged in as %s", t.session.User().Username)
		t.ui.Say("[1] Add listing  [2] View listing  [3] Dashboard  [4] Settings  [5] Notifications  [0] Log out  [q] Quit")
		switch t.ui.Prompt("Choose") {
		case "1":
			t.addListing(ctx)
		case "2":
			t.viewListing(ctx)
		case "3":
			t.dashboard(ctx)
		case "4":
			t.settings(ctx)
		case "5":
			t.notifications(ctx)
		case "0":
			t.session = nil
		case "q", "":
			return
		}
	}
}

// runOTP drives one OTP verification step: it sends the initial code and
// loops on input (a code, "resend" or "cancel") until the step verifies
// or the user gives up.
func (t *Term) runOTP(ctx context.Context, send flow.Sender, verify flow.Verifier) bool {
	verified := false
	view := &otpView{ui: t.ui}
	ctrl := flow.NewOTPController(flow.OTPConfig{
		Sender: send,
		Verifier: func(ctx context.Context, code string) error {
			return asFlowError(verify(ctx, code))
		},
		View:    view,
		Advance: func() { verified = true },
		Log:     t.log,
	})
	view.cells = ctrl.Cells

	if err := ctrl.Begin(ctx); err != nil {
		return false
	}
	t.ui.Say("Enter the 6-digit code from your email ('resend' to resend, 'cancel' to abort).")

	for !verified {
		line := t.ui.Prompt("Code")
		switch strings.ToLower(line) {
		case "cancel", "":
			return false
		case "resend":
			if !ctrl.RequestResend(ctx) {
				remaining := ctrl.Cooldown().Remaining()
				view.ShowCountdown(remaining)
			}
		default:
			ctrl.Paste(ctx, 0, line)
			// A paste with six digits submits itself; anything shorter
			// gets the local completeness rejection.
			if !verified && countDigits(line) < flow.CodeLength {
				ctrl.Submit(ctx)
			}
		}
	}
	return true
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
