package term

import (
	"context"
	"strings"
	"time"

	"github.com/propertyplus/propclient/internal/flow"
	"github.com/propertyplus/propclient/internal/validate"
	"github.com/propertyplus/propclient/pkg/propsdk"
)

// debounceSettle is how long the line-oriented client waits for a
// debounced check to fire before reading its outcome.
const debounceSettle = flow.DefaultDebounceWait + 200*time.Millisecond

func (t *Term) signup(ctx context.Context) {
	email := t.ui.PromptRequired("Email")

	ok := t.runOTP(ctx,
		func(ctx context.Context) error { return t.client.SendSignupOTP(ctx, email) },
		func(ctx context.Context, code string) error { return t.client.VerifySignupOTP(ctx, email, code) },
	)
	if !ok {
		return
	}

	username := t.promptUsername(ctx)
	if username == "" {
		return
	}
	password, ok := t.promptNewPassword()
	if !ok {
		return
	}

	fullName := t.ui.PromptRequired("Full name")
	role := t.promptRole()
	dob, ok := t.promptDateOfBirth()
	if !ok {
		return
	}
	contact := t.promptPhone("Contact number")
	state := t.ui.PromptRequired("State")
	city := t.promptCity(ctx, state)
	avatarColor := t.ui.Prompt("Avatar color (blank for default)")

	err := t.client.Register(ctx, propsdk.RegisterRequest{
		Email:         email,
		Username:      username,
		Password:      password,
		FullName:      fullName,
		Role:          role,
		DateOfBirth:   dob,
		ContactNumber: contact,
		City:          city,
		State:         state,
		AvatarColor:   avatarColor,
	})
	if err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Account created. You can log in now.")
}

// promptUsername runs the debounced uniqueness check on each attempt and
// only accepts an available name. Blank input aborts.
func (t *Term) promptUsername(ctx context.Context) string {
	checker := flow.NewUniqueChecker(
		func(ctx context.Context, value string) (bool, error) {
			exists, err := t.client.CheckUsername(ctx, value)
			return !exists, err
		},
		&checkView{ui: t.ui}, nil, t.log,
	)
	for {
		name := t.ui.Prompt("Username (blank to abort)")
		if name == "" {
			return ""
		}
		checker.Input(ctx, name)
		time.Sleep(debounceSettle)
		if checker.Available() {
			return name
		}
	}
}

func (t *Term) promptNewPassword() (string, bool) {
	for {
		password := t.ui.Prompt("Password (blank to abort)")
		if password == "" {
			return "", false
		}
		if !validate.Password(password) {
			t.ui.Say("Password must be at least 8 characters with a number and a symbol.")
			continue
		}
		if !validate.PasswordsMatch(password, t.ui.Prompt("Confirm password")) {
			t.ui.Say("Passwords do not match.")
			continue
		}
		return password, true
	}
}

func (t *Term) promptRole() string {
	for {
		role := strings.ToLower(t.ui.Prompt("Role (buyer/seller)"))
		if role == "buyer" || role == "seller" || t.ui.EOF() {
			return role
		}
		t.ui.Say("Please enter buyer or seller.")
	}
}

func (t *Term) promptDateOfBirth() (string, bool) {
	for {
		dob := t.ui.Prompt("Date of birth (YYYY-MM-DD, blank to abort)")
		if dob == "" {
			return "", false
		}
		parsed, err := time.Parse("2006-01-02", dob)
		if err != nil {
			t.ui.Say("Please use the YYYY-MM-DD format.")
			continue
		}
		if !validate.Adult(parsed, time.Now()) {
			t.ui.Say("You must be at least 18 years old to register.")
			continue
		}
		return dob, true
	}
}

func (t *Term) promptPhone(label string) string {
	for {
		phone := t.ui.Prompt(label)
		if validate.Phone(phone) || t.ui.EOF() {
			return phone
		}
		t.ui.Say("Please enter a valid 10-digit phone number.")
	}
}

// promptCity offers the state's city list when the backend knows it,
// falling back to free text.
func (t *Term) promptCity(ctx context.Context, state string) string {
	cities, err := t.client.Cities(ctx, state)
	if err != nil || len(cities) == 0 {
		return t.ui.PromptRequired("City")
	}
	t.ui.Sayf("Cities in %s: %s", state, strings.Join(cities, ", "))
	return t.ui.PromptRequired("City")
}

func (t *Term) login(ctx context.Context) {
	identifier := t.ui.PromptRequired("Email or username")
	password := t.ui.PromptRequired("Password")

	result, err := t.client.Login(ctx, identifier, password)
	if err != nil {
		t.ui.Say(err.Error())
		return
	}
	if !result.TwoFactorPending {
		t.session = result.Session
		t.ui.Say("Logged in.")
		return
	}

	// 2FA: the login attempt already emailed a code; resending repeats
	// the login, which re-issues (or re-delivers) it.
	ok := t.runOTP(ctx,
		func(ctx context.Context) error {
			_, err := t.client.Login(ctx, identifier, password)
			return err
		},
		func(ctx context.Context, code string) error {
			sess, err := t.client.CompleteLogin(ctx, identifier, code)
			if err != nil {
				return err
			}
			t.session = sess
			return nil
		},
	)
	if ok {
		t.ui.Say("Logged in.")
	}
}

func (t *Term) forgotPassword(ctx context.Context) {
	email := t.ui.PromptRequired("Email")
	ok := t.runOTP(ctx,
		func(ctx context.Context) error { return t.client.SendForgotOTP(ctx, email) },
		func(ctx context.Context, code string) error { return t.client.VerifyForgotOTP(ctx, email, code) },
	)
	if !ok {
		return
	}
	password, ok := t.promptNewPassword()
	if !ok {
		return
	}
	if err := t.client.ResetPassword(ctx, email, password); err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Password updated. You can log in now.")
}
