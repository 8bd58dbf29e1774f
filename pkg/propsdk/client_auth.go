package propsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SendSignupOTP asks the backend to email a verification code to an
// address that is not yet registered.
func (c *Client) SendSignupOTP(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/api/send-otp", map[string]string{"email": email}, nil, "")
}

// VerifySignupOTP submits the signup verification code.
func (c *Client) VerifySignupOTP(ctx context.Context, email, code string) error {
	payload := map[string]string{"email": email, "otp": code}
	return c.postJSON(ctx, "/api/verify-otp", payload, nil, "")
}

// CheckUsername reports whether a username is already registered.
func (c *Client) CheckUsername(ctx context.Context, username string) (exists bool, err error) {
	payload, err := json.Marshal(map[string]string{"username": username})
	if err != nil {
		return false, fmt.Errorf("failed to encode request: %w", err)
	}
	// This endpoint answers with a bare {exists} body, no envelope.
	data, err := c.roundTrip(ctx, http.MethodPost, "/api/check-username",
		"application/json", bytes.NewReader(payload), "")
	if err != nil {
		return false, err
	}
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Exists, nil
}

// Register creates the account after the email was OTP-verified. The
// profile image is optional; without one the backend generates an avatar
// in the selected color.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	fields := map[string]string{
		"email":          req.Email,
		"username":       req.Username,
		"password":       req.Password,
		"full_name":      req.FullName,
		"role":           req.Role,
		"dob":            req.DateOfBirth,
		"contact_number": req.ContactNumber,
		"city":           req.City,
		"state":          req.State,
	}
	if req.AvatarColor != "" {
		fields["avatar_color"] = req.AvatarColor
	}
	var files []FilePart
	if req.ProfileImage != nil {
		f := *req.ProfileImage
		if f.Field == "" {
			f.Field = "profile_image"
		}
		files = append(files, f)
	}
	return c.postMultipart(ctx, "/api/register", fields, files, nil, "")
}

// LoginResult is the outcome of a Login call. For accounts with 2FA
// enabled the session is nil and TwoFactorPending is set; finish with
// CompleteLogin once the emailed code arrives.
type LoginResult struct {
	Session          *Session
	TwoFactorPending bool
}

// Login authenticates with an email (or username) and password.
func (c *Client) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	var out struct {
		Token       string `json:"token"`
		OTPRequired bool   `json:"otp_required"`
		User        User   `json:"user"`
	}
	payload := map[string]string{"identifier": identifier, "password": password}
	if err := c.postJSON(ctx, "/api/login", payload, &out, ""); err != nil {
		return nil, err
	}
	if out.OTPRequired {
		return &LoginResult{TwoFactorPending: true}, nil
	}
	sess, err := newSession(c, out.Token, out.User)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: sess}, nil
}

// CompleteLogin finishes a 2FA login with the emailed code.
func (c *Client) CompleteLogin(ctx context.Context, identifier, code string) (*Session, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	payload := map[string]string{"identifier": identifier, "otp": code}
	if err := c.postJSON(ctx, "/api/login/verify-otp", payload, &out, ""); err != nil {
		return nil, err
	}
	return newSession(c, out.Token, out.User)
}

// NewSessionFromToken rebuilds a session from a persisted bearer token.
func (c *Client) NewSessionFromToken(token string, user User) (*Session, error) {
	return newSession(c, token, user)
}

// SendForgotOTP starts the password-recovery flow for a registered email.
func (c *Client) SendForgotOTP(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/api/send-forgot-otp", map[string]string{"email": email}, nil, "")
}

// VerifyForgotOTP submits the recovery verification code.
func (c *Client) VerifyForgotOTP(ctx context.Context, email, code string) error {
	payload := map[string]string{"email": email, "otp": code}
	return c.postJSON(ctx, "/api/verify-forgot-otp", payload, nil, "")
}

// ResetPassword sets a new password after the recovery code was verified.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	payload := map[string]string{"email": email, "new_password": newPassword}
	return c.postJSON(ctx, "/api/reset-password", payload, nil, "")
}
