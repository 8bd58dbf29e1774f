package propsdk

import "context"

// UpdateProfileImage replaces the profile picture. Exactly one of file or
// avatarColor should be set; with only a color the backend generates an
// avatar.
func (s *Session) UpdateProfileImage(ctx context.Context, file *FilePart, avatarColor string) error {
	fields := map[string]string{}
	if avatarColor != "" {
		fields["avatar_color"] = avatarColor
	}
	var files []FilePart
	if file != nil {
		f := *file
		if f.Field == "" {
			f.Field = "profile_image"
		}
		files = append(files, f)
	}
	return s.client.postMultipart(ctx, "/api/update-profile-image", fields, files, nil, s.token)
}

// UpdateProfileDetails updates contact details after password
// verification.
func (s *Session) UpdateProfileDetails(ctx context.Context, details ProfileDetails) error {
	return s.client.postJSON(ctx, "/api/update-profile-details", details, nil, s.token)
}

// StartPasswordChange begins the password-change flow. When the account
// has 2FA enabled the backend emails a code and otpRequired is true;
// otherwise the flow proceeds straight to VerifyOldPassword.
func (s *Session) StartPasswordChange(ctx context.Context) (otpRequired bool, err error) {
	var out struct {
		OTPRequired bool `json:"otp_required"`
	}
	if err := s.client.postJSON(ctx, "/api/settings/change-password", nil, &out, s.token); err != nil {
		return false, err
	}
	return out.OTPRequired, nil
}

// VerifyPasswordChangeOTP submits the password-change code.
func (s *Session) VerifyPasswordChangeOTP(ctx context.Context, code string) error {
	payload := map[string]string{"otp": code}
	return s.client.postJSON(ctx, "/api/settings/verify-otp-only", payload, nil, s.token)
}

// VerifyOldPassword confirms the current password for the non-2FA
// password-change path.
func (s *Session) VerifyOldPassword(ctx context.Context, password string) error {
	payload := map[string]string{"password": password}
	return s.client.postJSON(ctx, "/api/settings/verify-old-pwd", payload, nil, s.token)
}

// FinishPasswordChange sets the new password after either verification
// path. Pass the code for the 2FA path, or an empty string after
// VerifyOldPassword.
func (s *Session) FinishPasswordChange(ctx context.Context, newPassword, code string) error {
	payload := map[string]string{"new_password": newPassword}
	if code != "" {
		payload["otp"] = code
	}
	return s.client.postJSON(ctx, "/api/settings/verify-pwd-final", payload, nil, s.token)
}

// Send2FAOTP emails the code required to change the 2FA setting.
func (s *Session) Send2FAOTP(ctx context.Context) error {
	return s.client.postJSON(ctx, "/api/settings/toggle-2fa-otp", nil, nil, s.token)
}

// Verify2FAOTP submits the 2FA-change code.
func (s *Session) Verify2FAOTP(ctx context.Context, code string) error {
	payload := map[string]string{"otp": code}
	return s.client.postJSON(ctx, "/api/settings/verify-2fa-otp", payload, nil, s.token)
}

// Toggle2FA finalizes the 2FA setting after password (and, when
// disabling, OTP) verification.
func (s *Session) Toggle2FA(ctx context.Context, enable bool, password string) error {
	payload := map[string]any{
		"status":   enable,
		"password": password,
	}
	return s.client.postJSON(ctx, "/api/settings/toggle-2fa-final", payload, nil, s.token)
}

// RequestAccountDeletion starts the deletion flow by emailing a
// verification code.
func (s *Session) RequestAccountDeletion(ctx context.Context) error {
	return s.client.postJSON(ctx, "/api/settings/delete-account-request", nil, nil, s.token)
}

// VerifyDeletionOTP submits the deletion verification code.
func (s *Session) VerifyDeletionOTP(ctx context.Context, code string) error {
	payload := map[string]string{"otp": code}
	return s.client.postJSON(ctx, "/api/settings/verify-otp-only-del", payload, nil, s.token)
}

// ConfirmAccountDeletion permanently deletes the account after the OTP was
// verified and the password re-checked.
func (s *Session) ConfirmAccountDeletion(ctx context.Context, password string) error {
	payload := map[string]string{"password": password}
	return s.client.postJSON(ctx, "/api/settings/delete-account-verify", payload, nil, s.token)
}
