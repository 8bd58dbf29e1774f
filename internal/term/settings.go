package term

import (
	"context"
	"os"
	"path/filepath"

	"github.com/propertyplus/propclient/pkg/propsdk"
)

func (t *Term) settings(ctx context.Context) {
	for {
		t.ui.Say("[1] Change password  [2] Two-factor login  [3] Contact details  [4] Profile image  [5] Delete account  [b] Back")
		switch t.ui.Prompt("Settings") {
		case "1":
			t.changePassword(ctx)
		case "2":
			t.toggleTwoFactor(ctx)
		case "3":
			t.updateDetails(ctx)
		case "4":
			t.updateProfileImage(ctx)
		case "5":
			if t.deleteAccount(ctx) {
				return
			}
		default:
			return
		}
	}
}

// changePassword runs the two-path flow: 2FA accounts verify an emailed
// code, the rest their current password.
func (t *Term) changePassword(ctx context.Context) {
	otpRequired, err := t.session.StartPasswordChange(ctx)
	if err != nil {
		t.ui.Say(err.Error())
		return
	}

	if otpRequired {
		ok := t.runOTP(ctx,
			func(ctx context.Context) error {
				_, err := t.session.StartPasswordChange(ctx)
				return err
			},
			t.session.VerifyPasswordChangeOTP,
		)
		if !ok {
			return
		}
	} else if !t.verifyOldPassword(ctx) {
		return
	}

	password, ok := t.promptNewPassword()
	if !ok {
		return
	}
	if err := t.session.FinishPasswordChange(ctx, password, ""); err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Password changed.")
}

func (t *Term) verifyOldPassword(ctx context.Context) bool {
	for {
		password := t.ui.Prompt("Current password (blank to abort)")
		if password == "" {
			return false
		}
		if err := t.session.VerifyOldPassword(ctx, password); err != nil {
			t.ui.Say(err.Error())
			continue
		}
		return true
	}
}

// toggleTwoFactor enables or disables 2FA. Disabling additionally
// requires an emailed code before the password confirmation.
func (t *Term) toggleTwoFactor(ctx context.Context) {
	enabled := t.session.User().TwoFAEnabled
	if enabled {
		t.ui.Say("Two-factor login is currently ON.")
	} else {
		t.ui.Say("Two-factor login is currently OFF.")
	}
	if !t.ui.Confirm("Change it?") {
		return
	}

	if enabled {
		ok := t.runOTP(ctx, t.session.Send2FAOTP, t.session.Verify2FAOTP)
		if !ok {
			return
		}
	}

	password := t.ui.PromptRequired("Confirm your password")
	if err := t.session.Toggle2FA(ctx, !enabled, password); err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Two-factor setting updated. It applies from your next login.")
}

func (t *Term) updateDetails(ctx context.Context) {
	details := propsdk.ProfileDetails{
		ContactNumber: t.promptPhone("Contact number"),
		City:          t.ui.PromptRequired("City"),
		State:         t.ui.PromptRequired("State"),
	}
	details.Password = t.ui.PromptRequired("Confirm your password")
	if err := t.session.UpdateProfileDetails(ctx, details); err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Contact details updated.")
}

func (t *Term) updateProfileImage(ctx context.Context) {
	path := t.ui.Prompt("Image file (blank to pick an avatar color instead)")
	var file *propsdk.FilePart
	var color string
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			t.ui.Sayf("Could not read %s.", path)
			return
		}
		file = &propsdk.FilePart{Name: filepath.Base(path), Content: content}
	} else {
		color = t.ui.PromptRequired("Avatar color")
	}
	if err := t.session.UpdateProfileImage(ctx, file, color); err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Say("Profile image updated.")
}

// deleteAccount runs the OTP-then-password deletion flow. A true return
// means the account is gone and the session ended.
func (t *Term) deleteAccount(ctx context.Context) bool {
	if !t.ui.Confirm("Delete your account permanently? This cannot be undone.") {
		return false
	}
	ok := t.runOTP(ctx, t.session.RequestAccountDeletion, t.session.VerifyDeletionOTP)
	if !ok {
		return false
	}
	password := t.ui.PromptRequired("Confirm your password")
	if err := t.session.ConfirmAccountDeletion(ctx, password); err != nil {
		t.ui.Say(err.Error())
		return false
	}
	t.ui.Say("Your account has been deleted.")
	t.session = nil
	return true
}
