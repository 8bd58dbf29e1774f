package stub

import (
	"net/http"

	"github.com/propertyplus/propclient/internal/stub/store"
	"github.com/propertyplus/propclient/pkg/httpx"
)

func (s *Server) handleUpdateProfileImage(w http.ResponseWriter, r *http.Request, user *store.User) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	image := profileImageName(r, r.FormValue("avatar_color"))
	if err := s.store.UpdateProfileImage(r.Context(), user.ID, image); err != nil {
		s.storeFailure(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

func (s *Server) handleUpdateProfileDetails(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		Password      string `json:"password"`
		ContactNumber string `json:"contact_number"`
		City          string `json:"city"`
		State         string `json:"state"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if VerifyPassword(req.Password, user.PasswordHash) != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}
	if err := s.store.UpdateProfileDetails(r.Context(), user.ID, req.ContactNumber, req.City, req.State); err != nil {
		s.storeFailure(w, err)
		return
	}
	httpx.WriteSuccess(w)
}

// handleStartPasswordChange opens the password-change flow. Accounts with
// 2FA get an emailed code; the rest verify their current password instead.
func (s *Server) handleStartPasswordChange(w http.ResponseWriter, r *http.Request, user *store.User) {
	s.clearFlags(user.ID)
	if !user.TwoFAEnabled {
		writeOK(w, map[string]any{"otp_required": false})
		return
	}
	code, err := s.otp.Issue(user.Email)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	s.outbox.Send(user.Email, "Password change verification", code)
	writeOK(w, map[string]any{"otp_required": true})
}

func (s *Server) handleVerifyPasswordChangeOTP(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		OTP string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.verifyCode(w, user.Email, req.OTP) {
		return
	}
	s.setFlag(user.ID, func(f *flowFlags) { f.pwdOTPVerified = true })
	httpx.WriteSuccess(w)
}

func (s *Server) handleVerifyOldPassword(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if VerifyPassword(req.Password, user.PasswordHash) != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}
	s.setFlag(user.ID, func(f *flowFlags) { f.oldPwdVerified = true })
	httpx.WriteSuccess(w)
}

func (s *Server) handleFinishPasswordChange(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		NewPassword string `json:"new_password"`
		OTP         string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if user.TwoFAEnabled {
		if !s.flagSet(user.ID, func(f flowFlags) bool { return f.pwdOTPVerified }) {
			httpx.WriteFailure(w, http.StatusForbidden, "Please verify the code first.")
			return
		}
		if req.OTP != "" && !s.verifyCode(w, user.Email, req.OTP) {
			return
		}
	} else if !s.flagSet(user.ID, func(f flowFlags) bool { return f.oldPwdVerified }) {
		httpx.WriteFailure(w, http.StatusForbidden, "Please verify your current password first.")
		return
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if err := s.store.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		s.storeFailure(w, err)
		return
	}
	s.otp.Invalidate(user.Email)
	s.clearFlags(user.ID)
	httpx.WriteSuccess(w)
}

func (s *Server) handleSend2FAOTP(w http.ResponseWriter, r *http.Request, user *store.User) {
	code, err := s.otp.Issue(user.Email)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	s.outbox.Send(user.Email, "Two-factor setting verification", code)
	httpx.WriteSuccess(w)
}

func (s *Server) handleVerify2FAOTP(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		OTP string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.verifyCode(w, user.Email, req.OTP) {
		return
	}
	s.setFlag(user.ID, func(f *flowFlags) { f.twoFAOTPVerified = true })
	httpx.WriteSuccess(w)
}

// handleToggle2FA finalizes the 2FA setting. Disabling requires the
// emailed code on top of the password; enabling just the password.
func (s *Server) handleToggle2FA(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		Status   bool   `json:"status"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if VerifyPassword(req.Password, user.PasswordHash) != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}
	if !req.Status && !s.flagSet(user.ID, func(f flowFlags) bool { return f.twoFAOTPVerified }) {
		httpx.WriteFailure(w, http.StatusForbidden, "Please verify the code first.")
		return
	}
	if err := s.store.SetTwoFA(r.Context(), user.ID, req.Status); err != nil {
		s.storeFailure(w, err)
		return
	}
	s.otp.Invalidate(user.Email)
	s.clearFlags(user.ID)
	httpx.WriteSuccess(w)
}

func (s *Server) handleRequestAccountDeletion(w http.ResponseWriter, r *http.Request, user *store.User) {
	s.clearFlags(user.ID)
	code, err := s.otp.Issue(user.Email)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	s.outbox.Send(user.Email, "Account deletion verification", code)
	httpx.WriteSuccess(w)
}

func (s *Server) handleVerifyDeletionOTP(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		OTP string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.verifyCode(w, user.Email, req.OTP) {
		return
	}
	s.setFlag(user.ID, func(f *flowFlags) { f.deleteOTPVerified = true })
	httpx.WriteSuccess(w)
}

func (s *Server) handleConfirmAccountDeletion(w http.ResponseWriter, r *http.Request, user *store.User) {
	var req struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.flagSet(user.ID, func(f flowFlags) bool { return f.deleteOTPVerified }) {
		httpx.WriteFailure(w, http.StatusForbidden, "Please verify the code first.")
		return
	}
	if VerifyPassword(req.Password, user.PasswordHash) != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Incorrect password.")
		return
	}
	if err := s.store.DeleteUser(r.Context(), user.ID); err != nil {
		s.storeFailure(w, err)
		return
	}
	s.otp.Invalidate(user.Email)
	s.clearFlags(user.ID)
	httpx.WriteSuccess(w)
}
