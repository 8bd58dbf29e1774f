package stub

import (
	"net/http"

	"github.com/propertyplus/propclient/internal/stub/store"
	"github.com/propertyplus/propclient/pkg/httpx"
)

func (s *Server) handleSendSignupOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "Email is required.")
		return
	}
	exists, err := s.store.EmailExists(r.Context(), req.Email)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if exists {
		httpx.WriteFailure(w, http.StatusConflict, "Email already registered.")
		return
	}
	s.sendCode(w, req.Email, "Verify your email")
}

func (s *Server) handleVerifySignupOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.verifyCode(w, req.Email, req.OTP) {
		return
	}
	s.mu.Lock()
	s.signupVerified[req.Email] = true
	s.mu.Unlock()
	httpx.WriteSuccess(w)
}

func (s *Server) handleCheckUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	exists, err := s.store.UsernameExists(r.Context(), req.Username)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	// Bare shape, no envelope; the uniqueness widget reads it directly.
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Malformed request.")
		return
	}
	f := r.FormValue
	email := f("email")

	s.mu.Lock()
	verified := s.signupVerified[email]
	s.mu.Unlock()
	if !verified {
		httpx.WriteFailure(w, http.StatusForbidden, "Please verify your email first.")
		return
	}

	if taken, err := s.store.UsernameExists(r.Context(), f("username")); err != nil {
		s.storeFailure(w, err)
		return
	} else if taken {
		httpx.WriteFailure(w, http.StatusConflict, "Username is already taken.")
		return
	}
	if exists, err := s.store.EmailExists(r.Context(), email); err != nil {
		s.storeFailure(w, err)
		return
	} else if exists {
		httpx.WriteFailure(w, http.StatusConflict, "Email already registered.")
		return
	}

	hash, err := HashPassword(f("password"))
	if err != nil {
		s.storeFailure(w, err)
		return
	}

	image := profileImageName(r, f("avatar_color"))
	_, err = s.store.CreateUser(r.Context(), &store.User{
		Username:      f("username"),
		Email:         email,
		PasswordHash:  hash,
		FullName:      f("full_name"),
		Role:          f("role"),
		DateOfBirth:   f("dob"),
		ContactNumber: f("contact_number"),
		City:          f("city"),
		State:         f("state"),
		ProfileImage:  image,
	})
	if err != nil {
		s.storeFailure(w, err)
		return
	}

	s.otp.Invalidate(email)
	s.mu.Lock()
	delete(s.signupVerified, email)
	s.mu.Unlock()
	httpx.WriteSuccess(w)
}

// profileImageName records the uploaded file's name, or the generated
// avatar's name when only a color was picked.
func profileImageName(r *http.Request, avatarColor string) string {
	if _, header, err := r.FormFile("profile_image"); err == nil {
		return header.Filename
	}
	if avatarColor == "" {
		avatarColor = "gray"
	}
	return "avatar_" + avatarColor + ".svg"
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := s.store.UserByIdentifier(r.Context(), req.Identifier)
	if err != nil || VerifyPassword(req.Password, user.PasswordHash) != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if user.TwoFAEnabled {
		code, err := s.otp.Issue(user.Email)
		if err != nil {
			s.storeFailure(w, err)
			return
		}
		s.outbox.Send(user.Email, "Your login code", code)
		writeOK(w, map[string]any{"otp_required": true})
		return
	}
	s.writeSession(w, user)
}

func (s *Server) handleLoginVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		OTP        string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := s.store.UserByIdentifier(r.Context(), req.Identifier)
	if err != nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !s.verifyCode(w, user.Email, req.OTP) {
		return
	}
	s.otp.Invalidate(user.Email)
	s.writeSession(w, user)
}

func (s *Server) writeSession(w http.ResponseWriter, user *store.User) {
	token, err := mintToken(s.secret, user.ID, user.Email, timeNow())
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	writeOK(w, map[string]any{
		"token": token,
		"user":  apiUser(user),
	})
}

func (s *Server) handleSendForgotOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	exists, err := s.store.EmailExists(r.Context(), req.Email)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if !exists {
		httpx.WriteFailure(w, http.StatusNotFound, "No account exists with this email.")
		return
	}
	s.sendCode(w, req.Email, "Reset your password")
}

func (s *Server) handleVerifyForgotOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.verifyCode(w, req.Email, req.OTP) {
		return
	}
	s.mu.Lock()
	s.forgotVerified[req.Email] = true
	s.mu.Unlock()
	httpx.WriteSuccess(w)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	verified := s.forgotVerified[req.Email]
	s.mu.Unlock()
	if !verified {
		httpx.WriteFailure(w, http.StatusForbidden, "Please verify the code first.")
		return
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	if err := s.store.UpdatePasswordByEmail(r.Context(), req.Email, hash); err != nil {
		s.storeFailure(w, err)
		return
	}
	s.otp.Invalidate(req.Email)
	s.mu.Lock()
	delete(s.forgotVerified, req.Email)
	s.mu.Unlock()
	httpx.WriteSuccess(w)
}

// sendCode issues (or re-issues inside the reuse window) a code and
// records it on the outbox.
func (s *Server) sendCode(w http.ResponseWriter, email, subject string) {
	code, err := s.otp.Issue(email)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	s.outbox.Send(email, subject, code)
	httpx.WriteSuccess(w)
}

// verifyCode checks a submitted code, writing the rejection itself when
// the code is wrong or expired.
func (s *Server) verifyCode(w http.ResponseWriter, email, code string) bool {
	switch err := s.otp.Verify(email, code); err {
	case nil:
		return true
	case errOTPExpired:
		httpx.WriteFailure(w, http.StatusUnauthorized, "OTP expired. Please request a new one.")
	default:
		httpx.WriteFailure(w, http.StatusUnauthorized, "Invalid OTP. Please try again.")
	}
	return false
}

// apiUser maps a stored account onto the wire shape.
func apiUser(u *store.User) map[string]any {
	return map[string]any{
		"id":             u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"full_name":      u.FullName,
		"role":           u.Role,
		"contact_number": u.ContactNumber,
		"city":           u.City,
		"state":          u.State,
		"profile_image":  u.ProfileImage,
		"is_2fa_enabled": u.TwoFAEnabled,
	}
}
