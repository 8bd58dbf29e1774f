package stub

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/propertyplus/propclient/internal/stub/store"
	"github.com/propertyplus/propclient/pkg/httpx"
	"github.com/propertyplus/propclient/pkg/slogx"
)

// flowFlags tracks a signed-in user's progress through the multi-step
// settings verifications. The real backend keeps these in the session.
type flowFlags struct {
	pwdOTPVerified    bool
	oldPwdVerified    bool
	twoFAOTPVerified  bool
	deleteOTPVerified bool
}

// Server is the in-process PropertyPlus backend stub.
type Server struct {
	store   *store.Store
	otp     *OTPIssuer
	outbox  *Outbox
	secret  []byte
	log     *slog.Logger
	handler http.Handler

	mu             sync.Mutex
	flows          map[int64]*flowFlags
	signupVerified map[string]bool
	forgotVerified map[string]bool
}

// New wires a stub server over the given store. The logger may be nil.
func New(st *store.Store, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	issuer, err := NewOTPIssuer(nil)
	if err != nil {
		return nil, err
	}
	s := &Server{
		store:          st,
		otp:            issuer,
		outbox:         &Outbox{},
		secret:         secret,
		log:            log,
		flows:          make(map[int64]*flowFlags),
		signupVerified: make(map[string]bool),
		forgotVerified: make(map[string]bool),
	}
	s.handler = s.routes()
	return s, nil
}

// Outbox exposes the recorded "sent" emails for tests.
func (s *Server) Outbox() *Outbox { return s.outbox }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	otpLimit := httpx.RateLimitByIPAndEmail(httpx.StrictLimit)

	// Signup and login.
	mux.Handle("POST /api/send-otp", otpLimit(http.HandlerFunc(s.handleSendSignupOTP)))
	mux.HandleFunc("POST /api/verify-otp", s.handleVerifySignupOTP)
	mux.HandleFunc("POST /api/check-username", s.handleCheckUsername)
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/login/verify-otp", s.handleLoginVerifyOTP)
	mux.Handle("POST /api/send-forgot-otp", otpLimit(http.HandlerFunc(s.handleSendForgotOTP)))
	mux.HandleFunc("POST /api/verify-forgot-otp", s.handleVerifyForgotOTP)
	mux.HandleFunc("POST /api/reset-password", s.handleResetPassword)

	// Public lookups.
	mux.HandleFunc("GET /api/cities/{state}", s.handleCities)
	mux.HandleFunc("GET /api/search-suggestions", s.handleSearchSuggestions)
	mux.HandleFunc("GET /postal/pincode/{pincode}", s.handlePincodeLookup)
	mux.HandleFunc("GET /postal/postoffice/{term}", s.handlePostOfficeLookup)

	// Listings.
	mux.HandleFunc("GET /api/property/{id}", s.withUser(s.handleProperty))
	mux.HandleFunc("POST /property/add", s.withUser(s.handleAddProperty))
	mux.HandleFunc("POST /api/property/update", s.withUser(s.handleUpdateProperty))
	mux.HandleFunc("POST /api/property/delete", s.withUser(s.handleDeleteProperty))
	mux.HandleFunc("POST /api/property/save", s.withUser(s.handleToggleSave))
	mux.HandleFunc("POST /api/property/interest", s.withUser(s.handleExpressInterest))

	// Notifications.
	mux.HandleFunc("GET /api/notifications/count", s.withUser(s.handleNotificationCount))
	mux.HandleFunc("POST /api/notifications/mark-read", s.withUser(s.handleMarkNotificationsRead))
	mux.HandleFunc("POST /api/notifications/clear", s.withUser(s.handleClearNotifications))

	// Profile and settings.
	mux.HandleFunc("POST /api/update-profile-image", s.withUser(s.handleUpdateProfileImage))
	mux.HandleFunc("POST /api/update-profile-details", s.withUser(s.handleUpdateProfileDetails))
	mux.HandleFunc("POST /api/settings/change-password", s.withUser(s.handleStartPasswordChange))
	mux.HandleFunc("POST /api/settings/verify-otp-only", s.withUser(s.handleVerifyPasswordChangeOTP))
	mux.HandleFunc("POST /api/settings/verify-old-pwd", s.withUser(s.handleVerifyOldPassword))
	mux.HandleFunc("POST /api/settings/verify-pwd-final", s.withUser(s.handleFinishPasswordChange))
	mux.HandleFunc("POST /api/settings/toggle-2fa-otp", s.withUser(s.handleSend2FAOTP))
	mux.HandleFunc("POST /api/settings/verify-2fa-otp", s.withUser(s.handleVerify2FAOTP))
	mux.HandleFunc("POST /api/settings/toggle-2fa-final", s.withUser(s.handleToggle2FA))
	mux.HandleFunc("POST /api/settings/delete-account-request", s.withUser(s.handleRequestAccountDeletion))
	mux.HandleFunc("POST /api/settings/verify-otp-only-del", s.withUser(s.handleVerifyDeletionOTP))
	mux.HandleFunc("POST /api/settings/delete-account-verify", s.withUser(s.handleConfirmAccountDeletion))

	return httpx.Chain(mux, slogx.HTTPMiddleware(s.log))
}

// withUser authenticates the bearer token and hands the user to the
// handler. Per the response contract the failure still carries the
// success/message envelope.
func (s *Server) withUser(h func(http.ResponseWriter, *http.Request, *store.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			httpx.WriteFailure(w, http.StatusUnauthorized, "Please log in to continue.")
			return
		}
		userID, err := parseToken(s.secret, token)
		if err != nil {
			httpx.WriteFailure(w, http.StatusUnauthorized, "Your session has expired. Please log in again.")
			return
		}
		user, err := s.store.UserByID(r.Context(), userID)
		if err != nil {
			httpx.WriteFailure(w, http.StatusUnauthorized, "Your session has expired. Please log in again.")
			return
		}
		h(w, r, user)
	}
}

// setFlag updates one field of a user's settings-flow progress, creating
// the record on first use.
func (s *Server) setFlag(userID int64, set func(*flowFlags)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		f = &flowFlags{}
		s.flows[userID] = f
	}
	set(f)
}

// flagSet reads one field of a user's settings-flow progress.
func (s *Server) flagSet(userID int64, get func(flowFlags) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		return false
	}
	return get(*f)
}

func (s *Server) clearFlags(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, userID)
}

// decodeBody unmarshals a JSON request body, reporting a uniform failure
// on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "Malformed request.")
		return false
	}
	return true
}

// writeOK writes a success envelope with extra top-level fields merged in.
func writeOK(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	httpx.WriteJSON(w, http.StatusOK, body)
}

func (s *Server) storeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteFailure(w, http.StatusNotFound, "Not found.")
		return
	}
	s.log.Error("store operation failed", slog.Any("err", err))
	httpx.WriteFailure(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
