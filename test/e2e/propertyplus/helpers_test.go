package propertyplus_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propertyplus/propclient/internal/stub"
	"github.com/propertyplus/propclient/internal/stub/store"
	"github.com/propertyplus/propclient/pkg/propsdk"
)

const testPassword = "Str0ng!pass"

var accountSeq atomic.Int64

// setupStub runs the in-process backend over httptest and returns an SDK
// client pointed at it plus the stub for outbox access.
func setupStub(t *testing.T) (*propsdk.Client, *stub.Server) {
	t.Helper()
	st, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv, err := stub.New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return propsdk.NewClient(ts.URL), srv
}

// freshAccount returns a unique email/username pair so tests never trip
// over each other's rate-limit buckets or uniqueness checks.
func freshAccount() (email, username string) {
	n := accountSeq.Add(1)
	return fmt.Sprintf("user%d@example.com", n), fmt.Sprintf("user%d", n)
}

// lastCode reads the most recent code mailed to an address.
func lastCode(t *testing.T, srv *stub.Server, email string) string {
	t.Helper()
	mail, ok := srv.Outbox().Last(email)
	require.True(t, ok, "no mail recorded for %s", email)
	return mail.Code
}

// registerUser walks the full signup flow through the API.
func registerUser(t *testing.T, client *propsdk.Client, srv *stub.Server, email, username string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, client.SendSignupOTP(ctx, email))
	require.NoError(t, client.VerifySignupOTP(ctx, email, lastCode(t, srv, email)))

	require.NoError(t, client.Register(ctx, propsdk.RegisterRequest{
		Email:         email,
		Username:      username,
		Password:      testPassword,
		FullName:      "Test User",
		Role:          "seller",
		DateOfBirth:   "1995-04-02",
		ContactNumber: "9876543210",
		City:          "Mumbai",
		State:         "Maharashtra",
		AvatarColor:   "teal",
	}))
}

// loginUser logs a registered, non-2FA account in.
func loginUser(t *testing.T, client *propsdk.Client, email string) *propsdk.Session {
	t.Helper()
	result, err := client.Login(context.Background(), email, testPassword)
	require.NoError(t, err)
	require.False(t, result.TwoFactorPending)
	require.NotNil(t, result.Session)
	return result.Session
}

// listingFields is a draft that passes every validation rule.
func listingFields() map[string]string {
	return map[string]string{
		"title":         "2BHK in Andheri West",
		"property_type": "Apartment",
		"price":         "7500000",
		"built_up_area": "1000",
		"carpet_area":   "900",
		"floor_no":      "3",
		"total_floors":  "7",
		"furnishing":    "Semi-furnished",
		"address":       "14 Veera Desai Road",
		"city":          "Mumbai",
		"state":         "Maharashtra",
		"pincode":       "400053",
		"contact_phone": "9876543210",
		"description":   "Bright corner flat near the metro.",
	}
}
