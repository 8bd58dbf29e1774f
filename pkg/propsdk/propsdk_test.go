package propsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/propertyplus/propclient/pkg/propsdk"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func writeJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func loginServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"token":   token,
			"user":    map[string]any{"id": 1, "username": "alice", "email": "alice@example.com"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success yields a live session", func(t *testing.T) {
		srv := loginServer(t, testToken(t, time.Hour))
		c := propsdk.NewClient(srv.URL)

		res, err := c.Login(context.Background(), "alice@example.com", "hunter42!")
		require.NoError(t, err)
		require.False(t, res.TwoFactorPending)
		require.NotNil(t, res.Session)
		require.False(t, res.Session.Expired())
		require.Equal(t, "alice", res.Session.User().Username)
	})

	t.Run("near-expiry token reports expired", func(t *testing.T) {
		srv := loginServer(t, testToken(t, 10*time.Second))
		c := propsdk.NewClient(srv.URL)

		res, err := c.Login(context.Background(), "alice@example.com", "hunter42!")
		require.NoError(t, err)
		require.True(t, res.Session.Expired(), "inside the 30s buffer counts as expired")
	})

	t.Run("rejection carries the backend message verbatim", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": false, "message": "Invalid email or password",
			})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := propsdk.NewClient(srv.URL)
		_, err := c.Login(context.Background(), "alice@example.com", "wrong")
		require.Error(t, err)
		require.True(t, propsdk.IsRejection(err))
		require.False(t, propsdk.IsTransport(err))
		require.Equal(t, "Invalid email or password", err.Error())
	})

	t.Run("2FA accounts come back pending", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": true, "otp_required": true,
			})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := propsdk.NewClient(srv.URL)
		res, err := c.Login(context.Background(), "alice@example.com", "hunter42!")
		require.NoError(t, err)
		require.True(t, res.TwoFactorPending)
		require.Nil(t, res.Session)
	})
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	c := propsdk.NewClient(srv.URL)
	err := c.SendSignupOTP(context.Background(), "alice@example.com")
	require.Error(t, err)
	require.True(t, propsdk.IsTransport(err))
	require.False(t, propsdk.IsRejection(err))
	require.Contains(t, err.Error(), "Connection failed")
}

func TestStatusCodesDoNotDriveControlFlow(t *testing.T) {
	t.Parallel()

	// The backend's verdict lives in the success field, even when the
	// status code disagrees.
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/send-otp", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"success": true})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := propsdk.NewClient(srv.URL)
	require.NoError(t, c.SendSignupOTP(context.Background(), "alice@example.com"))
}

func TestCheckUsername(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/check-username", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		writeJSON(t, w, http.StatusOK, map[string]any{"exists": payload["username"] == "alice"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := propsdk.NewClient(srv.URL)

	exists, err := c.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = c.CheckUsername(context.Background(), "bob")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestCities(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cities/{state}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("state") == "Maharashtra" {
			writeJSON(t, w, http.StatusOK, []string{"Mumbai", "Pune"})
			return
		}
		writeJSON(t, w, http.StatusOK, []string{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := propsdk.NewClient(srv.URL)

	cities, err := c.Cities(context.Background(), "Maharashtra")
	require.NoError(t, err)
	require.Equal(t, []string{"Mumbai", "Pune"}, cities)

	cities, err = c.Cities(context.Background(), "Atlantis")
	require.NoError(t, err)
	require.Empty(t, cities)
}

func TestAddPropertyMultipart(t *testing.T) {
	t.Parallel()

	token := testToken(t, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true, "token": token, "user": map[string]any{"id": 1},
		})
	})
	mux.HandleFunc("POST /property/add", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "2BHK in Andheri West", r.FormValue("title"))

		file, header, err := r.FormFile("images")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "front.jpg", header.Filename)

		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "property_id": 42})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := propsdk.NewClient(srv.URL)
	res, err := c.Login(context.Background(), "alice@example.com", "hunter42!")
	require.NoError(t, err)

	id, err := res.Session.AddProperty(context.Background(),
		map[string]string{"title": "2BHK in Andheri West"},
		[]propsdk.FilePart{{Field: "images", Name: "front.jpg", Content: []byte{0xFF, 0xD8}}},
	)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestNotificationCount(t *testing.T) {
	t.Parallel()

	token := testToken(t, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notifications/count", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "count": 5})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := propsdk.NewClient(srv.URL)
	sess, err := c.NewSessionFromToken(token, propsdk.User{ID: 1})
	require.NoError(t, err)

	count, err := sess.NotificationCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestSessionFromTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	c := propsdk.NewClient("http://localhost:0")
	_, err := c.NewSessionFromToken("not-a-jwt", propsdk.User{})
	require.Error(t, err)
}
