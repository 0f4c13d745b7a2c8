package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kastheco/codex/auth"
)

const testKey = "anon-key"

// recorder collects state changes delivered to a listener.
type recorder struct {
	mu      sync.Mutex
	changes []auth.StateChange
}

func (r *recorder) listen(c auth.StateChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func (r *recorder) events() []auth.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]auth.Event, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, c.Event)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func tokenBody(id, email string) map[string]any {
	return map[string]any{
		"access_token":  "access-" + id,
		"refresh_token": "refresh-" + id,
		"token_type":    "bearer",
		"expires_in":    3600,
		"user":          map[string]any{"id": id, "email": email},
	}
}

func newClient(t *testing.T, srv *httptest.Server, store auth.SessionStore) *auth.Client {
	t.Helper()
	c, err := auth.NewClient(auth.Options{BaseURL: srv.URL, APIKey: testKey, Store: store})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresURLAndKey(t *testing.T) {
	_, err := auth.NewClient(auth.Options{APIKey: testKey})
	assert.Error(t, err)
	_, err = auth.NewClient(auth.Options{BaseURL: "https://example.supabase.co"})
	assert.Error(t, err)
	c, err := auth.NewClient(auth.Options{BaseURL: "https://example.supabase.co/", APIKey: testKey})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSignIn_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, testKey, r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "hunter22", body["password"])

		writeJSON(w, http.StatusOK, tokenBody("u-1", "ada@example.com"))
	}))
	defer srv.Close()

	store := &auth.MemoryStore{}
	c := newClient(t, srv, store)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	sess, err := c.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "u-1", sess.User.ID)
	assert.Equal(t, "ada@example.com", sess.User.Email)
	assert.True(t, sess.ExpiresAt.After(time.Now()))
	assert.Equal(t, []auth.Event{auth.EventSignedIn}, rec.events())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-u-1", stored.AccessToken)
}

func TestSignIn_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		code    string
		message string
	}{
		{
			name:    "oauth style",
			status:  http.StatusBadRequest,
			body:    map[string]string{"error": "invalid_grant", "error_description": "Invalid login credentials"},
			code:    "invalid_grant",
			message: "Invalid login credentials",
		},
		{
			name:    "error code style",
			status:  http.StatusBadRequest,
			body:    map[string]any{"code": 400, "error_code": "email_not_confirmed", "msg": "Email not confirmed"},
			code:    "email_not_confirmed",
			message: "Email not confirmed",
		},
		{
			name:    "non json",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			code:    "",
			message: "\"upstream down\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			c := newClient(t, srv, nil)
			rec := &recorder{}
			c.OnAuthStateChange(rec.listen)

			_, err := c.SignIn(context.Background(), "ada@example.com", "wrong")
			require.Error(t, err)
			ae, ok := auth.AsAuthError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, ae.Status)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.message, ae.Message)
			assert.False(t, ae.IsNetwork())
			assert.Empty(t, rec.events())
		})
	}
}

func TestSignIn_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := newClient(t, srv, nil)
	srv.Close()

	_, err := c.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.Error(t, err)
	ae, ok := auth.AsAuthError(err)
	require.True(t, ok)
	assert.True(t, ae.IsNetwork())
}

func TestSignUp_PendingVerification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"id":                   "u-2",
			"email":                "grace@example.com",
			"confirmation_sent_at": "2026-01-01T00:00:00Z",
		})
	}))
	defer srv.Close()

	c := newClient(t, srv, nil)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	res, err := c.SignUp(context.Background(), "grace@example.com", "hunter22")
	require.NoError(t, err)
	assert.True(t, res.PendingVerification)
	assert.Nil(t, res.Session)
	assert.Equal(t, "u-2", res.User.ID)
	assert.Empty(t, rec.events())

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSignUp_AutoConfirmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tokenBody("u-3", "linus@example.com"))
	}))
	defer srv.Close()

	c := newClient(t, srv, nil)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	res, err := c.SignUp(context.Background(), "linus@example.com", "hunter22")
	require.NoError(t, err)
	assert.False(t, res.PendingVerification)
	require.NotNil(t, res.Session)
	assert.Equal(t, "u-3", res.Session.User.ID)
	assert.Equal(t, []auth.Event{auth.EventSignedIn}, rec.events())
}

func TestSignOut(t *testing.T) {
	tests := []struct {
		name         string
		logoutStatus int
	}{
		{"revoked", http.StatusNoContent},
		{"already invalid", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/logout", r.URL.Path)
				assert.Equal(t, "Bearer access-u-1", r.Header.Get("Authorization"))
				if tt.logoutStatus == http.StatusNoContent {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				writeJSON(w, tt.logoutStatus, map[string]string{"msg": "invalid JWT"})
			}))
			defer srv.Close()

			store := &auth.MemoryStore{}
			require.NoError(t, store.Save(&auth.Session{
				AccessToken:  "access-u-1",
				RefreshToken: "refresh-u-1",
				ExpiresAt:    time.Now().Add(time.Hour),
				User:         auth.User{ID: "u-1", Email: "ada@example.com"},
			}))
			c := newClient(t, srv, store)
			rec := &recorder{}
			c.OnAuthStateChange(rec.listen)

			require.NoError(t, c.SignOut(context.Background()))
			assert.Equal(t, []auth.Event{auth.EventSignedOut}, rec.events())

			sess, err := c.GetSession(context.Background())
			require.NoError(t, err)
			assert.Nil(t, sess)
			stored, err := store.Load()
			require.NoError(t, err)
			assert.Nil(t, stored)
		})
	}
}

func TestSignOut_ServerErrorKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"msg": "database unavailable"})
	}))
	defer srv.Close()

	store := &auth.MemoryStore{}
	require.NoError(t, store.Save(&auth.Session{
		AccessToken: "access-u-1",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        auth.User{ID: "u-1"},
	}))
	c := newClient(t, srv, store)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	err := c.SignOut(context.Background())
	require.Error(t, err)
	ae, ok := auth.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, "database unavailable", ae.Message)
	assert.Empty(t, rec.events())

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u-1", sess.User.ID)
}

func TestGetSession_RefreshesExpiringSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-old", body["refresh_token"])
		writeJSON(w, http.StatusOK, tokenBody("u-1", "ada@example.com"))
	}))
	defer srv.Close()

	store := &auth.MemoryStore{}
	require.NoError(t, store.Save(&auth.Session{
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		ExpiresAt:    time.Now().Add(5 * time.Second),
		User:         auth.User{ID: "u-1", Email: "ada@example.com"},
	}))
	c := newClient(t, srv, store)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "access-u-1", sess.AccessToken)
	assert.Equal(t, []auth.Event{auth.EventTokenRefreshed}, rec.events())
}

func TestGetSession_RejectedRefreshEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid Refresh Token: Already Used",
		})
	}))
	defer srv.Close()

	store := &auth.MemoryStore{}
	require.NoError(t, store.Save(&auth.Session{
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		ExpiresAt:    time.Now().Add(-time.Minute),
		User:         auth.User{ID: "u-1"},
	}))
	c := newClient(t, srv, store)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, []auth.Event{auth.EventSignedOut}, rec.events())
}

func TestGetSession_ServerErrorKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"msg": "upstream unavailable"})
	}))
	defer srv.Close()

	store := &auth.MemoryStore{}
	require.NoError(t, store.Save(&auth.Session{
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		ExpiresAt:    time.Now().Add(5 * time.Second),
		User:         auth.User{ID: "u-1"},
	}))
	c := newClient(t, srv, store)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	sess, err := c.GetSession(context.Background())
	require.Error(t, err)
	assert.Nil(t, sess)
	ae, ok := auth.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, ae.Status)
	assert.Empty(t, rec.events())

	cached, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "refresh-old", cached.RefreshToken)
}

func TestGetSession_UnreadableRefreshKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	store := &auth.MemoryStore{}
	require.NoError(t, store.Save(&auth.Session{
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		ExpiresAt:    time.Now().Add(5 * time.Second),
		User:         auth.User{ID: "u-1"},
	}))
	c := newClient(t, srv, store)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	_, err := c.GetSession(context.Background())
	require.Error(t, err)
	assert.Empty(t, rec.events())

	cached, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "access-old", cached.AccessToken)
}

func TestGetSession_FreshSessionSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer srv.Close()

	store := &auth.MemoryStore{}
	require.NoError(t, store.Save(&auth.Session{
		AccessToken: "access",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        auth.User{ID: "u-1"},
	}))
	c := newClient(t, srv, store)

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u-1", sess.User.ID)
}

func TestSignIn_FillsUserFromAccessTokenClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u-jwt",
		"email": "claims@example.com",
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": token, "refresh_token": "r"})
	}))
	defer srv.Close()

	c := newClient(t, srv, nil)
	sess, err := c.SignIn(context.Background(), "claims@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-jwt", sess.User.ID)
	assert.Equal(t, "claims@example.com", sess.User.Email)
	assert.WithinDuration(t, exp, sess.ExpiresAt, time.Second)
}

func TestSignIn_RejectsSessionWithoutUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "not-a-jwt", "expires_in": 3600})
	}))
	defer srv.Close()

	c := newClient(t, srv, nil)
	rec := &recorder{}
	c.OnAuthStateChange(rec.listen)

	_, err := c.SignIn(context.Background(), "ada@example.com", "pw")
	require.Error(t, err)
	assert.Empty(t, rec.events())
}

func TestBroadcaster_DeliversInOrderUntilUnsubscribed(t *testing.T) {
	var b auth.Broadcaster
	var order []string
	b.Subscribe(func(c auth.StateChange) { order = append(order, "first:"+string(c.Event)) })
	sub := b.Subscribe(func(c auth.StateChange) { order = append(order, "second:"+string(c.Event)) })

	b.Emit(auth.StateChange{Event: auth.EventSignedIn})
	sub.Unsubscribe()
	sub.Unsubscribe()
	b.Emit(auth.StateChange{Event: auth.EventSignedOut})

	assert.Equal(t, []string{
		"first:SIGNED_IN",
		"second:SIGNED_IN",
		"first:SIGNED_OUT",
	}, order)
}
