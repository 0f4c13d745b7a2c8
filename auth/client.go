package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kastheco/codex/internal/browser"
	"github.com/kastheco/codex/log"
)

const (
	defaultTimeout = 15 * time.Second
	// Tokens closer than this to expiry are refreshed before being handed out.
	expiryMargin = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	// BaseURL is the project URL, e.g. https://abc.supabase.co.
	BaseURL string
	// APIKey is the public anon key sent with every request.
	APIKey string
	// Store caches the session between runs. Nil keeps it in memory.
	Store SessionStore
	// HTTPClient defaults to a client with a 15s timeout.
	HTTPClient *http.Client
	// OpenBrowser launches the OAuth consent page. Defaults to browser.Open.
	OpenBrowser browser.Opener
	// CallbackPort is the loopback port for OAuth redirects. Zero picks a
	// free port, which only works if the provider allows any redirect port.
	CallbackPort int
	// Now is overridable for tests.
	Now func() time.Time
}

// Client talks to the identity service's REST API.
type Client struct {
	baseURL      string
	apiKey       string
	http         *http.Client
	store        SessionStore
	openBrowser  browser.Opener
	callbackPort int
	now          func() time.Time

	refreshMu sync.Mutex

	mu      sync.Mutex
	session *Session
	loaded  bool
	// wake is signalled whenever the session changes so AutoRefresh can
	// recompute its deadline.
	wake chan struct{}

	events Broadcaster
}

var _ Identity = (*Client)(nil)

// NewClient returns a client for the service at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("identity service URL is not configured")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid identity service URL: %w", err)
	}
	if opts.APIKey == "" {
		return nil, errors.New("identity service key is not configured")
	}

	c := &Client{
		baseURL:      base,
		apiKey:       opts.APIKey,
		http:         opts.HTTPClient,
		store:        opts.Store,
		openBrowser:  opts.OpenBrowser,
		callbackPort: opts.CallbackPort,
		now:          opts.Now,
		wake:         make(chan struct{}, 1),
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.store == nil {
		c.store = &MemoryStore{}
	}
	if c.openBrowser == nil {
		c.openBrowser = browser.Open
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// OnAuthStateChange registers l for every subsequent session change.
func (c *Client) OnAuthStateChange(l Listener) *Subscription {
	return c.events.Subscribe(l)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the body of every grant. Sign-up without auto-confirm
// returns the bare user at the top level instead.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         *User  `json:"user"`

	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignIn exchanges an email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var tr tokenResponse
	q := url.Values{"grant_type": {"password"}}
	if err := c.do(ctx, http.MethodPost, "/token", q, credentials{email, password}, "", &tr); err != nil {
		return nil, err
	}
	sess, err := c.sessionFromToken(tr)
	if err != nil {
		return nil, err
	}
	c.setSession(sess)
	log.InfoLog.Printf("signed in as %s", sess.User.Email)
	c.events.Emit(StateChange{Event: EventSignedIn, Session: sess})
	return sess, nil
}

// SignUp registers a new account. When the service requires email
// confirmation no session is established.
func (c *Client) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	var tr tokenResponse
	if err := c.do(ctx, http.MethodPost, "/signup", nil, credentials{email, password}, "", &tr); err != nil {
		return nil, err
	}

	if tr.AccessToken == "" {
		user := User{ID: tr.ID, Email: tr.Email}
		if tr.User != nil {
			user = *tr.User
		}
		log.InfoLog.Printf("registration for %s awaits email confirmation", user.Email)
		return &SignUpResult{User: user, PendingVerification: true}, nil
	}

	sess, err := c.sessionFromToken(tr)
	if err != nil {
		return nil, err
	}
	c.setSession(sess)
	log.InfoLog.Printf("registered and signed in as %s", sess.User.Email)
	c.events.Emit(StateChange{Event: EventSignedIn, Session: sess})
	return &SignUpResult{Session: sess, User: sess.User}, nil
}

// SignOut revokes the session with the service and forgets it locally. A
// session the service no longer recognizes still counts as signed out.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.ensureLoadedLocked()
	sess := c.session
	c.mu.Unlock()

	if sess != nil {
		err := c.do(ctx, http.MethodPost, "/logout", nil, nil, sess.AccessToken, nil)
		if err != nil {
			ae, ok := AsAuthError(err)
			if !ok || !sessionGone(ae) {
				return err
			}
			log.WarningLog.Printf("sign out: session already invalid: %v", ae)
		}
	}

	c.setSession(nil)
	c.events.Emit(StateChange{Event: EventSignedOut})
	return nil
}

func sessionGone(ae *AuthError) bool {
	switch ae.Status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

// refreshRejected reports whether the service turned the refresh token down.
// Server errors, throttling and unreadable responses leave the session for a
// later retry.
func refreshRejected(ae *AuthError) bool {
	switch ae.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

// GetSession returns the current session, refreshing it first when the
// access token is about to expire. A refresh token the service rejects ends
// the session; any other refresh failure is returned and the session kept.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	c.ensureLoadedLocked()
	sess := c.session
	c.mu.Unlock()

	if sess == nil {
		return nil, nil
	}
	if !sess.ExpiresWithin(c.now(), expiryMargin) {
		return sess, nil
	}
	return c.refresh(ctx, expiryMargin)
}

// Refresh trades the refresh token for a new session. It returns (nil, nil)
// when the service rejects the refresh token and the session ends.
func (c *Client) Refresh(ctx context.Context) (*Session, error) {
	return c.refresh(ctx, -1)
}

// refresh renews the session if it expires within the given window. A
// negative window always renews.
func (c *Client) refresh(ctx context.Context, within time.Duration) (*Session, error) {
	force := within < 0
	// Refresh tokens are single use; concurrent refreshes would revoke each other.
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	sess := c.current()
	if sess == nil {
		if force {
			return nil, &AuthError{Code: "session_missing", Message: "no session to refresh"}
		}
		return nil, nil
	}
	if sess.RefreshToken == "" {
		if force {
			return nil, &AuthError{Code: "session_missing", Message: "session has no refresh token"}
		}
		c.setSession(nil)
		c.events.Emit(StateChange{Event: EventSignedOut})
		return nil, nil
	}
	if !force && !sess.ExpiresWithin(c.now(), within) {
		return sess, nil
	}

	var tr tokenResponse
	q := url.Values{"grant_type": {"refresh_token"}}
	body := map[string]string{"refresh_token": sess.RefreshToken}
	if err := c.do(ctx, http.MethodPost, "/token", q, body, "", &tr); err != nil {
		if ae, ok := AsAuthError(err); ok && refreshRejected(ae) {
			log.WarningLog.Printf("refresh rejected, ending session: %v", ae)
			c.setSession(nil)
			c.events.Emit(StateChange{Event: EventSignedOut})
			return nil, nil
		}
		return nil, err
	}

	next, err := c.sessionFromToken(tr)
	if err != nil {
		return nil, err
	}
	c.setSession(next)
	c.events.Emit(StateChange{Event: EventTokenRefreshed, Session: next})
	return next, nil
}

func (c *Client) ensureLoadedLocked() {
	if c.loaded {
		return
	}
	c.loaded = true
	sess, err := c.store.Load()
	if err != nil {
		log.WarningLog.Printf("could not load cached session: %v", err)
		return
	}
	if sess.Valid() {
		c.session = sess
	}
}

func (c *Client) setSession(sess *Session) {
	c.mu.Lock()
	c.session = sess
	c.loaded = true
	c.mu.Unlock()

	var err error
	if sess == nil {
		err = c.store.Clear()
	} else {
		err = c.store.Save(sess)
	}
	if err != nil {
		log.ErrorLog.Printf("could not persist session: %v", err)
	}

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Client) current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoadedLocked()
	return c.session
}

// sessionFromToken builds a session, falling back to the access token's
// claims for anything the response left out.
func (c *Client) sessionFromToken(tr tokenResponse) (*Session, error) {
	if tr.AccessToken == "" {
		return nil, &AuthError{Code: "invalid_response", Message: "identity service returned no access token"}
	}
	sess := &Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	if tr.User != nil {
		sess.User = *tr.User
	}

	switch {
	case tr.ExpiresAt > 0:
		sess.ExpiresAt = time.Unix(tr.ExpiresAt, 0)
	case tr.ExpiresIn > 0:
		sess.ExpiresAt = c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	if sess.User.ID == "" || sess.User.Email == "" || sess.ExpiresAt.IsZero() {
		if claims, err := parseAccessToken(tr.AccessToken); err == nil {
			if sess.User.ID == "" {
				sess.User.ID = claims.Subject
			}
			if sess.User.Email == "" {
				sess.User.Email = claims.Email
			}
			if sess.ExpiresAt.IsZero() {
				sess.ExpiresAt = claims.expiry()
			}
		}
	}

	if !sess.Valid() {
		return nil, &AuthError{Code: "invalid_response", Message: "identity service returned a session without a user"}
	}
	return sess, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, bearer string, out any) error {
	u := c.baseURL + "/auth/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return networkError(strings.TrimPrefix(path, "/"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &AuthError{Status: resp.StatusCode, Code: "invalid_response", Message: "could not read identity service response", Err: err}
	}
	return nil
}
