// Package authtest provides an in-memory auth.Identity for tests.
package authtest

import (
	"context"
	"sync"

	"github.com/kastheco/codex/auth"
)

// Fake is a scriptable auth.Identity. Set the *Err and *Result fields to
// shape responses; calls are recorded for assertions.
type Fake struct {
	mu sync.Mutex

	Session *auth.Session

	SignInErr     error
	SignUpErr     error
	SignUpPending bool
	OAuthErr      error
	SignOutErr    error
	GetSessionErr error

	// Block, when non-nil, makes SignIn, SignUp and SignInOAuth wait for it
	// to close (or for ctx to end) before answering.
	Block chan struct{}

	SignInCalls     int
	SignUpCalls     int
	OAuthCalls      int
	SignOutCalls    int
	GetSessionCalls int
	LastEmail       string
	LastProvider    string

	events auth.Broadcaster
}

var _ auth.Identity = (*Fake)(nil)

// NewSession returns a session for a user with the given id and email.
func NewSession(id, email string) *auth.Session {
	return &auth.Session{
		AccessToken:  "access-" + id,
		RefreshToken: "refresh-" + id,
		User:         auth.User{ID: id, Email: email},
	}
}

func (f *Fake) wait(ctx context.Context) error {
	f.mu.Lock()
	block := f.Block
	f.mu.Unlock()
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fake) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	f.mu.Lock()
	f.SignInCalls++
	f.LastEmail = email
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.SignInErr != nil {
		err := f.SignInErr
		f.mu.Unlock()
		return nil, err
	}
	sess := NewSession("user-"+email, email)
	f.Session = sess
	f.mu.Unlock()

	f.Emit(auth.EventSignedIn, sess)
	return sess, nil
}

func (f *Fake) SignUp(ctx context.Context, email, password string) (*auth.SignUpResult, error) {
	f.mu.Lock()
	f.SignUpCalls++
	f.LastEmail = email
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.SignUpErr != nil {
		err := f.SignUpErr
		f.mu.Unlock()
		return nil, err
	}
	user := auth.User{ID: "user-" + email, Email: email}
	if f.SignUpPending {
		f.mu.Unlock()
		return &auth.SignUpResult{User: user, PendingVerification: true}, nil
	}
	sess := NewSession(user.ID, email)
	f.Session = sess
	f.mu.Unlock()

	f.Emit(auth.EventSignedIn, sess)
	return &auth.SignUpResult{Session: sess, User: user}, nil
}

func (f *Fake) SignInOAuth(ctx context.Context, provider string) (*auth.Session, error) {
	f.mu.Lock()
	f.OAuthCalls++
	f.LastProvider = provider
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.OAuthErr != nil {
		err := f.OAuthErr
		f.mu.Unlock()
		return nil, err
	}
	sess := NewSession("oauth-user", "oauth@example.com")
	f.Session = sess
	f.mu.Unlock()

	f.Emit(auth.EventSignedIn, sess)
	return sess, nil
}

func (f *Fake) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.SignOutCalls++
	if f.SignOutErr != nil {
		err := f.SignOutErr
		f.mu.Unlock()
		return err
	}
	f.Session = nil
	f.mu.Unlock()

	f.Emit(auth.EventSignedOut, nil)
	return nil
}

func (f *Fake) GetSession(ctx context.Context) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetSessionCalls++
	if f.GetSessionErr != nil {
		return nil, f.GetSessionErr
	}
	return f.Session, nil
}

func (f *Fake) OnAuthStateChange(l auth.Listener) *auth.Subscription {
	return f.events.Subscribe(l)
}

// Emit pushes a state change to subscribers, as the real client does after
// a successful call or when another process changes the session.
func (f *Fake) Emit(event auth.Event, sess *auth.Session) {
	f.events.Emit(auth.StateChange{Event: event, Session: sess})
}

// SetSession replaces the session returned by GetSession without notifying.
func (f *Fake) SetSession(sess *auth.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Session = sess
}

// Calls returns a snapshot of the call counters.
func (f *Fake) Calls() (signIn, signUp, oauth, signOut int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SignInCalls, f.SignUpCalls, f.OAuthCalls, f.SignOutCalls
}
