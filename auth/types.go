// Package auth is the client for the hosted identity service. It signs users
// in and out, caches the resulting session, and notifies subscribers of every
// session change in the order the changes happen.
package auth

import (
	"context"
	"sync"
	"time"
)

// User is the identity attached to a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated identity with its tokens.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Valid reports whether the session carries a user identifier.
func (s *Session) Valid() bool {
	return s != nil && s.User.ID != ""
}

// ExpiresWithin reports whether the access token expires within d of now.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(d).Before(s.ExpiresAt)
}

// SignUpResult is the outcome of a registration. When the service requires
// email confirmation, Session is nil and PendingVerification is set.
type SignUpResult struct {
	Session             *Session
	User                User
	PendingVerification bool
}

// Event names a session transition.
type Event string

const (
	EventInitialSession Event = "INITIAL_SESSION"
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// StateChange is delivered to subscribers. Session is nil after sign-out.
type StateChange struct {
	Event   Event
	Session *Session
}

// Listener receives state changes. Listeners run on the goroutine that caused
// the change and must not block.
type Listener func(StateChange)

// Identity is the contract the rest of the application needs from the
// identity service.
type Identity interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)
	// SignInOAuth runs a browser-based federated login. It returns when the
	// provider redirects back or ctx is cancelled.
	SignInOAuth(ctx context.Context, provider string) (*Session, error)
	SignOut(ctx context.Context) error
	// GetSession returns the current session, or nil when signed out.
	GetSession(ctx context.Context) (*Session, error)
	OnAuthStateChange(l Listener) *Subscription
}

// Subscription is the handle returned by OnAuthStateChange.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewSubscription wraps a cancel function. Unsubscribe calls it at most once.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe stops delivery to the listener.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Broadcaster fans state changes out to listeners in registration order.
// Emit calls are serialized, so every listener sees changes in emission order.
type Broadcaster struct {
	mu        sync.Mutex
	emitMu    sync.Mutex
	nextID    int
	ids       []int
	listeners map[int]Listener
}

// Subscribe registers l.
func (b *Broadcaster) Subscribe(l Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners == nil {
		b.listeners = make(map[int]Listener)
	}
	id := b.nextID
	b.nextID++
	b.ids = append(b.ids, id)
	b.listeners[id] = l
	return NewSubscription(func() { b.remove(id) })
}

func (b *Broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, id)
	for i, v := range b.ids {
		if v == id {
			b.ids = append(b.ids[:i], b.ids[i+1:]...)
			break
		}
	}
}

// Emit delivers change to every registered listener.
func (b *Broadcaster) Emit(change StateChange) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()

	b.mu.Lock()
	targets := make([]Listener, 0, len(b.ids))
	for _, id := range b.ids {
		targets = append(targets, b.listeners[id])
	}
	b.mu.Unlock()

	for _, l := range targets {
		l(change)
	}
}
