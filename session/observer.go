// Package session owns the application's view of who is signed in. The
// Observer is the single writer of that state; everything else reads
// snapshots or subscribes to changes.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/kastheco/codex/auth"
	"github.com/kastheco/codex/log"
)

// Status is the coarse session state.
type Status int

const (
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session.
type Snapshot struct {
	Status Status
	UserID string
	Email  string
}

// Authenticated reports whether the snapshot carries a signed-in user.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.UserID != ""
}

// Anonymous is the signed-out snapshot.
func Anonymous() Snapshot {
	return Snapshot{Status: StatusAnonymous}
}

// FromSession converts an identity session into a snapshot. A nil or
// user-less session is anonymous.
func FromSession(sess *auth.Session) Snapshot {
	if !sess.Valid() {
		return Anonymous()
	}
	return Snapshot{
		Status: StatusAuthenticated,
		UserID: sess.User.ID,
		Email:  sess.User.Email,
	}
}

// Change is delivered to listeners after the snapshot has been updated.
type Change struct {
	Event    auth.Event
	Snapshot Snapshot
}

// Listener is invoked on the observer's dispatch goroutine.
type Listener func(Change)

type notification struct {
	event auth.Event
	sess  *auth.Session
}

// Observer tracks the identity service's session and fans changes out to
// listeners in the order the service emitted them.
type Observer struct {
	identity auth.Identity

	mu   sync.RWMutex
	snap Snapshot

	lmu       sync.Mutex
	nextID    int
	order     []int
	listeners map[int]Listener

	qmu    sync.Mutex
	queue  []notification
	signal chan struct{}

	sub       *auth.Subscription
	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// NewObserver returns an observer in the Unknown state. Call Start to begin
// tracking.
func NewObserver(identity auth.Identity) *Observer {
	return &Observer{
		identity:  identity,
		listeners: make(map[int]Listener),
		signal:    make(chan struct{}, 1),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Start subscribes to the identity service and resolves the Unknown state
// with an initial session query in the background.
func (o *Observer) Start(ctx context.Context) {
	o.startOnce.Do(func() {
		o.sub = o.identity.OnAuthStateChange(func(c auth.StateChange) {
			o.enqueue(notification{event: c.Event, sess: c.Session})
		})
		go o.dispatch()
		go o.resolveInitial(ctx)
	})
}

func (o *Observer) resolveInitial(ctx context.Context) {
	sess, err := o.identity.GetSession(ctx)
	if err != nil {
		log.WarningLog.Printf("initial session lookup failed, treating as anonymous: %v", err)
		sess = nil
	}
	o.enqueue(notification{event: auth.EventInitialSession, sess: sess})
}

// Current returns the last known snapshot.
func (o *Observer) Current() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snap
}

// OnChange registers l and returns a function that removes it.
func (o *Observer) OnChange(l Listener) (unsubscribe func()) {
	o.lmu.Lock()
	id := o.nextID
	o.nextID++
	o.order = append(o.order, id)
	o.listeners[id] = l
	o.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.lmu.Lock()
			defer o.lmu.Unlock()
			delete(o.listeners, id)
			for i, v := range o.order {
				if v == id {
					o.order = append(o.order[:i], o.order[i+1:]...)
					break
				}
			}
		})
	}
}

// SignOut ends the session with the identity service. Failures come back as
// *auth.AuthError and leave the state untouched. On success the snapshot is
// anonymous when SignOut returns; listeners hear about it from the service's
// SIGNED_OUT notification on the dispatch goroutine.
func (o *Observer) SignOut(ctx context.Context) error {
	if err := o.identity.SignOut(ctx); err != nil {
		if ae, ok := auth.AsAuthError(err); ok {
			return ae
		}
		return &auth.AuthError{Code: "sign_out_failed", Message: fmt.Sprintf("sign out: %v", err), Err: err}
	}
	o.mu.Lock()
	o.snap = Anonymous()
	o.mu.Unlock()
	return nil
}

// Close unsubscribes from the identity service and stops delivery. Pending
// notifications are dropped.
func (o *Observer) Close() {
	o.closeOnce.Do(func() {
		// Claim startOnce so a later Start is a no-op.
		o.startOnce.Do(func() { close(o.stopped) })
		o.sub.Unsubscribe()
		close(o.done)
		<-o.stopped
	})
}

func (o *Observer) enqueue(n notification) {
	o.qmu.Lock()
	o.queue = append(o.queue, n)
	o.qmu.Unlock()
	select {
	case o.signal <- struct{}{}:
	default:
	}
}

func (o *Observer) pop() (notification, bool) {
	o.qmu.Lock()
	defer o.qmu.Unlock()
	if len(o.queue) == 0 {
		return notification{}, false
	}
	n := o.queue[0]
	o.queue[0] = notification{}
	o.queue = o.queue[1:]
	return n, true
}

func (o *Observer) dispatch() {
	defer close(o.stopped)
	for {
		select {
		case <-o.done:
			return
		case <-o.signal:
		}
		for {
			select {
			case <-o.done:
				return
			default:
			}
			n, ok := o.pop()
			if !ok {
				break
			}
			o.apply(n)
		}
	}
}

func (o *Observer) apply(n notification) {
	next := FromSession(n.sess)

	o.mu.Lock()
	// A real notification that arrived while the initial lookup was in
	// flight is newer than the lookup's answer.
	if n.event == auth.EventInitialSession && o.snap.Status != StatusUnknown {
		o.mu.Unlock()
		return
	}
	o.snap = next
	o.mu.Unlock()

	log.InfoLog.Printf("session %s: %s", n.event, next.Status)

	o.lmu.Lock()
	targets := make([]Listener, 0, len(o.order))
	for _, id := range o.order {
		targets = append(targets, o.listeners[id])
	}
	o.lmu.Unlock()

	change := Change{Event: n.event, Snapshot: next}
	for _, l := range targets {
		l(change)
	}
}
