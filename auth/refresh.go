package auth

import (
	"context"
	"time"

	"github.com/kastheco/codex/log"
)

const (
	// refreshLead is how long before expiry AutoRefresh renews the token.
	refreshLead = time.Minute
	// retryDelay spaces out attempts after a failed refresh.
	retryDelay = 30 * time.Second
	// minRefreshGap is the shortest wait between two successful refreshes.
	// Tokens that live less than refreshLead would otherwise be renewed in
	// a tight loop.
	minRefreshGap = retryDelay
)

// AutoRefresh keeps the session fresh until ctx is done. It renews the access
// token shortly before it expires and ends the session when the service
// rejects the refresh token.
func (c *Client) AutoRefresh(ctx context.Context) {
	var floor time.Duration
	for {
		wait, ok := c.nextRefresh(floor)
		var timer <-chan time.Time
		if ok {
			timer = time.After(wait)
		}

		select {
		case <-ctx.Done():
			return
		case <-c.wake:
			continue
		case <-timer:
		}

		floor = 0
		if _, err := c.refresh(ctx, refreshLead); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WarningLog.Printf("token refresh failed, retrying in %s: %v", retryDelay, err)
			select {
			case <-ctx.Done():
				return
			case <-c.wake:
			case <-time.After(retryDelay):
			}
			continue
		}
		floor = minRefreshGap
	}
}

// nextRefresh returns how long until the current session should be renewed,
// never less than floor. ok is false when there is nothing to renew.
func (c *Client) nextRefresh(floor time.Duration) (time.Duration, bool) {
	sess := c.current()
	if sess == nil || sess.RefreshToken == "" || sess.ExpiresAt.IsZero() {
		return 0, false
	}
	wait := sess.ExpiresAt.Add(-refreshLead).Sub(c.now())
	if wait < floor {
		wait = floor
	}
	return wait, true
}
