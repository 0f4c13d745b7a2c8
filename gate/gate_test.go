package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kastheco/codex/auth"
	"github.com/kastheco/codex/auth/authtest"
	"github.com/kastheco/codex/catalog"
	"github.com/kastheco/codex/session"
)

func TestActivate_AuthenticatedOpensExactURL(t *testing.T) {
	snap := session.Snapshot{Status: session.StatusAuthenticated, UserID: "u-1"}
	for _, item := range catalog.List() {
		t.Run(item.Name, func(t *testing.T) {
			act := Activate(item, snap)
			assert.Equal(t, OpenExternal, act.Kind)
			assert.Equal(t, item.URL, act.URL)
		})
	}
}

func TestActivate_NotAuthenticatedPrompts(t *testing.T) {
	snaps := map[string]session.Snapshot{
		"anonymous":           session.Anonymous(),
		"unknown":             {},
		"authenticated no id": {Status: session.StatusAuthenticated},
	}
	for name, snap := range snaps {
		t.Run(name, func(t *testing.T) {
			for _, item := range catalog.List() {
				act := Activate(item, snap)
				assert.Equal(t, PromptAuth, act.Kind, item.Name)
				assert.Empty(t, act.URL)
			}
			assert.False(t, Allows(snap))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "open", OpenExternal.String())
	assert.Equal(t, "prompt-auth", PromptAuth.String())
}

// Anonymous visitor activates BrandName, signs in, and activates it again.
func TestActivate_SignInScenario(t *testing.T) {
	fake := &authtest.Fake{}
	obs := session.NewObserver(fake)
	defer obs.Close()

	changes := make(chan session.Change, 8)
	obs.OnChange(func(c session.Change) { changes <- c })
	obs.Start(context.Background())

	wait := func() session.Change {
		select {
		case c := <-changes:
			return c
		case <-time.After(2 * time.Second):
			t.Fatal("no session change")
			return session.Change{}
		}
	}
	require.Equal(t, auth.EventInitialSession, wait().Event)

	item, ok := catalog.Lookup("BrandName")
	require.True(t, ok)
	assert.Equal(t, Action{Kind: PromptAuth}, Activate(item, obs.Current()))

	_, err := fake.SignIn(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, auth.EventSignedIn, wait().Event)

	act := Activate(item, obs.Current())
	assert.Equal(t, OpenExternal, act.Kind)
	assert.Equal(t, "https://chatgpt.com/g/g-69081c7f81ac8191b0a197d5b0b35c11-brandname-codex", act.URL)
}
