package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/kastheco/codex/log"
)

const callbackPath = "/callback"

// AuthorizeURL builds the consent URL for provider, redirecting back to
// redirectTo with a PKCE code.
func (c *Client) AuthorizeURL(provider, redirectTo, challenge string) string {
	params := url.Values{
		"provider":              {provider},
		"redirect_to":           {redirectTo},
		"code_challenge":        {challenge},
		"code_challenge_method": {"s256"},
	}
	return c.baseURL + "/auth/v1/authorize?" + params.Encode()
}

// SignInOAuth runs the PKCE flow: it serves a loopback callback, opens the
// provider's consent page in the browser, and exchanges the returned code.
func (c *Client) SignInOAuth(ctx context.Context, provider string) (*Session, error) {
	if provider == "" {
		return nil, &AuthError{Code: "provider_missing", Message: "no identity provider configured"}
	}
	verifier := oauth2.GenerateVerifier()
	challenge := oauth2.S256ChallengeFromVerifier(verifier)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", c.callbackPort))
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	// state ties the callback to this attempt; other local requests to the
	// port are turned away.
	state := oauth2.GenerateVerifier()
	redirectTo := fmt.Sprintf("http://127.0.0.1:%d%s?%s", port, callbackPath, url.Values{"state": {state}}.Encode())

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if subtle.ConstantTimeCompare([]byte(q.Get("state")), []byte(state)) != 1 {
			log.WarningLog.Printf("ignoring oauth callback with unknown state")
			http.Error(w, "Sign-in request not recognized", http.StatusBadRequest)
			return
		}
		if desc := firstNonEmpty(q.Get("error_description"), q.Get("error")); desc != "" {
			select {
			case errCh <- &AuthError{Status: http.StatusUnauthorized, Code: q.Get("error_code"), Message: desc}:
			default:
			}
			fmt.Fprintf(w, "Sign-in failed: %s", html.EscapeString(desc))
			return
		}
		code := q.Get("code")
		if code == "" {
			select {
			case errCh <- fmt.Errorf("no code in oauth callback: %s", r.URL.RawQuery):
			default:
			}
			fmt.Fprint(w, "Error: no authorization code received")
			return
		}
		select {
		case codeCh <- code:
		default:
		}
		fmt.Fprint(w, "Signed in. You can close this tab and return to the terminal.")
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(listener) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := c.AuthorizeURL(provider, redirectTo, challenge)
	log.InfoLog.Printf("opening %s sign-in in browser", provider)
	if err := c.openBrowser(authURL); err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrCallbackTimeout
		}
		return nil, ctx.Err()
	}

	return c.exchangeCode(ctx, code, verifier)
}

func (c *Client) exchangeCode(ctx context.Context, code, verifier string) (*Session, error) {
	var tr tokenResponse
	q := url.Values{"grant_type": {"pkce"}}
	body := map[string]string{"auth_code": code, "code_verifier": verifier}
	if err := c.do(ctx, http.MethodPost, "/token", q, body, "", &tr); err != nil {
		return nil, err
	}
	sess, err := c.sessionFromToken(tr)
	if err != nil {
		return nil, err
	}
	c.setSession(sess)
	log.InfoLog.Printf("signed in as %s via oauth", sess.User.Email)
	c.events.Emit(StateChange{Event: EventSignedIn, Session: sess})
	return sess, nil
}

// ErrCallbackTimeout is returned when the browser never redirects back.
var ErrCallbackTimeout = errors.New("timed out waiting for browser sign-in")
