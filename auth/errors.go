package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// AuthError is a failure reported by, or while talking to, the identity
// service. Status is zero for transport failures.
type AuthError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("identity service error (status %d)", e.Status)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether the request never got an HTTP response.
func (e *AuthError) IsNetwork() bool {
	return e.Status == 0
}

// AsAuthError unwraps err into an *AuthError.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func networkError(op string, err error) *AuthError {
	return &AuthError{
		Code:    "network_error",
		Message: fmt.Sprintf("%s: %v", op, err),
		Err:     err,
	}
}

// errorBody covers both error shapes the service uses: the OAuth style
// {error, error_description} and the newer {code, error_code, msg}.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func decodeError(resp *http.Response) *AuthError {
	ae := &AuthError{Status: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		ae.Message = strings.TrimSpace(string(data))
		if ae.Message == "" {
			ae.Message = http.StatusText(resp.StatusCode)
		}
		return ae
	}

	ae.Code = firstNonEmpty(body.ErrorCode, body.Error)
	ae.Message = firstNonEmpty(body.ErrorDescription, body.Msg, body.Message, body.Error, http.StatusText(resp.StatusCode))
	return ae
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
