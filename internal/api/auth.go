package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"postdash/internal/logging"
)

// FixtureGuidance is shown when the mock API rejects an account it does
// not know. reqres.in only accepts its fixture identities, so the raw
// "user not defined" style errors are replaced with actionable guidance.
const FixtureGuidance = "Please use eve.holt@reqres.in for testing"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authErrorBody struct {
	Error string `json:"error"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string `json:"token"`
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	ID    int    `json:"id"`
	Token string `json:"token"`
}

// Login authenticates against the mock auth API. A non-success final
// response comes back as an *Error carrying the user-facing message.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doWithKeyRetry(ctx, http.MethodPost, c.authBase+"/login", body)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, authError(resp, "Login failed")
	}

	var result LoginResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, fmt.Errorf("login response malformed: %w", err)
	}
	logging.AuthDebug("login succeeded for %s", email)
	return &result, nil
}

// Register creates an account against the mock auth API. The caller is
// expected to log in afterwards; registration never yields a session.
func (c *Client) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doWithKeyRetry(ctx, http.MethodPost, c.authBase+"/register", body)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, authError(resp, "Registration failed")
	}

	var result RegisterResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, fmt.Errorf("register response malformed: %w", err)
	}
	logging.AuthDebug("registered %s (id %d)", email, result.ID)
	return &result, nil
}

// authError maps a non-success auth response to the message the UI
// shows on the email field.
func authError(resp *http.Response, fallback string) error {
	var body authErrorBody
	_ = decodeJSON(resp, &body)

	msg := body.Error
	switch {
	case msg == "":
		msg = fallback
	case strings.Contains(msg, "defined"):
		// The mock API answers "Note: Only defined users succeed
		// registration" / "user not found" style errors for anything
		// outside its fixtures.
		msg = FixtureGuidance
	}

	logging.AuthWarn("auth failure (%d): %s", resp.StatusCode, msg)
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}
