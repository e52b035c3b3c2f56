package api

import (
	"context"
	"fmt"
	"net/http"
)

// Profile is the dashboard header identity.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// FullName returns "First Last".
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// FallbackProfile is shown whenever the profile load fails for any
// reason. Profile failure never blocks the post list.
func FallbackProfile() Profile {
	return Profile{
		FirstName: "Test",
		LastName:  "User",
		Avatar:    "https://via.placeholder.com/50x50/667eea/ffffff?text=U",
	}
}

// FetchProfile loads the demo user record. Same single 401-retry policy
// as the auth calls.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	resp, err := c.doWithKeyRetry(ctx, http.MethodGet, c.authBase+"/users/2", nil)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &Error{StatusCode: resp.StatusCode, Message: "Failed to load profile"}
	}

	var body struct {
		Data Profile `json:"data"`
	}
	if err := decodeJSON(resp, &body); err != nil {
		return nil, fmt.Errorf("profile response malformed: %w", err)
	}
	return &body.Data, nil
}
