package api

import (
	"context"
	"fmt"
	"net/http"

	"postdash/internal/logging"
	"postdash/internal/store"
)

// FetchPosts loads the full post collection in feed order. No retry
// policy applies here; any failure surfaces as an error the dashboard
// renders as a single error row.
func (c *Client) FetchPosts(ctx context.Context) ([]store.Post, error) {
	resp, err := c.send(ctx, c.postsClient, http.MethodGet, c.postsBase+"/posts", nil, false)
	if err != nil {
		return nil, fmt.Errorf("posts request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &Error{StatusCode: resp.StatusCode, Message: "Failed to load posts"}
	}

	var posts []store.Post
	if err := decodeJSON(resp, &posts); err != nil {
		return nil, fmt.Errorf("posts response malformed: %w", err)
	}
	logging.APIDebug("loaded %d posts", len(posts))
	return posts, nil
}
