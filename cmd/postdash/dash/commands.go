package dash

import (
	"context"
	"errors"

	"postdash/internal/api"
	"postdash/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Network calls run as bubbletea commands so the UI thread never
// blocks. Each command resolves to exactly one message; the Update
// handler for that message is the single place loading indicators get
// cleared, so cleanup happens on every exit path.

func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Login(context.Background(), email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{token: result.Token}
	}
}

func (m Model) registerCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Register(context.Background(), email, password)
		if err != nil {
			return registerResultMsg{err: err}
		}
		return registerResultMsg{id: result.ID}
	}
}

// loadProfileCmd and loadPostsCmd are fired together on dashboard entry
// and are fully independent: either may fail or land first without
// affecting the other.

func (m Model) loadProfileCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		profile, err := client.FetchProfile(context.Background())
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		return profileLoadedMsg{profile: *profile}
	}
}

func (m Model) loadPostsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		posts, err := client.FetchPosts(context.Background())
		if err != nil {
			return postsLoadedMsg{err: err}
		}
		return postsLoadedMsg{posts: posts}
	}
}

// userMessage maps an auth error to the text shown on the email field.
// Server business errors carry their own message; anything else is a
// transport failure.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Network error. Please try again."
}

// applyPostsResult converts a load result into the store state the
// dashboard renders: fresh list on success, error row on failure.
func applyPostsResult(s *store.PostStore, msg postsLoadedMsg) {
	if msg.err != nil {
		s.SetLoadErr()
		return
	}
	s.Replace(msg.posts)
}
