// Package dash provides the interactive TUI: the login/register forms,
// the posts dashboard, and the view/edit/delete flows over the
// in-memory post store.
package dash

import (
	"postdash/cmd/postdash/ui"
	"postdash/internal/api"
	"postdash/internal/session"
	"postdash/internal/store"
	"postdash/internal/validate"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds everything the dashboard model needs to run.
type Config struct {
	Client  *api.Client
	Session *session.Manager
	Theme   string
	Version string
}

// ViewMode determines which screen or overlay is active.
type ViewMode int

const (
	AuthView ViewMode = iota
	DashboardView
	ViewPostModal
	EditPostModal
	ConfirmDeleteModal
)

// Column truncation limits for the posts table, matching the feed's
// typical title/body lengths.
const (
	titleColumnLimit = 50
	bodyColumnLimit  = 80
)

// authField indexes the focusable inputs on an auth form.
type authField int

const (
	fieldEmail authField = iota
	fieldPassword
)

// editField indexes the focusable inputs on the edit modal.
type editField int

const (
	editFieldTitle editField = iota
	editFieldBody
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Model is the main model for the postdash TUI.
type Model struct {
	// UI components
	styles  ui.Styles
	spinner spinner.Model

	loginEmail       textinput.Model
	loginPassword    textinput.Model
	registerEmail    textinput.Model
	registerPassword textinput.Model

	viewVP    viewport.Model
	editTitle textinput.Model
	editBody  textarea.Model

	mode       ViewMode
	activeForm validate.FormKind
	authFocus  authField
	editFocus  editField

	// State
	posts       *store.PostStore
	fieldErrors map[string]string
	notice      string

	// Per-form loading indicators. Always cleared by the result
	// message handler, whatever the outcome.
	loginLoading    bool
	registerLoading bool

	profile       api.Profile
	profileLoaded bool
	postsLoaded   bool

	cursor   int // highlighted table row
	viewing  *store.Post
	editing  *store.Post // the Editing Selection; nil when no edit is active
	deleteID int

	width  int
	height int
	ready  bool

	version string

	// Backend
	client  *api.Client
	session *session.Manager
}

// Posts exposes the store for command-line reuse and tests.
func (m Model) Posts() *store.PostStore { return m.posts }

// Mode exposes the active view mode for tests.
func (m Model) Mode() ViewMode { return m.mode }

// Messages for tea updates.
type (
	loginResultMsg struct {
		token string
		err   error
	}

	registerResultMsg struct {
		id  int
		err error
	}

	profileLoadedMsg struct {
		profile api.Profile
		err     error
	}

	postsLoadedMsg struct {
		posts []store.Post
		err   error
	}
)
