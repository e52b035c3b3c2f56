package dash

import (
	"strings"

	"postdash/cmd/postdash/ui"
	"postdash/internal/api"
	"postdash/internal/logging"
	"postdash/internal/store"
	"postdash/internal/validate"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// New builds the TUI model. The session decides the starting screen:
// an active token boots straight into the dashboard.
func New(cfg Config) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		styles:      styles,
		spinner:     sp,
		mode:        AuthView,
		activeForm:  validate.FormLogin,
		posts:       store.NewPostStore(),
		fieldErrors: make(map[string]string),
		cursor:      0,
		version:     cfg.Version,
		client:      cfg.Client,
		session:     cfg.Session,
	}

	m.loginEmail = newEmailInput()
	m.loginPassword = newPasswordInput()
	m.registerEmail = newEmailInput()
	m.registerPassword = newPasswordInput()
	m.loginEmail.Focus()

	m.editTitle = textinput.New()
	m.editTitle.CharLimit = 256
	m.editBody = textarea.New()
	m.editBody.CharLimit = 0

	m.viewVP = viewport.New(60, 10)

	return m
}

func newEmailInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "email"
	in.CharLimit = 128
	return in
}

func newPasswordInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "password"
	in.CharLimit = 128
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	return in
}

// Init wires the session bootstrap: with a stored token we enter the
// dashboard and fire the two independent loads, otherwise we stay on
// the auth forms.
func (m Model) Init() tea.Cmd {
	if m.session != nil && m.session.Active() {
		logging.BootInfo("stored session found, entering dashboard")
		// The mode switch happens via the first message; Init cannot
		// mutate the model.
		return tea.Batch(
			enterDashboardCmd,
			m.loadProfileCmd(),
			m.loadPostsCmd(),
			m.spinner.Tick,
		)
	}
	logging.BootInfo("no stored session, showing auth forms")
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// enterDashboardMsg flips the model onto the dashboard during bootstrap.
type enterDashboardMsg struct{}

func enterDashboardCmd() tea.Msg { return enterDashboardMsg{} }

// activeEmailInput returns the email input of the active form.
func (m *Model) activeEmailInput() *textinput.Model {
	if m.activeForm == validate.FormRegister {
		return &m.registerEmail
	}
	return &m.loginEmail
}

// activePasswordInput returns the password input of the active form.
func (m *Model) activePasswordInput() *textinput.Model {
	if m.activeForm == validate.FormRegister {
		return &m.registerPassword
	}
	return &m.loginPassword
}

// switchForm toggles between the login and register forms, moving focus
// to the email field of the newly active form.
func (m *Model) switchForm() {
	if m.activeForm == validate.FormLogin {
		m.activeForm = validate.FormRegister
	} else {
		m.activeForm = validate.FormLogin
	}
	m.authFocus = fieldEmail
	m.refocusAuthInputs()
}

// refocusAuthInputs blurs every auth input and focuses the one the
// cursor is on.
func (m *Model) refocusAuthInputs() {
	m.loginEmail.Blur()
	m.loginPassword.Blur()
	m.registerEmail.Blur()
	m.registerPassword.Blur()

	switch m.authFocus {
	case fieldEmail:
		m.activeEmailInput().Focus()
	case fieldPassword:
		m.activePasswordInput().Focus()
	}
}

// logout clears the session and returns to a pristine auth screen:
// empty forms, no field errors, login form active.
func (m *Model) logout() {
	if m.session != nil {
		if err := m.session.Clear(); err != nil {
			logging.SessionWarn("failed to clear session: %v", err)
		}
	}

	m.mode = AuthView
	m.activeForm = validate.FormLogin
	m.authFocus = fieldEmail
	m.fieldErrors = make(map[string]string)
	m.notice = ""
	m.loginLoading = false
	m.registerLoading = false
	m.profile = api.Profile{}
	m.profileLoaded = false
	m.postsLoaded = false
	m.editing = nil
	m.viewing = nil
	m.cursor = 0

	m.loginEmail.Reset()
	m.loginPassword.Reset()
	m.registerEmail.Reset()
	m.registerPassword.Reset()
	m.refocusAuthInputs()

	logging.AuthDebug("logged out")
}

// beginEdit makes the post the active editing selection and pre-fills
// the edit inputs.
func (m *Model) beginEdit(p store.Post) {
	post := p
	m.editing = &post
	m.editTitle.SetValue(p.Title)
	m.editBody.SetValue(p.Body)
	m.editFocus = editFieldTitle
	m.editTitle.Focus()
	m.editBody.Blur()
	m.mode = EditPostModal
}

// saveEdit applies the pending edit. It is a silent no-op unless an
// editing selection is active and both trimmed fields are non-blank;
// in the no-op case the modal and selection stay put.
func (m *Model) saveEdit() {
	if m.editing == nil {
		return
	}

	title := m.editTitle.Value()
	body := m.editBody.Value()
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return
	}

	m.posts.UpdateByID(m.editing.ID, title, body)
	logging.StoreDebug("updated post %d", m.editing.ID)
	m.editing = nil
	m.mode = DashboardView
}

// dismissEdit closes the edit modal and clears the selection without
// touching the store.
func (m *Model) dismissEdit() {
	m.editing = nil
	m.mode = DashboardView
}

// clampCursor keeps the table cursor inside the current list.
func (m *Model) clampCursor() {
	if n := m.posts.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// postUnderCursor returns the post the cursor is on.
func (m *Model) postUnderCursor() (store.Post, bool) {
	posts := m.posts.All()
	if m.cursor < 0 || m.cursor >= len(posts) {
		return store.Post{}, false
	}
	return posts[m.cursor], true
}
