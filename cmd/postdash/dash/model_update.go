package dash

import (
	"postdash/internal/api"
	"postdash/internal/logging"
	"postdash/internal/validate"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewVP.Width = min(msg.Width-8, 100)
		m.viewVP.Height = max(msg.Height-10, 4)
		m.editBody.SetWidth(min(msg.Width-12, 80))
		m.editBody.SetHeight(6)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case enterDashboardMsg:
		m.mode = DashboardView
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case profileLoadedMsg:
		// Independent of the posts load; failure degrades to the
		// fallback identity and nothing else.
		if msg.err != nil {
			logging.BootWarn("profile load failed, using fallback: %v", msg.err)
			m.profile = api.FallbackProfile()
		} else {
			m.profile = msg.profile
		}
		m.profileLoaded = true
		return m, nil

	case postsLoadedMsg:
		applyPostsResult(m.posts, msg)
		m.postsLoaded = true
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key input by view mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case AuthView:
		return m.handleAuthKey(msg)
	case DashboardView:
		return m.handleDashboardKey(msg)
	case ViewPostModal:
		return m.handleViewModalKey(msg)
	case EditPostModal:
		return m.handleEditModalKey(msg)
	case ConfirmDeleteModal:
		return m.handleConfirmDeleteKey(msg)
	}
	return m, nil
}

// =============================================================================
// AUTH FORMS
// =============================================================================

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		// Tab toggles between the login and register forms.
		m.switchForm()
		return m, nil

	case tea.KeyUp, tea.KeyShiftTab:
		m.authFocus = fieldEmail
		m.refocusAuthInputs()
		return m, nil

	case tea.KeyDown:
		m.authFocus = fieldPassword
		m.refocusAuthInputs()
		return m, nil

	case tea.KeyEnter:
		if m.authFocus == fieldEmail {
			// Enter on the email field moves to the password field.
			m.authFocus = fieldPassword
			m.refocusAuthInputs()
			return m, nil
		}
		return m.submitActiveForm()
	}

	// Forward everything else to the focused input.
	var cmd tea.Cmd
	switch m.authFocus {
	case fieldEmail:
		*m.activeEmailInput(), cmd = m.activeEmailInput().Update(msg)
	case fieldPassword:
		*m.activePasswordInput(), cmd = m.activePasswordInput().Update(msg)
	}
	return m, cmd
}

// submitActiveForm validates the active form and fires the matching
// auth call. Every new submission clears all prior field errors.
func (m Model) submitActiveForm() (tea.Model, tea.Cmd) {
	if m.loginLoading || m.registerLoading {
		return m, nil
	}

	email := m.activeEmailInput().Value()
	password := m.activePasswordInput().Value()
	m.fieldErrors = make(map[string]string)
	m.notice = ""

	res := validate.Form(m.activeForm, email, password)
	if !res.OK {
		m.fieldErrors = res.FieldErrors
		return m, nil
	}

	if m.activeForm == validate.FormRegister {
		m.registerLoading = true
		return m, tea.Batch(m.registerCmd(email, password), m.spinner.Tick)
	}
	m.loginLoading = true
	return m, tea.Batch(m.loginCmd(email, password), m.spinner.Tick)
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loginLoading = false

	if msg.err != nil {
		m.fieldErrors[validate.EmailKey(validate.FormLogin)] = userMessage(msg.err)
		return m, nil
	}

	if err := m.session.Save(msg.token); err != nil {
		logging.SessionWarn("failed to persist session: %v", err)
	}

	m.mode = DashboardView
	m.fieldErrors = make(map[string]string)
	m.notice = ""
	m.profileLoaded = false
	m.postsLoaded = false
	return m, tea.Batch(m.loadProfileCmd(), m.loadPostsCmd(), m.spinner.Tick)
}

func (m Model) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	m.registerLoading = false

	if msg.err != nil {
		m.fieldErrors[validate.EmailKey(validate.FormRegister)] = userMessage(msg.err)
		return m, nil
	}

	// Registration never logs in; switch to the login form with a
	// success notice.
	m.notice = "Registration successful! Please login."
	m.activeForm = validate.FormLogin
	m.authFocus = fieldEmail
	m.refocusAuthInputs()
	return m, nil
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.posts.Len()-1 {
			m.cursor++
		}
	case "enter", "v":
		if post, ok := m.postUnderCursor(); ok {
			p := post
			m.viewing = &p
			m.viewVP.SetContent(p.Body)
			m.viewVP.GotoTop()
			m.mode = ViewPostModal
		}
	case "e":
		if post, ok := m.postUnderCursor(); ok {
			m.beginEdit(post)
		}
	case "d", "x":
		if post, ok := m.postUnderCursor(); ok {
			m.deleteID = post.ID
			m.mode = ConfirmDeleteModal
		}
	case "r":
		return m, tea.Batch(m.loadPostsCmd(), m.spinner.Tick)
	case "ctrl+l":
		m.logout()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// =============================================================================
// MODALS
// =============================================================================

func (m Model) handleViewModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.viewing = nil
		m.mode = DashboardView
		return m, nil
	}
	var cmd tea.Cmd
	m.viewVP, cmd = m.viewVP.Update(msg)
	return m, cmd
}

func (m Model) handleEditModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dismissEdit()
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if m.editFocus == editFieldTitle {
			m.editFocus = editFieldBody
			m.editTitle.Blur()
			m.editBody.Focus()
		} else {
			m.editFocus = editFieldTitle
			m.editBody.Blur()
			m.editTitle.Focus()
		}
		return m, nil

	case tea.KeyCtrlS:
		m.saveEdit()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.editFocus {
	case editFieldTitle:
		m.editTitle, cmd = m.editTitle.Update(msg)
	case editFieldBody:
		m.editBody, cmd = m.editBody.Update(msg)
	}
	return m, cmd
}

// handleConfirmDeleteKey implements the delete confirmation: only an
// explicit "y" removes the post, anything else leaves the list alone.
func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "y" {
		m.posts.RemoveByID(m.deleteID)
		logging.StoreDebug("deleted post %d", m.deleteID)
		m.clampCursor()
	}
	m.deleteID = 0
	m.mode = DashboardView
	return m, nil
}
