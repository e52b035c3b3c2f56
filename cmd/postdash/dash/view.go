// View rendering for the postdash TUI: auth forms, dashboard table,
// and the view/edit/delete overlays.
package dash

import (
	"fmt"
	"strconv"
	"strings"

	"postdash/cmd/postdash/ui"
	"postdash/internal/store"
	"postdash/internal/validate"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case AuthView:
		return m.renderAuth()
	case ViewPostModal:
		return m.renderViewModal()
	case EditPostModal:
		return m.renderEditModal()
	case ConfirmDeleteModal:
		return m.renderConfirmDelete()
	default:
		return m.renderDashboard()
	}
}

// =============================================================================
// AUTH
// =============================================================================

func (m Model) renderAuth() string {
	header := m.styles.Header.Render(" postdash ") + " " + m.styles.Badge.Render(m.version)

	var title string
	var hint string
	if m.activeForm == validate.FormLogin {
		title = "Login"
		hint = "Tab: switch to register"
	} else {
		title = "Register"
		hint = "Tab: switch to login"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(title) + "\n")

	sb.WriteString(m.styles.Label.Render("Email") + "\n")
	sb.WriteString(m.activeEmailInput().View() + "\n")
	if msg, ok := m.fieldErrors[validate.EmailKey(m.activeForm)]; ok {
		sb.WriteString(m.styles.FieldError.Render(msg) + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(m.styles.Label.Render("Password") + "\n")
	sb.WriteString(m.activePasswordInput().View() + "\n")
	if msg, ok := m.fieldErrors[validate.PasswordKey(m.activeForm)]; ok {
		sb.WriteString(m.styles.FieldError.Render(msg) + "\n")
	}
	sb.WriteString("\n")

	if m.authLoading() {
		sb.WriteString(m.spinner.View() + m.styles.Muted.Render(" submitting..."))
	} else {
		sb.WriteString(m.styles.Muted.Render("Enter: submit"))
	}

	form := m.styles.FocusedBox.Render(sb.String())

	var notice string
	if m.notice != "" {
		notice = m.styles.Success.Render(m.notice)
	}

	footer := m.styles.Footer.Render(hint + "  ↑/↓: fields  Ctrl+C: quit")

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", notice, form, footer)
	return m.styles.Content.Render(content)
}

func (m Model) authLoading() bool {
	if m.activeForm == validate.FormRegister {
		return m.registerLoading
	}
	return m.loginLoading
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) renderDashboard() string {
	header := m.renderDashboardHeader()
	table := m.renderPostsTable()
	footer := m.styles.Footer.Render(
		"↑/↓: move  enter: view  e: edit  d: delete  r: reload  Ctrl+L: logout  q: quit")

	return m.styles.Content.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", table, footer))
}

func (m Model) renderDashboardHeader() string {
	title := m.styles.Header.Render(" postdash ")

	who := "..."
	if m.profileLoaded {
		who = m.profile.FullName()
	}
	user := m.styles.Bold.Render(who)

	status := m.styles.Success.Render("Ready")
	if !m.profileLoaded || !m.postsLoaded {
		status = lipgloss.JoinHorizontal(lipgloss.Center,
			m.spinner.View(), " ", m.styles.Muted.Render("loading"))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", user, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

// renderPostsTable projects the post store into the table view: one
// row per post with truncated title and body.
func (m Model) renderPostsTable() string {
	if m.posts.LoadErr() {
		return m.styles.Error.Render("Failed to load posts")
	}

	table := ui.NewTable("Posts", []string{"ID", "Title", "Body"})
	table.Cursor = m.cursor
	for _, p := range m.posts.All() {
		table.AddRow(
			strconv.Itoa(p.ID),
			store.Truncate(p.Title, titleColumnLimit),
			store.Truncate(p.Body, bodyColumnLimit),
		)
	}
	return table.View(m.styles)
}

// =============================================================================
// MODALS
// =============================================================================

func (m Model) renderViewModal() string {
	if m.viewing == nil {
		return m.renderDashboard()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.viewing.Title),
		m.viewVP.View(),
		"",
		m.styles.Muted.Render("esc: close  ↑/↓: scroll"),
	)
	return m.overlay(m.styles.Modal.Render(content))
}

func (m Model) renderEditModal() string {
	if m.editing == nil {
		return m.renderDashboard()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(fmt.Sprintf("Edit post #%d", m.editing.ID)),
		m.styles.Label.Render("Title"),
		m.editTitle.View(),
		"",
		m.styles.Label.Render("Body"),
		m.editBody.View(),
		"",
		m.styles.Muted.Render("Tab: switch field  Ctrl+S: save  esc: cancel"),
	)
	return m.overlay(m.styles.Modal.Render(content))
}

func (m Model) renderConfirmDelete() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Warning.Render("Delete post?"),
		"",
		m.styles.Body.Render(fmt.Sprintf("Are you sure you want to delete post #%d?", m.deleteID)),
		"",
		m.styles.Muted.Render("y: delete  any other key: cancel"),
	)
	return m.overlay(m.styles.Modal.Render(content))
}

// overlay centers a modal box in the window.
func (m Model) overlay(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
