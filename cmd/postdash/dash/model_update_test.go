package dash

import (
	"errors"
	"testing"

	"postdash/internal/api"
	"postdash/internal/session"
	"postdash/internal/store"
	"postdash/internal/validate"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T) Model {
	t.Helper()
	sess, err := session.NewManager(t.TempDir())
	require.NoError(t, err)

	m := New(Config{
		Client:  api.NewClient(api.DefaultConfig()),
		Session: sess,
		Theme:   "light",
		Version: "test",
	})
	m.ready = true
	m.width = 100
	m.height = 40
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok, "Update must return a dash.Model")
	return next, cmd
}

func seedPosts(m *Model) {
	m.posts.Replace([]store.Post{
		{ID: 1, Title: "first", Body: "body one"},
		{ID: 2, Title: "second", Body: "body two"},
		{ID: 5, Title: "fifth", Body: "body five"},
	})
	m.postsLoaded = true
	m.mode = DashboardView
}

// =============================================================================
// AUTH
// =============================================================================

func TestLoginSuccess_StoresTokenAndFiresLoads(t *testing.T) {
	m := testModel(t)

	m, cmd := update(t, m, loginResultMsg{token: "abc123"})

	assert.Equal(t, "abc123", m.session.Token())
	assert.Equal(t, DashboardView, m.mode)
	assert.False(t, m.loginLoading)
	assert.NotNil(t, cmd, "login success must fire the profile and posts loads")
}

func TestLoginFailure_ShowsMessageOnEmailField(t *testing.T) {
	m := testModel(t)
	m.loginLoading = true

	m, _ = update(t, m, loginResultMsg{err: &api.Error{StatusCode: 400, Message: "user not found"}})

	assert.Equal(t, AuthView, m.mode)
	assert.False(t, m.loginLoading, "loading indicator must clear on every exit path")
	assert.Equal(t, "user not found", m.fieldErrors["loginEmailError"])
	assert.Empty(t, m.session.Token(), "failed login must not leave a session behind")
}

func TestLoginFailure_NetworkErrorGetsGenericMessage(t *testing.T) {
	m := testModel(t)

	m, _ = update(t, m, loginResultMsg{err: errors.New("dial tcp: connection refused")})

	assert.Equal(t, "Network error. Please try again.", m.fieldErrors["loginEmailError"])
}

func TestRegisterSuccess_SwitchesToLoginWithoutSession(t *testing.T) {
	m := testModel(t)
	m.activeForm = validate.FormRegister
	m.registerLoading = true

	m, _ = update(t, m, registerResultMsg{id: 4})

	assert.False(t, m.registerLoading)
	assert.Equal(t, validate.FormLogin, m.activeForm)
	assert.Equal(t, "Registration successful! Please login.", m.notice)
	assert.Empty(t, m.session.Token(), "register success must not auto-login")
}

func TestSubmit_InvalidFormSetsFieldErrorsAndSkipsNetwork(t *testing.T) {
	m := testModel(t)
	m.loginEmail.SetValue("not-an-email")
	m.loginPassword.SetValue("ab")
	m.authFocus = fieldPassword

	updated, cmd := m.submitActiveForm()
	m = updated.(Model)

	assert.Nil(t, cmd, "invalid input must not fire a request")
	assert.False(t, m.loginLoading)
	assert.Contains(t, m.fieldErrors, "loginEmailError")
	assert.Contains(t, m.fieldErrors, "loginPasswordError")
}

func TestSubmit_ClearsPriorErrorsOnNewAttempt(t *testing.T) {
	m := testModel(t)
	m.fieldErrors["loginEmailError"] = "stale"
	m.loginEmail.SetValue("eve.holt@reqres.in")
	m.loginPassword.SetValue("cityslicka")

	updated, cmd := m.submitActiveForm()
	m = updated.(Model)

	assert.NotNil(t, cmd)
	assert.True(t, m.loginLoading)
	assert.NotContains(t, m.fieldErrors, "loginEmailError")
}

func TestLogout_ResetsFormsAndSession(t *testing.T) {
	m := testModel(t)
	require.NoError(t, m.session.Save("tok"))
	seedPosts(&m)
	m.loginEmail.SetValue("someone@example.com")
	m.fieldErrors["loginEmailError"] = "old error"

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, AuthView, m.mode)
	assert.Empty(t, m.session.Token())
	assert.Empty(t, m.loginEmail.Value())
	assert.Empty(t, m.fieldErrors)
	assert.Equal(t, validate.FormLogin, m.activeForm)
}

func TestTab_TogglesForms(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, validate.FormLogin, m.activeForm)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, validate.FormRegister, m.activeForm)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, validate.FormLogin, m.activeForm)
}

// =============================================================================
// SESSION BOOTSTRAP
// =============================================================================

func TestBootstrap_ActiveSessionEntersDashboard(t *testing.T) {
	m := testModel(t)
	require.NoError(t, m.session.Save("abc123"))

	cmd := m.Init()
	assert.NotNil(t, cmd, "active session must fire the bootstrap loads")

	m, _ = update(t, m, enterDashboardMsg{})
	assert.Equal(t, DashboardView, m.mode)
}

func TestBootstrap_NoSessionStaysOnAuth(t *testing.T) {
	m := testModel(t)
	m.Init()
	assert.Equal(t, AuthView, m.mode)
}

func TestBootstrap_LoadsAreIndependent(t *testing.T) {
	// Posts land first and succeed, profile fails afterwards: the list
	// must survive and the header must fall back.
	m := testModel(t)
	m.mode = DashboardView

	m, _ = update(t, m, postsLoadedMsg{posts: []store.Post{{ID: 1, Title: "t", Body: "b"}}})
	m, _ = update(t, m, profileLoadedMsg{err: errors.New("boom")})

	assert.Equal(t, 1, m.posts.Len())
	assert.False(t, m.posts.LoadErr())
	assert.True(t, m.profileLoaded)
	assert.Equal(t, "Test User", m.profile.FullName())
}

func TestBootstrap_PostsFailureSetsErrorRow(t *testing.T) {
	m := testModel(t)
	m.mode = DashboardView

	m, _ = update(t, m, profileLoadedMsg{profile: api.Profile{FirstName: "Janet", LastName: "Weaver"}})
	m, _ = update(t, m, postsLoadedMsg{err: errors.New("feed down")})

	assert.True(t, m.posts.LoadErr())
	assert.Equal(t, "Janet Weaver", m.profile.FullName())
}

// =============================================================================
// FLOWS
// =============================================================================

func TestViewFlow_ShowsFullBodyReadOnly(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	m.cursor = 1

	m, _ = update(t, m, keyMsg("v"))

	require.NotNil(t, m.viewing)
	assert.Equal(t, ViewPostModal, m.mode)
	assert.Equal(t, 2, m.viewing.ID)

	// Closing changes nothing in the store.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, DashboardView, m.mode)
	assert.Nil(t, m.viewing)
	assert.Equal(t, 3, m.posts.Len())
}

func TestEditFlow_PrefillsSelection(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	m.cursor = 0

	m, _ = update(t, m, keyMsg("e"))

	require.NotNil(t, m.editing)
	assert.Equal(t, EditPostModal, m.mode)
	assert.Equal(t, "first", m.editTitle.Value())
	assert.Equal(t, "body one", m.editBody.Value())
}

func TestSave_WhitespaceBodyIsSilentNoop(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	post, _ := m.posts.FindByID(1)
	m.beginEdit(post)
	m.editTitle.SetValue("Hi")
	m.editBody.SetValue("  ")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, EditPostModal, m.mode, "no-op save keeps the modal open")
	assert.NotNil(t, m.editing, "editing selection must survive a no-op save")
	got, _ := m.posts.FindByID(1)
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, "body one", got.Body)
}

func TestSave_ValidEditAppliesAndClearsSelection(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	post, _ := m.posts.FindByID(2)
	m.beginEdit(post)
	m.editTitle.SetValue("new title")
	m.editBody.SetValue("new body")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, DashboardView, m.mode)
	assert.Nil(t, m.editing)
	got, _ := m.posts.FindByID(2)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "new body", got.Body)
}

func TestSave_DismissalClearsSelectionWithoutSaving(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	post, _ := m.posts.FindByID(1)
	m.beginEdit(post)
	m.editTitle.SetValue("changed")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, m.editing)
	got, _ := m.posts.FindByID(1)
	assert.Equal(t, "first", got.Title)
}

func TestDelete_DeclinedLeavesListUntouched(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	m.cursor = 2 // post id 5

	m, _ = update(t, m, keyMsg("d"))
	assert.Equal(t, ConfirmDeleteModal, m.mode)
	assert.Equal(t, 5, m.deleteID)

	m, _ = update(t, m, keyMsg("n"))
	assert.Equal(t, DashboardView, m.mode)
	assert.Equal(t, 3, m.posts.Len())
	_, found := m.posts.FindByID(5)
	assert.True(t, found)
}

func TestDelete_ConfirmedRemovesPost(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	m.cursor = 2

	m, _ = update(t, m, keyMsg("d"))
	m, _ = update(t, m, keyMsg("y"))

	assert.Equal(t, DashboardView, m.mode)
	assert.Equal(t, 2, m.posts.Len())
	_, found := m.posts.FindByID(5)
	assert.False(t, found)
}

func TestDelete_CursorClampedAfterLastRowRemoved(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)
	m.cursor = 2

	m, _ = update(t, m, keyMsg("d"))
	m, _ = update(t, m, keyMsg("y"))

	assert.Less(t, m.cursor, m.posts.Len())
}

func TestCursorNavigationStaysInBounds(t *testing.T) {
	m := testModel(t)
	seedPosts(&m)

	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, 0, m.cursor, "cursor must not go above the first row")

	for i := 0; i < 10; i++ {
		m, _ = update(t, m, keyMsg("j"))
	}
	assert.Equal(t, 2, m.cursor, "cursor must not pass the last row")
}
