// Package session persists the auth token between runs. The token file
// is the single source of truth for "is a session active": present means
// authenticated, absent means logged out.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// state is the on-disk format.
type state struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// Manager loads and stores the session token under the config dir.
type Manager struct {
	filePath string
	mu       sync.Mutex
	token    string
}

// NewManager creates a manager rooted at dir (normally ~/.postdash) and
// loads any existing token. A missing file is not an error.
func NewManager(dir string) (*Manager, error) {
	m := &Manager{filePath: filepath.Join(dir, "session.json")}
	if err := m.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return m, nil
}

// Load reads the token from disk.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		return err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	m.token = st.Token
	return nil
}

// Save persists the token to disk and makes it the active session.
func (m *Manager) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token

	data, err := json.MarshalIndent(state{Token: token, SavedAt: time.Now()}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0600)
}

// Clear forgets the token and removes the session file. Clearing an
// already-absent session is fine.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	if err := os.Remove(m.filePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Token returns the current token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Active reports whether a session token is present.
func (m *Manager) Active() bool {
	return m.Token() != ""
}
