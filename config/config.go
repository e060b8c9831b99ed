package config

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/bassamadnan/readmail/gmail"
)

const defaultTokenFile = "token.json"

// Settings holds the defaults applied to every read.
type Settings struct {
	Query          string `json:"query"`
	MaxResults     int64  `json:"maxResults"`
	IncludeBody    bool   `json:"includeBody"`
	Endpoint       string `json:"endpoint"` // empty means the public Gmail API
	TimeoutSeconds int    `json:"timeoutSeconds"`
	TokenFile      string `json:"tokenFile"`
}

// Timeout returns the per-request timeout.
func (s Settings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return gmail.DefaultTimeout
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func defaultSettings() *Settings {
	return &Settings{
		Query:          gmail.DefaultQuery,
		MaxResults:     gmail.DefaultMaxResults,
		IncludeBody:    true,
		TimeoutSeconds: int(gmail.DefaultTimeout / time.Second),
		TokenFile:      defaultTokenFile,
	}
}

// Manager handles loading, saving, and accessing settings.
type Manager struct {
	filePath string
	settings *Settings
	mu       sync.RWMutex
}

// NewManager creates a new settings manager.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{
		filePath: filePath,
		settings: defaultSettings(),
	}
	if err := m.LoadSettings(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadSettings loads settings from the JSON file, writing the defaults
// there first if it does not exist yet.
func (m *Manager) LoadSettings() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.settings = defaultSettings()
			return m.saveSettings()
		}
		return err
	}

	// Fields missing from the file keep their defaults.
	settings := defaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return err
	}
	m.settings = settings
	return nil
}

// saveSettings writes the current settings; callers hold the lock.
func (m *Manager) saveSettings() error {
	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// GetSettings returns a copy of the current settings.
func (m *Manager) GetSettings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.settings
}

// SaveSearchDefaults replaces the default search and saves.
func (m *Manager) SaveSearchDefaults(query string, maxResults int64, includeBody bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Query = query
	m.settings.MaxResults = maxResults
	m.settings.IncludeBody = includeBody
	return m.saveSettings()
}
