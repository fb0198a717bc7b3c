package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const (
	keyToken    = "token"
	keyLanguage = "language"
)

// Keystore is the durable key-value store for the few values that must
// survive process restarts: the bearer credential and the preferred UI
// language. It plays the role browser local storage plays for the web
// client, as a single JSON file with owner-only permissions.
type Keystore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

func NewKeystore(path string) (*Keystore, error) {
	store := &Keystore{path: path, values: map[string]string{}}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func DefaultKeystorePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "opinion-chat", "state.json")
	}
	return filepath.Join(base, "opinion-chat", "state.json")
}

func (s *Keystore) load() error {
	if s.path == "" {
		return errors.New("keystore path required")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, &s.values)
}

func (s *Keystore) persistLocked() error {
	payload, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// The file carries the bearer credential, so keep it owner-only.
	return os.WriteFile(s.path, payload, 0o600)
}

func (s *Keystore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *Keystore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.persistLocked()
}

func (s *Keystore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.persistLocked()
}

// Token returns the stored bearer credential, empty when logged out.
func (s *Keystore) Token() string { return s.Get(keyToken) }

func (s *Keystore) SetToken(token string) error { return s.Set(keyToken, token) }

func (s *Keystore) DeleteToken() error { return s.Delete(keyToken) }

func (s *Keystore) Language() string { return s.Get(keyLanguage) }

func (s *Keystore) SetLanguage(lang string) error { return s.Set(keyLanguage, lang) }
