package auth

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileTokenStore keeps the two token strings in a small JSON file, the
// service's analogue of local storage. The file holds nothing else.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

type tokenFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *FileTokenStore) Save(access, refresh string) error {
	raw, err := json.Marshal(tokenFile{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileTokenStore) Load() (string, string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return "", "", err
	}
	return tf.AccessToken, tf.RefreshToken, nil
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryTokenStore is a volatile TokenStore for tests and for running
// without a configured token file.
type MemoryTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

func (s *MemoryTokenStore) Load() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}
