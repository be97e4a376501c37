package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// keyFileName is the single fixed name the user-supplied key is persisted
// under. It is the only state that survives between runs.
const keyFileName = "nasa_api_key"

// ErrNoSavedKey is returned by Storage.Load when no key has been persisted.
var ErrNoSavedKey = errors.New("no saved API key")

// Storage persists a single user-supplied API key between sessions.
type Storage interface {
	Load() (string, error)
	Save(key string) error
	Clear() error
}

// FileStorage persists the key as a file under a directory, by default the
// user config dir.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a FileStorage rooted at dir. When dir is empty the
// key lives under <UserConfigDir>/astrodash.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "astrodash")
	}
	return &FileStorage{dir: dir}, nil
}

// Load reads the persisted key, returning ErrNoSavedKey when absent.
func (s *FileStorage) Load() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, keyFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSavedKey
		}
		return "", err
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", ErrNoSavedKey
	}
	return key, nil
}

// Save writes the key, creating the directory if needed.
func (s *FileStorage) Save(key string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, keyFileName), []byte(key+"\n"), 0o600)
}

// Clear removes the persisted key. Clearing an absent key is not an error.
func (s *FileStorage) Clear() error {
	err := os.Remove(filepath.Join(s.dir, keyFileName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	key   string
	saved bool
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored key, or ErrNoSavedKey.
func (s *MemoryStorage) Load() (string, error) {
	if !s.saved {
		return "", ErrNoSavedKey
	}
	return s.key, nil
}

// Save stores the key.
func (s *MemoryStorage) Save(key string) error {
	s.key = key
	s.saved = true
	return nil
}

// Clear removes the stored key.
func (s *MemoryStorage) Clear() error {
	s.key = ""
	s.saved = false
	return nil
}
