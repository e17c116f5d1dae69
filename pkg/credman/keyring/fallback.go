// Package keyring stores the secret-store encryption key, preferring the
// operating system's keyring service with automatic fallback to a file
// when no keyring is available.
package keyring

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

const (
	keyFileName = "token.key"
	keyFileMode = 0600
)

// Store abstracts where the encryption key lives.
type Store interface {
	SetKey() ([]byte, error)
	GetKey() ([]byte, error)
	DeleteKey() error
}

var (
	_ Store = (*Keyring)(nil)
	_ Store = (*FileKeyStore)(nil)
)

// FileKeyStore keeps the key in a 0600 file under the config directory.
// Used on headless systems where no keyring daemon runs.
type FileKeyStore struct {
	configDir string
}

func NewFileKeyStore(configDir string) *FileKeyStore {
	return &FileKeyStore{
		configDir: configDir,
	}
}

func (f *FileKeyStore) keyPath() string {
	return filepath.Join(f.configDir, keyFileName)
}

// SetKey generates a fresh 32-byte key and writes it hex-encoded,
// atomically via temp file and rename.
func (f *FileKeyStore) SetKey() ([]byte, error) {
	if err := os.MkdirAll(f.configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	key := make([]byte, 32)
	if _, err := randRead(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	tmp, err := os.CreateTemp(f.configDir, ".token.key.tmp.*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(hex.EncodeToString(key)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write key: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, keyFileMode); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, f.keyPath()); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("rename key file: %w", err)
	}
	return key, nil
}

// GetKey reads and decodes the stored key.
func (f *FileKeyStore) GetKey() ([]byte, error) {
	data, err := os.ReadFile(f.keyPath())
	if err != nil {
		return nil, err
	}
	return decodeKey(string(data))
}

func (f *FileKeyStore) DeleteKey() error {
	return os.Remove(f.keyPath())
}

// LoadOrCreate returns the encryption key, preferring the system
// keyring and falling back to a key file under configDir. A missing key
// is generated on first use.
func LoadOrCreate(configDir string) ([]byte, error) {
	stores := []Store{NewKeyring(), NewFileKeyStore(configDir)}
	var lastErr error
	for _, s := range stores {
		key, err := s.GetKey()
		if err == nil {
			return key, nil
		}
		key, err = s.SetKey()
		if err == nil {
			return key, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no usable key store: %w", lastErr)
}
