// Package credman stores the Study Buddy API credential on disk, encrypted
// with a key held in the system keyring (or a file fallback when no keyring
// is available).
package credman

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/studybuddy/remindd/pkg/credman/encryption"
	"github.com/studybuddy/remindd/pkg/credman/types"
)

// TokenSecret is the well-known name under which the API bearer token
// is stored.
const TokenSecret = "api_token"

type SecretManager struct {
	filePath string
	key      []byte
	secrets  map[string]*types.Secret
}

// NewSecretManager opens (or creates) the secret store at filePath.
// Values are encrypted with key before they touch the disk.
func NewSecretManager(filePath string, key []byte) (*SecretManager, error) {
	sm := &SecretManager{
		filePath: filePath,
		key:      key,
		secrets:  make(map[string]*types.Secret),
	}
	if err := sm.load(); err != nil {
		return nil, err
	}
	return sm, nil
}

func (sm *SecretManager) load() error {
	data, err := os.ReadFile(sm.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	dec := gob.NewDecoder(bytes.NewReader(data))
	return dec.Decode(&sm.secrets)
}

func (sm *SecretManager) save() error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(sm.secrets); err != nil {
		return err
	}
	dir := filepath.Dir(sm.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".secrets.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err = os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, sm.filePath)
}

// Set encrypts and persists a secret, replacing any previous value
// under the same name.
func (sm *SecretManager) Set(secret types.Secret) error {
	encrypted, err := encryption.EncryptValue(secret.Value, sm.key)
	if err != nil {
		return err
	}
	secret.Value = string(encrypted)
	if secret.IssuedAt.IsZero() {
		secret.IssuedAt = time.Now()
	}
	sm.secrets[secret.Name] = &secret
	return sm.save()
}

// Get returns the decrypted secret under name.
func (sm *SecretManager) Get(name string) (*types.Secret, error) {
	stored, ok := sm.secrets[name]
	if !ok {
		return nil, fmt.Errorf("secret not found: %s", name)
	}
	value, err := encryption.DecryptValue([]byte(stored.Value), sm.key)
	if err != nil {
		return nil, err
	}
	out := *stored
	out.Value = string(value)
	return &out, nil
}

// Delete removes a secret and persists the change.
func (sm *SecretManager) Delete(name string) error {
	if _, ok := sm.secrets[name]; !ok {
		return fmt.Errorf("secret not found: %s", name)
	}
	delete(sm.secrets, name)
	return sm.save()
}

// Token is a convenience accessor for the API bearer token. It returns
// an empty string when no valid token is stored.
func (sm *SecretManager) Token() string {
	s, err := sm.Get(TokenSecret)
	if err != nil || s.Expired(time.Now()) {
		return ""
	}
	return s.Value
}
