package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Keyring stores the secret-store encryption key in the operating
// system's credential service.
type Keyring struct {
	Service string
	Account string
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
	randRead      = rand.Read
)

func NewKeyring() *Keyring {
	return &Keyring{
		Service: "remindd",
		Account: "token-key",
	}
}

// SetKey generates a fresh 32-byte key, stores it hex-encoded in the
// system keyring and returns the raw bytes.
func (k *Keyring) SetKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := randRead(key); err != nil {
		return nil, err
	}
	if err := keyringSet(k.Service, k.Account, hex.EncodeToString(key)); err != nil {
		return nil, err
	}
	return key, nil
}

// GetKey retrieves and decodes the stored key.
func (k *Keyring) GetKey() ([]byte, error) {
	stored, err := keyringGet(k.Service, k.Account)
	if err != nil {
		return nil, err
	}
	return decodeKey(stored)
}

func (k *Keyring) DeleteKey() error {
	return keyringDelete(k.Service, k.Account)
}

func decodeKey(stored string) ([]byte, error) {
	key, err := hex.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid key length: expected 32, got %d", len(key))
	}
	return key, nil
}
