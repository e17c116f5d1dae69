package cmd

import (
	"path/filepath"

	"github.com/studybuddy/remindd/internal/config"
	"github.com/studybuddy/remindd/pkg/credman"
	"github.com/studybuddy/remindd/pkg/credman/keyring"
)

const secretsFileName = "secrets"

// openSecrets opens the encrypted credential store, creating the
// encryption key on first use.
func openSecrets() (*credman.SecretManager, error) {
	dir := config.BaseDir()
	key, err := keyring.LoadOrCreate(dir)
	if err != nil {
		return nil, err
	}
	return credman.NewSecretManager(filepath.Join(dir, secretsFileName), key)
}
