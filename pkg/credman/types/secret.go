// Package types defines the data structures used throughout the credman
// package for credential management.
package types

import (
	"time"
)

// Secret is a named credential persisted by the SecretManager. The Value
// field is stored encrypted on disk.
type Secret struct {
	// Name is the secret's unique identifier, e.g. "api_token".
	Name string
	// Value is the secret's content, encrypted when persisted.
	Value string
	// IssuedAt records when the secret was stored.
	IssuedAt time.Time
	// Expires is the credential's expiry, zero when it does not expire.
	Expires time.Time
}

// Expired reports whether the secret carries an expiry that has passed.
func (s *Secret) Expired(now time.Time) bool {
	return !s.Expires.IsZero() && now.After(s.Expires)
}
