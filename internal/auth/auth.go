// Package auth resolves the authenticated Study Buddy user for the daemon.
// The scheduler holds only a read reference to the identity; this package is
// the single place that knows where it comes from.
package auth

import (
	"context"
	"sync"

	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

// Provider supplies the authenticated user's identity.
type Provider interface {
	// CurrentUser returns the logged-in user, or nil when there is none.
	CurrentUser() *buddylib.User

	// IsLoggedIn reports whether a user session is available.
	IsLoggedIn() bool
}

// APIProvider resolves the user from GET /api/auth/me using the client's
// stored session token and caches the result for the process lifetime.
type APIProvider struct {
	client *buddylib.Client
	log    logger.Logger

	mu      sync.Mutex
	user    *buddylib.User
	fetched bool
}

// NewAPIProvider creates a Provider backed by the REST API.
func NewAPIProvider(client *buddylib.Client, l logger.Logger) *APIProvider {
	return &APIProvider{client: client, log: l}
}

// CurrentUser returns the cached user, fetching it on first use.
// A failed fetch is cached as "no user"; remindd treats that as a policy
// halt, not a transient condition.
func (p *APIProvider) CurrentUser() *buddylib.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fetched {
		return p.user
	}
	p.fetched = true
	u, err := p.client.CurrentUser(context.Background())
	if err != nil {
		p.log.Warning("auth: could not resolve current user: %v", err)
		return nil
	}
	p.user = u
	return p.user
}

// IsLoggedIn reports whether a user session is available.
func (p *APIProvider) IsLoggedIn() bool {
	return p.CurrentUser() != nil
}

// Static is a Provider pinned to a fixed user. Used in tests and when the
// identity is supplied via config.
type Static struct {
	User *buddylib.User
}

// CurrentUser returns the pinned user.
func (s *Static) CurrentUser() *buddylib.User { return s.User }

// IsLoggedIn reports whether a pinned user exists.
func (s *Static) IsLoggedIn() bool { return s.User != nil }

var (
	_ Provider = (*APIProvider)(nil)
	_ Provider = (*Static)(nil)
)
