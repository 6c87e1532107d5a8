package auth

import (
	"crypto/subtle"

	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

// Guard checks candidate passwords against the configured admin secret. The
// secret is injected at construction; there is no package-level state.
type Guard struct {
	secret string
}

// NewGuard builds a guard around the configured secret. An empty secret locks
// every admin route: no candidate can ever match.
func NewGuard(secret string) *Guard {
	return &Guard{secret: secret}
}

// Verify compares the candidate byte-for-byte with the configured secret.
// The returned error carries the same message whether the secret is unset or
// merely wrong, so callers cannot probe for its existence.
func (g *Guard) Verify(candidate string) error {
	if g.secret == "" {
		return appErrors.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(g.secret), []byte(candidate)) != 1 {
		return appErrors.ErrUnauthorized
	}
	return nil
}
