package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// Authorizer decides whether a presented credential grants admin access.
// Handlers depend only on this interface so the shared-secret gate can later be
// swapped for a real credential system without touching handler logic.
type Authorizer interface {
	AuthorizeAdmin(password string) error
}

// StaticSecretAuthorizer checks the presented password against a single
// configured admin secret: a bcrypt hash when one is configured, otherwise a
// constant-time plaintext comparison.
type StaticSecretAuthorizer struct {
	password     string
	passwordHash string
}

// NewStaticSecretAuthorizer builds the authorizer from admin config.
func NewStaticSecretAuthorizer(cfg config.AdminConfig) *StaticSecretAuthorizer {
	return &StaticSecretAuthorizer{
		password:     cfg.Password,
		passwordHash: cfg.PasswordHash,
	}
}

// AuthorizeAdmin returns nil when the password matches the configured secret.
// An unset secret never authorizes.
func (a *StaticSecretAuthorizer) AuthorizeAdmin(password string) error {
	if a.passwordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) != nil {
			return errorutil.NewAdminOnly()
		}
		return nil
	}
	if a.password == "" {
		return errorutil.NewAdminOnly()
	}
	if subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) != 1 {
		return errorutil.NewAdminOnly()
	}
	return nil
}
