package auth

import (
	"context"

	"github.com/mehulj/noteshare/internal/models"
)

// Authenticator abstracts credential handling so the HTTP layer does not
// care whether accounts are backed by passwords or something else.
type Authenticator interface {
	// Register creates a new account. Fails if the email is already
	// registered or the credential is rejected.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the
	// implementation's requirements (length, format, ...).
	ValidateCredential(credential string) error
}
