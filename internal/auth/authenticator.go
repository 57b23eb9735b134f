package auth

import (
	"context"

	"github.com/mmynk/splitease/internal/models"
)

// Authenticator verifies who a caller is. Implementations own credential
// storage details; the service layer only sees users.
type Authenticator interface {
	// Register creates an account. The credential format depends on the implementation.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate returns the user matching email and credential.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that do not meet the implementation's rules.
	ValidateCredential(credential string) error
}
