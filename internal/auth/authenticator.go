package auth

import (
	"context"

	"github.com/hostezee/billing/internal/models"
)

// Authenticator verifies staff credentials.
// Implementations can be swapped (password, SSO, ...) without touching the service layer.
type Authenticator interface {
	// Register creates a new staff account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if they match.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
