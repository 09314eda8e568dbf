package ports

import (
	"context"
	"time"

	"github.com/salonms/backend/internal/core/domain"
)

// AccountRepository is the narrow persistence contract for one role
// namespace. Each role gets its own instance bound to its own collection.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save inserts the account when it has no ID yet, otherwise replaces
	// the stored document. Returns domain.ErrDuplicateAccount on an email
	// uniqueness violation.
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// Activate sets the credential and flips the account to ACTIVE in a
	// single compare-and-set on has_activated == false. When two first
	// logins race, exactly one succeeds; the loser gets
	// domain.ErrInvalidCredentials.
	Activate(ctx context.Context, id, credentialHash string, at time.Time) (*domain.Account, error)

	DeleteByID(ctx context.Context, id string) error
}
