package ports

import (
	"context"

	"github.com/salonms/backend/internal/core/domain"
)

// AccountService owns the activation lifecycle for one role namespace.
type AccountService interface {
	// Register provisions a PENDING account with no credential.
	Register(ctx context.Context, email string, profile domain.Profile) (*domain.Account, error)

	// Authenticate is the single entry point for both first-time activation
	// and regular login. firstLogin reports which path was taken.
	Authenticate(ctx context.Context, email, password string) (account *domain.Account, token string, firstLogin bool, err error)

	// Bootstrap creates a pre-activated account, skipping PENDING entirely.
	// Used once, for the first admin.
	Bootstrap(ctx context.Context, email, password string, profile domain.Profile) (*domain.Account, error)

	ChangeCredential(ctx context.Context, accountID, newPassword string) error
	SetStatus(ctx context.Context, accountID string, status domain.Status) (*domain.Account, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Delete(ctx context.Context, accountID string) error
}

// LoginThrottle rate-limits authentication attempts per email. Optional:
// a nil throttle disables limiting. Implementations are best-effort —
// the lifecycle must keep working when the backing store is down.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
