package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/salonms/backend/internal/core/domain"
	"github.com/salonms/backend/internal/core/ports"
	"github.com/salonms/backend/internal/core/token"
	"github.com/salonms/backend/internal/pkg/passwd"
)

// AccountLifecycle implements ports.AccountService for a single role
// namespace. The admin, staff and reception services are three instances
// of this one type, each bound to its own repository; the lifecycle rules
// are identical across roles.
type AccountLifecycle struct {
	repo     ports.AccountRepository
	hasher   *passwd.Hasher
	codec    *token.Codec
	role     domain.Role
	throttle ports.LoginThrottle // optional
}

func NewAccountLifecycle(repo ports.AccountRepository, hasher *passwd.Hasher, codec *token.Codec, role domain.Role) *AccountLifecycle {
	return &AccountLifecycle{repo: repo, hasher: hasher, codec: codec, role: role}
}

// WithThrottle enables per-email login throttling. The throttle is best
// effort: a failing backing store never blocks authentication.
func (s *AccountLifecycle) WithThrottle(t ports.LoginThrottle) *AccountLifecycle {
	s.throttle = t
	return s
}

// Register provisions a new account in PENDING with no credential. The
// account's role is fixed by this lifecycle instance, never by input.
func (s *AccountLifecycle) Register(ctx context.Context, email string, profile domain.Profile) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        email,
		Role:         s.role,
		Status:       domain.StatusPending,
		Profile:      profile,
		HasActivated: false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Save(ctx, account)
}

// Bootstrap creates a pre-activated account with a credential already set,
// skipping PENDING. Only the first-admin provisioning path uses it.
func (s *AccountLifecycle) Bootstrap(ctx context.Context, email, password string, profile domain.Profile) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:          email,
		Role:           s.role,
		Status:         domain.StatusActive,
		Profile:        profile,
		CredentialHash: hash,
		HasActivated:   true,
		ActivatedAt:    &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.repo.Save(ctx, account)
}

// Authenticate covers both first-time activation and regular login.
//
// Order matters: the deactivation check runs before any credential logic,
// so an INACTIVE account fails even with the correct password. Lookup
// misses and password mismatches share one error value so the caller
// cannot probe which emails exist.
func (s *AccountLifecycle) Authenticate(ctx context.Context, email, password string) (*domain.Account, string, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", false, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if tripped, err := s.throttle.TooManyFailures(ctx, email); err == nil && tripped {
			return nil, "", false, domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		s.recordFailure(ctx, email)
		return nil, "", false, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", false, fmt.Errorf("find account: %w", err)
	}

	if account.Status == domain.StatusInactive {
		return nil, "", false, domain.ErrAccountDeactivated
	}

	if !account.HasActivated {
		return s.activate(ctx, account, password)
	}
	return s.login(ctx, account, password)
}

// activate handles the first login: set the credential and promote to
// ACTIVE. The repository performs the update as a compare-and-set on
// has_activated, so of two racing first logins only one lands.
func (s *AccountLifecycle) activate(ctx context.Context, account *domain.Account, password string) (*domain.Account, string, bool, error) {
	canActivate := account.Status == domain.StatusPending ||
		(account.Status == domain.StatusActive && account.CredentialHash == "")
	if !canActivate {
		return nil, "", false, domain.ErrActivationNotAllowed
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", false, fmt.Errorf("hash credential: %w", err)
	}

	activated, err := s.repo.Activate(ctx, account.ID, hash, time.Now().UTC())
	if err != nil {
		return nil, "", false, err
	}

	tkn, err := s.codec.Issue(activated.ID, activated.Email, activated.Role)
	if err != nil {
		return nil, "", false, err
	}
	s.resetThrottle(ctx, activated.Email)
	return activated, tkn, true, nil
}

func (s *AccountLifecycle) login(ctx context.Context, account *domain.Account, password string) (*domain.Account, string, bool, error) {
	if !s.hasher.Verify(password, account.CredentialHash) {
		s.recordFailure(ctx, account.Email)
		return nil, "", false, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	// A PENDING account that already holds a credential was reset by an
	// admin; a successful login counts as implicit re-activation.
	if account.Status == domain.StatusPending {
		account.Status = domain.StatusActive
	}
	account.LastLoginAt = &now
	account.UpdatedAt = now

	saved, err := s.repo.Save(ctx, account)
	if err != nil {
		return nil, "", false, fmt.Errorf("record login: %w", err)
	}

	tkn, err := s.codec.Issue(saved.ID, saved.Email, saved.Role)
	if err != nil {
		return nil, "", false, err
	}
	s.resetThrottle(ctx, saved.Email)
	return saved, tkn, false, nil
}

// ChangeCredential re-hashes and stores a new password. The caller's
// identity has already been checked by the authorization gate.
func (s *AccountLifecycle) ChangeCredential(ctx context.Context, accountID, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash credential: %w", err)
	}

	now := time.Now().UTC()
	account.CredentialHash = hash
	account.HasActivated = true
	account.UpdatedAt = now

	_, err = s.repo.Save(ctx, account)
	return err
}

// SetStatus assigns a canonical status directly — the admin escape hatch
// in the state machine. No normalization, no transition table.
func (s *AccountLifecycle) SetStatus(ctx context.Context, accountID string, status domain.Status) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.Status = status
	account.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, account)
}

func (s *AccountLifecycle) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

func (s *AccountLifecycle) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *AccountLifecycle) Delete(ctx context.Context, accountID string) error {
	return s.repo.DeleteByID(ctx, accountID)
}

func (s *AccountLifecycle) recordFailure(ctx context.Context, email string) {
	if s.throttle != nil {
		_ = s.throttle.RecordFailure(ctx, email)
	}
}

func (s *AccountLifecycle) resetThrottle(ctx context.Context, email string) {
	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, email)
	}
}
