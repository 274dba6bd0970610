package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/identity"
	"github.com/spec-kit/user-service/internal/repository"
)

// Stub repositories with overridable function fields. Unset getters behave
// like an empty database.

type userRepoStub struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, email string, updates repository.ProfileUpdates) (*domain.User, error)
	listActiveFn func(ctx context.Context, createdAfter time.Time, limit int, username string) ([]domain.User, int, error)
	searchFn     func(ctx context.Context, name string, limit int) ([]domain.User, error)
	listAllFn    func(ctx context.Context) ([]domain.User, error)

	created []*domain.User
	touched []string
}

func (s *userRepoStub) Create(ctx context.Context, user *domain.User) error {
	s.created = append(s.created, user)
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (s *userRepoStub) UpdateProfile(ctx context.Context, email string, updates repository.ProfileUpdates) (*domain.User, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, email, updates)
	}
	return nil, pgx.ErrNoRows
}

func (s *userRepoStub) SetActive(context.Context, string, bool) error { return nil }

func (s *userRepoStub) TouchLastLogin(_ context.Context, id string) error {
	s.touched = append(s.touched, id)
	return nil
}

func (s *userRepoStub) ListActive(ctx context.Context, createdAfter time.Time, limit int, username string) ([]domain.User, int, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx, createdAfter, limit, username)
	}
	return nil, 0, nil
}

func (s *userRepoStub) SearchByName(ctx context.Context, name string, limit int) ([]domain.User, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, name, limit)
	}
	return nil, nil
}

func (s *userRepoStub) ListAll(ctx context.Context) ([]domain.User, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx)
	}
	return nil, nil
}

type adminRepoStub struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.Admin, error)
	updateFn     func(ctx context.Context, email string, updates repository.ProfileUpdates) (*domain.Admin, error)

	created []*domain.Admin
	touched []string
}

func (s *adminRepoStub) Create(_ context.Context, admin *domain.Admin) error {
	s.created = append(s.created, admin)
	return nil
}

func (s *adminRepoStub) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (s *adminRepoStub) UpdateProfile(ctx context.Context, email string, updates repository.ProfileUpdates) (*domain.Admin, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, email, updates)
	}
	return nil, pgx.ErrNoRows
}

func (s *adminRepoStub) SetActive(context.Context, string, bool) error { return nil }

func (s *adminRepoStub) TouchLastLogin(_ context.Context, id string) error {
	s.touched = append(s.touched, id)
	return nil
}

type suspensionRepoStub struct {
	findActiveFn  func(ctx context.Context, userID string) (*domain.Suspension, error)
	isSuspendedFn func(ctx context.Context, userID string) (bool, error)

	created []*domain.Suspension
}

func (s *suspensionRepoStub) Create(_ context.Context, suspension *domain.Suspension) error {
	s.created = append(s.created, suspension)
	return nil
}

func (s *suspensionRepoStub) FindActiveByUserID(ctx context.Context, userID string) (*domain.Suspension, error) {
	if s.findActiveFn != nil {
		return s.findActiveFn(ctx, userID)
	}
	return nil, nil
}

func (s *suspensionRepoStub) IsSuspended(ctx context.Context, userID string) (bool, error) {
	if s.isSuspendedFn != nil {
		return s.isSuspendedFn(ctx, userID)
	}
	return false, nil
}

type recoveryRepoStub struct {
	saveFn    func(ctx context.Context, id, email, secret string, ttl time.Duration) error
	consumeFn func(ctx context.Context, id, secret string) (*repository.RecoveryToken, error)

	savedID     string
	savedEmail  string
	savedSecret string
	savedTTL    time.Duration
}

func (s *recoveryRepoStub) Save(ctx context.Context, id, email, secret string, ttl time.Duration) error {
	s.savedID, s.savedEmail, s.savedSecret, s.savedTTL = id, email, secret, ttl
	if s.saveFn != nil {
		return s.saveFn(ctx, id, email, secret, ttl)
	}
	return nil
}

func (s *recoveryRepoStub) Consume(ctx context.Context, id, secret string) (*repository.RecoveryToken, error) {
	if s.consumeFn != nil {
		return s.consumeFn(ctx, id, secret)
	}
	return nil, repository.ErrRecoveryTokenNotFound
}

type identityVerifierStub struct {
	claims *identity.Claims
	err    error
}

func (s *identityVerifierStub) Verify(context.Context, string) (*identity.Claims, error) {
	return s.claims, s.err
}

// dispatcherStub records published events.
type dispatcherStub struct {
	published []events.Event
	err       error
}

func (s *dispatcherStub) Publish(_ context.Context, event events.Event) error {
	s.published = append(s.published, event)
	return s.err
}

func (s *dispatcherStub) Subscribe(events.EventType, events.EventHandler) {}
