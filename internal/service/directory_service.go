package service

import (
	"context"
	"time"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const searchResultLimit = 5

// DirectoryQuery selects a page of the active-user directory. CreatedAfter
// is a keyset cursor; Username optionally narrows to an exact username.
type DirectoryQuery struct {
	CreatedAfter time.Time
	Limit        int
	Username     string
}

// DirectoryMetadata describes how much of the directory remains beyond the
// returned page.
type DirectoryMetadata struct {
	LastTime       *time.Time
	RemainingItems int
	RemainingPages int
}

// DirectoryPage is one page of the directory plus pagination metadata.
type DirectoryPage struct {
	Users    []domain.User
	Metadata DirectoryMetadata
}

// DirectoryService serves the paginated directory and name search.
type DirectoryService struct {
	users repository.UserRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(users repository.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

// ListActive returns the page after the cursor. The cursor for the next
// request is the created_at of the last returned user.
func (s *DirectoryService) ListActive(ctx context.Context, query DirectoryQuery) (*DirectoryPage, error) {
	if query.Limit < 1 {
		return nil, apperrors.NewValidationError("Invalid query parameters.", "limit must be at least 1")
	}

	users, totalRemaining, err := s.users.ListActive(ctx, query.CreatedAfter, query.Limit, query.Username)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	var lastTime *time.Time
	if len(users) > 0 {
		lastTime = &users[len(users)-1].CreatedAt
	}

	remaining := totalRemaining - len(users)
	if remaining < 0 {
		remaining = 0
	}

	return &DirectoryPage{
		Users: users,
		Metadata: DirectoryMetadata{
			LastTime:       lastTime,
			RemainingItems: remaining,
			RemainingPages: ceilDiv(remaining, query.Limit),
		},
	}, nil
}

// Search returns up to five active users whose username or full name
// contains the given name, case-insensitively.
func (s *DirectoryService) Search(ctx context.Context, name string) ([]domain.User, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("Validation error", "name is required")
	}

	users, err := s.users.SearchByName(ctx, name, searchResultLimit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
