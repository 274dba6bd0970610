package service

import (
	"context"

	"github.com/spec-kit/user-service/internal/pdf"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// ExportService renders the full user directory as a PDF report.
type ExportService struct {
	users repository.UserRepository
}

// NewExportService builds the service.
func NewExportService(users repository.UserRepository) *ExportService {
	return &ExportService{users: users}
}

// ExportUsersPDF loads every user account and renders the report.
func (s *ExportService) ExportUsersPDF(ctx context.Context) ([]byte, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound("No registered users")
	}

	report, err := pdf.UsersReport(users)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return report, nil
}
