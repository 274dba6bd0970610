package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/domain"
)

func TestExportService_ExportUsersPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("no users", func(t *testing.T) {
		svc := NewExportService(&userRepoStub{})
		_, err := svc.ExportUsersPDF(ctx)
		requireDomainError(t, err, http.StatusNotFound, "No registered users")
	})

	t.Run("renders a PDF document", func(t *testing.T) {
		users := &userRepoStub{listAllFn: func(context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: "user-1", Email: "a@example.com", Username: "a", FullName: "Alice", IsActive: true, CreatedAt: time.Now()},
				{ID: "user-2", Email: "b@example.com", Username: "b", FullName: "Bob", IsActive: false, CreatedAt: time.Now()},
			}, nil
		}}
		svc := NewExportService(users)

		report, err := svc.ExportUsersPDF(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, report)
		assert.Equal(t, "%PDF", string(report[:4]))
	})
}
