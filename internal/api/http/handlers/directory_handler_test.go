package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/internal/service"
	"github.com/spec-kit/user-service/pkg/util"
)

type directoryRepoStub struct {
	listActiveFn func(ctx context.Context, createdAfter time.Time, limit int, username string) ([]domain.User, int, error)
	searchFn     func(ctx context.Context, name string, limit int) ([]domain.User, error)
}

func (s *directoryRepoStub) Create(context.Context, *domain.User) error { return nil }
func (s *directoryRepoStub) GetByID(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (s *directoryRepoStub) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (s *directoryRepoStub) UpdateProfile(context.Context, string, repository.ProfileUpdates) (*domain.User, error) {
	return nil, nil
}
func (s *directoryRepoStub) SetActive(context.Context, string, bool) error { return nil }
func (s *directoryRepoStub) TouchLastLogin(context.Context, string) error  { return nil }

func (s *directoryRepoStub) ListActive(ctx context.Context, createdAfter time.Time, limit int, username string) ([]domain.User, int, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx, createdAfter, limit, username)
	}
	return nil, 0, nil
}

func (s *directoryRepoStub) SearchByName(ctx context.Context, name string, limit int) ([]domain.User, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, name, limit)
	}
	return nil, nil
}

func (s *directoryRepoStub) ListAll(context.Context) ([]domain.User, error) { return nil, nil }

func newDirectoryApp(repo *directoryRepoStub) *fiber.App {
	handler := NewDirectoryHandler(service.NewDirectoryService(repo))
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		domainErr := util.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
			"code":    domainErr.Code,
			"message": domainErr.Message,
		}})
	}})
	app.Get("/users/active", handler.ListActive)
	app.Get("/users/search", handler.Search)
	return app
}

func TestDirectoryHandler_ListActive_PairedParams(t *testing.T) {
	app := newDirectoryApp(&directoryRepoStub{})

	for _, target := range []string{
		"/users/active?limit=10",
		"/users/active?created_after=2026-03-01T12:00:00Z",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "target %s", target)
		resp.Body.Close()
	}
}

func TestDirectoryHandler_ListActive_BadParams(t *testing.T) {
	app := newDirectoryApp(&directoryRepoStub{})

	for _, target := range []string{
		"/users/active?limit=abc&created_after=2026-03-01T12:00:00Z",
		"/users/active?limit=0&created_after=2026-03-01T12:00:00Z",
		"/users/active?limit=10&created_after=yesterday",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "target %s", target)
		resp.Body.Close()
	}
}

func TestDirectoryHandler_ListActive_DefaultsWhenOmitted(t *testing.T) {
	var gotLimit int
	var gotAfter time.Time
	repo := &directoryRepoStub{listActiveFn: func(_ context.Context, after time.Time, limit int, _ string) ([]domain.User, int, error) {
		gotAfter, gotLimit = after, limit
		return nil, 0, nil
	}}
	app := newDirectoryApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/active", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 20, gotLimit)
	assert.True(t, gotAfter.IsZero())
}

func TestDirectoryHandler_ListActive_Page(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &directoryRepoStub{listActiveFn: func(context.Context, time.Time, int, string) ([]domain.User, int, error) {
		return []domain.User{
			{ID: "user-1", Email: "a@example.com", Username: "a", FullName: "Alice", IsActive: true, CreatedAt: created},
		}, 5, nil
	}}
	app := newDirectoryApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/active?limit=1&created_after=2026-03-01T00:00:00Z", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Message string `json:"message"`
		Data    []struct {
			ID string `json:"id"`
		} `json:"data"`
		Metadata struct {
			LastTime       *time.Time `json:"last_time"`
			RemainingItems int        `json:"remainingItems"`
			RemainingPages int        `json:"remainingPages"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "All users fetched successfully", body.Message)
	require.Len(t, body.Data, 1)
	require.NotNil(t, body.Metadata.LastTime)
	assert.True(t, created.Equal(*body.Metadata.LastTime))
	assert.Equal(t, 4, body.Metadata.RemainingItems)
	assert.Equal(t, 4, body.Metadata.RemainingPages)
}

func TestDirectoryHandler_Search(t *testing.T) {
	repo := &directoryRepoStub{searchFn: func(_ context.Context, name string, _ int) ([]domain.User, error) {
		return []domain.User{{ID: "user-1", Username: "alice", FullName: "Alice A"}}, nil
	}}
	app := newDirectoryApp(repo)

	t.Run("missing name", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/search", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("returns matches", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/search?name=ali", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "user_fullname")
		assert.Contains(t, string(raw), "alice")
	})
}
