package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kasunw/lottery-sales-api/internal/dto"
	"github.com/kasunw/lottery-sales-api/internal/models"
	appErrors "github.com/kasunw/lottery-sales-api/pkg/errors"
)

type fakeUserDirectory struct {
	users      []models.User
	byUsername map[string]*models.User
	byID       map[string]*models.User
	created    *models.User
	deleted    string
}

func newFakeUserDirectory() *fakeUserDirectory {
	return &fakeUserDirectory{
		byUsername: make(map[string]*models.User),
		byID:       make(map[string]*models.User),
	}
}

func (f *fakeUserDirectory) List(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserDirectory) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserDirectory) Create(ctx context.Context, user *models.User) error {
	f.created = user
	return nil
}

func (f *fakeUserDirectory) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	f.deleted = id
	return nil
}

func createRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username: "nimal",
		Password: "secret1",
		FullName: "Nimal Silva",
		Role:     string(models.RoleSalesPromotionAssistant),
		District: "Galle",
	}
}

func TestCreateUser(t *testing.T) {
	repo := newFakeUserDirectory()
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "nimal", user.Username)
	assert.Equal(t, models.RoleSalesPromotionAssistant, user.Role)
	assert.True(t, user.Active)
	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret1")))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserDirectory()
	repo.byUsername["nimal"] = &models.User{ID: "u9", Username: "nimal"}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), createRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestCreateUserValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateUserRequest)
	}{
		{"short username", func(r *dto.CreateUserRequest) { r.Username = "ab" }},
		{"short password", func(r *dto.CreateUserRequest) { r.Password = "abc" }},
		{"unknown role", func(r *dto.CreateUserRequest) { r.Role = "ADMIN" }},
		{"missing role", func(r *dto.CreateUserRequest) { r.Role = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserDirectory()
			svc := NewUserService(repo, nil, nil)

			req := createRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
			assert.Nil(t, repo.created)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserDirectory()
	repo.byID["u2"] = &models.User{ID: "u2", Username: "nimal"}
	svc := NewUserService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "u1", "u2"))
	assert.Equal(t, "u2", repo.deleted)
}

func TestDeleteUserSelf(t *testing.T) {
	repo := newFakeUserDirectory()
	repo.byID["u1"] = &models.User{ID: "u1", Username: "kasun"}
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), "u1", "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)
}

func TestDeleteUserMissing(t *testing.T) {
	svc := NewUserService(newFakeUserDirectory(), nil, nil)

	err := svc.Delete(context.Background(), "u1", "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListUsersPropagatesRepoSet(t *testing.T) {
	now := time.Now().UTC()
	repo := newFakeUserDirectory()
	repo.users = []models.User{{ID: "u1", Username: "kasun", CreatedAt: now}}
	svc := NewUserService(repo, nil, nil)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
