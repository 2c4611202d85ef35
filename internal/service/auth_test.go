package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/auth"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return &pq.Error{Code: "23505"}
	}
	f.nextID++
	user.ID = user.Email // good enough for tests
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)
	// min cost keeps the hashing fast in tests
	return NewAuthService(newFakeUserStore(), tokens, 4)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.Equal(t, models.ProviderLocal, resp.User.Provider)

	login, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "other",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
