package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/video-storefront/internal/lib/jwt"
	"github.com/magabrotheeeer/video-storefront/internal/lib/password"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name         string
		seller       bool
		expectedRole string
	}{
		{name: "регистрация покупателя", seller: false, expectedRole: models.RoleUser},
		{name: "регистрация продавца", seller: true, expectedRole: models.RoleSeller},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
				if u.Role != tt.expectedRole || u.Username != "alice" || u.Email != "alice@example.com" {
					return false
				}
				// Пароль хранится только в виде хэша
				return u.PasswordHash != "secret123" &&
					password.CompareHash(u.PasswordHash, "secret123") == nil
			})).Return("uid-1", nil).Once()

			service := NewAuthService(repo, newMaker())
			uid, err := service.Register(context.Background(), "alice@example.com", "alice", "secret123", tt.seller)

			require.NoError(t, err)
			assert.Equal(t, "uid-1", uid)
			repo.AssertExpectations(t)
		})
	}
}

func TestLoginAndValidateToken(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
		UID:          "uid-1",
		Username:     "alice",
		PasswordHash: hash,
		Role:         models.RoleSeller,
	}, nil)

	service := NewAuthService(repo, newMaker())

	token, role, err := service.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, role)
	require.NotEmpty(t, token)

	user, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleSeller, user.Role)
	assert.Equal(t, "uid-1", user.UID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
		Username:     "alice",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}, nil).Once()

	service := NewAuthService(repo, newMaker())
	_, _, err = service.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, errors.New("no rows")).Once()

	service := NewAuthService(repo, newMaker())
	_, _, err := service.Login(context.Background(), "ghost", "secret123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_Invalid(t *testing.T) {
	service := NewAuthService(new(MockUserRepository), newMaker())

	_, err := service.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)

	// Токен, подписанный другим ключом
	foreign, genErr := jwt.NewJWTMaker("other-secret", time.Hour).GenerateToken("alice", models.RoleUser, "uid-1")
	require.NoError(t, genErr)
	_, err = service.ValidateToken(context.Background(), foreign)
	assert.Error(t, err)
}
