package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/service"
	"checksheet-system/pkg/types"
)

type fakeUserRepository struct {
	authUsers map[string]*repositories.AuthUser
	users     map[uint64]*dto.UserDTO
}

func (f *fakeUserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) FindAuthUserByUsername(ctx context.Context, username string) (*repositories.AuthUser, error) {
	u, ok := f.authUsers[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (*dto.UserDTO, error) {
	return nil, apperrors.ErrInternalServer
}

func (f *fakeUserRepository) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, passwordHash *string) (*dto.UserDTO, error) {
	return nil, apperrors.ErrInternalServer
}

func (f *fakeUserRepository) DeleteUser(ctx context.Context, id uint64) error {
	return apperrors.ErrInternalServer
}

func newAuthServiceFixture(t *testing.T) (AuthServiceInterface, *fakeUserRepository, service.JWTService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepository{
		authUsers: map[string]*repositories.AuthUser{
			"inspector1": {ID: 5, Username: "inspector1", PasswordHash: string(hash), RoleID: 3},
		},
		users: map[uint64]*dto.UserDTO{
			5: {ID: 5, Username: "inspector1", FullName: "First Inspector", RoleID: 3},
		},
	}
	jwtSvc := service.NewJWTService("test-secret", time.Minute, time.Hour, zap.NewNop())
	return NewAuthService(users, jwtSvc, zap.NewNop()), users, jwtSvc
}

func TestLoginSuccess(t *testing.T) {
	svc, _, jwtSvc := newAuthServiceFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginDTO{Username: "inspector1", Password: "correct horse"})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), resp.User.ID)

	claims, err := jwtSvc.ValidateToken(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), claims.UserID)
	assert.Equal(t, uint64(3), claims.RoleID)
	assert.False(t, claims.IsRefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "inspector1", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)

	// Unknown user and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRefreshTokensRejectsAccessToken(t *testing.T) {
	svc, _, jwtSvc := newAuthServiceFixture(t)

	access, _, err := jwtSvc.GenerateTokens(5, 3)
	require.NoError(t, err)

	_, err = svc.RefreshTokens(context.Background(), dto.RefreshTokenDTO{RefreshToken: access})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestRefreshTokensRotatesPair(t *testing.T) {
	svc, _, jwtSvc := newAuthServiceFixture(t)

	_, refresh, err := jwtSvc.GenerateTokens(5, 3)
	require.NoError(t, err)

	pair, err := svc.RefreshTokens(context.Background(), dto.RefreshTokenDTO{RefreshToken: refresh})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, claims.IsRefreshToken)
}

func TestRefreshTokensDeletedUser(t *testing.T) {
	svc, users, jwtSvc := newAuthServiceFixture(t)

	_, refresh, err := jwtSvc.GenerateTokens(5, 3)
	require.NoError(t, err)

	delete(users.users, 5)
	_, err = svc.RefreshTokens(context.Background(), dto.RefreshTokenDTO{RefreshToken: refresh})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
