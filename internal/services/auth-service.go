package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	RefreshTokens(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepository repositories.UserRepositoryInterface
	jwtService     service.JWTService
	logger         *zap.Logger
}

func NewAuthService(
	userRepository repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		logger:         logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	authUser, err := s.userRepository.FindAuthUserByUsername(ctx, payload.Username)
	if err != nil {
		s.logger.Warn("login attempt for unknown user", zap.String("username", payload.Username))
		return nil, apperrors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(authUser.PasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Warn("login attempt with wrong password", zap.String("username", payload.Username))
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(authUser.ID, authUser.RoleID)
	if err != nil {
		s.logger.Error("failed to generate tokens", zap.Error(err), zap.Uint64("userID", authUser.ID))
		return nil, apperrors.ErrInternalServer
	}

	user, err := s.userRepository.FindUser(ctx, authUser.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Uint64("userID", authUser.ID))
	return &dto.LoginResponseDTO{
		User: *user,
		Tokens: dto.TokenPairDTO{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (s *AuthService) RefreshTokens(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Re-read the user so a deleted account cannot keep refreshing.
	if _, err := s.userRepository.FindUser(ctx, claims.UserID); err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(claims.UserID, claims.RoleID)
	if err != nil {
		s.logger.Error("failed to rotate tokens", zap.Error(err), zap.Uint64("userID", claims.UserID))
		return nil, apperrors.ErrInternalServer
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
