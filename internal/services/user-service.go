package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepository repositories.UserRepositoryInterface
	roleRepository repositories.RoleRepositoryInterface
	permissionSvc  AuthPermissionServiceInterface
	logger         *zap.Logger
}

func NewUserService(
	userRepository repositories.UserRepositoryInterface,
	roleRepository repositories.RoleRepositoryInterface,
	permissionSvc AuthPermissionServiceInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepository: userRepository,
		roleRepository: roleRepository,
		permissionSvc:  permissionSvc,
		logger:         logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	return s.userRepository.GetUsers(ctx, filter)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	return s.userRepository.FindUser(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	if _, err := s.roleRepository.FindRole(ctx, payload.RoleID); err != nil {
		return nil, apperrors.NewHttpError(400, "role does not exist", err, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	created, err := s.userRepository.CreateUser(ctx, payload, string(hash))
	if err != nil {
		s.logger.Error("failed to create user", zap.Error(err), zap.String("username", payload.Username))
		return nil, err
	}
	s.logger.Info("user created", zap.Uint64("id", created.ID), zap.String("username", created.Username))
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	var passwordHash *string
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("failed to hash password", zap.Error(err))
			return nil, apperrors.ErrInternalServer
		}
		hashStr := string(hash)
		passwordHash = &hashStr
	}
	if payload.RoleID.Valid {
		if _, err := s.roleRepository.FindRole(ctx, payload.RoleID.Uint64); err != nil {
			return nil, apperrors.NewHttpError(400, "role does not exist", err, nil)
		}
	}

	updated, err := s.userRepository.UpdateUser(ctx, id, payload, passwordHash)
	if err != nil {
		s.logger.Error("failed to update user", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}

	// A role change must not serve stale cached permissions.
	if payload.RoleID.Valid {
		if err := s.permissionSvc.InvalidateRolePermissionsCache(ctx, payload.RoleID.Uint64); err != nil {
			s.logger.Warn("failed to invalidate permissions cache", zap.Error(err), zap.Uint64("roleID", payload.RoleID.Uint64))
		}
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		s.logger.Error("failed to delete user", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("user deleted", zap.Uint64("id", id))
	return nil
}
