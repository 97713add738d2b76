package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
)

type AuthPermissionServiceInterface interface {
	GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error)
	InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error
}

type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

func rolePermissionsCacheKey(roleID uint64) string {
	return fmt.Sprintf("auth:permissions:role:%d", roleID)
}

func (s *AuthPermissionService) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	cacheKey := rolePermissionsCacheKey(roleID)

	cached, err := s.cacheRepo.Get(ctx, cacheKey)
	if err == nil {
		var permissions []string
		if err := json.Unmarshal([]byte(cached), &permissions); err == nil {
			return permissions, nil
		}
		s.logger.Warn("corrupt permissions cache entry", zap.String("key", cacheKey))
	}

	permissions, err := s.permissionRepo.GetPermissionsNamesByRoleID(ctx, roleID)
	if err != nil {
		s.logger.Error("failed to load role permissions", zap.Error(err), zap.Uint64("roleID", roleID))
		return nil, apperrors.ErrInternalServer
	}

	if len(permissions) > 0 {
		if data, err := json.Marshal(permissions); err == nil {
			if err := s.cacheRepo.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache role permissions", zap.Error(err), zap.Uint64("roleID", roleID))
			}
		}
	}
	return permissions, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error {
	return s.cacheRepo.Del(ctx, rolePermissionsCacheKey(roleID))
}
