package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type TypeServiceInterface interface {
	GetTypes(ctx context.Context, filter types.Filter) ([]dto.TypeDTO, uint64, error)
	FindType(ctx context.Context, id uint64) (*dto.TypeDTO, error)
	CreateType(ctx context.Context, payload dto.CreateTypeDTO) (*dto.TypeDTO, error)
	UpdateType(ctx context.Context, id uint64, payload dto.UpdateTypeDTO) (*dto.TypeDTO, error)
	DeleteType(ctx context.Context, id uint64) error
}

type TypeService struct {
	typeRepository repositories.TypeRepositoryInterface
	logger         *zap.Logger
}

func NewTypeService(typeRepository repositories.TypeRepositoryInterface, logger *zap.Logger) TypeServiceInterface {
	return &TypeService{
		typeRepository: typeRepository,
		logger:         logger,
	}
}

func (s *TypeService) GetTypes(ctx context.Context, filter types.Filter) ([]dto.TypeDTO, uint64, error) {
	return s.typeRepository.GetTypes(ctx, filter)
}

func (s *TypeService) FindType(ctx context.Context, id uint64) (*dto.TypeDTO, error) {
	return s.typeRepository.FindType(ctx, id)
}

func (s *TypeService) CreateType(ctx context.Context, payload dto.CreateTypeDTO) (*dto.TypeDTO, error) {
	created, err := s.typeRepository.CreateType(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create type", zap.Error(err), zap.String("code", payload.TypeCode))
		return nil, err
	}
	s.logger.Info("type created", zap.Uint64("id", created.ID), zap.String("code", created.TypeCode))
	return created, nil
}

func (s *TypeService) UpdateType(ctx context.Context, id uint64, payload dto.UpdateTypeDTO) (*dto.TypeDTO, error) {
	updated, err := s.typeRepository.UpdateType(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update type", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *TypeService) DeleteType(ctx context.Context, id uint64) error {
	if err := s.typeRepository.DeleteType(ctx, id); err != nil {
		s.logger.Error("failed to delete type", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("type deleted", zap.Uint64("id", id))
	return nil
}
