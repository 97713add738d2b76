package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type MaterialServiceInterface interface {
	GetMaterials(ctx context.Context, filter types.Filter) ([]dto.MaterialDTO, uint64, error)
	FindMaterial(ctx context.Context, id uint64) (*dto.MaterialDTO, error)
	CreateMaterial(ctx context.Context, payload dto.CreateMaterialDTO) (*dto.MaterialDTO, error)
	UpdateMaterial(ctx context.Context, id uint64, payload dto.UpdateMaterialDTO) (*dto.MaterialDTO, error)
	DeleteMaterial(ctx context.Context, id uint64) error
}

type MaterialService struct {
	materialRepository repositories.MaterialRepositoryInterface
	logger             *zap.Logger
}

func NewMaterialService(materialRepository repositories.MaterialRepositoryInterface, logger *zap.Logger) MaterialServiceInterface {
	return &MaterialService{
		materialRepository: materialRepository,
		logger:             logger,
	}
}

func (s *MaterialService) GetMaterials(ctx context.Context, filter types.Filter) ([]dto.MaterialDTO, uint64, error) {
	return s.materialRepository.GetMaterials(ctx, filter)
}

func (s *MaterialService) FindMaterial(ctx context.Context, id uint64) (*dto.MaterialDTO, error) {
	return s.materialRepository.FindMaterial(ctx, id)
}

func (s *MaterialService) CreateMaterial(ctx context.Context, payload dto.CreateMaterialDTO) (*dto.MaterialDTO, error) {
	created, err := s.materialRepository.CreateMaterial(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create material", zap.Error(err), zap.String("code", payload.MaterialCode))
		return nil, err
	}
	s.logger.Info("material created", zap.Uint64("id", created.ID), zap.String("code", created.MaterialCode))
	return created, nil
}

func (s *MaterialService) UpdateMaterial(ctx context.Context, id uint64, payload dto.UpdateMaterialDTO) (*dto.MaterialDTO, error) {
	updated, err := s.materialRepository.UpdateMaterial(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update material", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *MaterialService) DeleteMaterial(ctx context.Context, id uint64) error {
	if err := s.materialRepository.DeleteMaterial(ctx, id); err != nil {
		s.logger.Error("failed to delete material", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("material deleted", zap.Uint64("id", id))
	return nil
}
