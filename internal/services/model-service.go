package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type ModelServiceInterface interface {
	GetModels(ctx context.Context, filter types.Filter) ([]dto.ModelDTO, uint64, error)
	FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error)
	CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error)
	UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO) (*dto.ModelDTO, error)
	DeleteModel(ctx context.Context, id uint64) error
}

type ModelService struct {
	modelRepository repositories.ModelRepositoryInterface
	logger          *zap.Logger
}

func NewModelService(modelRepository repositories.ModelRepositoryInterface, logger *zap.Logger) ModelServiceInterface {
	return &ModelService{
		modelRepository: modelRepository,
		logger:          logger,
	}
}

func (s *ModelService) GetModels(ctx context.Context, filter types.Filter) ([]dto.ModelDTO, uint64, error) {
	return s.modelRepository.GetModels(ctx, filter)
}

func (s *ModelService) FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error) {
	return s.modelRepository.FindModel(ctx, id)
}

func (s *ModelService) CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error) {
	created, err := s.modelRepository.CreateModel(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create model", zap.Error(err), zap.String("code", payload.ModelCode))
		return nil, err
	}
	s.logger.Info("model created", zap.Uint64("id", created.ID), zap.String("code", created.ModelCode))
	return created, nil
}

func (s *ModelService) UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO) (*dto.ModelDTO, error) {
	updated, err := s.modelRepository.UpdateModel(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update model", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *ModelService) DeleteModel(ctx context.Context, id uint64) error {
	if err := s.modelRepository.DeleteModel(ctx, id); err != nil {
		s.logger.Error("failed to delete model", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("model deleted", zap.Uint64("id", id))
	return nil
}
