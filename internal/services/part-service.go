package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type PartServiceInterface interface {
	GetParts(ctx context.Context, filter types.Filter) ([]dto.PartDTO, uint64, error)
	FindPart(ctx context.Context, id uint64) (*dto.PartDTO, error)
	CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*dto.PartDTO, error)
	UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error)
	DeletePart(ctx context.Context, id uint64) error
}

type PartService struct {
	partRepository repositories.PartRepositoryInterface
	logger         *zap.Logger
}

func NewPartService(partRepository repositories.PartRepositoryInterface, logger *zap.Logger) PartServiceInterface {
	return &PartService{
		partRepository: partRepository,
		logger:         logger,
	}
}

func (s *PartService) GetParts(ctx context.Context, filter types.Filter) ([]dto.PartDTO, uint64, error) {
	return s.partRepository.GetParts(ctx, filter)
}

func (s *PartService) FindPart(ctx context.Context, id uint64) (*dto.PartDTO, error) {
	return s.partRepository.FindPart(ctx, id)
}

func (s *PartService) CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*dto.PartDTO, error) {
	created, err := s.partRepository.CreatePart(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create part", zap.Error(err), zap.String("code", payload.PartCode))
		return nil, err
	}
	s.logger.Info("part created", zap.Uint64("id", created.ID), zap.String("code", created.PartCode))
	return created, nil
}

func (s *PartService) UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error) {
	updated, err := s.partRepository.UpdatePart(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update part", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *PartService) DeletePart(ctx context.Context, id uint64) error {
	if err := s.partRepository.DeletePart(ctx, id); err != nil {
		s.logger.Error("failed to delete part", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("part deleted", zap.Uint64("id", id))
	return nil
}
