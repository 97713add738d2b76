package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type SectionServiceInterface interface {
	GetSections(ctx context.Context, filter types.Filter) ([]dto.SectionDTO, uint64, error)
	FindSection(ctx context.Context, id uint64) (*dto.SectionDTO, error)
	CreateSection(ctx context.Context, payload dto.CreateSectionDTO) (*dto.SectionDTO, error)
	UpdateSection(ctx context.Context, id uint64, payload dto.UpdateSectionDTO) (*dto.SectionDTO, error)
	DeleteSection(ctx context.Context, id uint64) error
}

type SectionService struct {
	sectionRepository repositories.SectionRepositoryInterface
	logger            *zap.Logger
}

func NewSectionService(sectionRepository repositories.SectionRepositoryInterface, logger *zap.Logger) SectionServiceInterface {
	return &SectionService{
		sectionRepository: sectionRepository,
		logger:            logger,
	}
}

func (s *SectionService) GetSections(ctx context.Context, filter types.Filter) ([]dto.SectionDTO, uint64, error) {
	return s.sectionRepository.GetSections(ctx, filter)
}

func (s *SectionService) FindSection(ctx context.Context, id uint64) (*dto.SectionDTO, error) {
	return s.sectionRepository.FindSection(ctx, id)
}

func (s *SectionService) CreateSection(ctx context.Context, payload dto.CreateSectionDTO) (*dto.SectionDTO, error) {
	created, err := s.sectionRepository.CreateSection(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create section", zap.Error(err), zap.String("code", payload.SectionCode))
		return nil, err
	}
	s.logger.Info("section created", zap.Uint64("id", created.ID), zap.String("code", created.SectionCode))
	return created, nil
}

func (s *SectionService) UpdateSection(ctx context.Context, id uint64, payload dto.UpdateSectionDTO) (*dto.SectionDTO, error) {
	updated, err := s.sectionRepository.UpdateSection(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update section", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *SectionService) DeleteSection(ctx context.Context, id uint64) error {
	if err := s.sectionRepository.DeleteSection(ctx, id); err != nil {
		s.logger.Error("failed to delete section", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("section deleted", zap.Uint64("id", id))
	return nil
}
