package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type RejectReasonServiceInterface interface {
	GetRejectReasons(ctx context.Context, filter types.Filter) ([]dto.RejectReasonDTO, uint64, error)
	FindRejectReason(ctx context.Context, id uint64) (*dto.RejectReasonDTO, error)
	CreateRejectReason(ctx context.Context, payload dto.CreateRejectReasonDTO) (*dto.RejectReasonDTO, error)
	UpdateRejectReason(ctx context.Context, id uint64, payload dto.UpdateRejectReasonDTO) (*dto.RejectReasonDTO, error)
	DeleteRejectReason(ctx context.Context, id uint64) error
}

type RejectReasonService struct {
	rejectReasonRepository repositories.RejectReasonRepositoryInterface
	logger                 *zap.Logger
}

func NewRejectReasonService(rejectReasonRepository repositories.RejectReasonRepositoryInterface, logger *zap.Logger) RejectReasonServiceInterface {
	return &RejectReasonService{
		rejectReasonRepository: rejectReasonRepository,
		logger:                 logger,
	}
}

func (s *RejectReasonService) GetRejectReasons(ctx context.Context, filter types.Filter) ([]dto.RejectReasonDTO, uint64, error) {
	return s.rejectReasonRepository.GetRejectReasons(ctx, filter)
}

func (s *RejectReasonService) FindRejectReason(ctx context.Context, id uint64) (*dto.RejectReasonDTO, error) {
	return s.rejectReasonRepository.FindRejectReason(ctx, id)
}

func (s *RejectReasonService) CreateRejectReason(ctx context.Context, payload dto.CreateRejectReasonDTO) (*dto.RejectReasonDTO, error) {
	created, err := s.rejectReasonRepository.CreateRejectReason(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create reject reason", zap.Error(err), zap.String("code", payload.ReasonCode))
		return nil, err
	}
	s.logger.Info("reject reason created", zap.Uint64("id", created.ID), zap.String("code", created.ReasonCode))
	return created, nil
}

func (s *RejectReasonService) UpdateRejectReason(ctx context.Context, id uint64, payload dto.UpdateRejectReasonDTO) (*dto.RejectReasonDTO, error) {
	updated, err := s.rejectReasonRepository.UpdateRejectReason(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update reject reason", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *RejectReasonService) DeleteRejectReason(ctx context.Context, id uint64) error {
	if err := s.rejectReasonRepository.DeleteRejectReason(ctx, id); err != nil {
		s.logger.Error("failed to delete reject reason", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("reject reason deleted", zap.Uint64("id", id))
	return nil
}
