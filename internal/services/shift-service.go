package services

import (
	"context"

	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/types"
)

type ShiftServiceInterface interface {
	GetShifts(ctx context.Context, filter types.Filter) ([]dto.ShiftDTO, uint64, error)
	FindShift(ctx context.Context, id uint64) (*dto.ShiftDTO, error)
	CreateShift(ctx context.Context, payload dto.CreateShiftDTO) (*dto.ShiftDTO, error)
	UpdateShift(ctx context.Context, id uint64, payload dto.UpdateShiftDTO) (*dto.ShiftDTO, error)
	DeleteShift(ctx context.Context, id uint64) error
}

type ShiftService struct {
	shiftRepository repositories.ShiftRepositoryInterface
	logger          *zap.Logger
}

func NewShiftService(shiftRepository repositories.ShiftRepositoryInterface, logger *zap.Logger) ShiftServiceInterface {
	return &ShiftService{
		shiftRepository: shiftRepository,
		logger:          logger,
	}
}

func (s *ShiftService) GetShifts(ctx context.Context, filter types.Filter) ([]dto.ShiftDTO, uint64, error) {
	return s.shiftRepository.GetShifts(ctx, filter)
}

func (s *ShiftService) FindShift(ctx context.Context, id uint64) (*dto.ShiftDTO, error) {
	return s.shiftRepository.FindShift(ctx, id)
}

func (s *ShiftService) CreateShift(ctx context.Context, payload dto.CreateShiftDTO) (*dto.ShiftDTO, error) {
	created, err := s.shiftRepository.CreateShift(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create shift", zap.Error(err), zap.String("code", payload.ShiftCode))
		return nil, err
	}
	s.logger.Info("shift created", zap.Uint64("id", created.ID), zap.String("code", created.ShiftCode))
	return created, nil
}

func (s *ShiftService) UpdateShift(ctx context.Context, id uint64, payload dto.UpdateShiftDTO) (*dto.ShiftDTO, error) {
	updated, err := s.shiftRepository.UpdateShift(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update shift", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *ShiftService) DeleteShift(ctx context.Context, id uint64) error {
	if err := s.shiftRepository.DeleteShift(ctx, id); err != nil {
		s.logger.Error("failed to delete shift", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("shift deleted", zap.Uint64("id", id))
	return nil
}
