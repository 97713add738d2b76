package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/inspection"
	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
	"checksheet-system/pkg/utils"
)

type FiServiceInterface interface {
	GetFis(ctx context.Context, filter types.Filter) ([]dto.FiDTO, uint64, error)
	FindFi(ctx context.Context, id uint64) (*dto.FiDTO, error)
	CreateFi(ctx context.Context, payload dto.CreateFiDTO) (*dto.FiDTO, error)
	UpdateFi(ctx context.Context, id uint64, payload dto.UpdateFiDTO) (*dto.FiDTO, error)
	DeleteFi(ctx context.Context, id uint64) error

	Approve(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.FiDTO, error)
	RequestRevision(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.FiDTO, error)
	Reject(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.FiDTO, error)
	GetApprovals(ctx context.Context, id uint64) ([]dto.ChecksheetApprovalDTO, error)
	GetRevisions(ctx context.Context, id uint64) ([]dto.ChecksheetRevisionDTO, error)
}

type FiService struct {
	storage            repositories.TxStarter
	fiRepository       repositories.FiRepositoryInterface
	templateRepository repositories.TemplateRepositoryInterface
	reviewRepository   repositories.ReviewRepositoryInterface
	logger             *zap.Logger
}

func NewFiService(
	storage repositories.TxStarter,
	fiRepository repositories.FiRepositoryInterface,
	templateRepository repositories.TemplateRepositoryInterface,
	reviewRepository repositories.ReviewRepositoryInterface,
	logger *zap.Logger,
) FiServiceInterface {
	return &FiService{
		storage:            storage,
		fiRepository:       fiRepository,
		templateRepository: templateRepository,
		reviewRepository:   reviewRepository,
		logger:             logger,
	}
}

func (s *FiService) GetFis(ctx context.Context, filter types.Filter) ([]dto.FiDTO, uint64, error) {
	return s.fiRepository.GetFis(ctx, filter)
}

func (s *FiService) FindFi(ctx context.Context, id uint64) (*dto.FiDTO, error) {
	return s.fiRepository.FindFi(ctx, id)
}

func (s *FiService) CreateFi(ctx context.Context, payload dto.CreateFiDTO) (*dto.FiDTO, error) {
	operatorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	template, err := s.templateRepository.FindTemplate(ctx, payload.TemplateID)
	if err != nil {
		return nil, err
	}
	if template.Type != "fi" {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("template %s is not a final inspection template", template.Code), nil, nil)
	}

	var fiID uint64
	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		id, err := s.fiRepository.CreateFi(ctx, tx, payload, operatorID, string(inspection.StatusPending))
		if err != nil {
			return err
		}
		fiID = id
		return s.fiRepository.CreateVisualInspections(ctx, tx, id, payload.VisualInspections)
	})
	if err != nil {
		s.logger.Error("failed to create fi checksheet", zap.Error(err), zap.String("idFi", payload.IDFi))
		return nil, err
	}

	s.logger.Info("fi checksheet created", zap.Uint64("id", fiID), zap.String("idFi", payload.IDFi),
		zap.Int("inspections", len(payload.VisualInspections)))
	return s.fiRepository.FindFi(ctx, fiID)
}

func (s *FiService) UpdateFi(ctx context.Context, id uint64, payload dto.UpdateFiDTO) (*dto.FiDTO, error) {
	current, err := s.fiRepository.FindFi(ctx, id)
	if err != nil {
		return nil, err
	}
	if inspection.Status(current.Status).Terminal() {
		return nil, apperrors.NewHttpError(http.StatusConflict,
			fmt.Sprintf("checksheet is %s and can no longer be edited", current.Status), nil, nil)
	}

	if err := s.fiRepository.UpdateFi(ctx, id, payload); err != nil {
		s.logger.Error("failed to update fi checksheet", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return s.fiRepository.FindFi(ctx, id)
}

func (s *FiService) DeleteFi(ctx context.Context, id uint64) error {
	if err := s.fiRepository.DeleteFi(ctx, id); err != nil {
		s.logger.Error("failed to delete fi checksheet", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("fi checksheet deleted", zap.Uint64("id", id))
	return nil
}

func (s *FiService) Approve(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.FiDTO, error) {
	return s.applyWorkflowAction(ctx, id, inspection.ActionApprove, payload.Note)
}

func (s *FiService) RequestRevision(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.FiDTO, error) {
	return s.applyWorkflowAction(ctx, id, inspection.ActionRequestRevision, payload.Note)
}

func (s *FiService) Reject(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.FiDTO, error) {
	return s.applyWorkflowAction(ctx, id, inspection.ActionReject, payload.Note)
}

func (s *FiService) applyWorkflowAction(ctx context.Context, id uint64, action inspection.Action, note string) (*dto.FiDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		current, version, err := s.fiRepository.GetFiStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := inspection.Transition(inspection.Status(current), action)
		if err != nil {
			return err
		}
		if err := s.fiRepository.UpdateFiStatus(ctx, tx, id, string(next), version); err != nil {
			return err
		}

		ref := inspection.FiRef(id)
		switch action {
		case inspection.ActionApprove:
			return s.reviewRepository.CreateApproval(ctx, tx, ref, "approved", actorID, note)
		case inspection.ActionReject:
			return s.reviewRepository.CreateApproval(ctx, tx, ref, "rejected", actorID, note)
		case inspection.ActionRequestRevision:
			return s.reviewRepository.CreateRevision(ctx, tx, ref, note, actorID)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("fi workflow action failed", zap.Error(err),
			zap.Uint64("id", id), zap.String("action", string(action)))
		return nil, err
	}

	s.logger.Info("fi workflow action applied", zap.Uint64("id", id),
		zap.String("action", string(action)), zap.Uint64("actorID", actorID))
	return s.fiRepository.FindFi(ctx, id)
}

func (s *FiService) GetApprovals(ctx context.Context, id uint64) ([]dto.ChecksheetApprovalDTO, error) {
	if _, err := s.fiRepository.FindFi(ctx, id); err != nil {
		return nil, err
	}
	return s.reviewRepository.GetApprovals(ctx, inspection.FiRef(id))
}

func (s *FiService) GetRevisions(ctx context.Context, id uint64) ([]dto.ChecksheetRevisionDTO, error) {
	if _, err := s.fiRepository.FindFi(ctx, id); err != nil {
		return nil, err
	}
	return s.reviewRepository.GetRevisions(ctx, inspection.FiRef(id))
}
