package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/inspection"
	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/filestorage"
	"checksheet-system/pkg/types"
	"checksheet-system/pkg/utils"
)

type DirServiceInterface interface {
	GetDirs(ctx context.Context, filter types.Filter) ([]dto.DirDTO, uint64, error)
	FindDir(ctx context.Context, id uint64) (*dto.DirDTO, error)
	CreateDir(ctx context.Context, payload dto.CreateDirDTO) (*dto.DirDTO, error)
	UpdateDir(ctx context.Context, id uint64, payload dto.UpdateDirDTO) (*dto.DirDTO, error)
	DeleteDir(ctx context.Context, id uint64) error

	Approve(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.DirDTO, error)
	RequestRevision(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.DirDTO, error)
	Reject(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.DirDTO, error)
	GetApprovals(ctx context.Context, id uint64) ([]dto.ChecksheetApprovalDTO, error)
	GetRevisions(ctx context.Context, id uint64) ([]dto.ChecksheetRevisionDTO, error)

	UploadMeasurementPhoto(ctx context.Context, dirID, measurementID uint64, file io.Reader, filename string, payload dto.CreateMeasurementPhotoDTO) (*dto.MeasurementPhotoDTO, error)
}

type DirService struct {
	storage            repositories.TxStarter
	dirRepository      repositories.DirRepositoryInterface
	templateRepository repositories.TemplateRepositoryInterface
	itemRepository     repositories.TemplateItemRepositoryInterface
	reviewRepository   repositories.ReviewRepositoryInterface
	fileStorage        filestorage.FileStorageInterface
	logger             *zap.Logger
}

func NewDirService(
	storage repositories.TxStarter,
	dirRepository repositories.DirRepositoryInterface,
	templateRepository repositories.TemplateRepositoryInterface,
	itemRepository repositories.TemplateItemRepositoryInterface,
	reviewRepository repositories.ReviewRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) DirServiceInterface {
	return &DirService{
		storage:            storage,
		dirRepository:      dirRepository,
		templateRepository: templateRepository,
		itemRepository:     itemRepository,
		reviewRepository:   reviewRepository,
		fileStorage:        fileStorage,
		logger:             logger,
	}
}

func (s *DirService) GetDirs(ctx context.Context, filter types.Filter) ([]dto.DirDTO, uint64, error) {
	return s.dirRepository.GetDirs(ctx, filter)
}

func (s *DirService) FindDir(ctx context.Context, id uint64) (*dto.DirDTO, error) {
	return s.dirRepository.FindDir(ctx, id)
}

// parseOptionalDecimal returns nil for the empty string. Values are
// pre-validated as decimal_string, so parse failures become 400s.
func parseOptionalDecimal(value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("invalid decimal value %q", value)
	}
	return &d, nil
}

// buildMeasurementSpec resolves the tolerance band for one measurement:
// values sent on the measurement win, the template item fills the gaps.
func buildMeasurementSpec(m dto.CreateMeasurementDTO, item dto.TemplateItemDTO) (inspection.Spec, error) {
	pick := func(override, fallback string) string {
		if override != "" {
			return override
		}
		return fallback
	}

	nominal, err := parseOptionalDecimal(pick(m.Nominal, item.Nominal))
	if err != nil {
		return inspection.Spec{}, err
	}
	tolMin, err := parseOptionalDecimal(pick(m.ToleranceMin, item.ToleranceMin))
	if err != nil {
		return inspection.Spec{}, err
	}
	tolMax, err := parseOptionalDecimal(pick(m.ToleranceMax, item.ToleranceMax))
	if err != nil {
		return inspection.Spec{}, err
	}
	return inspection.Spec{Nominal: nominal, ToleranceMin: tolMin, ToleranceMax: tolMax}, nil
}

func (s *DirService) CreateDir(ctx context.Context, payload dto.CreateDirDTO) (*dto.DirDTO, error) {
	operatorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	template, err := s.templateRepository.FindTemplate(ctx, payload.TemplateID)
	if err != nil {
		return nil, err
	}
	if template.Type != "dir" {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("template %s is not a dimensional inspection template", template.Code), nil, nil)
	}

	items, err := s.itemRepository.GetItemsByTemplate(ctx, payload.TemplateID)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uint64]dto.TemplateItemDTO, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	records := make([]repositories.MeasurementRecord, 0, len(payload.Measurements))
	for _, m := range payload.Measurements {
		item, ok := itemsByID[m.TemplateItemID]
		if !ok {
			return nil, apperrors.NewInvalidInputError("template item %d does not belong to template %d",
				m.TemplateItemID, payload.TemplateID)
		}

		spec, err := buildMeasurementSpec(m, item)
		if err != nil {
			return nil, err
		}
		actual, err := decimal.NewFromString(m.Actual)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("invalid actual value %q", m.Actual)
		}

		// Status is always derived here. Items with no tolerance
		// band carry no numeric criterion and pass as accepted.
		status := inspection.ResultAccepted
		if spec.Applicable() {
			status, err = inspection.Evaluate(spec, actual)
			if err != nil {
				return nil, err
			}
		} else if err := spec.Validate(); err != nil {
			return nil, err
		}

		records = append(records, repositories.MeasurementRecord{
			Dimensional:  item.Sequence,
			Nominal:      decimalPtrToNull(spec.Nominal),
			ToleranceMin: decimalPtrToNull(spec.ToleranceMin),
			ToleranceMax: decimalPtrToNull(spec.ToleranceMax),
			Actual:       actual,
			Status:       string(status),
		})
	}

	var dirID uint64
	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		id, err := s.dirRepository.CreateDir(ctx, tx, payload, operatorID, string(inspection.StatusPending))
		if err != nil {
			return err
		}
		dirID = id
		return s.dirRepository.CreateMeasurements(ctx, tx, id, records)
	})
	if err != nil {
		s.logger.Error("failed to create dir checksheet", zap.Error(err), zap.String("idDir", payload.IDDir))
		return nil, err
	}

	s.logger.Info("dir checksheet created", zap.Uint64("id", dirID), zap.String("idDir", payload.IDDir),
		zap.Int("measurements", len(records)))
	return s.dirRepository.FindDir(ctx, dirID)
}

func decimalPtrToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (s *DirService) UpdateDir(ctx context.Context, id uint64, payload dto.UpdateDirDTO) (*dto.DirDTO, error) {
	current, err := s.dirRepository.FindDir(ctx, id)
	if err != nil {
		return nil, err
	}
	if inspection.Status(current.Status).Terminal() {
		return nil, apperrors.NewHttpError(http.StatusConflict,
			fmt.Sprintf("checksheet is %s and can no longer be edited", current.Status), nil, nil)
	}

	if err := s.dirRepository.UpdateDir(ctx, id, payload); err != nil {
		s.logger.Error("failed to update dir checksheet", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return s.dirRepository.FindDir(ctx, id)
}

func (s *DirService) DeleteDir(ctx context.Context, id uint64) error {
	if err := s.dirRepository.DeleteDir(ctx, id); err != nil {
		s.logger.Error("failed to delete dir checksheet", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("dir checksheet deleted", zap.Uint64("id", id))
	return nil
}

func (s *DirService) Approve(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.DirDTO, error) {
	return s.applyWorkflowAction(ctx, id, inspection.ActionApprove, payload.Note)
}

func (s *DirService) RequestRevision(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.DirDTO, error) {
	return s.applyWorkflowAction(ctx, id, inspection.ActionRequestRevision, payload.Note)
}

func (s *DirService) Reject(ctx context.Context, id uint64, payload dto.WorkflowActionDTO) (*dto.DirDTO, error) {
	return s.applyWorkflowAction(ctx, id, inspection.ActionReject, payload.Note)
}

// applyWorkflowAction moves the checksheet through the status machine
// and appends the matching audit row, all in one transaction. The
// version read inside the transaction guards against concurrent
// reviews: the loser of the race gets a conflict, never a double
// transition.
func (s *DirService) applyWorkflowAction(ctx context.Context, id uint64, action inspection.Action, note string) (*dto.DirDTO, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		current, version, err := s.dirRepository.GetDirStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := inspection.Transition(inspection.Status(current), action)
		if err != nil {
			return err
		}
		if err := s.dirRepository.UpdateDirStatus(ctx, tx, id, string(next), version); err != nil {
			return err
		}

		ref := inspection.DirRef(id)
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
		s.logger.Warn("dir workflow action failed", zap.Error(err),
			zap.Uint64("id", id), zap.String("action", string(action)))
		return nil, err
	}

	s.logger.Info("dir workflow action applied", zap.Uint64("id", id),
		zap.String("action", string(action)), zap.Uint64("actorID", actorID))
	return s.dirRepository.FindDir(ctx, id)
}

func (s *DirService) GetApprovals(ctx context.Context, id uint64) ([]dto.ChecksheetApprovalDTO, error) {
	if _, err := s.dirRepository.FindDir(ctx, id); err != nil {
		return nil, err
	}
	return s.reviewRepository.GetApprovals(ctx, inspection.DirRef(id))
}

func (s *DirService) GetRevisions(ctx context.Context, id uint64) ([]dto.ChecksheetRevisionDTO, error) {
	if _, err := s.dirRepository.FindDir(ctx, id); err != nil {
		return nil, err
	}
	return s.reviewRepository.GetRevisions(ctx, inspection.DirRef(id))
}

func (s *DirService) UploadMeasurementPhoto(ctx context.Context, dirID, measurementID uint64, file io.Reader, filename string, payload dto.CreateMeasurementPhotoDTO) (*dto.MeasurementPhotoDTO, error) {
	measurement, err := s.dirRepository.FindMeasurement(ctx, measurementID)
	if err != nil {
		return nil, err
	}
	if measurement.DirID != dirID {
		return nil, apperrors.ErrNotFound
	}
	if measurement.Status != string(inspection.ResultReject) {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"photos can only be attached to rejected measurements", nil, nil)
	}

	path, err := s.fileStorage.Save(file, filename, "measurements")
	if err != nil {
		s.logger.Error("failed to store measurement photo", zap.Error(err), zap.Uint64("measurementID", measurementID))
		return nil, apperrors.ErrInternalServer
	}

	photo, err := s.dirRepository.CreateMeasurementPhoto(ctx, measurementID, path, payload)
	if err != nil {
		// Orphaned file cleanup on a failed insert.
		if delErr := s.fileStorage.Delete(path); delErr != nil {
			s.logger.Warn("failed to remove orphaned photo file", zap.Error(delErr), zap.String("path", path))
		}
		return nil, err
	}

	s.logger.Info("measurement photo attached", zap.Uint64("measurementID", measurementID), zap.String("path", path))
	return photo, nil
}
