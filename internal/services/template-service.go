package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/inspection"
	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
)

type TemplateServiceInterface interface {
	GetTemplates(ctx context.Context, filter types.Filter) ([]dto.ChecksheetTemplateDTO, uint64, error)
	FindTemplate(ctx context.Context, id uint64) (*dto.ChecksheetTemplateDTO, error)
	CreateTemplate(ctx context.Context, payload dto.CreateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error)
	UpdateTemplate(ctx context.Context, id uint64, payload dto.UpdateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error)
	DeleteTemplate(ctx context.Context, id uint64) error

	GetItemsByTemplate(ctx context.Context, templateID uint64) ([]dto.TemplateItemDTO, error)
	FindItem(ctx context.Context, id uint64) (*dto.TemplateItemDTO, error)
	BulkCreateItems(ctx context.Context, payload dto.BulkCreateTemplateItemsDTO) ([]dto.TemplateItemDTO, error)
	CreateItem(ctx context.Context, payload dto.CreateTemplateItemDTO) (*dto.TemplateItemDTO, error)
	UpdateItem(ctx context.Context, id uint64, payload dto.UpdateTemplateItemDTO) (*dto.TemplateItemDTO, error)
	DeleteItem(ctx context.Context, id uint64) error
}

type TemplateService struct {
	storage            repositories.TxStarter
	templateRepository repositories.TemplateRepositoryInterface
	itemRepository     repositories.TemplateItemRepositoryInterface
	logger             *zap.Logger
}

func NewTemplateService(
	storage repositories.TxStarter,
	templateRepository repositories.TemplateRepositoryInterface,
	itemRepository repositories.TemplateItemRepositoryInterface,
	logger *zap.Logger,
) TemplateServiceInterface {
	return &TemplateService{
		storage:            storage,
		templateRepository: templateRepository,
		itemRepository:     itemRepository,
		logger:             logger,
	}
}

// itemBandSpec builds the tolerance spec a template item describes.
func itemBandSpec(nominal, tolMin, tolMax string) (inspection.Spec, error) {
	n, err := parseOptionalDecimal(nominal)
	if err != nil {
		return inspection.Spec{}, err
	}
	lo, err := parseOptionalDecimal(tolMin)
	if err != nil {
		return inspection.Spec{}, err
	}
	hi, err := parseOptionalDecimal(tolMax)
	if err != nil {
		return inspection.Spec{}, err
	}
	return inspection.Spec{Nominal: n, ToleranceMin: lo, ToleranceMax: hi}, nil
}

// validateItemBands refuses items whose band could never be evaluated
// (inverted bounds, a single bound, bounds without a nominal), so
// broken master data fails at authoring time instead of on every
// checksheet filed against it.
func validateItemBands(items []dto.CreateTemplateItemDTO) error {
	for _, item := range items {
		spec, err := itemBandSpec(item.Nominal, item.ToleranceMin, item.ToleranceMax)
		if err != nil {
			return err
		}
		if err := spec.Validate(); err != nil {
			return apperrors.NewInvalidInputError("item %q: %s", item.ItemName, err.Error())
		}
	}
	return nil
}

// assignSequences fills omitted sequence values with 1..N in submission
// order. Explicit values are kept as sent.
func assignSequences(items []dto.CreateTemplateItemDTO) []dto.CreateTemplateItemDTO {
	out := make([]dto.CreateTemplateItemDTO, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Sequence == 0 {
			out[i].Sequence = i + 1
		}
	}
	return out
}

func (s *TemplateService) GetTemplates(ctx context.Context, filter types.Filter) ([]dto.ChecksheetTemplateDTO, uint64, error) {
	return s.templateRepository.GetTemplates(ctx, filter)
}

func (s *TemplateService) FindTemplate(ctx context.Context, id uint64) (*dto.ChecksheetTemplateDTO, error) {
	template, err := s.templateRepository.FindTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepository.GetItemsByTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	template.Items = items
	return template, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, payload dto.CreateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error) {
	if err := validateItemBands(payload.Items); err != nil {
		return nil, err
	}

	var created *dto.ChecksheetTemplateDTO

	err := repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		template, err := s.templateRepository.CreateTemplate(ctx, tx, payload)
		if err != nil {
			return err
		}
		created = template

		if len(payload.Items) == 0 {
			return nil
		}
		items, err := s.itemRepository.CreateItems(ctx, tx, template.ID, assignSequences(payload.Items))
		if err != nil {
			return err
		}
		created.Items = items
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create template", zap.Error(err), zap.String("code", payload.Code))
		return nil, err
	}

	s.logger.Info("template created", zap.Uint64("id", created.ID), zap.String("code", created.Code))
	return created, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id uint64, payload dto.UpdateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error) {
	updated, err := s.templateRepository.UpdateTemplate(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update template", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id uint64) error {
	if err := s.templateRepository.DeleteTemplate(ctx, id); err != nil {
		s.logger.Error("failed to delete template", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	s.logger.Info("template deleted", zap.Uint64("id", id))
	return nil
}

func (s *TemplateService) GetItemsByTemplate(ctx context.Context, templateID uint64) ([]dto.TemplateItemDTO, error) {
	if _, err := s.templateRepository.FindTemplate(ctx, templateID); err != nil {
		return nil, err
	}
	return s.itemRepository.GetItemsByTemplate(ctx, templateID)
}

func (s *TemplateService) FindItem(ctx context.Context, id uint64) (*dto.TemplateItemDTO, error) {
	return s.itemRepository.FindItem(ctx, id)
}

func (s *TemplateService) BulkCreateItems(ctx context.Context, payload dto.BulkCreateTemplateItemsDTO) ([]dto.TemplateItemDTO, error) {
	if _, err := s.templateRepository.FindTemplate(ctx, payload.TemplateID); err != nil {
		return nil, err
	}
	if err := validateItemBands(payload.Items); err != nil {
		return nil, err
	}

	var created []dto.TemplateItemDTO
	err := repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		items, err := s.itemRepository.CreateItems(ctx, tx, payload.TemplateID, assignSequences(payload.Items))
		if err != nil {
			return err
		}
		created = items
		return nil
	})
	if err != nil {
		s.logger.Error("failed to bulk create template items", zap.Error(err), zap.Uint64("templateID", payload.TemplateID))
		return nil, err
	}

	s.logger.Info("template items created", zap.Uint64("templateID", payload.TemplateID), zap.Int("count", len(created)))
	return created, nil
}

func (s *TemplateService) CreateItem(ctx context.Context, payload dto.CreateTemplateItemDTO) (*dto.TemplateItemDTO, error) {
	if _, err := s.templateRepository.FindTemplate(ctx, payload.TemplateID); err != nil {
		return nil, err
	}
	if err := validateItemBands([]dto.CreateTemplateItemDTO{payload}); err != nil {
		return nil, err
	}
	if payload.Sequence == 0 {
		existing, err := s.itemRepository.GetItemsByTemplate(ctx, payload.TemplateID)
		if err != nil {
			return nil, err
		}
		maxSeq := 0
		for _, item := range existing {
			if item.Sequence > maxSeq {
				maxSeq = item.Sequence
			}
		}
		payload.Sequence = maxSeq + 1
	}

	var created []dto.TemplateItemDTO
	err := repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		items, err := s.itemRepository.CreateItems(ctx, tx, payload.TemplateID, []dto.CreateTemplateItemDTO{payload})
		if err != nil {
			return err
		}
		created = items
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create template item", zap.Error(err), zap.Uint64("templateID", payload.TemplateID))
		return nil, err
	}
	return &created[0], nil
}

func (s *TemplateService) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateTemplateItemDTO) (*dto.TemplateItemDTO, error) {
	current, err := s.itemRepository.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	// Validate the band the item will have after the partial update, not
	// just the fields being changed.
	nominal, tolMin, tolMax := current.Nominal, current.ToleranceMin, current.ToleranceMax
	if payload.Nominal != nil {
		nominal = *payload.Nominal
	}
	if payload.ToleranceMin != nil {
		tolMin = *payload.ToleranceMin
	}
	if payload.ToleranceMax != nil {
		tolMax = *payload.ToleranceMax
	}
	spec, err := itemBandSpec(nominal, tolMin, tolMax)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, apperrors.NewInvalidInputError("item %q: %s", current.ItemName, err.Error())
	}

	updated, err := s.itemRepository.UpdateItem(ctx, id, payload)
	if err != nil {
		s.logger.Error("failed to update template item", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return updated, nil
}

func (s *TemplateService) DeleteItem(ctx context.Context, id uint64) error {
	if err := s.itemRepository.DeleteItem(ctx, id); err != nil {
		s.logger.Error("failed to delete template item", zap.Error(err), zap.Uint64("id", id))
		return err
	}
	return nil
}
