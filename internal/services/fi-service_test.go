package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/inspection"
	"checksheet-system/internal/repositories"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
)

type fakeFiRepository struct {
	fis         map[uint64]*dto.FiDTO
	inspections map[uint64][]dto.CreateVisualInspectionDTO
	nextID      uint64
}

func newFakeFiRepository() *fakeFiRepository {
	return &fakeFiRepository{
		fis:         make(map[uint64]*dto.FiDTO),
		inspections: make(map[uint64][]dto.CreateVisualInspectionDTO),
		nextID:      1,
	}
}

func (f *fakeFiRepository) GetFis(ctx context.Context, filter types.Filter) ([]dto.FiDTO, uint64, error) {
	out := make([]dto.FiDTO, 0, len(f.fis))
	for _, fi := range f.fis {
		out = append(out, *fi)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeFiRepository) FindFi(ctx context.Context, id uint64) (*dto.FiDTO, error) {
	fi, ok := f.fis[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *fi
	return &copied, nil
}

func (f *fakeFiRepository) CreateFi(ctx context.Context, q repositories.Querier, payload dto.CreateFiDTO, operatorID uint64, status string) (uint64, error) {
	id := f.nextID
	f.nextID++
	f.fis[id] = &dto.FiDTO{
		ID:         id,
		IDFi:       payload.IDFi,
		FiNumber:   payload.FiNumber,
		TemplateID: payload.TemplateID,
		OperatorID: operatorID,
		Status:     status,
		Version:    1,
	}
	return id, nil
}

func (f *fakeFiRepository) CreateVisualInspections(ctx context.Context, q repositories.Querier, fiID uint64, items []dto.CreateVisualInspectionDTO) error {
	f.inspections[fiID] = append(f.inspections[fiID], items...)
	return nil
}

func (f *fakeFiRepository) UpdateFi(ctx context.Context, id uint64, payload dto.UpdateFiDTO) error {
	return nil
}

func (f *fakeFiRepository) DeleteFi(ctx context.Context, id uint64) error {
	delete(f.fis, id)
	return nil
}

func (f *fakeFiRepository) GetFiStatus(ctx context.Context, q repositories.Querier, id uint64) (string, int, error) {
	fi, ok := f.fis[id]
	if !ok {
		return "", 0, apperrors.ErrNotFound
	}
	return fi.Status, fi.Version, nil
}

func (f *fakeFiRepository) UpdateFiStatus(ctx context.Context, q repositories.Querier, id uint64, status string, expectedVersion int) error {
	fi, ok := f.fis[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if fi.Version != expectedVersion {
		return apperrors.ErrVersionMismatch
	}
	fi.Status = status
	fi.Version++
	return nil
}

func (f *fakeFiRepository) GetVisualInspections(ctx context.Context, fiID uint64) ([]dto.VisualInspectionDTO, error) {
	return nil, nil
}

func newFiServiceFixture() (FiServiceInterface, *fakeFiRepository, *fakeReviewRepository) {
	fis := newFakeFiRepository()
	reviews := &fakeReviewRepository{}
	templates := &fakeTemplateRepository{templates: map[uint64]*dto.ChecksheetTemplateDTO{
		1: {ID: 1, Code: "TPL-DIR-01", Name: "Housing DIR", Type: "dir"},
		2: {ID: 2, Code: "TPL-FI-01", Name: "Housing FI", Type: "fi"},
	}}
	svc := NewFiService(fakeDB{}, fis, templates, reviews, zap.NewNop())
	return svc, fis, reviews
}

func validCreateFiPayload() dto.CreateFiDTO {
	return dto.CreateFiDTO{
		IDFi:       "FI-2024-001",
		FiNumber:   "F-001",
		TemplateID: 2,
		ModelID:    1,
		CustomerID: 1,
		ShiftID:    1,
		SectionID:  1,
		VisualInspections: []dto.CreateVisualInspectionDTO{
			{ItemName: "Surface finish", Status: "good"},
			{ItemName: "Weld seam", Status: "after_repair", Remark: "reworked once"},
			{ItemName: "Coating", Status: "ng", Remark: "peeling at edge"},
		},
	}
}

func TestCreateFiStartsPending(t *testing.T) {
	svc, fis, _ := newFiServiceFixture()

	created, err := svc.CreateFi(operatorCtx(), validCreateFiPayload())
	require.NoError(t, err)

	assert.Equal(t, string(inspection.StatusPending), created.Status)
	assert.Equal(t, testOperatorID, created.OperatorID)
	assert.Len(t, fis.inspections[created.ID], 3)
}

func TestCreateFiRejectsNonFiTemplate(t *testing.T) {
	svc, fis, _ := newFiServiceFixture()

	payload := validCreateFiPayload()
	payload.TemplateID = 1

	_, err := svc.CreateFi(operatorCtx(), payload)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, fis.fis)
}

func TestFiWorkflowRoundTrip(t *testing.T) {
	svc, fis, reviews := newFiServiceFixture()

	created, err := svc.CreateFi(operatorCtx(), validCreateFiPayload())
	require.NoError(t, err)

	revised, err := svc.RequestRevision(operatorCtx(), created.ID, dto.WorkflowActionDTO{Note: "recheck coating"})
	require.NoError(t, err)
	assert.Equal(t, string(inspection.StatusRevision), revised.Status)

	approved, err := svc.Approve(operatorCtx(), created.ID, dto.WorkflowActionDTO{})
	require.NoError(t, err)
	assert.Equal(t, string(inspection.StatusApproved), approved.Status)
	assert.Equal(t, 3, approved.Version, "one bump per transition")

	require.Len(t, reviews.revisions, 1)
	assert.Equal(t, inspection.FiRef(created.ID), reviews.revisions[0].ref)
	require.Len(t, reviews.approvals, 1)
	assert.Equal(t, "approved", reviews.approvals[0].decision)

	_, err = svc.Reject(operatorCtx(), created.ID, dto.WorkflowActionDTO{})
	assert.True(t, apperrors.IsTransitionError(err), "approved is terminal")
	assert.Equal(t, string(inspection.StatusApproved), fis.fis[created.ID].Status)
}

func TestUpdateFiBlockedWhenTerminal(t *testing.T) {
	svc, fis, _ := newFiServiceFixture()

	created, err := svc.CreateFi(operatorCtx(), validCreateFiPayload())
	require.NoError(t, err)
	fis.fis[created.ID].Status = string(inspection.StatusApproved)

	number := "F-002"
	_, err = svc.UpdateFi(operatorCtx(), created.ID, dto.UpdateFiDTO{FiNumber: &number})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}
