package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/inspection"
	"checksheet-system/internal/repositories"
	"checksheet-system/pkg/contextkeys"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
)

// fakeTx satisfies pgx.Tx for services that wrap repository calls in a
// transaction. The fake repositories ignore the handle entirely.
type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) Begin(context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

type fakeDirRepository struct {
	dirs         map[uint64]*dto.DirDTO
	measurements map[uint64]*dto.MeasurementDTO
	records      []repositories.MeasurementRecord
	nextID       uint64

	updateDirCalled bool
	photoInsertErr  error
	statusUpdateErr error
	insertedPhotos  []dto.MeasurementPhotoDTO
}

func newFakeDirRepository() *fakeDirRepository {
	return &fakeDirRepository{
		dirs:         make(map[uint64]*dto.DirDTO),
		measurements: make(map[uint64]*dto.MeasurementDTO),
		nextID:       1,
	}
}

func (f *fakeDirRepository) GetDirs(ctx context.Context, filter types.Filter) ([]dto.DirDTO, uint64, error) {
	out := make([]dto.DirDTO, 0, len(f.dirs))
	for _, d := range f.dirs {
		out = append(out, *d)
	}
	return out, uint64(len(out)), nil
}

func (f *fakeDirRepository) FindDir(ctx context.Context, id uint64) (*dto.DirDTO, error) {
	d, ok := f.dirs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDirRepository) CreateDir(ctx context.Context, q repositories.Querier, payload dto.CreateDirDTO, operatorID uint64, status string) (uint64, error) {
	id := f.nextID
	f.nextID++
	f.dirs[id] = &dto.DirDTO{
		ID:         id,
		IDDir:      payload.IDDir,
		TemplateID: payload.TemplateID,
		OperatorID: operatorID,
		Status:     status,
		Version:    1,
	}
	return id, nil
}

func (f *fakeDirRepository) CreateMeasurements(ctx context.Context, q repositories.Querier, dirID uint64, records []repositories.MeasurementRecord) error {
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeDirRepository) UpdateDir(ctx context.Context, id uint64, payload dto.UpdateDirDTO) error {
	f.updateDirCalled = true
	return nil
}

func (f *fakeDirRepository) DeleteDir(ctx context.Context, id uint64) error {
	delete(f.dirs, id)
	return nil
}

func (f *fakeDirRepository) GetDirStatus(ctx context.Context, q repositories.Querier, id uint64) (string, int, error) {
	d, ok := f.dirs[id]
	if !ok {
		return "", 0, apperrors.ErrNotFound
	}
	return d.Status, d.Version, nil
}

func (f *fakeDirRepository) UpdateDirStatus(ctx context.Context, q repositories.Querier, id uint64, status string, expectedVersion int) error {
	if f.statusUpdateErr != nil {
		return f.statusUpdateErr
	}
	d, ok := f.dirs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if d.Version != expectedVersion {
		return apperrors.ErrVersionMismatch
	}
	d.Status = status
	d.Version++
	return nil
}

func (f *fakeDirRepository) GetMeasurements(ctx context.Context, dirID uint64) ([]dto.MeasurementDTO, error) {
	return nil, nil
}

func (f *fakeDirRepository) FindMeasurement(ctx context.Context, id uint64) (*dto.MeasurementDTO, error) {
	m, ok := f.measurements[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeDirRepository) CreateMeasurementPhoto(ctx context.Context, measurementID uint64, photoPath string, payload dto.CreateMeasurementPhotoDTO) (*dto.MeasurementPhotoDTO, error) {
	if f.photoInsertErr != nil {
		return nil, f.photoInsertErr
	}
	photo := dto.MeasurementPhotoDTO{
		ID:            uint64(len(f.insertedPhotos) + 1),
		MeasurementID: measurementID,
		PhotoPath:     photoPath,
		Remark:        payload.Remark,
	}
	f.insertedPhotos = append(f.insertedPhotos, photo)
	return &photo, nil
}

type fakeTemplateRepository struct {
	templates map[uint64]*dto.ChecksheetTemplateDTO
}

func (f *fakeTemplateRepository) GetTemplates(ctx context.Context, filter types.Filter) ([]dto.ChecksheetTemplateDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeTemplateRepository) FindTemplate(ctx context.Context, id uint64) (*dto.ChecksheetTemplateDTO, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return t, nil
}

func (f *fakeTemplateRepository) CreateTemplate(ctx context.Context, q repositories.Querier, payload dto.CreateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTemplateRepository) UpdateTemplate(ctx context.Context, id uint64, payload dto.UpdateChecksheetTemplateDTO) (*dto.ChecksheetTemplateDTO, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTemplateRepository) DeleteTemplate(ctx context.Context, id uint64) error {
	return errors.New("not implemented")
}

type fakeTemplateItemRepository struct {
	items map[uint64][]dto.TemplateItemDTO

	created []dto.CreateTemplateItemDTO
	updated []uint64
	nextID  uint64
}

func (f *fakeTemplateItemRepository) GetItemsByTemplate(ctx context.Context, templateID uint64) ([]dto.TemplateItemDTO, error) {
	return f.items[templateID], nil
}

func (f *fakeTemplateItemRepository) FindItem(ctx context.Context, id uint64) (*dto.TemplateItemDTO, error) {
	for _, items := range f.items {
		for _, item := range items {
			if item.ID == id {
				return &item, nil
			}
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTemplateItemRepository) CreateItems(ctx context.Context, q repositories.Querier, templateID uint64, items []dto.CreateTemplateItemDTO) ([]dto.TemplateItemDTO, error) {
	f.created = append(f.created, items...)
	out := make([]dto.TemplateItemDTO, 0, len(items))
	for _, item := range items {
		f.nextID++
		out = append(out, dto.TemplateItemDTO{
			ID:         f.nextID,
			TemplateID: templateID,
			ItemName:   item.ItemName,
			Sequence:   item.Sequence,
		})
	}
	f.items[templateID] = append(f.items[templateID], out...)
	return out, nil
}

func (f *fakeTemplateItemRepository) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateTemplateItemDTO) (*dto.TemplateItemDTO, error) {
	f.updated = append(f.updated, id)
	for tplID, items := range f.items {
		for i, item := range items {
			if item.ID != id {
				continue
			}
			if payload.ItemName != nil {
				item.ItemName = *payload.ItemName
			}
			if payload.Nominal != nil {
				item.Nominal = *payload.Nominal
			}
			if payload.ToleranceMin != nil {
				item.ToleranceMin = *payload.ToleranceMin
			}
			if payload.ToleranceMax != nil {
				item.ToleranceMax = *payload.ToleranceMax
			}
			if payload.Sequence != nil {
				item.Sequence = *payload.Sequence
			}
			f.items[tplID][i] = item
			return &item, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTemplateItemRepository) DeleteItem(ctx context.Context, id uint64) error {
	return errors.New("not implemented")
}

type approvalRow struct {
	ref      inspection.Reference
	decision string
	actorID  uint64
	note     string
}

type revisionRow struct {
	ref     inspection.Reference
	note    string
	actorID uint64
}

type fakeReviewRepository struct {
	approvals []approvalRow
	revisions []revisionRow
}

func (f *fakeReviewRepository) CreateApproval(ctx context.Context, q repositories.Querier, ref inspection.Reference, decision string, approvedBy uint64, note string) error {
	f.approvals = append(f.approvals, approvalRow{ref: ref, decision: decision, actorID: approvedBy, note: note})
	return nil
}

func (f *fakeReviewRepository) GetApprovals(ctx context.Context, ref inspection.Reference) ([]dto.ChecksheetApprovalDTO, error) {
	out := make([]dto.ChecksheetApprovalDTO, 0)
	for _, a := range f.approvals {
		if a.ref == ref {
			out = append(out, dto.ChecksheetApprovalDTO{
				ReferenceType: string(a.ref.Type),
				ReferenceID:   a.ref.ID,
				Decision:      a.decision,
				ApprovedBy:    a.actorID,
				Note:          a.note,
			})
		}
	}
	return out, nil
}

func (f *fakeReviewRepository) CreateRevision(ctx context.Context, q repositories.Querier, ref inspection.Reference, note string, revisedBy uint64) error {
	f.revisions = append(f.revisions, revisionRow{ref: ref, note: note, actorID: revisedBy})
	return nil
}

func (f *fakeReviewRepository) GetRevisions(ctx context.Context, ref inspection.Reference) ([]dto.ChecksheetRevisionDTO, error) {
	out := make([]dto.ChecksheetRevisionDTO, 0)
	for i, r := range f.revisions {
		if r.ref == ref {
			out = append(out, dto.ChecksheetRevisionDTO{
				ReferenceType:  string(r.ref.Type),
				ReferenceID:    r.ref.ID,
				RevisionNumber: i + 1,
				RevisionNote:   r.note,
				RevisedBy:      r.actorID,
			})
		}
	}
	return out, nil
}

type fakeFileStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := fmt.Sprintf("%s/%d_%s", prefix, len(f.saved)+1, originalFileName)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStorage) Delete(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

const testOperatorID uint64 = 7

func operatorCtx() context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, testOperatorID)
}

type dirServiceFixture struct {
	service DirServiceInterface
	dirs    *fakeDirRepository
	reviews *fakeReviewRepository
	storage *fakeFileStorage
	items   *fakeTemplateItemRepository
}

func newDirServiceFixture() *dirServiceFixture {
	dirs := newFakeDirRepository()
	reviews := &fakeReviewRepository{}
	storage := &fakeFileStorage{}
	templates := &fakeTemplateRepository{templates: map[uint64]*dto.ChecksheetTemplateDTO{
		1: {ID: 1, Code: "TPL-DIR-01", Name: "Housing DIR", Type: "dir"},
		2: {ID: 2, Code: "TPL-FI-01", Name: "Housing FI", Type: "fi"},
	}}
	items := &fakeTemplateItemRepository{items: map[uint64][]dto.TemplateItemDTO{
		1: {
			{ID: 10, TemplateID: 1, ItemName: "Outer diameter", Nominal: "25.000", ToleranceMin: "-0.02", ToleranceMax: "0.02", Sequence: 1},
			{ID: 11, TemplateID: 1, ItemName: "Length", Nominal: "80.000", ToleranceMin: "-0.05", ToleranceMax: "0.05", Sequence: 2},
			{ID: 12, TemplateID: 1, ItemName: "Visual check", Sequence: 3},
		},
	}}

	svc := NewDirService(fakeDB{}, dirs, templates, items, reviews, storage, zap.NewNop())
	return &dirServiceFixture{service: svc, dirs: dirs, reviews: reviews, storage: storage, items: items}
}

func validCreateDirPayload(measurements ...dto.CreateMeasurementDTO) dto.CreateDirDTO {
	return dto.CreateDirDTO{
		IDDir:        "DIR-2024-001",
		TemplateID:   1,
		ModelID:      1,
		PartID:       1,
		CustomerID:   1,
		MaterialID:   1,
		ShiftID:      1,
		SectionID:    1,
		Measurements: measurements,
	}
}

func TestCreateDirComputesMeasurementStatus(t *testing.T) {
	fx := newDirServiceFixture()

	created, err := fx.service.CreateDir(operatorCtx(), validCreateDirPayload(
		dto.CreateMeasurementDTO{TemplateItemID: 10, Actual: "25.01"},
		dto.CreateMeasurementDTO{TemplateItemID: 11, Actual: "80.30"},
		dto.CreateMeasurementDTO{TemplateItemID: 12, Actual: "1"},
	))
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, string(inspection.StatusPending), created.Status)
	assert.Equal(t, testOperatorID, created.OperatorID)

	require.Len(t, fx.dirs.records, 3)
	assert.Equal(t, "accepted", fx.dirs.records[0].Status, "within tolerance")
	assert.Equal(t, "reject", fx.dirs.records[1].Status, "0.30 above an 0.05 band")
	assert.Equal(t, "accepted", fx.dirs.records[2].Status, "no tolerance band on the item")
}

func TestCreateDirMeasurementOverrideWins(t *testing.T) {
	fx := newDirServiceFixture()

	// The template band would reject 25.10, the per-measurement band
	// accepts it.
	_, err := fx.service.CreateDir(operatorCtx(), validCreateDirPayload(
		dto.CreateMeasurementDTO{
			TemplateItemID: 10,
			Actual:         "25.10",
			Nominal:        "25.00",
			ToleranceMin:   "-0.20",
			ToleranceMax:   "0.20",
		},
	))
	require.NoError(t, err)
	require.Len(t, fx.dirs.records, 1)
	assert.Equal(t, "accepted", fx.dirs.records[0].Status)
	assert.Equal(t, "0.2", fx.dirs.records[0].ToleranceMax.Decimal.String())
}

func TestCreateDirRejectsNonDirTemplate(t *testing.T) {
	fx := newDirServiceFixture()

	payload := validCreateDirPayload(dto.CreateMeasurementDTO{TemplateItemID: 10, Actual: "25.00"})
	payload.TemplateID = 2

	_, err := fx.service.CreateDir(operatorCtx(), payload)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateDirRejectsForeignTemplateItem(t *testing.T) {
	fx := newDirServiceFixture()

	_, err := fx.service.CreateDir(operatorCtx(), validCreateDirPayload(
		dto.CreateMeasurementDTO{TemplateItemID: 999, Actual: "25.00"},
	))
	var inputErr *apperrors.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Empty(t, fx.dirs.dirs, "nothing must be written")
}

func TestCreateDirRequiresOperatorInContext(t *testing.T) {
	fx := newDirServiceFixture()

	_, err := fx.service.CreateDir(context.Background(), validCreateDirPayload(
		dto.CreateMeasurementDTO{TemplateItemID: 10, Actual: "25.00"},
	))
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}

func seedPendingDir(fx *dirServiceFixture) uint64 {
	id, _ := fx.dirs.CreateDir(context.Background(), nil, validCreateDirPayload(), testOperatorID, string(inspection.StatusPending))
	return id
}

func TestApproveWritesAuditRowAndBumpsVersion(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)

	updated, err := fx.service.Approve(operatorCtx(), id, dto.WorkflowActionDTO{Note: "looks good"})
	require.NoError(t, err)

	assert.Equal(t, string(inspection.StatusApproved), updated.Status)
	assert.Equal(t, 2, updated.Version)

	require.Len(t, fx.reviews.approvals, 1)
	row := fx.reviews.approvals[0]
	assert.Equal(t, inspection.DirRef(id), row.ref)
	assert.Equal(t, "approved", row.decision)
	assert.Equal(t, testOperatorID, row.actorID)
	assert.Equal(t, "looks good", row.note)
}

func TestRejectWritesRejectedDecision(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)

	updated, err := fx.service.Reject(operatorCtx(), id, dto.WorkflowActionDTO{Note: "scratches"})
	require.NoError(t, err)
	assert.Equal(t, string(inspection.StatusRejected), updated.Status)

	require.Len(t, fx.reviews.approvals, 1)
	assert.Equal(t, "rejected", fx.reviews.approvals[0].decision)
}

func TestRequestRevisionCreatesRevisionRow(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)

	updated, err := fx.service.RequestRevision(operatorCtx(), id, dto.WorkflowActionDTO{Note: "remeasure item 2"})
	require.NoError(t, err)
	assert.Equal(t, string(inspection.StatusRevision), updated.Status)

	require.Len(t, fx.reviews.revisions, 1)
	assert.Equal(t, inspection.DirRef(id), fx.reviews.revisions[0].ref)
	assert.Equal(t, "remeasure item 2", fx.reviews.revisions[0].note)
	assert.Empty(t, fx.reviews.approvals)
}

func TestApproveAfterRevisionSucceeds(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)

	_, err := fx.service.RequestRevision(operatorCtx(), id, dto.WorkflowActionDTO{})
	require.NoError(t, err)

	updated, err := fx.service.Approve(operatorCtx(), id, dto.WorkflowActionDTO{})
	require.NoError(t, err)
	assert.Equal(t, string(inspection.StatusApproved), updated.Status)
}

func TestWorkflowActionFromTerminalStatusFails(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)
	fx.dirs.dirs[id].Status = string(inspection.StatusApproved)

	_, err := fx.service.Reject(operatorCtx(), id, dto.WorkflowActionDTO{})
	var transitionErr *apperrors.TransitionError
	require.ErrorAs(t, err, &transitionErr)

	assert.Empty(t, fx.reviews.approvals, "no audit row on a refused transition")
	assert.Equal(t, string(inspection.StatusApproved), fx.dirs.dirs[id].Status)
}

func TestWorkflowVersionConflict(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)
	fx.dirs.statusUpdateErr = apperrors.ErrVersionMismatch

	_, err := fx.service.Approve(operatorCtx(), id, dto.WorkflowActionDTO{})
	assert.ErrorIs(t, err, apperrors.ErrVersionMismatch)
	assert.Empty(t, fx.reviews.approvals)
}

func TestUpdateDirBlockedWhenTerminal(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)
	fx.dirs.dirs[id].Status = string(inspection.StatusRejected)

	note := "late edit"
	_, err := fx.service.UpdateDir(operatorCtx(), id, dto.UpdateDirDTO{GeneralNote: &note})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.False(t, fx.dirs.updateDirCalled)
}

func TestUploadMeasurementPhoto(t *testing.T) {
	fx := newDirServiceFixture()
	id := seedPendingDir(fx)
	fx.dirs.measurements[42] = &dto.MeasurementDTO{ID: 42, DirID: id, Status: "reject"}
	fx.dirs.measurements[43] = &dto.MeasurementDTO{ID: 43, DirID: id, Status: "accepted"}

	t.Run("attaches to a rejected measurement", func(t *testing.T) {
		photo, err := fx.service.UploadMeasurementPhoto(operatorCtx(), id, 42,
			strings.NewReader("img"), "crack.jpg", dto.CreateMeasurementPhotoDTO{Remark: "hairline crack"})
		require.NoError(t, err)
		assert.Equal(t, uint64(42), photo.MeasurementID)
		assert.Contains(t, photo.PhotoPath, "measurements/")
	})

	t.Run("refused for an accepted measurement", func(t *testing.T) {
		_, err := fx.service.UploadMeasurementPhoto(operatorCtx(), id, 43,
			strings.NewReader("img"), "fine.jpg", dto.CreateMeasurementPhotoDTO{})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("measurement must belong to the checksheet", func(t *testing.T) {
		_, err := fx.service.UploadMeasurementPhoto(operatorCtx(), id+100, 42,
			strings.NewReader("img"), "crack.jpg", dto.CreateMeasurementPhotoDTO{})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("stored file is removed when the insert fails", func(t *testing.T) {
		fx.dirs.photoInsertErr = errors.New("insert failed")
		defer func() { fx.dirs.photoInsertErr = nil }()

		_, err := fx.service.UploadMeasurementPhoto(operatorCtx(), id, 42,
			strings.NewReader("img"), "crack.jpg", dto.CreateMeasurementPhotoDTO{})
		require.Error(t, err)
		require.NotEmpty(t, fx.storage.deleted)
		assert.Equal(t, fx.storage.saved[len(fx.storage.saved)-1], fx.storage.deleted[len(fx.storage.deleted)-1])
	})
}
