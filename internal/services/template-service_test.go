package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	apperrors "checksheet-system/pkg/errors"
)

func newTemplateServiceFixture() (TemplateServiceInterface, *fakeTemplateItemRepository) {
	templates := &fakeTemplateRepository{templates: map[uint64]*dto.ChecksheetTemplateDTO{
		1: {ID: 1, Code: "TPL-DIR-01", Name: "Housing DIR", Type: "dir"},
	}}
	items := &fakeTemplateItemRepository{items: map[uint64][]dto.TemplateItemDTO{}}
	svc := NewTemplateService(fakeDB{}, templates, items, zap.NewNop())
	return svc, items
}

func TestAssignSequences(t *testing.T) {
	items := []dto.CreateTemplateItemDTO{
		{ItemName: "first"},
		{ItemName: "second", Sequence: 20},
		{ItemName: "third"},
	}

	assigned := assignSequences(items)

	assert.Equal(t, 1, assigned[0].Sequence, "omitted values count from 1 in submission order")
	assert.Equal(t, 20, assigned[1].Sequence, "explicit values are untouched")
	assert.Equal(t, 3, assigned[2].Sequence)
	assert.Zero(t, items[0].Sequence, "input slice stays unmodified")
}

func TestBulkCreateItemsAssignsSequences(t *testing.T) {
	svc, items := newTemplateServiceFixture()

	created, err := svc.BulkCreateItems(operatorCtx(), dto.BulkCreateTemplateItemsDTO{
		TemplateID: 1,
		Items: []dto.CreateTemplateItemDTO{
			{ItemName: "Outer diameter", Nominal: "25", ToleranceMin: "-0.02", ToleranceMax: "0.02"},
			{ItemName: "Length", Nominal: "80", ToleranceMin: "-0.05", ToleranceMax: "0.05"},
			{ItemName: "Visual check"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	require.Len(t, items.created, 3)
	for i, item := range items.created {
		assert.Equal(t, i+1, item.Sequence)
	}
}

func TestBulkCreateItemsUnknownTemplate(t *testing.T) {
	svc, items := newTemplateServiceFixture()

	_, err := svc.BulkCreateItems(operatorCtx(), dto.BulkCreateTemplateItemsDTO{
		TemplateID: 99,
		Items:      []dto.CreateTemplateItemDTO{{ItemName: "orphan"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, items.created)
}

func TestCreateItemAppendsAfterHighestSequence(t *testing.T) {
	svc, items := newTemplateServiceFixture()
	items.items[1] = []dto.TemplateItemDTO{
		{ID: 10, TemplateID: 1, ItemName: "existing", Sequence: 5},
	}

	created, err := svc.CreateItem(operatorCtx(), dto.CreateTemplateItemDTO{
		TemplateID: 1,
		ItemName:   "appended",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, created.Sequence)
}

func TestCreateTemplateRejectsInvertedBand(t *testing.T) {
	templates := &fakeTemplateRepository{templates: map[uint64]*dto.ChecksheetTemplateDTO{}}
	items := &fakeTemplateItemRepository{items: map[uint64][]dto.TemplateItemDTO{}}
	svc := NewTemplateService(fakeDB{}, templates, items, zap.NewNop())

	_, err := svc.CreateTemplate(operatorCtx(), dto.CreateChecksheetTemplateDTO{
		Code: "TPL-BAD", Name: "Broken band", Type: "dir",
		Items: []dto.CreateTemplateItemDTO{
			{ItemName: "Bore diameter", Nominal: "12", ToleranceMin: "0.05", ToleranceMax: "-0.05"},
		},
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Message, "Bore diameter")
	assert.Empty(t, items.created, "nothing persisted for an unusable band")
}

func TestBulkCreateItemsRejectsSingleBound(t *testing.T) {
	svc, items := newTemplateServiceFixture()

	_, err := svc.BulkCreateItems(operatorCtx(), dto.BulkCreateTemplateItemsDTO{
		TemplateID: 1,
		Items: []dto.CreateTemplateItemDTO{
			{ItemName: "Width", Nominal: "40", ToleranceMin: "-0.1"},
		},
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, items.created)
}

func TestCreateItemRejectsBoundsWithoutNominal(t *testing.T) {
	svc, items := newTemplateServiceFixture()

	_, err := svc.CreateItem(operatorCtx(), dto.CreateTemplateItemDTO{
		TemplateID:   1,
		ItemName:     "Depth",
		ToleranceMin: "-0.02",
		ToleranceMax: "0.02",
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, items.created)
}

func TestUpdateItemRejectsBandInvertedByPartialUpdate(t *testing.T) {
	svc, items := newTemplateServiceFixture()
	items.items[1] = []dto.TemplateItemDTO{
		{ID: 10, TemplateID: 1, ItemName: "Outer diameter",
			Nominal: "25", ToleranceMin: "-0.02", ToleranceMax: "0.02", Sequence: 1},
	}

	// Only tolerance_min changes, but the merged band is inverted.
	_, err := svc.UpdateItem(operatorCtx(), 10, dto.UpdateTemplateItemDTO{
		ToleranceMin: strPtr("0.5"),
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, items.updated, "repository never reached with a broken band")
}

func TestUpdateItemAcceptsConsistentBandChange(t *testing.T) {
	svc, items := newTemplateServiceFixture()
	items.items[1] = []dto.TemplateItemDTO{
		{ID: 10, TemplateID: 1, ItemName: "Outer diameter",
			Nominal: "25", ToleranceMin: "-0.02", ToleranceMax: "0.02", Sequence: 1},
	}

	updated, err := svc.UpdateItem(operatorCtx(), 10, dto.UpdateTemplateItemDTO{
		ToleranceMin: strPtr("-0.01"),
		ToleranceMax: strPtr("0.01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "-0.01", updated.ToleranceMin)
	assert.Equal(t, []uint64{10}, items.updated)
}

func strPtr(s string) *string { return &s }
