package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/types"
)

func echoContextWithParam(method, path, name, value string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames(name)
	ctx.SetParamValues(value)
	return ctx
}

func TestParseIDParam(t *testing.T) {
	t.Run("numeric value", func(t *testing.T) {
		ctx := echoContextWithParam(http.MethodGet, "/api/sections/42", "id", "42")
		id, err := parseIDParam(ctx, "id")
		require.NoError(t, err)
		assert.Equal(t, uint64(42), id)
	})

	for _, bad := range []string{"abc", "-1", "1.5", ""} {
		t.Run("rejects "+bad, func(t *testing.T) {
			ctx := echoContextWithParam(http.MethodGet, "/api/sections/"+bad, "id", bad)
			_, err := parseIDParam(ctx, "id")

			var httpErr *apperrors.HttpError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

type stubSectionService struct{}

func (stubSectionService) GetSections(ctx context.Context, filter types.Filter) ([]dto.SectionDTO, uint64, error) {
	return nil, 0, nil
}

func (stubSectionService) FindSection(ctx context.Context, id uint64) (*dto.SectionDTO, error) {
	return &dto.SectionDTO{ID: id}, nil
}

func (stubSectionService) CreateSection(ctx context.Context, payload dto.CreateSectionDTO) (*dto.SectionDTO, error) {
	return nil, apperrors.ErrInternalServer
}

func (stubSectionService) UpdateSection(ctx context.Context, id uint64, payload dto.UpdateSectionDTO) (*dto.SectionDTO, error) {
	return nil, apperrors.ErrInternalServer
}

func (stubSectionService) DeleteSection(ctx context.Context, id uint64) error {
	return apperrors.ErrInternalServer
}

func TestFindSectionMalformedIDReturns400(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/sections/abc", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")

	ctrl := NewSectionController(stubSectionService{}, zap.NewNop())
	require.NoError(t, ctrl.FindSection(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "positive integer")
}

func TestFindSectionNumericIDPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/sections/42", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("42")

	ctrl := NewSectionController(stubSectionService{}, zap.NewNop())
	require.NoError(t, ctrl.FindSection(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}
