package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/services"
	"checksheet-system/pkg/utils"
)

type MaterialController struct {
	materialService services.MaterialServiceInterface
	logger          *zap.Logger
}

func NewMaterialController(materialService services.MaterialServiceInterface, logger *zap.Logger) *MaterialController {
	return &MaterialController{
		materialService: materialService,
		logger:          logger,
	}
}

func (c *MaterialController) GetMaterials(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.materialService.GetMaterials(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListSuccessResponse(ctx, list, "Materials fetched successfully", total, filter.Page, filter.Limit)
}

func (c *MaterialController) FindMaterial(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.materialService.FindMaterial(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Material fetched successfully", http.StatusOK)
}

func (c *MaterialController) CreateMaterial(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateMaterialDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.materialService.CreateMaterial(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Material created successfully", http.StatusCreated)
}

func (c *MaterialController) UpdateMaterial(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaterialDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.materialService.UpdateMaterial(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Material updated successfully", http.StatusOK)
}

func (c *MaterialController) DeleteMaterial(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.materialService.DeleteMaterial(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Material deleted successfully", http.StatusOK)
}
