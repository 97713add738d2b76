package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/services"
	"checksheet-system/pkg/utils"
)

type TemplateController struct {
	templateService services.TemplateServiceInterface
	logger          *zap.Logger
}

func NewTemplateController(templateService services.TemplateServiceInterface, logger *zap.Logger) *TemplateController {
	return &TemplateController{
		templateService: templateService,
		logger:          logger,
	}
}

func (c *TemplateController) GetTemplates(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.templateService.GetTemplates(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListSuccessResponse(ctx, list, "Templates fetched successfully", total, filter.Page, filter.Limit)
}

func (c *TemplateController) FindTemplate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.FindTemplate(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Template fetched successfully", http.StatusOK)
}

func (c *TemplateController) CreateTemplate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateChecksheetTemplateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.CreateTemplate(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Template created successfully", http.StatusCreated)
}

func (c *TemplateController) UpdateTemplate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateChecksheetTemplateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.UpdateTemplate(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Template updated successfully", http.StatusOK)
}

func (c *TemplateController) DeleteTemplate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.templateService.DeleteTemplate(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Template deleted successfully", http.StatusOK)
}

func (c *TemplateController) GetItemsByTemplate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	templateID, err := parseIDParam(ctx, "templateId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	items, err := c.templateService.GetItemsByTemplate(reqCtx, templateID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Template items fetched successfully", http.StatusOK)
}

func (c *TemplateController) FindItem(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.FindItem(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Template item fetched successfully", http.StatusOK)
}

func (c *TemplateController) CreateItem(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateTemplateItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.CreateItem(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Template item created successfully", http.StatusCreated)
}

func (c *TemplateController) BulkCreateItems(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.BulkCreateTemplateItemsDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.BulkCreateItems(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Template items created successfully", http.StatusCreated)
}

func (c *TemplateController) UpdateItem(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateTemplateItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.templateService.UpdateItem(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Template item updated successfully", http.StatusOK)
}

func (c *TemplateController) DeleteItem(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.templateService.DeleteItem(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Template item deleted successfully", http.StatusOK)
}
