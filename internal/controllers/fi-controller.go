package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/services"
	"checksheet-system/pkg/utils"
)

type FiController struct {
	fiService services.FiServiceInterface
	logger    *zap.Logger
}

func NewFiController(fiService services.FiServiceInterface, logger *zap.Logger) *FiController {
	return &FiController{
		fiService: fiService,
		logger:    logger,
	}
}

func (c *FiController) GetFis(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.fiService.GetFis(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListSuccessResponse(ctx, list, "FI checksheets fetched successfully", total, filter.Page, filter.Limit)
}

func (c *FiController) FindFi(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.FindFi(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "FI checksheet fetched successfully", http.StatusOK)
}

func (c *FiController) CreateFi(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateFiDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.CreateFi(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "FI checksheet created successfully", http.StatusCreated)
}

func (c *FiController) UpdateFi(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateFiDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.UpdateFi(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "FI checksheet updated successfully", http.StatusOK)
}

func (c *FiController) DeleteFi(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.fiService.DeleteFi(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "FI checksheet deleted successfully", http.StatusOK)
}

func (c *FiController) bindWorkflowPayload(ctx echo.Context) (dto.WorkflowActionDTO, error) {
	var payload dto.WorkflowActionDTO
	if err := ctx.Bind(&payload); err != nil {
		return payload, err
	}
	if err := ctx.Validate(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (c *FiController) Approve(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload, err := c.bindWorkflowPayload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.Approve(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "FI checksheet approved", http.StatusOK)
}

func (c *FiController) RequestRevision(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload, err := c.bindWorkflowPayload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.RequestRevision(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "FI checksheet sent for revision", http.StatusOK)
}

func (c *FiController) Reject(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload, err := c.bindWorkflowPayload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.Reject(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "FI checksheet rejected", http.StatusOK)
}

func (c *FiController) GetApprovals(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.GetApprovals(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Approvals fetched successfully", http.StatusOK)
}

func (c *FiController) GetRevisions(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.fiService.GetRevisions(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Revisions fetched successfully", http.StatusOK)
}
