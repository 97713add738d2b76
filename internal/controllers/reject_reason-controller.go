package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/services"
	"checksheet-system/pkg/utils"
)

type RejectReasonController struct {
	rejectReasonService services.RejectReasonServiceInterface
	logger              *zap.Logger
}

func NewRejectReasonController(rejectReasonService services.RejectReasonServiceInterface, logger *zap.Logger) *RejectReasonController {
	return &RejectReasonController{
		rejectReasonService: rejectReasonService,
		logger:              logger,
	}
}

func (c *RejectReasonController) GetRejectReasons(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.rejectReasonService.GetRejectReasons(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListSuccessResponse(ctx, list, "Reject reasons fetched successfully", total, filter.Page, filter.Limit)
}

func (c *RejectReasonController) FindRejectReason(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.rejectReasonService.FindRejectReason(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Reject reason fetched successfully", http.StatusOK)
}

func (c *RejectReasonController) CreateRejectReason(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateRejectReasonDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.rejectReasonService.CreateRejectReason(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Reject reason created successfully", http.StatusCreated)
}

func (c *RejectReasonController) UpdateRejectReason(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRejectReasonDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.rejectReasonService.UpdateRejectReason(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Reject reason updated successfully", http.StatusOK)
}

func (c *RejectReasonController) DeleteRejectReason(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.rejectReasonService.DeleteRejectReason(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Reject reason deleted successfully", http.StatusOK)
}
