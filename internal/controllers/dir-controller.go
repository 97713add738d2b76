package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/services"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/utils"
)

type DirController struct {
	dirService services.DirServiceInterface
	logger     *zap.Logger
}

func NewDirController(dirService services.DirServiceInterface, logger *zap.Logger) *DirController {
	return &DirController{
		dirService: dirService,
		logger:     logger,
	}
}

func (c *DirController) GetDirs(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.dirService.GetDirs(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListSuccessResponse(ctx, list, "DIR checksheets fetched successfully", total, filter.Page, filter.Limit)
}

func (c *DirController) FindDir(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.FindDir(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "DIR checksheet fetched successfully", http.StatusOK)
}

func (c *DirController) CreateDir(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateDirDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.CreateDir(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "DIR checksheet created successfully", http.StatusCreated)
}

func (c *DirController) UpdateDir(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDirDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.UpdateDir(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "DIR checksheet updated successfully", http.StatusOK)
}

func (c *DirController) DeleteDir(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.dirService.DeleteDir(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "DIR checksheet deleted successfully", http.StatusOK)
}

func (c *DirController) bindWorkflowPayload(ctx echo.Context) (dto.WorkflowActionDTO, error) {
	var payload dto.WorkflowActionDTO
	if err := ctx.Bind(&payload); err != nil {
		return payload, err
	}
	if err := ctx.Validate(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (c *DirController) Approve(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload, err := c.bindWorkflowPayload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.Approve(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "DIR checksheet approved", http.StatusOK)
}

func (c *DirController) RequestRevision(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload, err := c.bindWorkflowPayload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.RequestRevision(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "DIR checksheet sent for revision", http.StatusOK)
}

func (c *DirController) Reject(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload, err := c.bindWorkflowPayload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.Reject(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "DIR checksheet rejected", http.StatusOK)
}

func (c *DirController) GetApprovals(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.GetApprovals(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Approvals fetched successfully", http.StatusOK)
}

func (c *DirController) GetRevisions(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.GetRevisions(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Revisions fetched successfully", http.StatusOK)
}

// UploadMeasurementPhoto handles the multipart form: "photo" file plus
// optional remark and reject_reason_id fields.
func (c *DirController) UploadMeasurementPhoto(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	dirID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	measurementID, err := parseIDParam(ctx, "measurementId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "photo file is required", err, nil), c.logger)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	payload := dto.CreateMeasurementPhotoDTO{
		Remark: ctx.FormValue("remark"),
	}
	if raw := ctx.FormValue("reject_reason_id"); raw != "" {
		reasonID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "reject_reason_id must be a number", err, nil), c.logger)
		}
		payload.RejectReasonID = &reasonID
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.dirService.UploadMeasurementPhoto(reqCtx, dirID, measurementID, file, fileHeader.Filename, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Photo uploaded successfully", http.StatusCreated)
}
