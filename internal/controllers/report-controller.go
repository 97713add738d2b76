package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"checksheet-system/internal/dto"
	"checksheet-system/internal/repositories"
	"checksheet-system/internal/services"
	apperrors "checksheet-system/pkg/errors"
	"checksheet-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

func (c *ReportController) GetChecksheetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter, format, err := c.parseFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rows, err := c.reportService.GetChecksheetReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}
	return utils.SuccessResponse(ctx, rows, "Report generated successfully", http.StatusOK)
}

func (c *ReportController) parseFilter(ctx echo.Context) (repositories.ReportFilter, string, error) {
	var filter repositories.ReportFilter
	format := strings.ToLower(ctx.QueryParam("format"))

	if raw := ctx.QueryParam("date_from"); raw != "" {
		t, err := parseReportDate(raw)
		if err != nil {
			return filter, format, apperrors.NewInvalidInputError("invalid date_from %q", raw)
		}
		filter.DateFrom = t
	}
	if raw := ctx.QueryParam("date_to"); raw != "" {
		t, err := parseReportDate(raw)
		if err != nil {
			return filter, format, apperrors.NewInvalidInputError("invalid date_to %q", raw)
		}
		filter.DateTo = t
	}

	switch t := ctx.QueryParam("type"); t {
	case "", "dir", "fi":
		filter.Type = t
	default:
		return filter, format, apperrors.NewInvalidInputError("type must be dir or fi")
	}
	return filter, format, nil
}

func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

var reportHeaders = []string{"Type", "Number", "Model", "Customer", "Section", "Operator", "Status", "Items", "Rejects", "Created At"}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []dto.ReportRowDTO) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.Warn("failed to close xlsx file", zap.Error(err))
		}
	}()

	const sheet = "Checksheets"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			strings.ToUpper(row.ChecksheetType), row.Number, row.ModelName, row.CustomerName,
			row.SectionName, row.OperatorName, row.Status, row.ItemCount, row.RejectCount, row.CreatedAt,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return utils.ErrorResponse(ctx, err, c.logger)
			}
		}
	}

	filename := fmt.Sprintf("checksheet_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	if err := f.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("failed to stream xlsx report", zap.Error(err))
		return err
	}
	return nil
}
