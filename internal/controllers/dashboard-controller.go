package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"checksheet-system/internal/services"
	"checksheet-system/pkg/utils"
)

type DashboardController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewDashboardController(reportService services.ReportServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		reportService: reportService,
		logger:        logger,
	}
}

func (c *DashboardController) GetSummary(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	summary, err := c.reportService.GetDashboardSummary(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, summary, "Dashboard summary fetched successfully", http.StatusOK)
}
