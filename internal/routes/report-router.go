package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController, dashboardCtrl *controllers.DashboardController, authMW *middleware.AuthMiddleware) {
	view := authMW.RequirePermission(constants.PermReportView)

	secureGroup.GET("/reports/checksheets", reportCtrl.GetChecksheetReport, view)
	secureGroup.GET("/dashboard/summary", dashboardCtrl.GetSummary, view)
}
