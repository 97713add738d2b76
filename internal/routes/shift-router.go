package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runShiftRouter(secureGroup *echo.Group, ctrl *controllers.ShiftController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/shifts")

	group.GET("", ctrl.GetShifts)
	group.GET("/:id", ctrl.FindShift)
	group.POST("", ctrl.CreateShift, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdateShift, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeleteShift, authMW.RequirePermission(constants.PermMasterDataManage))
}
