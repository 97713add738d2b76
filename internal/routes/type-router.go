package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runTypeRouter(secureGroup *echo.Group, ctrl *controllers.TypeController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/types")

	group.GET("", ctrl.GetTypes)
	group.GET("/:id", ctrl.FindType)
	group.POST("", ctrl.CreateType, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdateType, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeleteType, authMW.RequirePermission(constants.PermMasterDataManage))
}
