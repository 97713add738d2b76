package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runModelRouter(secureGroup *echo.Group, ctrl *controllers.ModelController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/models")

	group.GET("", ctrl.GetModels)
	group.GET("/:id", ctrl.FindModel)
	group.POST("", ctrl.CreateModel, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdateModel, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeleteModel, authMW.RequirePermission(constants.PermMasterDataManage))
}
