package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runMaterialRouter(secureGroup *echo.Group, ctrl *controllers.MaterialController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/materials")

	group.GET("", ctrl.GetMaterials)
	group.GET("/:id", ctrl.FindMaterial)
	group.POST("", ctrl.CreateMaterial, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdateMaterial, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeleteMaterial, authMW.RequirePermission(constants.PermMasterDataManage))
}
