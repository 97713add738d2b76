package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runPartRouter(secureGroup *echo.Group, ctrl *controllers.PartController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/parts")

	group.GET("", ctrl.GetParts)
	group.GET("/:id", ctrl.FindPart)
	group.POST("", ctrl.CreatePart, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdatePart, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeletePart, authMW.RequirePermission(constants.PermMasterDataManage))
}
