package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runSectionRouter(secureGroup *echo.Group, ctrl *controllers.SectionController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/sections")

	group.GET("", ctrl.GetSections)
	group.GET("/:id", ctrl.FindSection)
	group.POST("", ctrl.CreateSection, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdateSection, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeleteSection, authMW.RequirePermission(constants.PermMasterDataManage))
}
