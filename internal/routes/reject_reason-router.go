package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runRejectReasonRouter(secureGroup *echo.Group, ctrl *controllers.RejectReasonController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/reject-reasons")

	group.GET("", ctrl.GetRejectReasons)
	group.GET("/:id", ctrl.FindRejectReason)
	group.POST("", ctrl.CreateRejectReason, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdateRejectReason, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeleteRejectReason, authMW.RequirePermission(constants.PermMasterDataManage))
}
