package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runFiRouter(secureGroup *echo.Group, ctrl *controllers.FiController, authMW *middleware.AuthMiddleware) {
	create := authMW.RequirePermission(constants.PermChecksheetCreate)
	review := authMW.RequirePermission(constants.PermChecksheetReview)

	group := secureGroup.Group("/fis")
	group.GET("", ctrl.GetFis)
	group.GET("/:id", ctrl.FindFi)
	group.POST("", ctrl.CreateFi, create)
	group.PUT("/:id", ctrl.UpdateFi, create)
	group.DELETE("/:id", ctrl.DeleteFi, create)

	group.POST("/:id/approve", ctrl.Approve, review)
	group.POST("/:id/revisions", ctrl.RequestRevision, review)
	group.POST("/:id/reject", ctrl.Reject, review)
	group.GET("/:id/approvals", ctrl.GetApprovals)
	group.GET("/:id/revisions", ctrl.GetRevisions)
}
