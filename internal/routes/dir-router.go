package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runDirRouter(secureGroup *echo.Group, ctrl *controllers.DirController, authMW *middleware.AuthMiddleware) {
	create := authMW.RequirePermission(constants.PermChecksheetCreate)
	review := authMW.RequirePermission(constants.PermChecksheetReview)

	group := secureGroup.Group("/dirs")
	group.GET("", ctrl.GetDirs)
	group.GET("/:id", ctrl.FindDir)
	group.POST("", ctrl.CreateDir, create)
	group.PUT("/:id", ctrl.UpdateDir, create)
	group.DELETE("/:id", ctrl.DeleteDir, create)

	group.POST("/:id/measurements/:measurementId/photos", ctrl.UploadMeasurementPhoto, create)

	group.POST("/:id/approve", ctrl.Approve, review)
	group.POST("/:id/revisions", ctrl.RequestRevision, review)
	group.POST("/:id/reject", ctrl.Reject, review)
	group.GET("/:id/approvals", ctrl.GetApprovals)
	group.GET("/:id/revisions", ctrl.GetRevisions)
}
