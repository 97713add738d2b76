package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runTemplateRouter(secureGroup *echo.Group, ctrl *controllers.TemplateController, authMW *middleware.AuthMiddleware) {
	manage := authMW.RequirePermission(constants.PermMasterDataManage)

	templates := secureGroup.Group("/checksheet-templates")
	templates.GET("", ctrl.GetTemplates)
	templates.GET("/:id", ctrl.FindTemplate)
	templates.POST("", ctrl.CreateTemplate, manage)
	templates.PUT("/:id", ctrl.UpdateTemplate, manage)
	templates.DELETE("/:id", ctrl.DeleteTemplate, manage)

	items := secureGroup.Group("/template-items")
	items.GET("/template/:templateId", ctrl.GetItemsByTemplate)
	items.GET("/:id", ctrl.FindItem)
	items.POST("", ctrl.CreateItem, manage)
	items.POST("/bulk", ctrl.BulkCreateItems, manage)
	items.PUT("/:id", ctrl.UpdateItem, manage)
	items.DELETE("/:id", ctrl.DeleteItem, manage)
}
