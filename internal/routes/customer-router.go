package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runCustomerRouter(secureGroup *echo.Group, ctrl *controllers.CustomerController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/customers")

	group.GET("", ctrl.GetCustomers)
	group.GET("/:id", ctrl.FindCustomer)
	group.POST("", ctrl.CreateCustomer, authMW.RequirePermission(constants.PermMasterDataManage))
	group.PUT("/:id", ctrl.UpdateCustomer, authMW.RequirePermission(constants.PermMasterDataManage))
	group.DELETE("/:id", ctrl.DeleteCustomer, authMW.RequirePermission(constants.PermMasterDataManage))
}
