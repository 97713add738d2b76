package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
	"checksheet-system/pkg/constants"
	"checksheet-system/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	manage := authMW.RequirePermission(constants.PermUserManage)

	group := secureGroup.Group("/users")
	group.GET("/me", ctrl.Me)
	group.GET("", ctrl.GetUsers, manage)
	group.GET("/:id", ctrl.FindUser, manage)
	group.POST("", ctrl.CreateUser, manage)
	group.PUT("/:id", ctrl.UpdateUser, manage)
	group.DELETE("/:id", ctrl.DeleteUser, manage)
}
