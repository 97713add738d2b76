package routes

import (
	"github.com/labstack/echo/v4"

	"checksheet-system/internal/controllers"
)

// Auth routes live outside the secure group: login and refresh are the
// only endpoints reachable without a bearer token.
func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController) {
	group := api.Group("/auth")
	group.POST("/login", ctrl.Login)
	group.POST("/refresh", ctrl.Refresh)
}
