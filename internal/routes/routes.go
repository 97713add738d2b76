package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"checksheet-system/internal/controllers"
	"checksheet-system/internal/repositories"
	"checksheet-system/internal/services"
	"checksheet-system/pkg/config"
	"checksheet-system/pkg/filestorage"
	"checksheet-system/pkg/middleware"
	"checksheet-system/pkg/service"
)

// Loggers carries the per-area child loggers handed to controllers and
// services so log lines can be traced back to their subsystem.
type Loggers struct {
	Main       *zap.Logger
	Auth       *zap.Logger
	Checksheet *zap.Logger
	User       *zap.Logger
	Report     *zap.Logger
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	jwtSvc service.JWTService,
	authPermissionService services.AuthPermissionServiceInterface,
	loggers *Loggers,
	cfg *config.Config,
) error {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, authPermissionService, loggers.Auth)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		return err
	}

	// Repositories.
	sectionRepo := repositories.NewSectionRepository(dbConn)
	typeRepo := repositories.NewTypeRepository(dbConn)
	shiftRepo := repositories.NewShiftRepository(dbConn)
	modelRepo := repositories.NewModelRepository(dbConn)
	partRepo := repositories.NewPartRepository(dbConn)
	customerRepo := repositories.NewCustomerRepository(dbConn)
	materialRepo := repositories.NewMaterialRepository(dbConn)
	rejectReasonRepo := repositories.NewRejectReasonRepository(dbConn)
	templateRepo := repositories.NewTemplateRepository(dbConn)
	itemRepo := repositories.NewTemplateItemRepository(dbConn)
	dirRepo := repositories.NewDirRepository(dbConn)
	fiRepo := repositories.NewFiRepository(dbConn)
	reviewRepo := repositories.NewReviewRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	roleRepo := repositories.NewRoleRepository(dbConn)

	// Services.
	sectionService := services.NewSectionService(sectionRepo, loggers.Main)
	typeService := services.NewTypeService(typeRepo, loggers.Main)
	shiftService := services.NewShiftService(shiftRepo, loggers.Main)
	modelService := services.NewModelService(modelRepo, loggers.Main)
	partService := services.NewPartService(partRepo, loggers.Main)
	customerService := services.NewCustomerService(customerRepo, loggers.Main)
	materialService := services.NewMaterialService(materialRepo, loggers.Main)
	rejectReasonService := services.NewRejectReasonService(rejectReasonRepo, loggers.Main)
	templateService := services.NewTemplateService(dbConn, templateRepo, itemRepo, loggers.Checksheet)
	dirService := services.NewDirService(dbConn, dirRepo, templateRepo, itemRepo, reviewRepo, fileStorage, loggers.Checksheet)
	fiService := services.NewFiService(dbConn, fiRepo, templateRepo, reviewRepo, loggers.Checksheet)
	reportService := services.NewReportService(reportRepo, loggers.Report)
	userService := services.NewUserService(userRepo, roleRepo, authPermissionService, loggers.User)
	authService := services.NewAuthService(userRepo, jwtSvc, loggers.Auth)

	// Controllers.
	sectionCtrl := controllers.NewSectionController(sectionService, loggers.Main)
	typeCtrl := controllers.NewTypeController(typeService, loggers.Main)
	shiftCtrl := controllers.NewShiftController(shiftService, loggers.Main)
	modelCtrl := controllers.NewModelController(modelService, loggers.Main)
	partCtrl := controllers.NewPartController(partService, loggers.Main)
	customerCtrl := controllers.NewCustomerController(customerService, loggers.Main)
	materialCtrl := controllers.NewMaterialController(materialService, loggers.Main)
	rejectReasonCtrl := controllers.NewRejectReasonController(rejectReasonService, loggers.Main)
	templateCtrl := controllers.NewTemplateController(templateService, loggers.Checksheet)
	dirCtrl := controllers.NewDirController(dirService, loggers.Checksheet)
	fiCtrl := controllers.NewFiController(fiService, loggers.Checksheet)
	reportCtrl := controllers.NewReportController(reportService, loggers.Report)
	dashboardCtrl := controllers.NewDashboardController(reportService, loggers.Report)
	userCtrl := controllers.NewUserController(userService, loggers.User)
	authCtrl := controllers.NewAuthController(authService, loggers.Auth)

	// Routers.
	runAuthRouter(api, authCtrl)

	secureGroup := api.Group("", authMW.Auth)
	runSectionRouter(secureGroup, sectionCtrl, authMW)
	runTypeRouter(secureGroup, typeCtrl, authMW)
	runShiftRouter(secureGroup, shiftCtrl, authMW)
	runModelRouter(secureGroup, modelCtrl, authMW)
	runPartRouter(secureGroup, partCtrl, authMW)
	runCustomerRouter(secureGroup, customerCtrl, authMW)
	runMaterialRouter(secureGroup, materialCtrl, authMW)
	runRejectReasonRouter(secureGroup, rejectReasonCtrl, authMW)
	runTemplateRouter(secureGroup, templateCtrl, authMW)
	runDirRouter(secureGroup, dirCtrl, authMW)
	runFiRouter(secureGroup, fiCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)
	runReportRouter(secureGroup, reportCtrl, dashboardCtrl, authMW)

	loggers.Main.Info("routes registered")
	return nil
}
