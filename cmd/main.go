package main

import (
	"context"
	"net/http"

	_ "time/tzdata" // Load timezone data

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/landlordpro/backend/internal/app"
	"github.com/landlordpro/backend/internal/config"
	"github.com/landlordpro/backend/internal/controllers"
	"github.com/landlordpro/backend/internal/middleware"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/routes"
	"github.com/landlordpro/backend/internal/services"
	"github.com/landlordpro/backend/internal/storage"
	"github.com/landlordpro/backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(application.DB)
	propRepo := repositories.NewPropertyRepository(application.DB)
	floorRepo := repositories.NewFloorRepository(application.DB)
	localRepo := repositories.NewLocalRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	modeRepo := repositories.NewPaymentModeRepository(application.DB)
	notifRepo := repositories.NewNotificationRepository(application.DB)

	if err := app.SeedDefaults(context.Background(), cfg, userRepo, modeRepo); err != nil {
		utils.Logger.Fatal("Failed to seed defaults:", err)
	}

	fileStore, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize file store:", err)
	}

	var mailer services.Mailer
	if cfg.EmailNotifications {
		mailer = services.NewSendgridMailer(cfg.SendgridAPIKey, config.AppName, cfg.SendgridFromEmail, cfg.SendgridSandbox)
	}

	// Services
	jwtService := services.NewJWTService(cfg.RSAPrivateKey)
	authService := services.NewAuthService(userRepo, jwtService)
	userService := services.NewUserService(userRepo, propRepo)
	propertyService := services.NewPropertyService(propRepo, floorRepo, localRepo, userRepo)
	floorService := services.NewFloorService(floorRepo, localRepo, propRepo)
	occupancyService := services.NewOccupancyService(floorRepo, localRepo, propRepo)
	localService := services.NewLocalService(localRepo, floorRepo, propRepo)
	tenantService := services.NewTenantService(tenantRepo, leaseRepo)
	leaseService := services.NewLeaseService(leaseRepo, tenantRepo, localRepo, propRepo)
	paymentService := services.NewPaymentService(paymentRepo, modeRepo, leaseRepo, localRepo, propRepo)
	modeService := services.NewPaymentModeService(modeRepo)
	notificationService := services.NewNotificationService(notifRepo, leaseRepo, localRepo, propRepo, userRepo, mailer)

	// Controllers
	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	propertyController := controllers.NewPropertyController(propertyService)
	floorController := controllers.NewFloorController(floorService, occupancyService)
	localController := controllers.NewLocalController(localService)
	tenantController := controllers.NewTenantController(tenantService)
	leaseController := controllers.NewLeaseController(leaseService)
	paymentController := controllers.NewPaymentController(paymentService, notificationService, fileStore)
	modeController := controllers.NewPaymentModeController(modeService)
	notificationController := controllers.NewNotificationController(notificationService)

	// Scheduled lifecycle passes
	c := cron.New()
	if _, err := c.AddFunc(cfg.ExpirySchedule, func() {
		if _, err := leaseService.ExpireDue(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("Scheduled lease expiry failed")
		}
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule lease expiry job")
	}
	if _, err := c.AddFunc(cfg.ReminderSchedule, func() {
		if _, err := notificationService.NotifyUpcomingPayments(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("Scheduled payment reminders failed")
		}
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule payment reminder job")
	}
	c.Start()
	defer c.Stop()

	// Router
	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)

	// Protected routes (JWT middleware)
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	// Users & profile
	secured.Handle(routes.Register, middleware.AdminOnly(http.HandlerFunc(userController.RegisterHandler))).Methods(http.MethodPost)
	secured.HandleFunc(routes.Users, userController.ListUsersHandler).Methods(http.MethodGet)
	secured.Handle(routes.UserByID, middleware.AdminOnly(http.HandlerFunc(userController.UpdateUserHandler))).Methods(http.MethodPut)
	secured.Handle(routes.UserDisable, middleware.AdminOnly(http.HandlerFunc(userController.DisableUserHandler))).Methods(http.MethodPut)
	secured.Handle(routes.UserEnable, middleware.AdminOnly(http.HandlerFunc(userController.EnableUserHandler))).Methods(http.MethodPut)
	secured.HandleFunc(routes.Profile, userController.GetProfileHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Profile, userController.UpdateProfileHandler).Methods(http.MethodPut)

	// Properties
	secured.HandleFunc(routes.Properties, propertyController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Properties, propertyController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.PropertyByID, propertyController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyAssignManager, propertyController.AssignManagerHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.PropertyFloors, propertyController.ListFloorsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyLocals, propertyController.ListLocalsHandler).Methods(http.MethodGet)

	// Floors
	secured.HandleFunc(routes.Floors, floorController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.OccupancyReport, floorController.OccupancyReportHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FloorByID, floorController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FloorByID, floorController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.FloorByID, floorController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.FloorOccupancy, floorController.OccupancyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FloorLocals, floorController.ListLocalsHandler).Methods(http.MethodGet)

	// Locals
	secured.HandleFunc(routes.Locals, localController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Locals, localController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.LocalByID, localController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.LocalByID, localController.UpdateHandler).Methods(http.MethodPut, http.MethodPatch)
	secured.HandleFunc(routes.LocalByID, localController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.LocalStatus, localController.UpdateStatusHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.LocalRestore, localController.RestoreHandler).Methods(http.MethodPatch)

	// Tenants
	secured.HandleFunc(routes.Tenants, tenantController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Tenants, tenantController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantByID, tenantController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantByID, tenantController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.TenantByID, tenantController.DeleteHandler).Methods(http.MethodDelete)

	// Leases
	secured.HandleFunc(routes.Leases, leaseController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Leases, leaseController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.LeaseReportPDF, leaseController.ReportPDFHandler).Methods(http.MethodGet)
	secured.Handle(routes.LeaseTriggerExpiry, middleware.AdminOnly(http.HandlerFunc(leaseController.TriggerExpiryHandler))).Methods(http.MethodPost)
	secured.HandleFunc(routes.LeaseByID, leaseController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.LeaseByID, leaseController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.LeaseByID, leaseController.DeleteHandler).Methods(http.MethodDelete)

	// Payments
	secured.HandleFunc(routes.Payments, paymentController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Payments, paymentController.ListHandler).Methods(http.MethodGet)
	secured.Handle(routes.PaymentNotifyUpcoming, middleware.AdminOnly(http.HandlerFunc(paymentController.NotifyUpcomingHandler))).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentProof, paymentController.ProofHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentByID, paymentController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentByID, paymentController.UpdateHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.PaymentByID, paymentController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PaymentRestore, paymentController.RestoreHandler).Methods(http.MethodPatch)

	// Payment modes
	secured.Handle(routes.PaymentModes, middleware.AdminOnly(http.HandlerFunc(modeController.CreateHandler))).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentModes, modeController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentModeByID, modeController.GetHandler).Methods(http.MethodGet)
	secured.Handle(routes.PaymentModeByID, middleware.AdminOnly(http.HandlerFunc(modeController.UpdateHandler))).Methods(http.MethodPut)
	secured.Handle(routes.PaymentModeByID, middleware.AdminOnly(http.HandlerFunc(modeController.DeleteHandler))).Methods(http.MethodDelete)

	// Notifications
	secured.HandleFunc(routes.Notifications, notificationController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationsUnread, notificationController.ListUnreadHandler).Methods(http.MethodGet)
	secured.Handle(routes.NotificationsAll, middleware.AdminOnly(http.HandlerFunc(notificationController.ListAllHandler))).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationRead, notificationController.MarkReadHandler).Methods(http.MethodPut)

	// CORS config
	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
