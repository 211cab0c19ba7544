package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freya-systems/freya-dashboard/internal/backend"
	"github.com/freya-systems/freya-dashboard/internal/dashboard"
	"github.com/freya-systems/freya-dashboard/internal/export"
	"github.com/freya-systems/freya-dashboard/internal/httpapi"
	"github.com/freya-systems/freya-dashboard/internal/storage"
)

const (
	logEventListening         = "listening"
	logFieldAddress           = "addr"
	loggerContextOpenDatabase = "open_db"
	loggerContextAutoMigrate  = "migrate"
	loggerContextBackend      = "backend_client"
	loggerContextServer       = "server"
	readHeaderTimeoutSeconds  = 5

	corsHeaderContentType = "Content-Type"
	httpMethodGet         = "GET"
	httpMethodPost        = "POST"
	httpMethodPut         = "PUT"
	httpMethodOptions     = "OPTIONS"
)

var (
	corsAllowedMethods = []string{httpMethodGet, httpMethodPost, httpMethodPut, httpMethodOptions}
	corsAllowedHeaders = []string{corsHeaderContentType}
	corsExposedHeaders = []string{corsHeaderContentType, "Content-Disposition"}
)

func runServer(configuration ServerConfig, openDatabase DatabaseOpener, logger *zap.Logger) error {
	database, databaseErr := openDatabase(storage.Config{
		DriverName:     storage.DriverNameSQLite,
		DataSourceName: configuration.DatabasePath,
	})
	if databaseErr != nil {
		logger.Fatal(loggerContextOpenDatabase, zap.Error(databaseErr))
	}
	if migrateErr := storage.AutoMigrate(database); migrateErr != nil {
		logger.Fatal(loggerContextAutoMigrate, zap.Error(migrateErr))
	}

	backendClient, clientErr := backend.NewClient(backend.Config{
		BaseURL: configuration.BackendBaseURL,
		Timeout: backendTimeout(configuration),
	}, logger)
	if clientErr != nil {
		logger.Fatal(loggerContextBackend, zap.Error(clientErr))
	}

	router := buildRouter(configuration, database, backendClient, logger)

	httpServer := &http.Server{
		Addr:              configuration.ApplicationAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	logger.Info(logEventListening, zap.String(logFieldAddress, configuration.ApplicationAddress))
	if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		logger.Fatal(loggerContextServer, zap.Error(serveErr))
	}

	return nil
}

func buildRouter(configuration ServerConfig, database *gorm.DB, backendClient *backend.Client, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     corsAllowedMethods,
		AllowHeaders:     corsAllowedHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	sessionManager := httpapi.NewSessionManager(configuration.SessionSecret, logger)
	preferenceStore := storage.NewWidgetPreferenceStore(database)
	preferenceService := dashboard.NewPreferenceService(preferenceStore, logger)
	overviewService := dashboard.NewOverviewService(backendClient, logger)
	fieldService := dashboard.NewFieldService(backendClient)
	pdfWriter := export.NewPDFWriter(configuration.PDFFontPath, logger)

	authHandlers := httpapi.NewAuthHandlers(backendClient, sessionManager, logger)
	webHandlers := httpapi.NewWebHandlers(logger, sessionManager)
	staticHandlers := httpapi.NewStaticHandlers()
	navigationHandlers := httpapi.NewNavigationHandlers(sessionManager)
	masterHandlers := httpapi.NewMasterHandlers(backendClient, logger)
	logHandlers := httpapi.NewLogHandlers(backendClient, pdfWriter, logger)
	userHandlers := httpapi.NewUserHandlers(backendClient, logger)
	dashboardHandlers := httpapi.NewDashboardHandlers(
		backendClient, preferenceService, overviewService, fieldService, sessionManager, logger)

	registerFrontendRoutes(router, sessionManager, authHandlers, webHandlers, staticHandlers)
	registerBackendRoutes(router, sessionManager, authHandlers, navigationHandlers,
		masterHandlers, logHandlers, userHandlers, dashboardHandlers)

	return router
}

func registerFrontendRoutes(
	router *gin.Engine,
	sessionManager *httpapi.SessionManager,
	authHandlers *httpapi.AuthHandlers,
	webHandlers *httpapi.WebHandlers,
	staticHandlers *httpapi.StaticHandlers,
) {
	router.GET("/", sessionManager.RequireSessionWeb(), webHandlers.RedirectToDefaultPage)
	router.GET(httpapi.LoginPath, webHandlers.RenderLogin)
	router.GET("/logout", authHandlers.Logout)
	router.GET("/app/:page", sessionManager.RequireSessionWeb(), webHandlers.RenderApp)
	router.GET("/static/login.js", staticHandlers.LoginJS)
	router.GET("/static/app.js", staticHandlers.AppJS)
}

func registerBackendRoutes(
	router *gin.Engine,
	sessionManager *httpapi.SessionManager,
	authHandlers *httpapi.AuthHandlers,
	navigationHandlers *httpapi.NavigationHandlers,
	masterHandlers *httpapi.MasterHandlers,
	logHandlers *httpapi.LogHandlers,
	userHandlers *httpapi.UserHandlers,
	dashboardHandlers *httpapi.DashboardHandlers,
) {
	router.POST("/api/session", authHandlers.Login)
	router.GET("/api/session", authHandlers.CurrentSession)
	router.POST("/api/locale", authHandlers.SetLocale)

	apiGroup := router.Group("/api")
	apiGroup.Use(sessionManager.RequireSessionJSON())

	apiGroup.GET("/navigation", navigationHandlers.List)

	apiGroup.POST("/master/list", masterHandlers.List)
	apiGroup.POST("/master/history", masterHandlers.History)
	apiGroup.POST("/master/record-history", masterHandlers.RecordHistory)

	masterEditGroup := apiGroup.Group("/master")
	masterEditGroup.Use(sessionManager.RequireEditorJSON())
	masterEditGroup.POST("/insert", masterHandlers.Insert)
	masterEditGroup.POST("/update", masterHandlers.Update)
	masterEditGroup.POST("/bulk-delete", masterHandlers.BulkDelete)
	masterEditGroup.POST("/import", masterHandlers.ImportCSV)
	masterEditGroup.POST("/image", masterHandlers.UploadImage)

	apiGroup.POST("/logs/list", logHandlers.List)
	apiGroup.POST("/logs/actions", logHandlers.Actions)
	apiGroup.POST("/logs/export", logHandlers.Export)

	usersGroup := apiGroup.Group("/users")
	usersGroup.Use(sessionManager.RequireUserManagerJSON())
	usersGroup.POST("/list", userHandlers.List)
	usersGroup.POST("/create", userHandlers.Create)
	usersGroup.POST("/update", userHandlers.Update)
	usersGroup.POST("/delete", userHandlers.Delete)
	usersGroup.POST("/reset-password", userHandlers.ResetPassword)

	apiGroup.GET("/dashboard/preferences", dashboardHandlers.GetPreferences)
	apiGroup.PUT("/dashboard/preferences", dashboardHandlers.PutPreferences)
	apiGroup.POST("/dashboard/fields", dashboardHandlers.Fields)
	apiGroup.POST("/dashboard/overview", dashboardHandlers.Overview)
}
