package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wellnessbook/internal/config"
	"wellnessbook/internal/database"
	"wellnessbook/internal/middleware"
	"wellnessbook/internal/modules/auth"
	"wellnessbook/internal/modules/catalog"
	"wellnessbook/internal/modules/notification"
	"wellnessbook/internal/modules/provider"
	"wellnessbook/internal/modules/scheduling"
	jwtsvc "wellnessbook/internal/pkg/jwt"
	"wellnessbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notification.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	providerService := provider.NewService(providerRepo, notificationService)
	providerHandler := provider.NewHandler(providerService)

	catalogService := catalog.NewService(serviceRepo, providerRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	schedulingService := scheduling.NewService(appointmentRepo, notificationService)
	schedulingHandler := scheduling.NewHandler(schedulingService, serviceRepo)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		providerHandler.RegisterPublicRoutes(v1)
		schedulingHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			providerHandler.RegisterProtectedRoutes(protected)
			schedulingHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterProtectedRoutes(protected)
		}

		// admin
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			providerHandler.RegisterAdminRoutes(admin)
			schedulingHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
