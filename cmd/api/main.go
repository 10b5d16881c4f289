package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/config"
	appHTTP "github.com/caredomi/homecare-backend-go/internal/handler/http"
	"github.com/caredomi/homecare-backend-go/internal/pkg/cron"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
	"github.com/caredomi/homecare-backend-go/internal/pkg/email"
	"github.com/caredomi/homecare-backend-go/internal/pkg/jwt"
	"github.com/caredomi/homecare-backend-go/internal/pkg/oauth"
	"github.com/caredomi/homecare-backend-go/internal/pkg/routing"
	"github.com/caredomi/homecare-backend-go/internal/pkg/sse"
	"github.com/caredomi/homecare-backend-go/internal/pkg/storage"
	"github.com/caredomi/homecare-backend-go/internal/repository/postgresql"
	authService "github.com/caredomi/homecare-backend-go/internal/service/auth"
	careplanService "github.com/caredomi/homecare-backend-go/internal/service/careplan"
	employeeService "github.com/caredomi/homecare-backend-go/internal/service/employee"
	medicationService "github.com/caredomi/homecare-backend-go/internal/service/medication"
	patientService "github.com/caredomi/homecare-backend-go/internal/service/patient"
	prescriptionService "github.com/caredomi/homecare-backend-go/internal/service/prescription"
	tourService "github.com/caredomi/homecare-backend-go/internal/service/tour"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		slog.Warn("Redis unreachable, routing cache disabled", "error", err)
		redisClient = nil
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	patientRepo := postgresql.NewPatientRepository(db)
	carePlanRepo := postgresql.NewCarePlanRepository(db)
	carePlanItemRepo := postgresql.NewCarePlanItemRepository(db)
	medicationRepo := postgresql.NewMedicationRepository(db)
	scheduleRuleRepo := postgresql.NewScheduleRuleRepository(db)
	tourRepo := postgresql.NewTourRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	prescriptionRepo := postgresql.NewPrescriptionRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	routingClient := routing.NewClient(
		cfg.Routing.BaseURL,
		cfg.Routing.APIKey,
		cfg.Routing.CacheTTL,
		redisClient,
		slog.Default(),
	)
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(userRepo, employeeRepo, jwtService, emailService, cfg.App.FrontendURL)
	patientSvc := patientService.NewPatientService(patientRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	carePlanSvc := careplanService.NewCarePlanService(db, carePlanRepo, carePlanItemRepo)
	medicationSvc := medicationService.NewMedicationService(db, medicationRepo, scheduleRuleRepo)
	tourSvc := tourService.NewTourService(db, tourRepo, eventRepo, routingClient, routingClient, hub)
	prescriptionSvc := prescriptionService.NewPrescriptionService(prescriptionRepo, fileStorage)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Patient:      appHTTP.NewPatientHandler(patientSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		CarePlan:     appHTTP.NewCarePlanHandler(carePlanSvc),
		Medication:   appHTTP.NewMedicationHandler(medicationSvc),
		Tour:         appHTTP.NewTourHandler(tourSvc, jwtService, hub),
		Prescription: appHTTP.NewPrescriptionHandler(prescriptionSvc),
	}

	router := appHTTP.NewRouter(jwtService, cfg.App.FrontendURL, handlers)

	scheduler := cron.NewScheduler()
	refreshLifetime, err := time.ParseDuration(cfg.JWT.RefreshExpiration)
	if err != nil {
		log.Fatal("Invalid JWT_REFRESH_EXPIRATION_TIME:", err)
	}
	scheduler.AddJob("token-purge", time.Hour, cron.NewTokenPurgeJob(jwtService, refreshLifetime))
	scheduler.AddJob("plan-expiry", 24*time.Hour, cron.NewPlanExpiryJob(db))
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server running", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
