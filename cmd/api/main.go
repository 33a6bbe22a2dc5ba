package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"golang.org/x/crypto/bcrypt"

	"conferencehub/config"
	_ "conferencehub/docs"
	"conferencehub/internal/adapters/auth"
	"conferencehub/internal/adapters/email"
	deliveryhttp "conferencehub/internal/delivery/http"
	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/repository/postgres"
	"conferencehub/internal/services"
)

// @title Conference Hub API
// @version 1.0
// @description Conference proposals, approvals, attendance, ratings, and admin reporting.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if err := postgres.Migrate(cfg.DBUrl); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	db, err := postgres.Open(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	cityRepo := postgres.NewCityRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	requestRepo := postgres.NewConferenceRequestRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	settingRepo := postgres.NewSettingRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Adapters
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.Region,
			AccessKeyID:        cfg.Email.AccessKeyID,
			SecretAccessKey:    cfg.Email.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer setup failed", "error", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Services
	timeout := cfg.RequestTimeout
	authService := services.NewAuthService(userRepo, profileRepo, hasher, issuer, emailService, logger, cfg.JWTExpiry, timeout)
	profileService := services.NewProfileService(userRepo, profileRepo, cityRepo, timeout)
	userService := services.NewUserManagementService(userRepo, profileRepo, timeout)
	categoryService := services.NewCategoryService(categoryRepo, timeout)
	conferenceService := services.NewConferenceService(conferenceRepo, categoryRepo, cityRepo, timeout)
	requestService := services.NewRequestService(requestRepo, conferenceRepo, emailService, logger, timeout)
	ratingService := services.NewRatingService(ratingRepo, conferenceRepo, timeout)
	attendanceService := services.NewAttendanceService(attendanceRepo, conferenceRepo, timeout)
	statsService := services.NewStatsService(statsRepo, timeout)
	settingsService := services.NewSettingsService(settingRepo, timeout)
	reportService := services.NewReportService(reportRepo, statsRepo, timeout)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:        controllers.NewAuthController(logger, authService),
		Profile:     controllers.NewProfileController(logger, profileService, authService),
		Conferences: controllers.NewConferenceController(logger, conferenceService, requestService, ratingService, attendanceService),
		Admin:       controllers.NewAdminController(logger, statsService, userService, categoryService, requestService, settingsService),
		Reports:     controllers.NewReportController(logger, reportService),
	}, verifier, profileService, logger)

	var handler http.Handler = middleware.LoggingMiddleware(logger, router)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
