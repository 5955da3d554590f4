package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/application/audit"
	"github.com/upg/backend/internal/application/geography"
	"github.com/upg/backend/internal/application/grant"
	"github.com/upg/backend/internal/application/group"
	"github.com/upg/backend/internal/application/household"
	"github.com/upg/backend/internal/application/identity"
	"github.com/upg/backend/internal/application/notification"
	"github.com/upg/backend/internal/application/program"
	"github.com/upg/backend/internal/application/report"
	"github.com/upg/backend/internal/application/survey"
	"github.com/upg/backend/internal/application/training"
	"github.com/upg/backend/internal/infrastructure/auth"
	"github.com/upg/backend/internal/infrastructure/config"
	"github.com/upg/backend/internal/infrastructure/event"
	"github.com/upg/backend/internal/infrastructure/logger"
	"github.com/upg/backend/internal/infrastructure/persistence"
	"github.com/upg/backend/internal/infrastructure/sms"
	"github.com/upg/backend/internal/interfaces/http/handler"
	"github.com/upg/backend/internal/interfaces/http/middleware"
	"github.com/upg/backend/internal/interfaces/http/router"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting UPG management server",
		zap.String("version", Version),
		zap.String("env", cfg.App.Env),
		zap.String("db_backend", cfg.Database.Backend))

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	resetTokenRepo := persistence.NewGormPasswordResetTokenRepository(db.DB)
	countyRepo := persistence.NewGormCountyRepository(db.DB)
	subCountyRepo := persistence.NewGormSubCountyRepository(db.DB)
	villageRepo := persistence.NewGormVillageRepository(db.DB)
	programRepo := persistence.NewGormProgramRepository(db.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(db.DB)
	householdRepo := persistence.NewGormHouseholdRepository(db.DB)
	businessGroupRepo := persistence.NewGormBusinessGroupRepository(db.DB)
	savingsGroupRepo := persistence.NewGormSavingsGroupRepository(db.DB)
	sbGrantRepo := persistence.NewGormSBGrantRepository(db.DB)
	prGrantRepo := persistence.NewGormPRGrantRepository(db.DB)
	disbursementRepo := persistence.NewGormDisbursementRepository(db.DB)
	applicationRepo := persistence.NewGormApplicationRepository(db.DB)
	trainingRepo := persistence.NewGormTrainingRepository(db.DB)
	mentoringRepo := persistence.NewGormMentoringRepository(db.DB)
	surveyRepo := persistence.NewGormSurveyRepository(db.DB)
	configRepo := persistence.NewGormConfigurationRepository(db.DB)
	auditLogRepo := persistence.NewGormLogRepository(db.DB)
	smsLogRepo := persistence.NewGormSMSLogRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Token blacklist: Redis when reachable, in-memory otherwise. The
	// in-memory fallback keeps single-node field deployments working
	// without a Redis instance.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	eventBus := event.NewInMemoryEventBus(log)
	smsService := sms.NewServiceFromConfig(cfg.SMS, smsLogRepo, log)

	// Application services
	authService := identity.NewAuthService(userRepo, resetTokenRepo, jwtService, blacklist, identity.DefaultAuthServiceConfig(), log)
	userService := identity.NewUserService(userRepo, log)
	geographyService := geography.NewService(countyRepo, subCountyRepo, villageRepo, log)
	programService := program.NewProgramService(programRepo, eventBus, log)
	enrollmentService := program.NewEnrollmentService(enrollmentRepo, programRepo, householdRepo, eventBus, log)
	householdService := household.NewService(householdRepo, villageRepo, eventBus, log)
	eligibilityService := household.NewEligibilityService(householdRepo, villageRepo, programRepo, enrollmentRepo, eventBus, log)
	businessService := group.NewBusinessService(businessGroupRepo, programRepo, householdRepo, eventBus, log)
	savingsService := group.NewSavingsService(savingsGroupRepo, businessGroupRepo, householdRepo, eventBus, log)
	sbService := grant.NewSBService(sbGrantRepo, disbursementRepo, programRepo, businessGroupRepo, trainingRepo, eventBus, log)
	prService := grant.NewPRService(prGrantRepo, sbGrantRepo, disbursementRepo, eventBus, log)
	applicationService := grant.NewApplicationService(applicationRepo, programRepo, eventBus, log)
	trainingService := training.NewService(trainingRepo, programRepo, householdRepo, smsService, log)
	mentoringService := training.NewMentoringService(mentoringRepo, householdRepo, log)
	surveyService := survey.NewService(surveyRepo, householdRepo, log)
	configService := audit.NewConfigService(configRepo, log)
	auditLogService := audit.NewLogService(auditLogRepo, log)
	notificationService := notification.NewService(smsLogRepo, log)
	dashboardService := report.NewDashboardService(dashboardRepo, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Routes
	r := router.NewRouter(engine)
	r.Use(middleware.JWTAuth(middleware.JWTAuthConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/ready",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/settings/public",
		},
		SkipPathPrefixes: []string{
			"/api/v1/auth/password-reset",
		},
	}))
	r.Use(middleware.AuditTrail(auditLogService))
	r.Register(
		handler.NewSystemHandler(db.DB, Version, log),
		handler.NewAuthHandler(authService, log),
		handler.NewUserHandler(userService, log),
		handler.NewGeographyHandler(geographyService, log),
		handler.NewProgramHandler(programService, enrollmentService, log),
		handler.NewHouseholdHandler(householdService, eligibilityService, log),
		handler.NewGroupHandler(businessService, savingsService, log),
		handler.NewGrantHandler(sbService, prService, applicationService, log),
		handler.NewTrainingHandler(trainingService, mentoringService, log),
		handler.NewSurveyHandler(surveyService, log),
		handler.NewSettingsHandler(configService, auditLogService, log),
		handler.NewReportHandler(dashboardService, log),
		handler.NewNotificationHandler(notificationService, log),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
