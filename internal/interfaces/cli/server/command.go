package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	memberUsecases "pulsefit/internal/application/member/usecases"
	paymentUsecases "pulsefit/internal/application/payment/usecases"
	planUsecases "pulsefit/internal/application/plan/usecases"
	userUsecases "pulsefit/internal/application/user/usecases"
	"pulsefit/internal/domain/member"
	"pulsefit/internal/infrastructure/auth"
	"pulsefit/internal/infrastructure/cache"
	"pulsefit/internal/infrastructure/config"
	"pulsefit/internal/infrastructure/database"
	"pulsefit/internal/infrastructure/email"
	"pulsefit/internal/infrastructure/migration"
	"pulsefit/internal/infrastructure/notification"
	"pulsefit/internal/infrastructure/repository"
	"pulsefit/internal/infrastructure/scheduler"
	"pulsefit/internal/infrastructure/sms"
	httpRouter "pulsefit/internal/interfaces/http"
	"pulsefit/internal/interfaces/http/handlers"
	"pulsefit/internal/interfaces/http/middleware"
	"pulsefit/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the PulseFit HTTP server with the configured environment.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	db, err := database.Connect(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if err := migration.NewManager(env).Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	log := logger.NewLogger()

	// Repositories
	memberRepo := repository.NewMemberRepository(db, log)
	paymentRepo := repository.NewPaymentRepository(db, log)
	planRepo := repository.NewPlanRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	// Infrastructure services
	jwtService := auth.NewJWTService(&cfg.Auth.JWT)
	hasher := auth.NewBcryptHasher(cfg.Auth.Password.BcryptCost)
	tempPasswords := auth.NewTempPasswordGenerator()

	emailService := email.NewSMTPEmailService(cfg.Email)
	smsClient := sms.NewGatewayClient(cfg.SMS, log)
	notifier := notification.NewNotifier(emailService, smsClient, log)

	catalogCache := cache.NewCatalogCache(time.Duration(cfg.Membership.PlanCacheTTLMinutes) * time.Minute)

	var sweepLock memberUsecases.SweepLocker
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(cmd.Context()).Err(); err != nil {
		logger.Warn("redis unavailable, expiry sweep will run without distributed lock", "error", err)
	} else {
		sweepLock = cache.NewRedisSweepLock(redisClient)
		defer redisClient.Close()
	}

	evalCfg := member.EvaluationConfig{
		GraceDays:        cfg.Membership.GraceDays,
		ExpiringSoonDays: cfg.Membership.ExpiringSoonDays,
	}
	noticeCooldown := time.Duration(cfg.Membership.NoticeCooldownHours) * time.Hour

	// Use cases
	createMemberUC := memberUsecases.NewCreateMemberUseCase(memberRepo, planRepo, paymentRepo, userRepo, hasher, tempPasswords, notifier, evalCfg, log)
	getMemberUC := memberUsecases.NewGetMemberUseCase(memberRepo, log)
	listMembersUC := memberUsecases.NewListMembersUseCase(memberRepo, log)
	updateMemberUC := memberUsecases.NewUpdateMemberUseCase(memberRepo, log)
	deleteMemberUC := memberUsecases.NewDeleteMemberUseCase(memberRepo, log)
	evaluateMembershipUC := memberUsecases.NewEvaluateMembershipUseCase(memberRepo, evalCfg, log)
	renewMembershipUC := memberUsecases.NewRenewMembershipUseCase(memberRepo, planRepo, paymentRepo, log)
	importMembersUC := memberUsecases.NewImportMembersUseCase(memberRepo, planRepo, paymentRepo, evalCfg, log)
	expirySweepUC := memberUsecases.NewExpirySweepUseCase(memberRepo, notifier, sweepLock, evalCfg, cfg.Membership.RenewalNoticeDays, noticeCooldown, log)
	checkAccessUC := memberUsecases.NewCheckAccessUseCase(userRepo, memberRepo, evalCfg, log)
	dashboardStatsUC := memberUsecases.NewDashboardStatsUseCase(memberRepo, paymentRepo, evalCfg, log)
	reconcileTotalsUC := memberUsecases.NewReconcileTotalsUseCase(memberRepo, paymentRepo, log)

	createPlanUC := planUsecases.NewCreatePlanUseCase(planRepo, catalogCache, log)
	updatePlanUC := planUsecases.NewUpdatePlanUseCase(planRepo, catalogCache, log)
	deletePlanUC := planUsecases.NewDeletePlanUseCase(planRepo, catalogCache, log)
	listPlansUC := planUsecases.NewListPlansUseCase(planRepo, log)
	publicCatalogUC := planUsecases.NewPublicCatalogUseCase(planRepo, catalogCache, log)

	listPaymentsUC := paymentUsecases.NewListPaymentsUseCase(paymentRepo, log)
	listMemberPaymentsUC := paymentUsecases.NewListMemberPaymentsUseCase(memberRepo, paymentRepo, log)
	bulkDeletePaymentsUC := paymentUsecases.NewBulkDeletePaymentsUseCase(paymentRepo, log)

	loginUC := userUsecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	changePasswordUC := userUsecases.NewChangePasswordUseCase(userRepo, hasher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(loginUC, changePasswordUC)
	memberHandler := handlers.NewMemberHandler(createMemberUC, getMemberUC, listMembersUC, updateMemberUC, deleteMemberUC, evaluateMembershipUC, renewMembershipUC, importMembersUC, evalCfg)
	planHandler := handlers.NewPlanHandler(createPlanUC, updatePlanUC, deletePlanUC, listPlansUC, publicCatalogUC)
	paymentHandler := handlers.NewPaymentHandler(listPaymentsUC, listMemberPaymentsUC, bulkDeletePaymentsUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardStatsUC, reconcileTotalsUC)
	meHandler := handlers.NewMeHandler(checkAccessUC, listMemberPaymentsUC)
	cronHandler := handlers.NewCronHandler(expirySweepUC)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	if err := httpRouter.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	engine := gin.New()
	router := httpRouter.NewRouter(engine, authHandler, memberHandler, planHandler, paymentHandler, dashboardHandler, meHandler, cronHandler, authMiddleware)
	router.SetupRoutes(cfg)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var sweepScheduler *scheduler.SweepScheduler
	if cfg.Cron.EnableScheduler {
		sweepScheduler = scheduler.NewSweepScheduler(
			expirySweepUC,
			time.Duration(cfg.Cron.SweepIntervalHours)*time.Hour,
			cfg.Cron.SweepPageSize,
			log,
		)
		sweepScheduler.Start(ctx)
		defer sweepScheduler.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.Server.GetAddr(),
		Handler: engine,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
