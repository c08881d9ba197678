package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pulsefit/docs"
	"pulsefit/internal/infrastructure/config"
	"pulsefit/internal/interfaces/http/handlers"
	"pulsefit/internal/interfaces/http/middleware"
	"pulsefit/internal/shared/logger"
)

// Router wires handlers into the gin engine.
type Router struct {
	engine *gin.Engine

	authHandler      *handlers.AuthHandler
	memberHandler    *handlers.MemberHandler
	planHandler      *handlers.PlanHandler
	paymentHandler   *handlers.PaymentHandler
	dashboardHandler *handlers.DashboardHandler
	meHandler        *handlers.MeHandler
	cronHandler      *handlers.CronHandler

	authMiddleware *middleware.AuthMiddleware
	logger         logger.Interface
}

func NewRouter(
	engine *gin.Engine,
	authHandler *handlers.AuthHandler,
	memberHandler *handlers.MemberHandler,
	planHandler *handlers.PlanHandler,
	paymentHandler *handlers.PaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
	meHandler *handlers.MeHandler,
	cronHandler *handlers.CronHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		engine:           engine,
		authHandler:      authHandler,
		memberHandler:    memberHandler,
		planHandler:      planHandler,
		paymentHandler:   paymentHandler,
		dashboardHandler: dashboardHandler,
		meHandler:        meHandler,
		cronHandler:      cronHandler,
		authMiddleware:   authMiddleware,
		logger:           logger.NewLogger(),
	}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api/v1")

	r.setupPublicRoutes(api)
	r.setupAuthenticatedRoutes(api)
	r.setupAdminRoutes(api)
	r.setupCronRoutes(api, cfg.Cron.Secret)
}

func (r *Router) setupPublicRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", r.authHandler.Login)
	api.GET("/public/plans", r.planHandler.PublicCatalog)
}

func (r *Router) setupAuthenticatedRoutes(api *gin.RouterGroup) {
	authed := api.Group("")
	authed.Use(r.authMiddleware.RequireAuth())
	{
		authed.POST("/auth/change-password", r.authHandler.ChangePassword)
		authed.GET("/me/access", r.meHandler.CheckAccess)
		authed.GET("/me/membership", r.meHandler.Membership)
	}
}

func (r *Router) setupAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth(), r.authMiddleware.RequireAdmin())
	{
		admin.POST("/members", r.memberHandler.CreateMember)
		admin.GET("/members", r.memberHandler.ListMembers)
		admin.POST("/members/import", r.memberHandler.ImportMembers)
		admin.GET("/members/:memberID", r.memberHandler.GetMember)
		admin.PUT("/members/:memberID", r.memberHandler.UpdateMember)
		admin.DELETE("/members/:memberID", r.memberHandler.DeleteMember)
		admin.GET("/members/:memberID/membership", r.memberHandler.EvaluateMembership)
		admin.POST("/members/:memberID/renew", r.memberHandler.RenewMembership)
		admin.GET("/members/:memberID/payments", r.paymentHandler.ListMemberPayments)

		admin.GET("/payments", r.paymentHandler.ListPayments)
		admin.DELETE("/payments", r.paymentHandler.BulkDeletePayments)

		admin.POST("/plans", r.planHandler.CreatePlan)
		admin.GET("/plans", r.planHandler.ListPlans)
		admin.PUT("/plans/:planSID", r.planHandler.UpdatePlan)
		admin.DELETE("/plans/:planSID", r.planHandler.DeletePlan)

		admin.GET("/dashboard", r.dashboardHandler.GetStats)
		admin.GET("/reports/total-paid-drift", r.dashboardHandler.TotalPaidDrift)
	}
}

func (r *Router) setupCronRoutes(api *gin.RouterGroup, secret string) {
	cron := api.Group("/cron")
	cron.Use(middleware.CronSecret(secret))
	{
		cron.POST("/expiry-sweep", r.cronHandler.ExpirySweep)
	}
}
