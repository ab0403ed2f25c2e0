package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/admin"
	admindomain "github.com/UknowEdy/chefetoile-backend/internal/admin/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/audit"
	auditdomain "github.com/UknowEdy/chefetoile-backend/internal/audit/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/auth"
	authdomain "github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/auth/session"
	"github.com/UknowEdy/chefetoile-backend/internal/authorization"
	"github.com/UknowEdy/chefetoile-backend/internal/chef"
	chefdomain "github.com/UknowEdy/chefetoile-backend/internal/chef/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/UknowEdy/chefetoile-backend/internal/menu"
	menudomain "github.com/UknowEdy/chefetoile-backend/internal/menu/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/observability"
	obsmiddleware "github.com/UknowEdy/chefetoile-backend/internal/observability/logger"
	obsmetrics "github.com/UknowEdy/chefetoile-backend/internal/observability/metrics"
	obstracing "github.com/UknowEdy/chefetoile-backend/internal/observability/tracing"
	"github.com/UknowEdy/chefetoile-backend/internal/order"
	orderdomain "github.com/UknowEdy/chefetoile-backend/internal/order/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/providers"
	"github.com/UknowEdy/chefetoile-backend/internal/ratelimit"
	"github.com/UknowEdy/chefetoile-backend/internal/rating"
	ratingdomain "github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/UknowEdy/chefetoile-backend/internal/subscription"
	subscriptiondomain "github.com/UknowEdy/chefetoile-backend/internal/subscription/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	audit.Module,
	auth.Module,
	chef.Module,
	menu.Module,
	subscription.Module,
	order.Module,
	rating.Module,
	admin.Module,
	providers.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware("/health", "/metrics"))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Credentials forbid a literal "*", so echo the caller's origin.
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	authsvc         authdomain.Service
	sessions        *session.Manager
	authzSvc        authorization.Service
	auditSvc        auditdomain.Service
	chefSvc         chefdomain.Service
	menuSvc         menudomain.Service
	subscriptionSvc subscriptiondomain.Service
	orderSvc        orderdomain.Service
	ratingSvc       ratingdomain.Service
	adminSvc        admindomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	Authsvc         authdomain.Service
	Sessions        *session.Manager
	AuthzSvc        authorization.Service
	AuditSvc        auditdomain.Service
	ChefSvc         chefdomain.Service
	MenuSvc         menudomain.Service
	SubscriptionSvc subscriptiondomain.Service
	OrderSvc        orderdomain.Service
	RatingSvc       ratingdomain.Service
	AdminSvc        admindomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		authsvc:         p.Authsvc,
		sessions:        p.Sessions,
		authzSvc:        p.AuthzSvc,
		auditSvc:        p.AuditSvc,
		chefSvc:         p.ChefSvc,
		menuSvc:         p.MenuSvc,
		subscriptionSvc: p.SubscriptionSvc,
		orderSvc:        p.OrderSvc,
		ratingSvc:       p.RatingSvc,
		adminSvc:        p.AdminSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.POST("/forgot-password", s.ForgotPassword)
	auth.POST("/reset-password", s.ResetPassword)
	auth.GET("/me", s.AuthRequired(), s.Me)
	auth.PUT("/pickup-point", s.AuthRequired(), s.UpdatePickupPoint)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Chefs --------
	api.GET("/chefs", s.ListChefs)
	api.GET("/chefs/my/profile", s.AuthRequired(), s.authorize(authorization.ObjectChef, authorization.ActionWrite), s.MyChefProfile)
	api.PUT("/chefs/my/settings", s.AuthRequired(), s.authorize(authorization.ObjectChef, authorization.ActionWrite), s.UpdateMyChefSettings)
	api.GET("/chefs/:slug", s.GetChefBySlug)
	api.POST("/chefs", s.AuthRequired(), s.authorize(authorization.ObjectChef, authorization.ActionManage), s.CreateChef)

	// -------- Menus --------
	api.POST("/menus", s.AuthRequired(), s.authorize(authorization.ObjectMenu, authorization.ActionWrite), s.CreateMenu)
	api.GET("/menus/my", s.AuthRequired(), s.authorize(authorization.ObjectMenu, authorization.ActionWrite), s.ListMyMenus)
	api.GET("/menus/chef/:chefId", s.ListChefMenus)
	api.GET("/menus/:id", s.GetMenu)
	api.PUT("/menus/:id", s.AuthRequired(), s.authorize(authorization.ObjectMenu, authorization.ActionWrite), s.UpdateMenu)
	api.DELETE("/menus/:id", s.AuthRequired(), s.authorize(authorization.ObjectMenu, authorization.ActionWrite), s.DeleteMenu)

	// -------- Subscriptions --------
	api.POST("/subscriptions", s.AuthRequired(), s.authorize(authorization.ObjectSubscription, authorization.ActionWrite), s.CreateSubscription)
	api.GET("/subscriptions/my", s.AuthRequired(), s.authorize(authorization.ObjectSubscription, authorization.ActionWrite), s.ListMySubscriptions)
	api.GET("/subscriptions/chef/subscribers", s.AuthRequired(), s.authorize(authorization.ObjectSubscription, authorization.ActionRead), s.ListChefSubscribers)
	api.PATCH("/subscriptions/:id/validate", s.AuthRequired(), s.authorize(authorization.ObjectSubscription, authorization.ActionValidate), s.ValidateSubscription)
	api.DELETE("/subscriptions/:id", s.AuthRequired(), s.authorize(authorization.ObjectSubscription, authorization.ActionWrite), s.CancelSubscription)

	// -------- Orders --------
	api.GET("/orders/my", s.AuthRequired(), s.authorize(authorization.ObjectOrder, authorization.ActionRead), s.ListMyOrders)
	api.GET("/orders/chef", s.AuthRequired(), s.authorize(authorization.ObjectOrder, authorization.ActionWrite), s.ListChefOrders)
	api.GET("/orders/chef/sheet.pdf", s.AuthRequired(), s.authorize(authorization.ObjectOrder, authorization.ActionWrite), s.DeliverySheet)
	api.GET("/orders/stats/chef", s.AuthRequired(), s.authorize(authorization.ObjectOrder, authorization.ActionWrite), s.ChefOrderStats)
	api.PATCH("/orders/:id/status", s.AuthRequired(), s.authorize(authorization.ObjectOrder, authorization.ActionWrite), s.UpdateOrderStatus)

	// -------- Ratings --------
	api.POST("/ratings", s.AuthRequired(), s.authorize(authorization.ObjectRating, authorization.ActionRate), s.SubmitRating)
	api.GET("/ratings/chef/:chefId", s.ListChefRatings)
	api.GET("/ratings/my", s.AuthRequired(), s.authorize(authorization.ObjectRating, authorization.ActionRate), s.ListMyRatings)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/admin", s.AuthRequired(), s.authorize(authorization.ObjectAdmin, authorization.ActionRead))

	admin.GET("/stats", s.AdminStats)
	admin.GET("/chefs", s.AdminListChefs)
	admin.GET("/clients", s.AdminListClients)
	admin.GET("/orders", s.AdminListOrders)
	admin.GET("/menus", s.AdminListMenus)
	admin.GET("/audit-logs", s.ListAuditLogs)
	admin.PATCH("/chefs/:id/suspend", s.authorize(authorization.ObjectAdmin, authorization.ActionManage), s.AdminSuspendChef)
	admin.POST("/chefs/:id/recompute-rating", s.authorize(authorization.ObjectAdmin, authorization.ActionManage), s.AdminRecomputeChefRating)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
