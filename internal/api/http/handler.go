package apiHttp

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/silver-jubilee/backend/docs"
	internalV1 "github.com/silver-jubilee/backend/internal/api/http/internal/v1"
	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/ratelimit"
	"github.com/silver-jubilee/backend/internal/service"
	"github.com/silver-jubilee/backend/pkg/auth"
	"github.com/silver-jubilee/backend/pkg/limiter"
	"github.com/silver-jubilee/backend/pkg/logger"
	"github.com/silver-jubilee/backend/pkg/validator"
)

type Handler struct {
	services     *service.Services
	userTokens   auth.TokenManager
	adminTokens  auth.TokenManager
	config       *config.Config
	loginLimiter *ratelimit.LoginLimiter
}

func NewHandlers(
	services *service.Services,
	userTokens auth.TokenManager,
	adminTokens auth.TokenManager,
	cfg *config.Config,
	loginLimiter *ratelimit.LoginLimiter,
) *Handler {
	return &Handler{
		services:     services,
		userTokens:   userTokens,
		adminTokens:  adminTokens,
		config:       cfg,
		loginLimiter: loginLimiter,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(cfg.CORS.AllowedOrigins),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	h.initAPI(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	handlersV1 := internalV1.NewHandler(h.services, h.userTokens, h.adminTokens, h.config, h.loginLimiter)
	api := router.Group("/api")
	handlersV1.Init(api)
}
