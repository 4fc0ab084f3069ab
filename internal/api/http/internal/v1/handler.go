package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/silver-jubilee/backend/internal/config"
	"github.com/silver-jubilee/backend/internal/ratelimit"
	"github.com/silver-jubilee/backend/internal/service"
	"github.com/silver-jubilee/backend/pkg/auth"
)

// @title Silver Jubilee Reunion API
// @version 1.0
// @description Registration and content API for the reunion website

// @BasePath /api

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	userTokens   auth.TokenManager
	adminTokens  auth.TokenManager
	config       *config.Config
	loginLimiter *ratelimit.LoginLimiter
}

func NewHandler(
	services *service.Services,
	userTokens auth.TokenManager,
	adminTokens auth.TokenManager,
	config *config.Config,
	loginLimiter *ratelimit.LoginLimiter,
) *Handler {
	return &Handler{
		services:     services,
		userTokens:   userTokens,
		adminTokens:  adminTokens,
		config:       config,
		loginLimiter: loginLimiter,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	h.initAuthRoutes(api)
	h.initEventRoutes(api)
	h.initImageRoutes(api)
}
