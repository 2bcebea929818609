package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authDomain "github.com/davicafu/einvoicelab/internal/auth/domain"
	"github.com/davicafu/einvoicelab/internal/shared/infra/http/middleware"
	sharedCache "github.com/davicafu/einvoicelab/internal/shared/infra/platform/cache"
)

// Límite fijo del endpoint de pruebas de rate limiting.
const (
	sandboxRateLimit  = 5
	sandboxRateWindow = time.Minute
)

func RegisterAuthRoutes(r *gin.Engine, handler *AuthHandler, mw *Middleware) {
	auth := r.Group("/api/auth")
	{
		auth.GET("/credentials", handler.Credentials)
		auth.POST("/login", handler.Login)
		auth.POST("/session-login", handler.SessionLogin)

		auth.GET("/test/api-key", mw.APIKey(), handler.Protected("API Key"))
		auth.GET("/test/basic", mw.Basic(), handler.Protected("Basic Auth"))
		auth.GET("/test/bearer", mw.Bearer(), handler.Protected("Bearer Token"))
		auth.GET("/test/oauth", mw.OAuth2(), handler.Protected("OAuth 2.0"))
		auth.GET("/test/session", mw.Session(), handler.SessionDashboard)
	}
}

func RegisterSandboxRoutes(r *gin.Engine, handler *SandboxHandler, mw *Middleware, counter sharedCache.Counter, log *zap.Logger) {
	r.GET("/api/csrf-token", middleware.CSRFToken)

	edge := r.Group("/api/edge-cases")
	{
		edge.POST("/strict-post", middleware.RequireJSON(), middleware.CSRFProtect(), handler.StrictPost)
		edge.GET("/custom-header", handler.CustomHeader)
		edge.GET("/conditional-auth", handler.ConditionalAuth)
		edge.GET("/scope-protected", mw.OAuth2(), mw.RequireScope(authDomain.ScopeWrite), handler.ScopeProtected)
		edge.POST("/cookie-override", handler.CookieOverride)
		edge.POST("/session-fixation", handler.SessionFixation)
		edge.GET("/rate-limit",
			middleware.RateLimit(counter, "edge-cases", sandboxRateLimit, sandboxRateWindow, log),
			handler.RateLimited,
		)
	}
}
