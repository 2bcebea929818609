package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/einvoicelab/internal/auth/application"
	authDomain "github.com/davicafu/einvoicelab/internal/auth/domain"
	"github.com/davicafu/einvoicelab/pkg/utils"
)

// principalKey es la clave del gin.Context donde queda el Principal autenticado.
const principalKey = "auth"

// PrincipalFrom devuelve el principal que dejó el middleware de autenticación.
func PrincipalFrom(c *gin.Context) (authDomain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return authDomain.Principal{}, false
	}
	p, ok := v.(authDomain.Principal)
	return p, ok
}

// Middleware agrupa las estrategias de autenticación como gin.HandlerFunc.
type Middleware struct {
	gk  *application.Gatekeeper
	log *zap.Logger
}

func NewMiddleware(gk *application.Gatekeeper, log *zap.Logger) *Middleware {
	return &Middleware{gk: gk, log: log}
}

// ---------------- Estrategias ----------------

func (m *Middleware) APIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := m.gk.CheckAPIKey(apiKeyFrom(c))
		if errors.Is(err, authDomain.ErrMissingCredentials) {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authentication Failed", "Missing x-api-key header or api_key query parameter")
			return
		}
		if err != nil {
			utils.AbortWithError(c, http.StatusForbidden, "Access Denied", "Invalid API Key")
			return
		}
		m.allow(c, p)
	}
}

func (m *Middleware) Basic() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoded, ok := schemeValue(c, "Basic")
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authentication Failed", "Missing or invalid Authorization header (Basic)")
			return
		}
		p, err := m.gk.CheckBasic(encoded)
		if err != nil {
			utils.AbortWithError(c, http.StatusForbidden, "Access Denied", "Invalid username or password")
			return
		}
		m.allow(c, p)
	}
}

func (m *Middleware) Bearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := schemeValue(c, "Bearer")
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authentication Failed", "Missing or invalid Authorization header (Bearer)")
			return
		}
		p, err := m.gk.CheckBearer(token)
		if err != nil {
			m.rejectToken(c, err, "Invalid Bearer Token")
			return
		}
		m.allow(c, p)
	}
}

func (m *Middleware) OAuth2() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := schemeValue(c, "Bearer")
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authentication Failed", "Missing Authorization header")
			return
		}
		p, err := m.gk.CheckOAuth(token)
		if err != nil {
			m.rejectToken(c, err, "Invalid OAuth Token.")
			return
		}
		m.allow(c, p)
	}
}

// RequireScope va detrás de OAuth2 (o Bearer con JWT): exige el scope indicado.
func (m *Middleware) RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		if !p.HasScope(scope) {
			utils.AbortWithError(c, http.StatusForbidden, "Forbidden", "Insufficient permissions. Required scope: "+scope)
			return
		}
		c.Next()
	}
}

func (m *Middleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, _ := c.Cookie(authDomain.SessionCookie)
		p, err := m.gk.CheckSession(sessionID)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Unauthorized", "Authentication failed: Missing JSESSIONID cookie")
			return
		}
		m.allow(c, p)
	}
}

// Any acepta API key, Basic o Bearer, en ese orden. La primera estrategia
// presente decide: si falla, no se prueban las demás.
func (m *Middleware) Any() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := apiKeyFrom(c); key != "" {
			p, err := m.gk.CheckAPIKey(key)
			if err != nil {
				utils.AbortWithError(c, http.StatusForbidden, "Access Denied", "Invalid API Key")
				return
			}
			m.allow(c, p)
			return
		}

		if encoded, ok := schemeValue(c, "Basic"); ok {
			p, err := m.gk.CheckBasic(encoded)
			if err != nil {
				utils.AbortWithError(c, http.StatusForbidden, "Access Denied", "Invalid Basic credentials")
				return
			}
			m.allow(c, p)
			return
		}

		if token, ok := schemeValue(c, "Bearer"); ok {
			p, err := m.gk.CheckBearer(token)
			if err != nil {
				m.rejectToken(c, err, "Invalid Bearer/OAuth Token")
				return
			}
			m.allow(c, p)
			return
		}

		utils.AbortWithError(c, http.StatusUnauthorized, "Authentication Required",
			"You must provide a valid Authentication method (API Key, Basic Auth, or Bearer Token) to access this endpoint.")
	}
}

// ---------------- Helpers ----------------

func (m *Middleware) allow(c *gin.Context, p authDomain.Principal) {
	c.Set(principalKey, p)
	c.Next()
}

// rejectToken distingue token caducado (401) de token inválido (403).
func (m *Middleware) rejectToken(c *gin.Context, err error, invalidMsg string) {
	if errors.Is(err, authDomain.ErrTokenExpired) {
		utils.AbortWithError(c, http.StatusUnauthorized, "Unauthorized", "Token has expired")
		return
	}
	m.log.Debug("Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
	utils.AbortWithError(c, http.StatusForbidden, "Access Denied", invalidMsg)
}

func apiKeyFrom(c *gin.Context) string {
	if key := c.GetHeader("x-api-key"); key != "" {
		return key
	}
	return c.Query("api_key")
}

// schemeValue extrae el valor de "Authorization: <scheme> <value>".
func schemeValue(c *gin.Context, scheme string) (string, bool) {
	header := c.GetHeader("Authorization")
	prefix := scheme + " "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	value := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return value, value != ""
}
