package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/davicafu/einvoicelab/internal/auth/domain"
	"github.com/davicafu/einvoicelab/pkg/utils"
)

// TenantHeader es la cabecera obligatoria de /api/edge-cases/custom-header.
const TenantHeader = "X-Tenant-Id"

// SandboxHandler agrupa los endpoints de /api/edge-cases, pensados para
// ejercitar casos límite de cabeceras, cookies, scopes y rate limiting.
type SandboxHandler struct {
	mw *Middleware
}

func NewSandboxHandler(mw *Middleware) *SandboxHandler {
	return &SandboxHandler{mw: mw}
}

// StrictPost endpoint POST /api/edge-cases/strict-post. Content-Type y CSRF ya validados.
func (h *SandboxHandler) StrictPost(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendBadRequest(c, "Malformed JSON body")
		return
	}
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":  "Strict POST accepted",
		"received": body,
	})
}

// CustomHeader endpoint GET /api/edge-cases/custom-header
func (h *SandboxHandler) CustomHeader(c *gin.Context) {
	tenant := strings.TrimSpace(c.GetHeader(TenantHeader))
	if tenant == "" {
		utils.SendErrorWith(c, http.StatusBadRequest, "Bad Request", "Missing required header: "+TenantHeader, nil)
		return
	}
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":  "Tenant header accepted",
		"tenantId": tenant,
	})
}

// ConditionalAuth endpoint GET /api/edge-cases/conditional-auth?type=guest|user.
// Un invitado no debe mandar credenciales; el resto pasa por Any.
func (h *SandboxHandler) ConditionalAuth(c *gin.Context) {
	if c.Query("type") == "guest" {
		if c.GetHeader("Authorization") != "" {
			utils.SendErrorWith(c, http.StatusBadRequest, "Bad Request", "Guest requests must not carry an Authorization header", nil)
			return
		}
		utils.SendSuccessWith(c, http.StatusOK, gin.H{"message": "Guest access granted"})
		return
	}

	h.mw.Any()(c)
	if c.IsAborted() {
		return
	}
	p, _ := PrincipalFrom(c)
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":  "Authenticated access granted",
		"authData": p,
	})
}

// ScopeProtected endpoint GET /api/edge-cases/scope-protected (OAuth2 + scope write).
func (h *SandboxHandler) ScopeProtected(c *gin.Context) {
	p, _ := PrincipalFrom(c)
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":  "Write scope verified",
		"authData": p,
	})
}

// CookieOverride endpoint POST /api/edge-cases/cookie-override.
// Sustituye la cookie de sesión que traiga el cliente por una nueva.
func (h *SandboxHandler) CookieOverride(c *gin.Context) {
	previous, _ := c.Cookie(authDomain.SessionCookie)
	current := uuid.NewString()

	c.SetCookie(authDomain.SessionCookie, current, 0, "/", "", false, true)
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":  "Session cookie overridden",
		"previous": previous,
		"current":  current,
	})
}

// SessionFixation endpoint POST /api/edge-cases/session-fixation.
// El servidor nunca adopta un ID de sesión propuesto por el cliente.
func (h *SandboxHandler) SessionFixation(c *gin.Context) {
	if c.Query("session_id") != "" {
		utils.SendErrorWith(c, http.StatusBadRequest, "Bad Request", "Session identifiers cannot be supplied by the client", nil)
		return
	}
	sessionID := uuid.NewString()
	c.SetCookie(authDomain.SessionCookie, sessionID, 0, "/", "", false, true)
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":   "New session issued",
		"sessionId": sessionID,
	})
}

// RateLimited endpoint GET /api/edge-cases/rate-limit. El límite lo aplica el middleware.
func (h *SandboxHandler) RateLimited(c *gin.Context) {
	utils.SendSuccessWith(c, http.StatusOK, gin.H{"message": "Request allowed"})
}
