package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/einvoicelab/internal/auth/application"
	authDomain "github.com/davicafu/einvoicelab/internal/auth/domain"
	"github.com/davicafu/einvoicelab/pkg/utils"
)

// AuthHandler expone el proveedor de credenciales de prueba.
type AuthHandler struct {
	gk *application.Gatekeeper
}

func NewAuthHandler(gk *application.Gatekeeper) *AuthHandler {
	return &AuthHandler{gk: gk}
}

type loginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	GrantType string `json:"grant_type"`
}

// ---------------- Handlers ----------------

// Credentials endpoint GET /api/auth/credentials
func (h *AuthHandler) Credentials(c *gin.Context) {
	creds := h.gk.Credentials()
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message": "Use these credentials to test authentication",
		"credentials": gin.H{
			"apiKey": creds.APIKey,
			"basicAuth": gin.H{
				"username": creds.Username,
				"password": creds.Password,
			},
			"bearerToken": creds.BearerToken,
		},
	})
}

// Login endpoint POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Invalid request body")
		return
	}

	res, err := h.gk.Login(req.Username, req.Password, req.GrantType)
	if errors.Is(err, authDomain.ErrInvalidCredentials) {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		utils.SendInternalServerError(c, "Could not issue token")
		return
	}

	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"access_token": res.AccessToken,
		"token_type":   res.TokenType,
		"expires_in":   res.ExpiresIn,
		"scope":        res.Scope,
	})
}

// SessionLogin endpoint POST /api/auth/session-login. Fija la cookie JSESSIONID.
func (h *AuthHandler) SessionLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Invalid request body")
		return
	}

	sessionID, err := h.gk.SessionLogin(req.Username, req.Password)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.SetCookie(authDomain.SessionCookie, sessionID, 0, "/", "", false, true)
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":   "Session login successful",
		"sessionId": sessionID,
	})
}

// Protected responde con el principal autenticado; sirve para todos los /test/*.
func (h *AuthHandler) Protected(label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		utils.SendSuccessWith(c, http.StatusOK, gin.H{
			"message":  "You have successfully accessed the " + label + " protected endpoint!",
			"authData": p,
		})
	}
}

// SessionDashboard endpoint GET /api/auth/test/session
func (h *AuthHandler) SessionDashboard(c *gin.Context) {
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message": "You have successfully accessed the Session protected dashboard!",
		"user":    h.gk.Credentials().Username,
	})
}
