package application

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authDomain "github.com/davicafu/einvoicelab/internal/auth/domain"
)

// Grants que emiten un token OAuth en lugar de un JWT.
const (
	GrantClientCredentials = "client_credentials"
	GrantAuthorizationCode = "authorization_code"
)

// LoginResult es la respuesta de POST /api/auth/login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// Gatekeeper comprueba las credenciales de prueba. No es un sistema de seguridad real:
// las credenciales son fijas y se publican en /api/auth/credentials.
type Gatekeeper struct {
	creds        authDomain.Credentials
	passwordHash []byte
	tokens       *TokenService
	log          *zap.Logger
}

// NewGatekeeper guarda sólo el hash bcrypt de la contraseña.
func NewGatekeeper(creds authDomain.Credentials, tokens *TokenService, log *zap.Logger) (*Gatekeeper, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &Gatekeeper{
		creds:        creds,
		passwordHash: hash,
		tokens:       tokens,
		log:          log,
	}, nil
}

// Credentials devuelve las credenciales públicas de prueba.
func (g *Gatekeeper) Credentials() authDomain.Credentials {
	return g.creds
}

// ---------------- Estrategias ----------------

func (g *Gatekeeper) CheckAPIKey(key string) (authDomain.Principal, error) {
	if key == "" {
		return authDomain.Principal{}, authDomain.ErrMissingCredentials
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(g.creds.APIKey)) != 1 {
		return authDomain.Principal{}, authDomain.ErrInvalidCredentials
	}
	return authDomain.Principal{Type: authDomain.TypeAPIKey}, nil
}

// CheckBasic recibe el valor codificado en base64 (sin el prefijo "Basic ").
func (g *Gatekeeper) CheckBasic(encoded string) (authDomain.Principal, error) {
	if encoded == "" {
		return authDomain.Principal{}, authDomain.ErrMissingCredentials
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return authDomain.Principal{}, authDomain.ErrInvalidCredentials
	}
	username, password, _ := strings.Cut(string(raw), ":")
	if !g.CheckPassword(username, password) {
		return authDomain.Principal{}, authDomain.ErrInvalidCredentials
	}
	return authDomain.Principal{Type: authDomain.TypeBasic, User: username}, nil
}

// CheckBearer acepta el token estático, los JWT firmados por TokenService y,
// por compatibilidad con los clientes de prueba, cualquier token con aspecto
// de JWT ("ey...") u OAuth ("oauth-..."). Un token que contenga "expired" caduca siempre.
func (g *Gatekeeper) CheckBearer(token string) (authDomain.Principal, error) {
	if token == "" {
		return authDomain.Principal{}, authDomain.ErrMissingCredentials
	}
	if strings.Contains(token, "expired") {
		return authDomain.Principal{}, authDomain.ErrTokenExpired
	}

	principal := authDomain.Principal{Type: authDomain.TypeBearer, Token: token}
	if token == g.creds.BearerToken {
		return principal, nil
	}

	claims, err := g.tokens.Parse(token)
	switch {
	case err == nil:
		principal.User = claims.Subject
		principal.Scopes = claims.Scopes
		return principal, nil
	case errors.Is(err, authDomain.ErrTokenExpired):
		return authDomain.Principal{}, err
	}

	if strings.HasPrefix(token, "ey") || strings.HasPrefix(token, authDomain.OAuthTokenPrefix) {
		return principal, nil
	}
	return authDomain.Principal{}, authDomain.ErrInvalidCredentials
}

// CheckOAuth devuelve los scopes del token: read-only-token sólo lee, el resto lee y escribe.
func (g *Gatekeeper) CheckOAuth(token string) (authDomain.Principal, error) {
	if token == "" {
		return authDomain.Principal{}, authDomain.ErrMissingCredentials
	}

	principal := authDomain.Principal{Type: authDomain.TypeOAuth2}
	switch {
	case token == authDomain.ReadOnlyToken:
		principal.Scopes = []string{authDomain.ScopeRead}
		return principal, nil
	case strings.HasPrefix(token, authDomain.OAuthTokenPrefix), token == g.creds.BearerToken:
		principal.Scopes = []string{authDomain.ScopeRead, authDomain.ScopeWrite}
		return principal, nil
	}

	claims, err := g.tokens.Parse(token)
	if err != nil {
		return authDomain.Principal{}, err
	}
	principal.User = claims.Subject
	principal.Scopes = claims.Scopes
	return principal, nil
}

// CheckSession sólo exige que la cookie exista.
func (g *Gatekeeper) CheckSession(sessionID string) (authDomain.Principal, error) {
	if strings.TrimSpace(sessionID) == "" {
		return authDomain.Principal{}, authDomain.ErrMissingCredentials
	}
	return authDomain.Principal{Type: authDomain.TypeSession, User: g.creds.Username}, nil
}

// CheckPassword compara usuario y contraseña; la contraseña contra el hash bcrypt.
func (g *Gatekeeper) CheckPassword(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) == nil
}

// ---------------- Login ----------------

// Login emite un token OAuth opaco para los grants OAuth y un JWT en otro caso.
func (g *Gatekeeper) Login(username, password, grantType string) (LoginResult, error) {
	if !g.CheckPassword(username, password) {
		g.log.Warn("Login rejected", zap.String("username", username))
		return LoginResult{}, authDomain.ErrInvalidCredentials
	}

	scopes := []string{authDomain.ScopeRead, authDomain.ScopeWrite}
	result := LoginResult{
		TokenType: "Bearer",
		ExpiresIn: int(g.tokens.TTL().Seconds()),
		Scope:     strings.Join(scopes, " "),
	}

	switch grantType {
	case GrantClientCredentials, GrantAuthorizationCode:
		result.AccessToken = authDomain.OAuthTokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	default:
		token, _, err := g.tokens.Issue(username, scopes)
		if err != nil {
			g.log.Error("Failed to issue token", zap.Error(err))
			return LoginResult{}, err
		}
		result.AccessToken = token
	}

	g.log.Info("Login succeeded", zap.String("username", username), zap.String("grant_type", grantType))
	return result, nil
}

// SessionLogin valida las credenciales y devuelve el ID de sesión a fijar en la cookie.
func (g *Gatekeeper) SessionLogin(username, password string) (string, error) {
	if !g.CheckPassword(username, password) {
		return "", authDomain.ErrInvalidCredentials
	}
	return g.creds.SessionID, nil
}
