package domain

import "errors"

// Tipos de autenticación tal como se devuelven en authData.type.
const (
	TypeAPIKey  = "API Key"
	TypeBasic   = "Basic Auth"
	TypeBearer  = "Bearer Token"
	TypeOAuth2  = "OAuth 2.0"
	TypeSession = "Session"
)

const (
	ScopeRead  = "read"
	ScopeWrite = "write"

	// ReadOnlyToken es el token OAuth de pruebas que sólo tiene scope de lectura.
	ReadOnlyToken = "read-only-token"
	// OAuthTokenPrefix marca los tokens emitidos por el grant client_credentials.
	OAuthTokenPrefix = "oauth-"
	// SessionCookie es el nombre de la cookie de sesión.
	SessionCookie = "JSESSIONID"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInsufficientScope  = errors.New("insufficient scope")
)

// Principal describe quién ha pasado el control de acceso.
type Principal struct {
	Type   string   `json:"type"`
	User   string   `json:"user,omitempty"`
	Token  string   `json:"token,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
}

// HasScope indica si el principal tiene el scope pedido.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Credentials son las credenciales fijas del entorno de pruebas.
type Credentials struct {
	APIKey      string
	Username    string
	Password    string
	BearerToken string
	SessionID   string
}
