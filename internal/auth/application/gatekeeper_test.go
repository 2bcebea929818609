package application

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authDomain "github.com/davicafu/einvoicelab/internal/auth/domain"
)

var testCreds = authDomain.Credentials{
	APIKey:      "ei_test_key",
	Username:    "einvoice_sys_admin",
	Password:    "SecurePass!@#2024",
	BearerToken: "static-bearer-token",
	SessionID:   "valid-session-id-123",
}

func newGatekeeper(t *testing.T) (*Gatekeeper, *TokenService) {
	t.Helper()
	tokens := NewTokenService("test-secret", time.Hour)
	g, err := NewGatekeeper(testCreds, tokens, zap.NewNop())
	require.NoError(t, err)
	return g, tokens
}

func basic(user, pass string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
}

func TestCheckAPIKey(t *testing.T) {
	g, _ := newGatekeeper(t)

	p, err := g.CheckAPIKey(testCreds.APIKey)
	require.NoError(t, err)
	assert.Equal(t, authDomain.TypeAPIKey, p.Type)

	_, err = g.CheckAPIKey("")
	assert.ErrorIs(t, err, authDomain.ErrMissingCredentials)

	_, err = g.CheckAPIKey("wrong")
	assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
}

func TestCheckBasic(t *testing.T) {
	g, _ := newGatekeeper(t)

	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"valid", basic(testCreds.Username, testCreds.Password), nil},
		{"empty", "", authDomain.ErrMissingCredentials},
		{"wrong password", basic(testCreds.Username, "nope"), authDomain.ErrInvalidCredentials},
		{"wrong user", basic("root", testCreds.Password), authDomain.ErrInvalidCredentials},
		{"not base64", "%%%", authDomain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := g.CheckBasic(tt.encoded)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, authDomain.TypeBasic, p.Type)
			assert.Equal(t, testCreds.Username, p.User)
		})
	}
}

func TestCheckBearer(t *testing.T) {
	g, tokens := newGatekeeper(t)

	issued, _, err := tokens.Issue("einvoice_sys_admin", []string{authDomain.ScopeRead})
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	stale := NewTokenService("test-secret", time.Hour).WithClock(func() time.Time { return past })
	expiredJWT, _, err := stale.Issue("einvoice_sys_admin", nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"static token", testCreds.BearerToken, nil},
		{"issued jwt", issued, nil},
		{"jwt-looking token", "eyFakeButAccepted", nil},
		{"oauth token", "oauth-abc123", nil},
		{"expired marker", "my-expired-token", authDomain.ErrTokenExpired},
		{"expired jwt", expiredJWT, authDomain.ErrTokenExpired},
		{"garbage", "letmein", authDomain.ErrInvalidCredentials},
		{"empty", "", authDomain.ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := g.CheckBearer(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, authDomain.TypeBearer, p.Type)
			assert.Equal(t, tt.token, p.Token)
		})
	}

	p, err := g.CheckBearer(issued)
	require.NoError(t, err)
	assert.Equal(t, "einvoice_sys_admin", p.User)
	assert.Equal(t, []string{authDomain.ScopeRead}, p.Scopes)
}

func TestCheckOAuth(t *testing.T) {
	g, tokens := newGatekeeper(t)

	p, err := g.CheckOAuth(authDomain.ReadOnlyToken)
	require.NoError(t, err)
	assert.True(t, p.HasScope(authDomain.ScopeRead))
	assert.False(t, p.HasScope(authDomain.ScopeWrite))

	p, err = g.CheckOAuth("oauth-xyz")
	require.NoError(t, err)
	assert.True(t, p.HasScope(authDomain.ScopeWrite))

	issued, _, err := tokens.Issue("svc", []string{authDomain.ScopeWrite})
	require.NoError(t, err)
	p, err = g.CheckOAuth(issued)
	require.NoError(t, err)
	assert.Equal(t, "svc", p.User)

	_, err = g.CheckOAuth("letmein")
	assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
}

func TestCheckSession(t *testing.T) {
	g, _ := newGatekeeper(t)

	p, err := g.CheckSession("anything")
	require.NoError(t, err)
	assert.Equal(t, testCreds.Username, p.User)

	_, err = g.CheckSession(" ")
	assert.ErrorIs(t, err, authDomain.ErrMissingCredentials)
}

func TestLogin(t *testing.T) {
	g, tokens := newGatekeeper(t)

	t.Run("password grant issues a jwt", func(t *testing.T) {
		res, err := g.Login(testCreds.Username, testCreds.Password, "")
		require.NoError(t, err)
		assert.Equal(t, "Bearer", res.TokenType)
		assert.Equal(t, 3600, res.ExpiresIn)
		assert.Equal(t, "read write", res.Scope)

		claims, err := tokens.Parse(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, testCreds.Username, claims.Subject)
	})

	t.Run("client credentials issues an oauth token", func(t *testing.T) {
		res, err := g.Login(testCreds.Username, testCreds.Password, GrantClientCredentials)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.AccessToken, authDomain.OAuthTokenPrefix))
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := g.Login(testCreds.Username, "nope", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})
}

func TestSessionLogin(t *testing.T) {
	g, _ := newGatekeeper(t)

	id, err := g.SessionLogin(testCreds.Username, testCreds.Password)
	require.NoError(t, err)
	assert.Equal(t, testCreds.SessionID, id)

	_, err = g.SessionLogin("x", "y")
	assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	other := NewTokenService("other-secret", time.Hour)
	token, _, err := other.Issue("mallory", nil)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
}
