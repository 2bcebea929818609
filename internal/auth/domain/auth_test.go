package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal_HasScope(t *testing.T) {
	p := Principal{Type: TypeOAuth2, Scopes: []string{ScopeRead}}

	assert.True(t, p.HasScope(ScopeRead))
	assert.False(t, p.HasScope(ScopeWrite))
	assert.False(t, Principal{}.HasScope(ScopeRead))
}
