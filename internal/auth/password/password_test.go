package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify(t *testing.T) {
	encoded, err := Hash("poulet-bicyclette")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	assert.True(t, Verify("poulet-bicyclette", encoded))
	assert.False(t, Verify("attieke", encoded))
	assert.False(t, NeedsRehash(encoded))
}

func TestHashUsesRandomSalt(t *testing.T) {
	a, err := Hash("same")
	require.NoError(t, err)
	b, err := Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, Verify("client123", string(legacy)))
	assert.False(t, Verify("chef123", string(legacy)))
	assert.True(t, NeedsRehash(string(legacy)))
}

func TestNeedsRehashWeakArgon(t *testing.T) {
	weak := "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA"
	assert.True(t, NeedsRehash(weak))
	assert.False(t, NeedsRehash("not-a-hash"))
}

func TestVerifyRejectsMalformed(t *testing.T) {
	assert.False(t, Verify("x", ""))
	assert.False(t, Verify("x", "$2a$10$bcryptstyle"))
	assert.False(t, Verify("x", "$argon2id$v=19$m=abc,t=1,p=4$c2FsdA$aGFzaA"))
	assert.False(t, Verify("x", "$argon2id$v=19$m=0,t=1,p=4$c2FsdA$aGFzaA"))
}
