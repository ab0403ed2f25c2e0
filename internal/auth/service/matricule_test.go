package service

import (
	"regexp"
	"testing"

	"github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
	"github.com/stretchr/testify/assert"
)

func TestNameCode(t *testing.T) {
	assert.Equal(t, "KOD", nameCode("Kodjo Mensah"))
	assert.Equal(t, "LXX", nameCode("Él"))
	assert.Equal(t, "ABX", nameCode("a-b"))
	assert.Equal(t, "USR", nameCode("123"))
	assert.Equal(t, "USR", nameCode(""))
}

func TestGenerateMatricule(t *testing.T) {
	pattern := regexp.MustCompile(`^(CL|CH|AD)-[A-Z]{3}-[1-9][0-9]{4}$`)

	cases := map[domain.Role]string{
		domain.RoleClient:     "CL-",
		domain.RoleChef:       "CH-",
		domain.RoleAdmin:      "AD-",
		domain.RoleSuperAdmin: "AD-",
	}
	for role, prefix := range cases {
		m := generateMatricule(role, "Kodjo")
		assert.Regexp(t, pattern, m)
		assert.Equal(t, prefix+"KOD-", m[:7])
	}
}
