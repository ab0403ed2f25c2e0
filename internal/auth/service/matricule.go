package service

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/UknowEdy/chefetoile-backend/internal/auth/domain"
)

const maxMatriculeAttempts = 10

func matriculePrefix(role domain.Role) string {
	switch role {
	case domain.RoleChef:
		return "CH"
	case domain.RoleAdmin, domain.RoleSuperAdmin:
		return "AD"
	default:
		return "CL"
	}
}

// nameCode keeps the first three ASCII letters of name, upper-cased and
// padded with X.
func nameCode(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() == 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "USR"
	}
	return b.String() + strings.Repeat("X", 3-b.Len())
}

// generateMatricule returns e.g. CH-KOD-83921.
func generateMatricule(role domain.Role, name string) string {
	return fmt.Sprintf("%s-%s-%05d", matriculePrefix(role), nameCode(name), 10000+rand.IntN(90000))
}
