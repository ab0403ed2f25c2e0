package masking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskJSON(t *testing.T) {
	out := MaskJSON(map[string]any{
		"reset_token": "abcdef123456",
		"formule":     "COMPLET",
		"nested":      map[string]any{"password": "hunter2", "orders": 14},
	})

	assert.Equal(t, "****3456", out["reset_token"])
	assert.Equal(t, "COMPLET", out["formule"])
	nested := out["nested"].(map[string]any)
	assert.Equal(t, "****ter2", nested["password"])
	assert.Equal(t, 14, nested["orders"])
}

func TestMaskSecretShort(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("abc"))
	assert.Equal(t, "", MaskSecret("  "))
}
