package pdf

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeliverySheet(t *testing.T) {
	r, err := New().GenerateDeliverySheet(context.Background(), DeliverySheet{
		ChefName: "Chef Kodjo",
		Date:     "02/06/2025",
		Moment:   "MIDI",
		Lines: []DeliveryLine{
			{Client: "Ama K.", Matricule: "CL-AMA-12345", Telephone: "+22890000000", Plat: "Riz sauce arachide", Adresse: "Bè, Lomé", Statut: "PENDING"},
		},
	})
	require.NoError(t, err)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestGenerateDeliverySheetCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().GenerateDeliverySheet(ctx, DeliverySheet{})
	assert.ErrorIs(t, err, context.Canceled)
}
