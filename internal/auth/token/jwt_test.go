package token

import (
	"testing"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(clk clock.Clock, secret string) *Issuer {
	return NewIssuer(config.Config{AppName: "chefetoile", AuthJWTSecret: secret, AuthJWTExpire: time.Hour}, clk)
}

func TestSignAndParse(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	issuer := newIssuer(clk, "s3cret")

	raw, expiresAt, err := issuer.Sign("1234567890123", "CHEF")
	require.NoError(t, err)
	assert.Equal(t, clk.Now().Add(time.Hour), expiresAt)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "1234567890123", claims.UserID)
	assert.Equal(t, "CHEF", claims.Role)
}

func TestParseExpired(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	issuer := newIssuer(clk, "s3cret")

	raw, _, err := issuer.Sign("1", "CLIENT")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	raw, _, err := newIssuer(clk, "other").Sign("1", "CLIENT")
	require.NoError(t, err)

	_, err = newIssuer(clk, "s3cret").Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = newIssuer(clk, "s3cret").Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
