package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/clock"
	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrExpiredToken = errors.New("expired_token")
)

// Claims are the access token claims. UserID is the snowflake id in decimal
// form so JavaScript clients never lose precision.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  clock.Clock
}

func NewIssuer(cfg config.Config, clk clock.Clock) *Issuer {
	return &Issuer{
		secret: []byte(cfg.AuthJWTSecret),
		ttl:    cfg.AuthJWTExpire,
		issuer: cfg.AppName,
		clock:  clk,
	}
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Sign returns a signed token and its expiry.
func (i *Issuer) Sign(userID, role string) (string, time.Time, error) {
	now := i.clock.Now()
	expiresAt := now.Add(i.ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.clock.Now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
