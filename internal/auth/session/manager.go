package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/config"
	"github.com/gin-gonic/gin"
)

const DefaultCookieName = "chefetoile_session"

// Manager manages the http-only cookie carrying the access token.
type Manager struct {
	cookieName string
	secure     bool
	disabled   bool
}

func NewManager(cfg config.Config) *Manager {
	name := strings.TrimSpace(cfg.AuthCookieName)
	if name == "" {
		name = DefaultCookieName
	}
	return &Manager{
		cookieName: name,
		secure:     cfg.AuthCookieSecure,
		disabled:   cfg.AuthCookieDisabled,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

func (m *Manager) Set(c *gin.Context, value string, expiresAt time.Time) {
	if m.disabled {
		return
	}
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}
