package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RefreshCookieName is the cookie carrying the refresh token.
const RefreshCookieName = "refresh-token"

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) SetRefresh(c *gin.Context, refresh string, rexp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, refresh, maxAgeFrom(rexp), "/", m.Domain, m.Secure, true)
}

// Refresh returns the refresh cookie value, or "" when absent.
func (m *Manager) Refresh(c *gin.Context) string {
	v, err := c.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return v
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
