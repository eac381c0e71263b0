package middleware

import (
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP resolves the client address once per request. With trustProxy set,
// CF-Connecting-IP wins, then the left-most valid X-Forwarded-For entry, then
// gin's ClientIP. Otherwise only the socket peer address counts, since both
// headers are client-controlled when nothing in front of us rewrites them.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !trustProxy {
			c.Set(CtxRealIPKey, c.RemoteIP())
			c.Next()
			return
		}
		c.Set(CtxRealIPKey, resolveIP(c.GetHeader("CF-Connecting-IP"), c.GetHeader("X-Forwarded-For"), c.ClientIP()))
		c.Next()
	}
}

func resolveIP(cf, xff, fallback string) string {
	if ip, err := netip.ParseAddr(strings.TrimSpace(cf)); err == nil {
		return ip.String()
	}
	if first, _, _ := strings.Cut(xff, ","); first != "" {
		if ip, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return ip.String()
		}
	}
	return fallback
}

// ClientIP returns the address set by RealIP, or gin's ClientIP when RealIP
// did not run. Never empty.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// AllowPrivateIP bypasses the limiter for loopback and private-range callers.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip, err := netip.ParseAddr(ClientIP(c))
		return err == nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}
