package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// getClientIP keys rate limits and request logs. Forwarded headers are only
// honoured when the peer is one of the engine's trusted proxies (see
// gin.Engine.SetTrustedProxies); otherwise the socket address is used.
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
