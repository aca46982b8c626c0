package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware admits the configured front-end origins. The request id is
// exposed so the companion app can quote it when reporting a failed reading.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		origin, ok := matchOrigin(c.GetHeader("Origin"), allowed)
		if ok {
			headers.Set("Access-Control-Allow-Origin", origin)
			headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
			headers.Set("Access-Control-Expose-Headers", requestIDHeader)
			headers.Set("Access-Control-Max-Age", "600")
		}
		headers.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// matchOrigin returns the value for Access-Control-Allow-Origin. An empty
// allow list or "*" admits everyone; otherwise unknown origins get no header.
func matchOrigin(requestOrigin string, allowed []string) (string, bool) {
	if len(allowed) == 0 {
		return "*", true
	}
	for _, candidate := range allowed {
		if candidate == "*" {
			return "*", true
		}
		if requestOrigin != "" && strings.EqualFold(candidate, requestOrigin) {
			return requestOrigin, true
		}
	}
	return "", false
}
