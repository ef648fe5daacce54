package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/inscription/log"
)

// Logger writes one line per request. Bodies are never logged since they
// carry transactions in flight.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Srv.Infof("method: %s, path: %s, status: %d, latency: %s, client_ip: %s, error_message: %s, body_size: %d",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP(),
			c.Errors.ByType(gin.ErrorTypePrivate).String(), c.Writer.Size())
	}
}
