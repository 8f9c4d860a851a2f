package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
)

// Recovery converts handler panics into 500 responses. Solver panics are
// already contained inside the dispatch pipeline; this is the outer net for
// everything else.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	logger = logger.Named("http.recovery")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panicked",
					logging.String("request_id", GetRequestID(c)),
					logging.String("path", c.Request.URL.Path),
					logging.Any("panic", r),
					logging.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "COMMON_001",
						"message": "internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}
