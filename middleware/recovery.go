package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"notekeep/utils"
)

// RecoveryMiddleware converts panics into 500 envelopes so one bad request
// never takes the process down.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				utils.TrackError("server", "panic")
				utils.InternalError(c, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
