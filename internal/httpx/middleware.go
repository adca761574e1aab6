package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ridKey = "rid"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// RID returns the request id set by RequestID, or "-".
func RID(c *gin.Context) string {
	if v, ok := c.Get(ridKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "-"
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		errs := ""
		if len(c.Errors) > 0 {
			errs = " err=" + c.Errors.String()
		}
		log.Printf("[http] rid=%s %s %s status=%d dur=%s%s",
			RID(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), errs)
	}
}
