package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID is the gin context key of the request id.
const ContextRequestID = "request_id"

const requestIDHeader = "X-Request-ID"

// caller-supplied ids longer than this are replaced
const requestIDMaxLen = 64

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.NewString()
		}
		c.Set(ContextRequestID, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}
