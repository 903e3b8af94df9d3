package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/api/middleware"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/response"
)

// MustGetUserID reads the caller set by JWTAuth. On false a 401 has
// already been written and the handler should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	uid := c.GetString(middleware.ContextUserID)
	if uid == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return uid, true
}
