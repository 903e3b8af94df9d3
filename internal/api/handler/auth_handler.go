package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/api/middleware"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/dto"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/jwt"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/response"
)

// Revoker stores revoked token ids until the token would have expired.
type Revoker interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthHandler token revocation. Tokens are issued by the portal; this
// service can only invalidate them early.
type AuthHandler struct {
	jwtMgr  *jwt.Manager
	revoker Revoker
	now     func() time.Time
}

// NewAuthHandler creates an AuthHandler. A nil revoker makes revocation unavailable.
func NewAuthHandler(jwtMgr *jwt.Manager, revoker Revoker) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr, revoker: revoker, now: time.Now}
}

// Revoke blacklists the caller's own token, or with a token in the body
// (admin only) any other access token.
// POST /api/v1/auth/revoke
func (h *AuthHandler) Revoke(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "invalid request parameters")
			return
		}
	}

	if h.revoker == nil {
		response.ErrorWithDetails(c, http.StatusServiceUnavailable, 10006,
			"token revocation unavailable", "no redis configured for the token blacklist")
		return
	}

	var (
		jti       string
		expiresAt time.Time
	)
	if req.Token == "" {
		jti = c.GetString(middleware.ContextTokenID)
		expiresAt = c.GetTime(middleware.ContextTokenExpiresAt)
		if jti == "" {
			response.Unauthorized(c, 10002, "not authenticated")
			return
		}
	} else {
		if c.GetString(middleware.ContextRole) != jwt.RoleAdmin {
			response.Forbidden(c, 10003, "only admins can revoke other tokens")
			return
		}
		claims, err := h.jwtMgr.ParseToken(req.Token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.BadRequest(c, 10001, "token already expired")
				return
			}
			response.BadRequest(c, 10001, "token invalid")
			return
		}
		jti = claims.ID
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
	}

	ttl := expiresAt.Sub(h.now())
	if err := h.revoker.BlacklistToken(c.Request.Context(), jti, ttl); err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	resp := dto.RevokeTokenResponse{TokenID: jti}
	if !expiresAt.IsZero() {
		resp.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
	}
	response.OK(c, resp)
}
