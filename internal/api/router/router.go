package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/config"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/api/handler"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/api/middleware"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/metrics"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/jwt"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/pkg/redis"
)

const maxBodyBytes = 1 << 20

// Setup builds the gin engine. rdb may be nil, which disables token
// revocation checks and rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── probes ──
	r.GET("/health", healthHandler(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// a nil *redis.Client must not become a non-nil interface
	var (
		blacklist middleware.Blacklist
		limiter   middleware.Limiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, blacklist))
	{
		assignments := v1.Group("/assignments")
		{
			assignments.GET("", middleware.RoleAuth(jwt.RoleAdmin, jwt.RoleFieldWorker), h.Assignment.ListAssignments)
			assignments.POST("", middleware.RoleAuth(jwt.RoleAdmin), h.Assignment.CreateAssignment)
			assignments.GET("/:id", h.Assignment.GetAssignment)
			assignments.PUT("/:id/status", middleware.RoleAuth(jwt.RoleAdmin), h.Assignment.UpdateAssignmentStatus)

			assignments.POST("/:id/photos",
				middleware.RoleAuth(jwt.RoleMother, jwt.RoleFieldWorker, jwt.RoleAdmin),
				middleware.RateLimit(limiter, cfg.Tracking.UploadRateLimit, cfg.Tracking.UploadRateWindow),
				h.Photo.UploadPhoto,
			)
			assignments.GET("/:id/photos", h.Photo.ListPhotos)

			assignments.GET("/:id/tracking", h.Tracking.GetTracking)
			assignments.GET("/:id/stats", h.Tracking.GetStats)
		}

		v1.GET("/photos/:id", h.Photo.GetPhoto)
		v1.POST("/auth/revoke", h.Auth.Revoke)
		v1.POST("/tracking/sweep", middleware.RoleAuth(jwt.RoleAdmin), h.Tracking.Sweep)
	}

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
