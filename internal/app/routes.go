package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/middleware"
	authmod "github.com/terravita/core/internal/modules/auth/auth"
	usermod "github.com/terravita/core/internal/modules/auth/user"
	"github.com/terravita/core/internal/modules/content/area"
	"github.com/terravita/core/internal/modules/content/lifecycle"
	"github.com/terravita/core/internal/modules/content/news"
	"github.com/terravita/core/internal/modules/content/species"
	"github.com/terravita/core/internal/modules/identity"
	"github.com/terravita/core/internal/modules/storage/media"
	"github.com/terravita/core/internal/pkg/response"
	"go.uber.org/zap"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	rdb := a.redis.Raw()

	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) { response.NotFound(c, "") })
	r.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })

	r.Use(middleware.RateLimit(rdb))

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.HTTPCache(rdb, 30*time.Second))

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	opts := lifecycle.Options{
		LockTTL: time.Duration(a.cfg.LockTTLMinutes) * time.Minute,
		Strict:  a.cfg.StrictConcurrency,
	}

	var syncer identity.Syncer = identity.Noop{}
	if a.cfg.Clerk.Enabled() {
		syncer = identity.NewClerkSyncer(a.cfg.Clerk.SecretKey)
	}

	// Content kinds: public reads plus the editorial surface behind the
	// per-kind role guard.
	species.NewHandler(species.NewService(db, opts, a.logger)).
		RegisterRoutes(api, authMW, middleware.RequireEditor("species"))
	area.NewHandler(area.NewService(db, opts, a.logger)).
		RegisterRoutes(api, authMW, middleware.RequireEditor("areas"))
	news.NewHandler(news.NewService(db, opts, a.logger)).
		RegisterRoutes(api, authMW, middleware.RequireEditor("news"))

	// Accounts and sessions.
	authmod.NewHandler(authmod.NewService(db)).RegisterRoutes(api, authMW)
	usermod.NewHandler(usermod.NewService(db, syncer, a.logger)).
		RegisterRoutes(api, authMW, middleware.RequireAdmin())

	// Editorial media uploads, present only when a bucket is configured.
	if a.cfg.S3.Enabled() {
		mediaSvc, err := media.NewService(a.cfg.S3)
		if err != nil {
			a.logger.Error("media storage unavailable", zap.Error(err))
		} else {
			media.NewHandler(mediaSvc).RegisterRoutes(api, authMW)
		}
	}
}
