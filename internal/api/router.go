package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"parkspot-backend/config"
	"parkspot-backend/internal/mw"
	"parkspot-backend/internal/points"
	"parkspot-backend/internal/report"
	"parkspot-backend/internal/streets"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, db *gorm.DB, ps *points.Store, est *streets.Estimator, sink report.Sink, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(ps, est, sink, db, webpushOptions)

	limit := rate.Limit(10)
	burst := 5
	if cfg.Server.RateLimitPerSec > 0 {
		limit = rate.Limit(cfg.Server.RateLimitPerSec)
	}
	if cfg.Server.RateLimitBurst > 0 {
		burst = cfg.Server.RateLimitBurst
	}
	rateLimiter := mw.RateLimiter(limit, burst)

	cacheTTL := 1 * time.Minute
	if cfg.Server.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.Use(rateLimiter)

	r.GET("/park-points", handler.GetParkPoints)
	r.POST("/park-points", handler.PostParkPoint)
	r.DELETE("/park-points/:id", handler.DeleteParkPoint)
	r.POST("/park-points/:id/report", handler.ReportParkPoint)

	r.GET("/streets", handler.GetStreets)

	r.POST("/park-reports", handler.PostParkReport)
	r.GET("/park-reports", caching, handler.GetParkReports)

	r.GET("/subscriptions", handler.GetSubscription)
	r.PUT("/subscriptions", handler.PutSubscription)
	r.DELETE("/subscriptions", handler.DeleteSubscription)
	r.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

	return r
}
