package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hotel-availability/config"
	"hotel-availability/internal/availability"
	"hotel-availability/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, handler *Handler, cache *mw.ResponseCache, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestID())
	r.Use(mw.AccessLog(logger))

	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", mw.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", mw.RequestIDHeader, "X-Cache"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/livez", handler.Livez)
	r.GET("/readyz", handler.Readyz)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)
	caching := cache.Handler()
	// Search answers depend on the reference day as well as the query.
	searchCaching := cache.KeyedHandler(func(*gin.Context) string {
		return availability.Day(handler.now()).Format(availability.DateLayout)
	})

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// GET /api/hotels/{hotel_id}/availability?room_type=SGL&from=20240901&to=20240903&ovb=true
		api.GET("/hotels/:hotel_id/availability", caching, handler.GetAvailability)

		// GET /api/hotels/{hotel_id}/search?room_type=SGL&days=365
		api.GET("/hotels/:hotel_id/search", searchCaching, handler.GetSearch)

		// POST /api/availability
		api.POST("/availability", handler.PostAvailability)
	}

	return r
}
