package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/config"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
)

// NewEngine builds the gin engine with the global middleware chain. The error
// handler sits after recovery so every module's c.Error ends up rendered.
func NewEngine(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	if !cfg.TrustProxyHeaders {
		// keep c.ClientIP on the socket address too
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.ErrorHandler(logger))
	return r
}
