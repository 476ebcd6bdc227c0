// Package webui serves the server-rendered web frontend for the outfit
// planner. It talks to the API server through the typed client; no domain
// state lives here beyond the session store and page controllers.
package webui

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stylehive/outfit-planner/internal/infra/config"
)

// NewRouter wires the frontend routes and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), pageLogger(logger))
	router.SetHTMLTemplate(loadTemplates())

	router.GET("/", handler.Home)

	router.GET("/profile", handler.Profile)
	router.POST("/profile", handler.SubmitProfile)
	router.POST("/profile/photo/select", handler.SelectProfilePhoto)
	router.POST("/profile/photo/upload", handler.UploadProfilePhoto)
	router.POST("/profile/photo/clear", handler.ClearProfilePhoto)

	router.GET("/wardrobe", handler.Wardrobe)
	router.POST("/wardrobe/filter", handler.FilterWardrobe)
	router.POST("/wardrobe/panel", handler.ToggleWardrobePanel)
	router.POST("/wardrobe/select", handler.SelectWardrobeImage)
	router.POST("/wardrobe/items", handler.AddWardrobeItem)

	router.GET("/planner", handler.Planner)
	router.POST("/planner/generate", handler.GenerateOutfits)
	router.POST("/planner/save", handler.SaveOutfit)

	router.GET("/preview/:id", handler.Preview)

	return &http.Server{
		Addr:           cfg.Web.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func pageLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("page request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
