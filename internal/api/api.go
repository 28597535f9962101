package api

import (
	_ "embed"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	chat_module "github.com/wearcast/stylechat/internal/api/modules/chat"
	health_module "github.com/wearcast/stylechat/internal/api/modules/health"
	"github.com/wearcast/stylechat/pkg/sdk"
	"github.com/wearcast/stylechat/pkg/utils"
)

//go:embed web/index.html
var indexPage []byte

func Start(cfg *utils.Config) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(noRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// The chat page itself
	engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	chat_module.RegisterRoutes(baseGroup)
	chat_module.Init(cfg)

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// noRouteHandler returns a JSON 404 for unknown paths
func noRouteHandler(c *gin.Context) {
	res := sdk.NewErrorResponse(http.StatusNotFound, "Route not found", nil)
	c.JSON(res.AsGinResponse())
}
